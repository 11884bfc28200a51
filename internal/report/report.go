// Package report 负责渲染控制台分析报告和结构化导出。
// 控制台渲染包含明细表、语言汇总、角色拆分和整体摘要，
// 结构化导出支持 JSON 与 YAML 两种格式（含文件落盘）。
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"mdkloc/internal/languages"
	"mdkloc/internal/model"
)

// 明细表的列宽。目录列超宽时从头部截断并加省略号前缀，
// 数据行保持无色以保证 ANSI 场景下的对齐。
const (
	dirWidth       = 40
	langWidth      = 16
	separatorWidth = 112
)

var (
	sectionColor = color.New(color.FgBlue, color.Bold)
	warningColor = color.New(color.FgRed, color.Bold)
	valueColor   = color.New(color.FgHiYellow)
	bannerColor  = color.New(color.FgHiCyan, color.Bold)
)

// languageTotal 聚合单语言的文件数与统计值。
type languageTotal struct {
	files int64
	stats model.LineStats
}

// BuildBanner 渲染启动横幅，程序名亮青色加粗，版本号亮黄色。
func BuildBanner(name string, version string) string {
	return fmt.Sprintf("%s %s", bannerColor.Sprint(name), valueColor.Sprintf("v%s", version))
}

// BuildPerformanceSummary 渲染性能摘要块。
func BuildPerformanceSummary(metrics *model.PerformanceMetrics) string {
	elapsed := metrics.Elapsed().Seconds()
	files := metrics.FilesProcessed()
	lines := metrics.LinesProcessed()

	var builder strings.Builder
	builder.WriteString("\n\n" + sectionColor.Sprint("Performance Summary:") + "\n")
	fmt.Fprintf(&builder, "Total time: %s seconds\n", valueColor.Sprintf("%.2f", elapsed))
	fmt.Fprintf(&builder, "Files processed: %s (%s)\n",
		valueColor.Sprintf("%d", files),
		valueColor.Sprintf("%.1f files/sec", model.SafeRate(files, elapsed)))
	fmt.Fprintf(&builder, "Lines processed: %s (%s)\n",
		valueColor.Sprintf("%d", lines),
		valueColor.Sprintf("%.1f lines/sec", model.SafeRate(lines, elapsed)))
	return builder.String()
}

// BuildAnalysisReport 渲染完整的分析报告。
//
// 约束说明：
// - 目录按路径字符串排序，目录内语言按名称排序
// - 目录显示为相对 currentDir 的路径，根外路径保持绝对形式
// - Overall Summary 仅在处理过文件或行时出现，Warning 仅在其内部出现
func BuildAnalysisReport(currentDir string, result *model.ScanResult, filesProcessed int64, linesProcessed int64, roleBreakdown bool) string {
	var builder strings.Builder
	separator := strings.Repeat("-", separatorWidth)

	builder.WriteString("\n\nDetailed source code analysis:\n")
	builder.WriteString(separator + "\n")
	fmt.Fprintf(&builder, "%-*s %-*s %8s %10s %10s %10s %10s\n",
		dirWidth, "Directory", langWidth, "Language", "Files", "Code", "Comments", "Mixed", "Blank")
	builder.WriteString(separator + "\n")

	totals := make(map[string]*languageTotal)
	var roleTotals [model.RoleCount]map[string]*languageTotal
	for i := range roleTotals {
		roleTotals[i] = make(map[string]*languageTotal)
	}

	for _, dir := range sortedDirectoryKeys(result.Directories) {
		display := formatDirectoryDisplay(dir, currentDir)
		dirStats := result.Directories[dir]

		for _, lang := range sortedLanguageKeys(dirStats.Languages) {
			entry := dirStats.Languages[lang]
			files, stats := entry.Summary()
			builder.WriteString(formatLanguageRow(display, lang, files, stats) + "\n")

			accumulate(totals, lang, files, stats)
			for _, role := range model.AllRoles {
				if roleFiles, roleStats, ok := entry.RoleSummary(role); ok {
					accumulate(roleTotals[role.Index()], lang, roleFiles, roleStats)
				}
			}
		}
	}

	builder.WriteString(separator + "\n")
	builder.WriteString("Totals by language:\n")
	appendTotalRows(&builder, totals)

	if roleBreakdown {
		appendRoleSections(&builder, roleTotals)
	}

	var grand model.LineStats
	for _, total := range totals {
		grand.Add(total.stats)
	}

	if filesProcessed > 0 || linesProcessed > 0 {
		builder.WriteString("\n" + sectionColor.Sprint("Overall Summary:") + "\n")
		fmt.Fprintf(&builder, "Total files processed: %s\n", valueColor.Sprintf("%d", filesProcessed))
		fmt.Fprintf(&builder, "Total lines processed: %s\n", valueColor.Sprintf("%d", linesProcessed))
		fmt.Fprintf(&builder, "Code lines:     %s (%s)\n",
			valueColor.Sprintf("%d", grand.Code),
			valueColor.Sprintf("%.1f%%", model.SafePercentage(grand.Code, linesProcessed)))
		fmt.Fprintf(&builder, "Comment lines:  %s (%s)\n",
			valueColor.Sprintf("%d", grand.Comment),
			valueColor.Sprintf("%.1f%%", model.SafePercentage(grand.Comment, linesProcessed)))
		fmt.Fprintf(&builder, "Mixed lines:    %s (%s)\n",
			valueColor.Sprintf("%d", grand.Overlap),
			valueColor.Sprintf("%.1f%%", model.SafePercentage(grand.Overlap, linesProcessed)))
		fmt.Fprintf(&builder, "Blank lines:    %s (%s)\n",
			valueColor.Sprintf("%d", grand.Blank),
			valueColor.Sprintf("%.1f%%", model.SafePercentage(grand.Blank, linesProcessed)))

		if result.ErrorCount > 0 {
			fmt.Fprintf(&builder, "\n%s: %s\n",
				warningColor.Sprint("Warning"),
				valueColor.Sprintf("%d", result.ErrorCount))
		}
	}

	return builder.String()
}

// appendRoleSections 渲染主线与测试两个角色段落。
// 测试角色没有任何数据时输出固定的提示文案。
func appendRoleSections(builder *strings.Builder, roleTotals [model.RoleCount]map[string]*languageTotal) {
	for _, role := range model.AllRoles {
		fmt.Fprintf(builder, "\nRole breakdown (%s)\n", role)

		totals := roleTotals[role.Index()]
		if role == model.RoleTest && len(totals) == 0 {
			builder.WriteString("No test data collected.\n")
			continue
		}

		fmt.Fprintf(builder, "Totals by language (%s):\n", role)
		appendTotalRows(builder, totals)
	}
}

// appendTotalRows 按语言名排序输出汇总行，目录列留空。
func appendTotalRows(builder *strings.Builder, totals map[string]*languageTotal) {
	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		total := totals[name]
		builder.WriteString(formatLanguageRow("", name, total.files, total.stats) + "\n")
	}
}

// formatLanguageRow 渲染一行明细，列序固定为
// 目录、语言、文件数、代码、注释、混合、空白。
func formatLanguageRow(prefix string, language string, files int64, stats model.LineStats) string {
	return fmt.Sprintf("%-*s %-*s %8d %10d %10d %10d %10d",
		dirWidth, prefix, langWidth, language,
		files, stats.Code, stats.Comment, stats.Overlap, stats.Blank)
}

func accumulate(totals map[string]*languageTotal, language string, files int64, stats model.LineStats) {
	total, ok := totals[language]
	if !ok {
		total = &languageTotal{}
		totals[language] = total
	}
	total.files += files
	total.stats.Add(stats)
}

// formatDirectoryDisplay 把目录路径转成展示形式。
// currentDir 本身显示为 "."，子路径显示为相对路径，
// currentDir 之外的路径保持原样，超宽时从头部截断。
func formatDirectoryDisplay(path string, currentDir string) string {
	display := path
	if relative, err := filepath.Rel(currentDir, path); err == nil {
		if relative == "." {
			display = "."
		} else if relative != ".." && !strings.HasPrefix(relative, ".."+string(filepath.Separator)) {
			display = relative
		}
	}
	return truncateStart(display, dirWidth)
}

// truncateStart 超过 max 个字符时保留尾部并加 "..." 前缀。
func truncateStart(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return "..." + string(runes[len(runes)-(max-3):])
}

func sortedDirectoryKeys(directories map[string]*model.DirectoryStats) []string {
	keys := make([]string, 0, len(directories))
	for key := range directories {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func sortedLanguageKeys(entries map[string]*model.LanguageEntry) []string {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// BuildLanguagesListing 渲染支持的语言与后缀清单。
// 仅按文件名派发的语言（如 Makefile、Dockerfile）没有后缀列表。
func BuildLanguagesListing(registry *languages.Registry) string {
	var builder strings.Builder
	builder.WriteString("Supported languages:\n")

	writer := tabwriter.NewWriter(&builder, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "LANGUAGE\tEXTENSIONS")
	for _, item := range registry.Languages() {
		extensions := strings.Join(item.Extensions, ", ")
		if extensions == "" {
			extensions = "(by file name)"
		}
		fmt.Fprintf(writer, "%s\t%s\n", item.Name, extensions)
	}
	writer.Flush()

	return builder.String()
}

// RoleReport 是导出文档中的单角色统计。
type RoleReport struct {
	Role     string `json:"role" yaml:"role"`
	Files    int64  `json:"files" yaml:"files"`
	Code     int64  `json:"code" yaml:"code"`
	Comments int64  `json:"comments" yaml:"comments"`
	Mixed    int64  `json:"mixed" yaml:"mixed"`
	Blank    int64  `json:"blank" yaml:"blank"`
}

// LanguageReport 是导出文档中的单语言统计。
type LanguageReport struct {
	Language string       `json:"language" yaml:"language"`
	Files    int64        `json:"files" yaml:"files"`
	Code     int64        `json:"code" yaml:"code"`
	Comments int64        `json:"comments" yaml:"comments"`
	Mixed    int64        `json:"mixed" yaml:"mixed"`
	Blank    int64        `json:"blank" yaml:"blank"`
	Roles    []RoleReport `json:"roles,omitempty" yaml:"roles,omitempty"`
}

// DirectoryReport 是导出文档中的单目录统计。
type DirectoryReport struct {
	Path      string           `json:"path" yaml:"path"`
	Languages []LanguageReport `json:"languages" yaml:"languages"`
}

// SummaryReport 是导出文档的整体摘要。
type SummaryReport struct {
	FilesProcessed int64   `json:"files_processed" yaml:"files_processed"`
	LinesProcessed int64   `json:"lines_processed" yaml:"lines_processed"`
	Code           int64   `json:"code" yaml:"code"`
	Comments       int64   `json:"comments" yaml:"comments"`
	Mixed          int64   `json:"mixed" yaml:"mixed"`
	Blank          int64   `json:"blank" yaml:"blank"`
	Errors         int64   `json:"errors" yaml:"errors"`
	ElapsedSeconds float64 `json:"elapsed_seconds" yaml:"elapsed_seconds"`
}

// Document 是结构化导出的顶层文档。
type Document struct {
	Root        string            `json:"root" yaml:"root"`
	Directories []DirectoryReport `json:"directories" yaml:"directories"`
	Languages   []LanguageReport  `json:"languages" yaml:"languages"`
	Summary     SummaryReport     `json:"summary" yaml:"summary"`
}

// BuildDocument 把扫描结果与运行指标组装成导出文档。
// 目录与语言都按名称排序，保证导出内容可复现。
func BuildDocument(result *model.ScanResult, metrics *model.PerformanceMetrics) Document {
	doc := Document{Root: result.Root}

	totals := make(map[string]*languageTotal)
	var roleTotals [model.RoleCount]map[string]*languageTotal
	for i := range roleTotals {
		roleTotals[i] = make(map[string]*languageTotal)
	}

	for _, dir := range sortedDirectoryKeys(result.Directories) {
		dirStats := result.Directories[dir]
		dirReport := DirectoryReport{Path: dir}

		for _, lang := range sortedLanguageKeys(dirStats.Languages) {
			entry := dirStats.Languages[lang]
			files, stats := entry.Summary()
			dirReport.Languages = append(dirReport.Languages, languageReport(lang, files, stats, roleReports(entry)))

			accumulate(totals, lang, files, stats)
			for _, role := range model.AllRoles {
				if roleFiles, roleStats, ok := entry.RoleSummary(role); ok {
					accumulate(roleTotals[role.Index()], lang, roleFiles, roleStats)
				}
			}
		}

		doc.Directories = append(doc.Directories, dirReport)
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	var grand model.LineStats
	for _, name := range names {
		total := totals[name]
		grand.Add(total.stats)

		var roleSlice []RoleReport
		for _, role := range model.AllRoles {
			if roleTotal, ok := roleTotals[role.Index()][name]; ok {
				roleSlice = append(roleSlice, roleReport(role.String(), roleTotal.files, roleTotal.stats))
			}
		}
		doc.Languages = append(doc.Languages, languageReport(name, total.files, total.stats, roleSlice))
	}

	doc.Summary = SummaryReport{
		FilesProcessed: metrics.FilesProcessed(),
		LinesProcessed: metrics.LinesProcessed(),
		Code:           grand.Code,
		Comments:       grand.Comment,
		Mixed:          grand.Overlap,
		Blank:          grand.Blank,
		Errors:         result.ErrorCount,
		ElapsedSeconds: metrics.Elapsed().Seconds(),
	}
	return doc
}

func languageReport(language string, files int64, stats model.LineStats, roleSlice []RoleReport) LanguageReport {
	return LanguageReport{
		Language: language,
		Files:    files,
		Code:     stats.Code,
		Comments: stats.Comment,
		Mixed:    stats.Overlap,
		Blank:    stats.Blank,
		Roles:    roleSlice,
	}
}

func roleReports(entry *model.LanguageEntry) []RoleReport {
	var result []RoleReport
	for _, role := range model.AllRoles {
		if files, stats, ok := entry.RoleSummary(role); ok {
			result = append(result, roleReport(role.String(), files, stats))
		}
	}
	return result
}

func roleReport(role string, files int64, stats model.LineStats) RoleReport {
	return RoleReport{
		Role:     role,
		Files:    files,
		Code:     stats.Code,
		Comments: stats.Comment,
		Mixed:    stats.Overlap,
		Blank:    stats.Blank,
	}
}

// WriteJSON 把导出文档按易读 JSON 写出。
func WriteJSON(writer io.Writer, doc Document) error {
	content, err := marshalDocument("json", doc)
	if err != nil {
		return err
	}
	if _, err := writer.Write(content); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// WriteYAML 把导出文档按 YAML 写出。
func WriteYAML(writer io.Writer, doc Document) error {
	content, err := marshalDocument("yaml", doc)
	if err != nil {
		return err
	}
	if _, err := writer.Write(content); err != nil {
		return fmt.Errorf("write yaml: %w", err)
	}
	return nil
}

// WriteReportFile 将导出文档落盘到指定路径。
// 如果目录不存在会自动创建。
func WriteReportFile(path string, format string, doc Document) error {
	content, err := marshalDocument(format, doc)
	if err != nil {
		return err
	}

	directory := filepath.Dir(path)
	if directory != "." && directory != "" {
		if mkErr := os.MkdirAll(directory, 0o755); mkErr != nil {
			return fmt.Errorf("create output directory: %w", mkErr)
		}
	}

	if writeErr := os.WriteFile(path, content, 0o644); writeErr != nil {
		return fmt.Errorf("write output file: %w", writeErr)
	}
	return nil
}

func marshalDocument(format string, doc Document) ([]byte, error) {
	switch format {
	case "json":
		content, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal json: %w", err)
		}
		return content, nil
	case "yaml":
		content, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("marshal yaml: %w", err)
		}
		return content, nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}
