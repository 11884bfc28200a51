package report

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"mdkloc/internal/languages"
	"mdkloc/internal/model"
)

// TestMain 关闭颜色输出，让断言可以直接匹配纯文本。
func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func newTestMetrics(lineCounts ...int64) *model.PerformanceMetrics {
	metrics := model.NewPerformanceMetricsWithWriter(io.Discard, false)
	for _, lines := range lineCounts {
		metrics.Update(lines)
	}
	return metrics
}

// TestAnalysisReportIncludesTotals 验证报告包含语言行、汇总段与告警。
func TestAnalysisReportIncludesTotals(t *testing.T) {
	root := t.TempDir()
	result := model.NewScanResult(root)
	dir := result.Directory(root)
	dir.Entry("Rust").RecordAggregate(model.RoleMainline, 1, model.LineStats{Code: 3, Comment: 1})
	dir.Entry("Python").RecordAggregate(model.RoleMainline, 2, model.LineStats{Code: 4, Comment: 2, Blank: 1})
	result.ErrorCount = 1

	report := BuildAnalysisReport(root, result, 3, 11, false)

	for _, want := range []string{"Totals by language:", "Rust", "Python", "Overall Summary:", "Warning"} {
		if !strings.Contains(report, want) {
			t.Fatalf("report missing %q:\n%s", want, report)
		}
	}
	if !strings.Contains(report, "63.6%") {
		t.Fatalf("expected code percentage 63.6%% in report:\n%s", report)
	}
}

// TestAnalysisReportZeroTotals 验证空结果仍有表头但没有摘要与告警。
func TestAnalysisReportZeroTotals(t *testing.T) {
	root := t.TempDir()
	result := model.NewScanResult(root)

	report := BuildAnalysisReport(root, result, 0, 0, false)

	if !strings.Contains(report, "Detailed source code analysis") {
		t.Fatalf("report should always include table header:\n%s", report)
	}
	if !strings.Contains(report, "Totals by language:") {
		t.Fatalf("report should include totals header even when empty:\n%s", report)
	}
	if strings.Contains(report, "Overall Summary") {
		t.Fatalf("zero files should skip overall summary:\n%s", report)
	}
	if strings.Contains(report, "Warning") {
		t.Fatalf("zero errors should not emit warning:\n%s", report)
	}
}

// TestAnalysisReportRoleFallback 验证没有测试数据时的固定提示文案。
func TestAnalysisReportRoleFallback(t *testing.T) {
	root := t.TempDir()
	result := model.NewScanResult(root)
	result.Directory(root).Entry("Rust").RecordAggregate(model.RoleMainline, 1, model.LineStats{Code: 2})

	report := BuildAnalysisReport(root, result, 1, 2, true)

	for _, want := range []string{
		"Role breakdown (Mainline)",
		"Totals by language (Mainline):",
		"Role breakdown (Test)",
		"No test data collected.",
	} {
		if !strings.Contains(report, want) {
			t.Fatalf("report missing %q:\n%s", want, report)
		}
	}
}

// TestAnalysisReportRoleRows 验证测试角色段落输出对应的汇总行。
func TestAnalysisReportRoleRows(t *testing.T) {
	root := t.TempDir()
	result := model.NewScanResult(root)
	result.Directory(root).Entry("Rust").RecordRoles([]model.RolePair{
		{Role: model.RoleMainline, Bucket: model.RoleBucket{Stats: model.LineStats{Code: 3, Blank: 1}, Lines: 4}},
		{Role: model.RoleTest, Bucket: model.RoleBucket{Stats: model.LineStats{Code: 8, Blank: 1}, Lines: 9}},
	})

	report := BuildAnalysisReport(root, result, 1, 13, true)

	marker := strings.Index(report, "Totals by language (Test):")
	if marker < 0 {
		t.Fatalf("missing test totals marker:\n%s", report)
	}
	testRow := formatLanguageRow("", "Rust", 1, model.LineStats{Code: 8, Blank: 1})
	if !strings.Contains(report[marker:], testRow) {
		t.Fatalf("missing test role row %q:\n%s", testRow, report)
	}

	mainMarker := strings.Index(report, "Totals by language (Mainline):")
	mainRow := formatLanguageRow("", "Rust", 1, model.LineStats{Code: 3, Blank: 1})
	if mainMarker < 0 || !strings.Contains(report[mainMarker:marker], mainRow) {
		t.Fatalf("missing mainline role row %q:\n%s", mainRow, report)
	}
}

// TestAnalysisReportMultipleDirectories 验证相对路径展示与根外路径保留。
func TestAnalysisReportMultipleDirectories(t *testing.T) {
	base := t.TempDir()
	result := model.NewScanResult(base)
	result.Directory(filepath.Join(base, "src")).Entry("Rust").
		RecordAggregate(model.RoleMainline, 2, model.LineStats{Code: 10, Comment: 2, Blank: 1})
	result.Directory(filepath.Join(base, "docs")).Entry("Markdown").
		RecordAggregate(model.RoleMainline, 1, model.LineStats{})
	result.Directory("/outside").Entry("Shell").
		RecordAggregate(model.RoleMainline, 1, model.LineStats{Comment: 1})

	report := BuildAnalysisReport(base, result, 4, 13, false)

	for _, want := range []string{"src", "docs", "/outside", "Totals by language:", "Overall Summary"} {
		if !strings.Contains(report, want) {
			t.Fatalf("report missing %q:\n%s", want, report)
		}
	}
	if strings.Contains(report, "Warning") {
		t.Fatalf("zero error count should suppress warning:\n%s", report)
	}
	if strings.Index(report, "docs") > strings.Index(report, "src") {
		t.Fatalf("directories should be sorted by path:\n%s", report)
	}
}

// TestAnalysisReportLongPathTruncation 验证超宽目录从头部截断展示。
func TestAnalysisReportLongPathTruncation(t *testing.T) {
	base := t.TempDir()
	longDir := filepath.Join(base, "a_very_long_directory_name_that_exceeds_the_width_limit_for_display")

	display := formatDirectoryDisplay(longDir, base)
	if !strings.HasPrefix(display, "...") {
		t.Fatalf("long directory display should start with ellipsis: %q", display)
	}
	if utf8.RuneCountInString(display) > dirWidth {
		t.Fatalf("truncated display exceeds width %d: %q", dirWidth, display)
	}

	result := model.NewScanResult(base)
	result.Directory(longDir).Entry("Rust").RecordAggregate(model.RoleMainline, 1, model.LineStats{Code: 3})

	report := BuildAnalysisReport(base, result, 1, 3, false)
	if !strings.Contains(report, display) {
		t.Fatalf("report should contain truncated display %q:\n%s", display, report)
	}
	if !strings.Contains(report, "Rust") {
		t.Fatalf("report should include language row:\n%s", report)
	}
}

// TestAnalysisReportLanguageOrdering 验证同目录语言按名称排序。
func TestAnalysisReportLanguageOrdering(t *testing.T) {
	root := t.TempDir()
	result := model.NewScanResult(root)
	dir := result.Directory(root)
	dir.Entry("Zig").RecordAggregate(model.RoleMainline, 1, model.LineStats{Code: 4})
	dir.Entry("Ada").RecordAggregate(model.RoleMainline, 1, model.LineStats{Code: 4})

	report := BuildAnalysisReport(root, result, 2, 8, false)

	adaIdx := strings.Index(report, "Ada")
	zigIdx := strings.Index(report, "Zig")
	if adaIdx < 0 || zigIdx < 0 || adaIdx > zigIdx {
		t.Fatalf("languages should appear alphabetically:\n%s", report)
	}
}

// TestDirectoryDisplayForms 验证目录展示的三种形态。
func TestDirectoryDisplayForms(t *testing.T) {
	base := t.TempDir()

	if got := formatDirectoryDisplay(base, base); got != "." {
		t.Fatalf("scan root should display as '.', got %q", got)
	}
	if got := formatDirectoryDisplay(filepath.Join(base, "sub"), base); got != "sub" {
		t.Fatalf("child should display relative, got %q", got)
	}
	if got := formatDirectoryDisplay("/somewhere/else", base); got != "/somewhere/else" {
		t.Fatalf("outside path should stay absolute, got %q", got)
	}
}

// TestPerformanceSummaryShape 验证性能摘要的固定文案与计数。
func TestPerformanceSummaryShape(t *testing.T) {
	metrics := newTestMetrics(5, 6)

	summary := BuildPerformanceSummary(metrics)

	for _, want := range []string{
		"Performance Summary:",
		"Total time:",
		"Files processed: 2 (",
		"Lines processed: 11 (",
		"files/sec",
		"lines/sec",
	} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary missing %q:\n%s", want, summary)
		}
	}
}

// TestBannerContainsNameAndVersion 验证启动横幅的拼装格式。
func TestBannerContainsNameAndVersion(t *testing.T) {
	if got := BuildBanner("mdkloc", "1.2.3"); got != "mdkloc v1.2.3" {
		t.Fatalf("unexpected banner: %q", got)
	}
}

// TestLanguagesListing 验证语言清单包含表头、后缀与文件名派发占位。
func TestLanguagesListing(t *testing.T) {
	listing := BuildLanguagesListing(languages.NewRegistry())

	for _, want := range []string{"Supported languages:", "LANGUAGE", "EXTENSIONS", "Rust", ".rs", "(by file name)"} {
		if !strings.Contains(listing, want) {
			t.Fatalf("listing missing %q:\n%s", want, listing)
		}
	}
}

// TestBuildDocumentRoundTrip 验证导出文档的内容与两种编码的可读性。
func TestBuildDocumentRoundTrip(t *testing.T) {
	root := t.TempDir()
	result := model.NewScanResult(root)
	result.Directory(root).Entry("Rust").RecordRoles([]model.RolePair{
		{Role: model.RoleMainline, Bucket: model.RoleBucket{Stats: model.LineStats{Code: 3, Blank: 1}, Lines: 4}},
		{Role: model.RoleTest, Bucket: model.RoleBucket{Stats: model.LineStats{Code: 8, Blank: 1}, Lines: 9}},
	})
	result.ErrorCount = 2

	doc := BuildDocument(result, newTestMetrics(13))

	if doc.Root != root {
		t.Fatalf("unexpected document root: %q", doc.Root)
	}
	if doc.Summary.FilesProcessed != 1 || doc.Summary.LinesProcessed != 13 {
		t.Fatalf("unexpected summary counters: %+v", doc.Summary)
	}
	if doc.Summary.Code != 11 || doc.Summary.Blank != 2 || doc.Summary.Errors != 2 {
		t.Fatalf("unexpected summary stats: %+v", doc.Summary)
	}
	if len(doc.Languages) != 1 || len(doc.Languages[0].Roles) != 2 {
		t.Fatalf("expected Rust with two role buckets: %+v", doc.Languages)
	}

	var jsonBuffer bytes.Buffer
	if err := WriteJSON(&jsonBuffer, doc); err != nil {
		t.Fatalf("write json failed: %v", err)
	}
	var fromJSON Document
	if err := json.Unmarshal(jsonBuffer.Bytes(), &fromJSON); err != nil {
		t.Fatalf("decode json failed: %v", err)
	}
	if fromJSON.Summary != doc.Summary {
		t.Fatalf("json summary mismatch: %+v vs %+v", fromJSON.Summary, doc.Summary)
	}

	var yamlBuffer bytes.Buffer
	if err := WriteYAML(&yamlBuffer, doc); err != nil {
		t.Fatalf("write yaml failed: %v", err)
	}
	var fromYAML Document
	if err := yaml.Unmarshal(yamlBuffer.Bytes(), &fromYAML); err != nil {
		t.Fatalf("decode yaml failed: %v", err)
	}
	if fromYAML.Root != doc.Root {
		t.Fatalf("yaml root mismatch: %q", fromYAML.Root)
	}
}

// TestWriteReportFileCreatesDirectories 验证导出文件时自动建目录。
func TestWriteReportFileCreatesDirectories(t *testing.T) {
	root := t.TempDir()
	result := model.NewScanResult(root)
	doc := BuildDocument(result, newTestMetrics())

	outputPath := filepath.Join(root, "nested", "out", "report.json")
	if err := WriteReportFile(outputPath, "json", doc); err != nil {
		t.Fatalf("write report file failed: %v", err)
	}

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("read exported file failed: %v", err)
	}
	var decoded Document
	if err := json.Unmarshal(content, &decoded); err != nil {
		t.Fatalf("exported file is not valid json: %v", err)
	}

	if err := WriteReportFile(outputPath, "xml", doc); err == nil {
		t.Fatalf("expected unsupported format error")
	} else if !strings.Contains(err.Error(), "unsupported report format") {
		t.Fatalf("unexpected error: %v", err)
	}
}
