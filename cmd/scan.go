package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mdkloc/internal/languages"
	"mdkloc/internal/model"
	"mdkloc/internal/report"
	"mdkloc/internal/scanner"
)

// scanOptions 存放根命令的全部可配置参数。
type scanOptions struct {
	ignore        []string
	verbose       bool
	maxEntries    int
	maxDepth      int
	nonRecursive  bool
	filespec      string
	roleBreakdown bool
	listLanguages bool
	workers       int
	format        string
	output        string
}

// runScan 执行一次完整的扫描与报告输出。
//
// 流程：参数校验、语言清单短路、路径存在性检查、扫描、
// 按格式渲染（table 走控制台报告，json/yaml 走结构化导出）。
func runScan(cmd *cobra.Command, registry *languages.Registry, options *scanOptions, version string, target string) error {
	format := strings.ToLower(strings.TrimSpace(options.format))
	if format != "table" && format != "json" && format != "yaml" {
		return errors.New("unsupported format, allowed values: table, json, yaml")
	}
	if options.workers <= 0 {
		return errors.New("workers must be greater than 0")
	}

	out := cmd.OutOrStdout()
	if options.listLanguages {
		_, err := fmt.Fprint(out, report.BuildLanguagesListing(registry))
		return err
	}

	if _, err := os.Stat(target); err != nil {
		return fmt.Errorf("Path does not exist: %s", target)
	}

	tableOutput := format == "table"
	if tableOutput {
		fmt.Fprintln(out, report.BuildBanner("mdkloc", version))
		fmt.Fprintln(out, "Starting source code analysis...")
	}

	var metrics *model.PerformanceMetrics
	if tableOutput {
		metrics = model.NewPerformanceMetrics()
	} else {
		// 结构化输出时抑制进度行，保证 stdout 只有 JSON/YAML 内容。
		metrics = model.NewPerformanceMetricsWithWriter(io.Discard, false)
	}

	service := scanner.NewService(registry, scanner.Options{
		Ignore:       options.ignore,
		Verbose:      options.verbose && tableOutput,
		MaxEntries:   options.maxEntries,
		MaxDepth:     options.maxDepth,
		NonRecursive: options.nonRecursive,
		Filespec:     options.filespec,
		Workers:      options.workers,
	})
	result, err := service.ScanPath(target, metrics)
	if err != nil {
		return err
	}

	if tableOutput {
		currentDir, wdErr := os.Getwd()
		if wdErr != nil {
			return fmt.Errorf("resolve working directory: %w", wdErr)
		}
		fmt.Fprint(out, report.BuildPerformanceSummary(metrics))
		fmt.Fprint(out, report.BuildAnalysisReport(currentDir, result,
			metrics.FilesProcessed(), metrics.LinesProcessed(), options.roleBreakdown))
		return nil
	}

	doc := report.BuildDocument(result, metrics)
	switch format {
	case "json":
		if err := report.WriteJSON(out, doc); err != nil {
			return err
		}
	case "yaml":
		if err := report.WriteYAML(out, doc); err != nil {
			return err
		}
	}

	outputPath := strings.TrimSpace(options.output)
	if outputPath != "" {
		if err := report.WriteReportFile(outputPath, format, doc); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "\nReport exported to %s\n", outputPath)
	}
	return nil
}
