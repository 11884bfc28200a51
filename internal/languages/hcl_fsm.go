package languages

import (
	"io"
	"strings"

	"mdkloc/internal/model"
)

// HCLAnalyzer 处理 HCL 与 Terraform 配置，
// 同时支持 //、# 行注释与 /* */ 块注释。
type HCLAnalyzer struct {
	extensions []string
}

// NewHCLAnalyzer 创建 HCL 计数器。
func NewHCLAnalyzer(extensions ...string) *HCLAnalyzer {
	return &HCLAnalyzer{extensions: extensions}
}

// Name 返回语言名称。
func (a *HCLAnalyzer) Name() string {
	return "HCL"
}

// Extensions 返回该语言的后缀列表。
func (a *HCLAnalyzer) Extensions() []string {
	return a.extensions
}

// Analyze 使用三标记状态机对输入流逐行扫描。
func (a *HCLAnalyzer) Analyze(source io.Reader) (model.CountResult, error) {
	return countWithScanner(source, &hclEngine{})
}

type hclEngine struct {
	inBlockComment bool
}

// scanLine 按分段处理一行文本。
//
// 注意：
// - 三种标记同行出现时由位置最靠前者生效
// - 块注释在行内关闭后，剩余文本重新进入循环
func (e *hclEngine) scanLine(line string, _ int64, stats *model.LineStats) {
	segment := line

	for {
		if e.inBlockComment {
			end := strings.Index(segment, "*/")
			if end < 0 {
				stats.Comment++
				return
			}
			stats.Comment++
			segment = segment[end+2:]
			e.inBlockComment = false
			if isBlank(segment) {
				return
			}
			continue
		}

		marker, pos := nextHCLMarker(segment)
		switch marker {
		case "":
			if !isBlank(segment) {
				stats.Code++
			}
			return

		case "//", "#":
			if !isBlank(segment[:pos]) {
				stats.Code++
			}
			stats.Comment++
			return

		default:
			if !isBlank(segment[:pos]) {
				stats.Code++
			}
			stats.Comment++
			segment = segment[pos+2:]

			end := strings.Index(segment, "*/")
			if end < 0 {
				e.inBlockComment = true
				return
			}
			segment = segment[end+2:]
			if isBlank(segment) {
				return
			}
		}
	}
}

// nextHCLMarker 返回分段中位置最靠前的注释标记。
// 找不到任何标记时返回空串。
func nextHCLMarker(segment string) (string, int) {
	marker, pos := "", -1
	for _, candidate := range []string{"//", "#", "/*"} {
		index := strings.Index(segment, candidate)
		if index < 0 {
			continue
		}
		if pos < 0 || index < pos {
			marker, pos = candidate, index
		}
	}
	return marker, pos
}
