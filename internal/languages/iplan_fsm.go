package languages

import (
	"io"
	"strings"

	"mdkloc/internal/model"
)

// IPLANAnalyzer 处理 PSS/E IPLAN 程序，
// 支持 ! 行注释与 /* */ 块注释。
type IPLANAnalyzer struct {
	extensions []string
}

// NewIPLANAnalyzer 创建 IPLAN 计数器。
func NewIPLANAnalyzer(extensions ...string) *IPLANAnalyzer {
	return &IPLANAnalyzer{extensions: extensions}
}

// Name 返回语言名称。
func (a *IPLANAnalyzer) Name() string {
	return "IPLAN"
}

// Extensions 返回该语言的后缀列表。
func (a *IPLANAnalyzer) Extensions() []string {
	return a.extensions
}

// Analyze 使用块注释状态机对输入流逐行扫描。
func (a *IPLANAnalyzer) Analyze(source io.Reader) (model.CountResult, error) {
	return countWithScanner(source, &iplanEngine{})
}

type iplanEngine struct {
	inBlockComment bool
}

// scanLine 处理一行文本。
// 块注释关闭后若剩余文本以 ! 开头则归为注释延续。
func (e *iplanEngine) scanLine(line string, _ int64, stats *model.LineStats) {
	trimmed := strings.TrimSpace(line)

	if e.inBlockComment {
		stats.Comment++
		if after, ok := afterMarker(trimmed, "*/"); ok {
			e.inBlockComment = false
			countIPLANCodeAfterClose(after, stats)
		}
		return
	}

	if strings.HasPrefix(trimmed, "!") {
		stats.Comment++
		return
	}

	if pos := strings.Index(trimmed, "/*"); pos >= 0 {
		if !isBlank(trimmed[:pos]) {
			stats.Code++
		}
		stats.Comment++

		after, ok := afterMarker(trimmed[pos:], "*/")
		if !ok {
			e.inBlockComment = true
			return
		}
		countIPLANCodeAfterClose(after, stats)
		return
	}

	stats.Code++
}

// countIPLANCodeAfterClose 统计块注释关闭标记之后的代码。
func countIPLANCodeAfterClose(after string, stats *model.LineStats) {
	if isBlank(after) {
		return
	}
	if strings.HasPrefix(strings.TrimLeft(after, " \t"), "!") {
		return
	}
	stats.Code++
}
