package languages

import (
	"io"
	"strings"

	"mdkloc/internal/model"
)

// MustacheAnalyzer 处理 Mustache 模板，
// 注释以 {{! 开始，在下一个 }} 处结束，可以跨行。
type MustacheAnalyzer struct {
	extensions []string
}

// NewMustacheAnalyzer 创建 Mustache 计数器。
func NewMustacheAnalyzer(extensions ...string) *MustacheAnalyzer {
	return &MustacheAnalyzer{extensions: extensions}
}

// Name 返回语言名称。
func (a *MustacheAnalyzer) Name() string {
	return "Mustache"
}

// Extensions 返回该语言的后缀列表。
func (a *MustacheAnalyzer) Extensions() []string {
	return a.extensions
}

// Analyze 使用块注释状态机对输入流逐行扫描。
func (a *MustacheAnalyzer) Analyze(source io.Reader) (model.CountResult, error) {
	return countWithScanner(source, &mustacheEngine{})
}

type mustacheEngine struct {
	inComment bool
}

// scanLine 处理一行模板文本。
func (e *mustacheEngine) scanLine(line string, _ int64, stats *model.LineStats) {
	trimmed := strings.TrimSpace(line)

	if e.inComment {
		stats.Comment++
		if after, ok := afterMarker(trimmed, "}}"); ok {
			e.inComment = false
			if !isBlank(after) {
				stats.Code++
			}
		}
		return
	}

	if pos := strings.Index(trimmed, "{{!"); pos >= 0 {
		if !isBlank(trimmed[:pos]) {
			stats.Code++
		}
		stats.Comment++

		after, ok := afterMarker(trimmed[pos:], "}}")
		if !ok {
			e.inComment = true
			return
		}
		if !isBlank(after) {
			stats.Code++
		}
		return
	}

	stats.Code++
}
