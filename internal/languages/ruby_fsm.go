package languages

import (
	"io"
	"strings"

	"mdkloc/internal/model"
)

// RubyAnalyzer 是 Ruby 专用计数器。
type RubyAnalyzer struct{}

// NewRubyAnalyzer 创建 Ruby 计数器。
func NewRubyAnalyzer() *RubyAnalyzer {
	return &RubyAnalyzer{}
}

// Name 返回语言名称。
func (a *RubyAnalyzer) Name() string {
	return "Ruby"
}

// Extensions 返回 Ruby 文件后缀。
func (a *RubyAnalyzer) Extensions() []string {
	return []string{".rb"}
}

// Analyze 使用 Ruby 专用状态机对输入流逐行扫描。
func (a *RubyAnalyzer) Analyze(source io.Reader) (model.CountResult, error) {
	return countWithScanner(source, &rubyEngine{})
}

// rubyEngine 维护 =begin/=end 注释块状态。
type rubyEngine struct {
	inBlockComment bool
}

// scanLine 处理一行 Ruby 文本。
// 块注释以 =begin 前缀开启，仅在整行恰为 =end 时关闭。
func (e *rubyEngine) scanLine(line string, number int64, stats *model.LineStats) {
	trimmed := strings.TrimSpace(line)

	if e.inBlockComment {
		stats.Comment++
		if trimmed == "=end" {
			e.inBlockComment = false
		}
		return
	}

	if strings.HasPrefix(trimmed, "=begin") {
		e.inBlockComment = true
		stats.Comment++
		return
	}

	if strings.HasPrefix(trimmed, "#") {
		if number == 1 && strings.HasPrefix(trimmed, "#!") {
			stats.Code++
		} else {
			stats.Comment++
		}
		return
	}

	stats.Code++
}
