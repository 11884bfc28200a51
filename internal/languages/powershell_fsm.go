package languages

import (
	"io"
	"strings"

	"mdkloc/internal/model"
)

// PowerShellAnalyzer 处理 PowerShell 脚本，
// 支持 # 行注释与 <# #> 块注释。
type PowerShellAnalyzer struct {
	extensions []string
}

// NewPowerShellAnalyzer 创建 PowerShell 计数器。
func NewPowerShellAnalyzer(extensions ...string) *PowerShellAnalyzer {
	return &PowerShellAnalyzer{extensions: extensions}
}

// Name 返回语言名称。
func (a *PowerShellAnalyzer) Name() string {
	return "PowerShell"
}

// Extensions 返回该语言的后缀列表。
func (a *PowerShellAnalyzer) Extensions() []string {
	return a.extensions
}

// Analyze 使用块注释状态机对输入流逐行扫描。
func (a *PowerShellAnalyzer) Analyze(source io.Reader) (model.CountResult, error) {
	return countWithScanner(source, &powerShellEngine{})
}

type powerShellEngine struct {
	inBlockComment bool
}

// scanLine 按分段处理一行文本。
// 行内同时出现 # 与 <# 时，位置靠前者生效；
// <# 自身包含的 # 不会被当作行注释。
func (e *powerShellEngine) scanLine(line string, _ int64, stats *model.LineStats) {
	segment := line

	for {
		if e.inBlockComment {
			end := strings.Index(segment, "#>")
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

		lineIdx := strings.Index(segment, "#")
		blockIdx := strings.Index(segment, "<#")

		switch {
		case lineIdx < 0 && blockIdx < 0:
			if !isBlank(segment) {
				stats.Code++
			}
			return

		case blockIdx < 0 || (lineIdx >= 0 && lineIdx < blockIdx):
			if !isBlank(segment[:lineIdx]) {
				stats.Code++
			}
			stats.Comment++
			return

		default:
			if !isBlank(segment[:blockIdx]) {
				stats.Code++
			}
			stats.Comment++
			segment = segment[blockIdx+2:]

			end := strings.Index(segment, "#>")
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
