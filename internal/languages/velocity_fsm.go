package languages

import (
	"io"
	"strings"

	"mdkloc/internal/model"
)

// VelocityAnalyzer 处理 Velocity 模板，
// 支持 ## 行注释与 #* *# 块注释。
type VelocityAnalyzer struct {
	extensions []string
}

// NewVelocityAnalyzer 创建 Velocity 计数器。
func NewVelocityAnalyzer(extensions ...string) *VelocityAnalyzer {
	return &VelocityAnalyzer{extensions: extensions}
}

// Name 返回语言名称。
func (a *VelocityAnalyzer) Name() string {
	return "Velocity"
}

// Extensions 返回该语言的后缀列表。
func (a *VelocityAnalyzer) Extensions() []string {
	return a.extensions
}

// Analyze 使用块注释状态机对输入流逐行扫描。
func (a *VelocityAnalyzer) Analyze(source io.Reader) (model.CountResult, error) {
	return countWithScanner(source, &velocityEngine{})
}

type velocityEngine struct {
	inBlockComment bool
}

// scanLine 处理一行模板文本。
// 块注释关闭后若剩余文本以 ## 开头则视作注释延续，不再计代码。
func (e *velocityEngine) scanLine(line string, _ int64, stats *model.LineStats) {
	trimmed := strings.TrimSpace(line)

	if e.inBlockComment {
		stats.Comment++
		if after, ok := afterMarker(trimmed, "*#"); ok {
			e.inBlockComment = false
			countVelocityCodeAfterClose(after, stats)
		}
		return
	}

	if strings.HasPrefix(trimmed, "##") {
		stats.Comment++
		return
	}

	if pos := strings.Index(trimmed, "#*"); pos >= 0 {
		if !isBlank(trimmed[:pos]) {
			stats.Code++
		}
		stats.Comment++

		after, ok := afterMarker(trimmed[pos:], "*#")
		if !ok {
			e.inBlockComment = true
			return
		}
		countVelocityCodeAfterClose(after, stats)
		return
	}

	stats.Code++
}

// countVelocityCodeAfterClose 统计块注释关闭标记之后的代码。
func countVelocityCodeAfterClose(after string, stats *model.LineStats) {
	if isBlank(after) {
		return
	}
	if strings.HasPrefix(strings.TrimLeft(after, " \t"), "##") {
		return
	}
	stats.Code++
}
