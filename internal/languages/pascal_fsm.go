package languages

import (
	"io"
	"strings"

	"mdkloc/internal/model"
)

// PascalAnalyzer 是 Pascal 专用计数器。
// 同时跟踪 { } 与 (* *) 两类可嵌套的块注释。
type PascalAnalyzer struct{}

// NewPascalAnalyzer 创建 Pascal 计数器。
func NewPascalAnalyzer() *PascalAnalyzer {
	return &PascalAnalyzer{}
}

// Name 返回语言名称。
func (a *PascalAnalyzer) Name() string {
	return "Pascal"
}

// Extensions 返回 Pascal 文件后缀。
func (a *PascalAnalyzer) Extensions() []string {
	return []string{".pas"}
}

// Analyze 使用 Pascal 专用状态机对输入流逐行扫描。
func (a *PascalAnalyzer) Analyze(source io.Reader) (model.CountResult, error) {
	return countWithScanner(source, &pascalEngine{})
}

// pascalEngine 维护两类注释的独立嵌套深度。
type pascalEngine struct {
	braceLevel int
	parenLevel int
}

// scanLine 处理一行 Pascal 文本。
//
// 注意：
// - 两类注释各自维护嵌套深度，同一行按开启与关闭标记数量增减
// - 处于任一注释内的行整体计注释，深度归零后检查残余代码
// - { 分支先于 (* 分支判定
func (e *pascalEngine) scanLine(line string, _ int64, stats *model.LineStats) {
	trimmed := strings.TrimSpace(line)

	if e.braceLevel > 0 || e.parenLevel > 0 {
		stats.Comment++

		if e.braceLevel > 0 {
			e.braceLevel += strings.Count(trimmed, "{") - strings.Count(trimmed, "}")
			if e.braceLevel <= 0 {
				e.braceLevel = 0
				countPascalCodeAfter(trimmed, "}", stats)
			}
		}

		if e.parenLevel > 0 {
			e.parenLevel += strings.Count(trimmed, "(*") - strings.Count(trimmed, "*)")
			if e.parenLevel <= 0 {
				e.parenLevel = 0
				countPascalCodeAfter(trimmed, "*)", stats)
			}
		}
		return
	}

	if strings.HasPrefix(trimmed, "//") {
		stats.Comment++
		return
	}

	if strings.Contains(trimmed, "{") {
		stats.Comment++
		if !isBlank(strings.Split(trimmed, "{")[0]) {
			stats.Code++
		}

		e.braceLevel += strings.Count(trimmed, "{") - strings.Count(trimmed, "}")
		if e.braceLevel <= 0 {
			e.braceLevel = 0
			countPascalCodeAfter(trimmed, "}", stats)
		}
		return
	}

	if strings.Contains(trimmed, "(*") {
		stats.Comment++
		if !isBlank(strings.Split(trimmed, "(*")[0]) {
			stats.Code++
		}

		e.parenLevel += strings.Count(trimmed, "(*") - strings.Count(trimmed, "*)")
		if e.parenLevel <= 0 {
			e.parenLevel = 0
			countPascalCodeAfter(trimmed, "*)", stats)
		}
		return
	}

	stats.Code++
}

// countPascalCodeAfter 在注释闭合后检查最后一个结束标记之后的代码。
func countPascalCodeAfter(trimmed string, closer string, stats *model.LineStats) {
	after := strings.TrimSpace(lastSplitPart(trimmed, closer))
	if after != "" && !strings.HasPrefix(after, "//") {
		stats.Code++
	}
}
