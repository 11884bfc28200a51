package languages

import (
	"io"
	"strings"

	"mdkloc/internal/model"
)

// PythonAnalyzer 是 Python 专用计数器。
type PythonAnalyzer struct{}

// NewPythonAnalyzer 创建 Python 计数器。
func NewPythonAnalyzer() *PythonAnalyzer {
	return &PythonAnalyzer{}
}

// Name 返回语言名称。
func (a *PythonAnalyzer) Name() string {
	return "Python"
}

// Extensions 返回 Python 文件后缀。
func (a *PythonAnalyzer) Extensions() []string {
	return []string{".py"}
}

// Analyze 使用 Python 专用状态机对输入流逐行扫描。
func (a *PythonAnalyzer) Analyze(source io.Reader) (model.CountResult, error) {
	return countWithScanner(source, &pythonEngine{})
}

// pythonEngine 维护 docstring 与续行状态。
type pythonEngine struct {
	inDocstring   bool
	quote         string
	prevContinued bool
}

// scanLine 处理一行 Python 文本。
//
// 注意：
// - 三引号串整体按注释统计（docstring 约定），结束行之后的代码会补计 code
// - 上一个代码行以反斜杠结尾时，行首三引号按普通代码处理
// - 续行标记只在普通代码行上更新
func (e *pythonEngine) scanLine(line string, _ int64, stats *model.LineStats) {
	trimmed := strings.TrimSpace(line)

	if e.inDocstring {
		stats.Comment++
		if strings.Contains(trimmed, e.quote) {
			e.inDocstring = false
			if after, ok := splitSecondPart(trimmed, e.quote); ok {
				afterTrimmed := strings.TrimSpace(after)
				if afterTrimmed != "" && !strings.HasPrefix(afterTrimmed, "#") {
					stats.Code++
				}
			}
		}
		return
	}

	if strings.HasPrefix(trimmed, "#") {
		stats.Comment++
		return
	}

	if (strings.HasPrefix(trimmed, "'''") || strings.HasPrefix(trimmed, `"""`)) &&
		!e.prevContinued {
		quote := trimmed[:3]
		if len(trimmed) >= 6 && strings.Contains(trimmed[3:], quote) {
			stats.Comment++
			parts := strings.Split(trimmed, quote)
			if len(parts) > 2 {
				afterTrimmed := strings.TrimSpace(parts[2])
				if afterTrimmed != "" && !strings.HasPrefix(afterTrimmed, "#") {
					stats.Code++
				}
			}
		} else {
			e.inDocstring = true
			e.quote = quote
			stats.Comment++
		}
		return
	}

	e.prevContinued = strings.HasSuffix(trimmed, "\\")
	stats.Code++
}
