package languages

import (
	"io"
	"strings"

	"mdkloc/internal/model"
)

// ShellAnalyzer 处理以 # 为行注释且首行 shebang 算代码的语言，
// 覆盖 Shell 与 TCL。
type ShellAnalyzer struct {
	name       string
	extensions []string
}

// NewShellAnalyzer 创建指定语言名与后缀的 Shell 风格计数器。
func NewShellAnalyzer(name string, extensions ...string) *ShellAnalyzer {
	return &ShellAnalyzer{name: name, extensions: extensions}
}

// Name 返回语言名称。
func (a *ShellAnalyzer) Name() string {
	return a.name
}

// Extensions 返回该语言的后缀列表。
func (a *ShellAnalyzer) Extensions() []string {
	return a.extensions
}

// Analyze 使用 Shell 风格状态机对输入流逐行扫描。
func (a *ShellAnalyzer) Analyze(source io.Reader) (model.CountResult, error) {
	return countWithScanner(source, &shellEngine{})
}

// shellEngine 无跨行状态，仅依赖行号识别 shebang。
type shellEngine struct{}

// scanLine 处理一行 Shell 或 TCL 文本。
func (e *shellEngine) scanLine(line string, number int64, stats *model.LineStats) {
	trimmed := strings.TrimSpace(line)

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
