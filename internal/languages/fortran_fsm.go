package languages

import (
	"io"
	"strings"
	"unicode/utf8"

	"mdkloc/internal/model"
)

// FortranAnalyzer 处理 Fortran 源码：
// 固定格式下首列为 C、c 或 * 的行是注释，
// 自由格式下 ! 在任意位置引出行内注释。
type FortranAnalyzer struct {
	extensions []string
}

// NewFortranAnalyzer 创建 Fortran 计数器。
func NewFortranAnalyzer(extensions ...string) *FortranAnalyzer {
	return &FortranAnalyzer{extensions: extensions}
}

// Name 返回语言名称。
func (a *FortranAnalyzer) Name() string {
	return "Fortran"
}

// Extensions 返回该语言的后缀列表。
func (a *FortranAnalyzer) Extensions() []string {
	return a.extensions
}

// Analyze 逐行扫描输入流。
func (a *FortranAnalyzer) Analyze(source io.Reader) (model.CountResult, error) {
	return countWithScanner(source, fortranEngine{})
}

type fortranEngine struct{}

// scanLine 处理一行文本。首列判断基于原始行，行内 ! 之前
// 存在代码时代码与注释各计一次。
func (fortranEngine) scanLine(line string, _ int64, stats *model.LineStats) {
	first, _ := utf8.DecodeRuneInString(line)
	if first == 'C' || first == 'c' || first == '*' {
		stats.Comment++
		return
	}

	trimmed := strings.TrimSpace(line)
	if pos := strings.Index(trimmed, "!"); pos >= 0 {
		if !isBlank(trimmed[:pos]) {
			stats.Code++
		}
		stats.Comment++
		return
	}

	stats.Code++
}
