package languages

import (
	"io"
	"strings"

	"mdkloc/internal/model"
)

// COBOLAnalyzer 处理 COBOL 源码：
// 固定格式下第 7 列为 * 或 / 的行是注释，
// 自由格式下以 *> 开头的行是注释，代码后方的 *> 作为行内注释。
type COBOLAnalyzer struct {
	extensions []string
}

// NewCOBOLAnalyzer 创建 COBOL 计数器。
func NewCOBOLAnalyzer(extensions ...string) *COBOLAnalyzer {
	return &COBOLAnalyzer{extensions: extensions}
}

// Name 返回语言名称。
func (a *COBOLAnalyzer) Name() string {
	return "COBOL"
}

// Extensions 返回该语言的后缀列表。
func (a *COBOLAnalyzer) Extensions() []string {
	return a.extensions
}

// Analyze 逐行扫描输入流。
func (a *COBOLAnalyzer) Analyze(source io.Reader) (model.CountResult, error) {
	return countWithScanner(source, cobolEngine{})
}

type cobolEngine struct{}

// scanLine 处理一行文本。
// 第 7 列按原始行的字符序号判断，不足 7 个字符的行按代码处理。
func (cobolEngine) scanLine(line string, _ int64, stats *model.LineStats) {
	trimmed := strings.TrimSpace(line)

	if strings.HasPrefix(trimmed, "*>") {
		stats.Comment++
		return
	}

	if column, ok := runeAt(line, 6); ok && (column == '*' || column == '/') {
		stats.Comment++
		return
	}

	if strings.Contains(trimmed, "*>") {
		stats.Code++
		stats.Comment++
		return
	}

	stats.Code++
}

// runeAt 返回文本中指定序号的字符，序号按字符而非字节计。
func runeAt(text string, index int) (rune, bool) {
	seen := 0
	for _, r := range text {
		if seen == index {
			return r, true
		}
		seen++
	}
	return 0, false
}
