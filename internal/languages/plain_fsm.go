package languages

import (
	"io"

	"mdkloc/internal/model"
)

// PlainAnalyzer 处理没有注释语法的格式，
// 覆盖 JSON、ReStructuredText 以及未知后缀的兜底统计。
type PlainAnalyzer struct {
	name       string
	extensions []string
}

// NewPlainAnalyzer 创建指定格式名与后缀的纯文本计数器。
func NewPlainAnalyzer(name string, extensions ...string) *PlainAnalyzer {
	return &PlainAnalyzer{name: name, extensions: extensions}
}

// Name 返回格式名称。
func (a *PlainAnalyzer) Name() string {
	return a.name
}

// Extensions 返回该格式的后缀列表。
func (a *PlainAnalyzer) Extensions() []string {
	return a.extensions
}

// Analyze 逐行扫描输入流，非空白行一律计为代码。
func (a *PlainAnalyzer) Analyze(source io.Reader) (model.CountResult, error) {
	return countWithScanner(source, plainEngine{})
}

type plainEngine struct{}

func (plainEngine) scanLine(_ string, _ int64, stats *model.LineStats) {
	stats.Code++
}
