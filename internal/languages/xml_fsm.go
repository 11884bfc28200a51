package languages

import (
	"io"
	"strings"

	"mdkloc/internal/model"
)

// XMLAnalyzer 处理 XML 族标记语言，覆盖 XML、HTML、SVG 与 XSL，
// 注释形式为可跨行的 <!-- -->。
type XMLAnalyzer struct {
	name       string
	extensions []string
}

// NewXMLAnalyzer 创建指定语言名与后缀的 XML 族计数器。
func NewXMLAnalyzer(name string, extensions ...string) *XMLAnalyzer {
	return &XMLAnalyzer{name: name, extensions: extensions}
}

// Name 返回语言名称。
func (a *XMLAnalyzer) Name() string {
	return a.name
}

// Extensions 返回该语言的后缀列表。
func (a *XMLAnalyzer) Extensions() []string {
	return a.extensions
}

// Analyze 使用块注释状态机对输入流逐行扫描。
func (a *XMLAnalyzer) Analyze(source io.Reader) (model.CountResult, error) {
	return countWithScanner(source, &xmlEngine{})
}

type xmlEngine struct {
	inComment bool
}

// scanLine 按分段处理一行文本。
// 同一行出现多段 <!-- --> 时每段各计一次注释事件。
func (e *xmlEngine) scanLine(line string, _ int64, stats *model.LineStats) {
	segment := line

	for {
		if e.inComment {
			end := strings.Index(segment, "-->")
			if end < 0 {
				stats.Comment++
				return
			}
			stats.Comment++
			segment = segment[end+3:]
			e.inComment = false
			if isBlank(segment) {
				return
			}
			continue
		}

		pos := strings.Index(segment, "<!--")
		if pos < 0 {
			if !isBlank(segment) {
				stats.Code++
			}
			return
		}

		if !isBlank(segment[:pos]) {
			stats.Code++
		}
		stats.Comment++
		segment = segment[pos+4:]

		end := strings.Index(segment, "-->")
		if end < 0 {
			e.inComment = true
			return
		}
		segment = segment[end+3:]
		if isBlank(segment) {
			return
		}
	}
}
