package languages

import (
	"io"
	"strings"

	"mdkloc/internal/model"
)

// CStyleAnalyzer 处理使用 // 行注释与 /* */ 块注释的语言，
// 覆盖 Go、C/C++、C#、Java、Scala、Protobuf 和 Dart。
type CStyleAnalyzer struct {
	name       string
	extensions []string
}

// NewCStyleAnalyzer 创建指定语言名与后缀的 C 风格计数器。
func NewCStyleAnalyzer(name string, extensions ...string) *CStyleAnalyzer {
	return &CStyleAnalyzer{name: name, extensions: extensions}
}

// Name 返回语言名称。
func (a *CStyleAnalyzer) Name() string {
	return a.name
}

// Extensions 返回该语言的后缀列表。
func (a *CStyleAnalyzer) Extensions() []string {
	return a.extensions
}

// Analyze 使用 C 风格状态机对输入流逐行扫描。
func (a *CStyleAnalyzer) Analyze(source io.Reader) (model.CountResult, error) {
	return countWithScanner(source, &cStyleEngine{})
}

// cStyleEngine 维护跨行的块注释状态。
type cStyleEngine struct {
	inBlockComment bool
}

// scanLine 按分段处理一行文本。
//
// 注意：
// - 块注释在行内关闭后，剩余文本重新进入循环，可能再次累计事件
// - 同一行出现 // 与 /* 时，位置靠前者生效
// - 事件累计值可能超过行数，由 Normalize 统一折算
func (e *cStyleEngine) scanLine(line string, _ int64, stats *model.LineStats) {
	segment := line

	for {
		if e.inBlockComment {
			end := strings.Index(segment, "*/")
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

		lineIdx := strings.Index(segment, "//")
		blockIdx := strings.Index(segment, "/*")

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

			end := strings.Index(segment, "*/")
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
