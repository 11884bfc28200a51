package languages

import (
	"io"
	"strings"

	"mdkloc/internal/model"
)

// JavaScriptAnalyzer 覆盖 JavaScript、TypeScript、JSX 和 TSX。
// 除 C 风格注释外还识别 JSX 模板中的 <!-- --> 注释。
type JavaScriptAnalyzer struct {
	name       string
	extensions []string
}

// NewJavaScriptAnalyzer 创建指定语言名与后缀的 JS 系计数器。
func NewJavaScriptAnalyzer(name string, extensions ...string) *JavaScriptAnalyzer {
	return &JavaScriptAnalyzer{name: name, extensions: extensions}
}

// Name 返回语言名称。
func (a *JavaScriptAnalyzer) Name() string {
	return a.name
}

// Extensions 返回该语言的后缀列表。
func (a *JavaScriptAnalyzer) Extensions() []string {
	return a.extensions
}

// Analyze 使用 JS 系状态机对输入流逐行扫描。
func (a *JavaScriptAnalyzer) Analyze(source io.Reader) (model.CountResult, error) {
	return countWithScanner(source, &javascriptEngine{})
}

// javascriptEngine 维护块注释与 JSX 注释状态。
type javascriptEngine struct {
	inBlockComment bool
	inJSXComment   bool
}

// scanLine 处理一行 JS 系文本。
//
// 注意：
// - 注释标记只在行首（去除缩进后）生效，代码之后的行内注释不计 comment
// - 块注释同行关闭后，剩余代码会补计 code，紧随的 // 除外
func (e *javascriptEngine) scanLine(line string, _ int64, stats *model.LineStats) {
	trimmed := strings.TrimSpace(line)

	if e.inBlockComment {
		stats.Comment++
		if strings.Contains(trimmed, "*/") {
			e.inBlockComment = false
			e.countCodeAfter(trimmed, "*/", true, stats)
		}
		return
	}

	if e.inJSXComment {
		stats.Comment++
		if strings.Contains(trimmed, "-->") {
			e.inJSXComment = false
			e.countCodeAfter(trimmed, "-->", false, stats)
		}
		return
	}

	if strings.HasPrefix(trimmed, "/*") {
		stats.Comment++
		if !strings.Contains(trimmed, "*/") {
			e.inBlockComment = true
		} else {
			e.countCodeAfter(trimmed, "*/", true, stats)
		}
		return
	}

	if strings.HasPrefix(trimmed, "<!--") {
		stats.Comment++
		if !strings.Contains(trimmed, "-->") {
			e.inJSXComment = true
		} else {
			e.countCodeAfter(trimmed, "-->", false, stats)
		}
		return
	}

	if strings.HasPrefix(trimmed, "//") {
		stats.Comment++
		return
	}

	stats.Code++
}

// countCodeAfter 在注释结束标记之后查找代码并补计 code。
// suppressLineComment 为 true 时，以 // 开头的剩余文本不计 code。
func (e *javascriptEngine) countCodeAfter(trimmed string, closer string, suppressLineComment bool, stats *model.LineStats) {
	after, ok := splitSecondPart(trimmed, closer)
	if !ok {
		return
	}
	afterTrimmed := strings.TrimSpace(after)
	if afterTrimmed == "" {
		return
	}
	if suppressLineComment && strings.HasPrefix(afterTrimmed, "//") {
		return
	}
	stats.Code++
}
