package languages

import (
	"io"
	"strings"

	"mdkloc/internal/model"
)

// AlgolAnalyzer 处理 ALGOL 60/68 源码的近似注释规则：
// COMMENT 起始的注释延续到同行或后续行的分号，
// co ... co 与 # 形式按整行注释处理。
type AlgolAnalyzer struct {
	extensions []string
}

// NewAlgolAnalyzer 创建 ALGOL 计数器。
func NewAlgolAnalyzer(extensions ...string) *AlgolAnalyzer {
	return &AlgolAnalyzer{extensions: extensions}
}

// Name 返回语言名称。
func (a *AlgolAnalyzer) Name() string {
	return "Algol"
}

// Extensions 返回该语言的后缀列表。
func (a *AlgolAnalyzer) Extensions() []string {
	return a.extensions
}

// Analyze 逐行扫描输入流，关键字匹配不区分大小写。
func (a *AlgolAnalyzer) Analyze(source io.Reader) (model.CountResult, error) {
	return countWithScanner(source, &algolEngine{})
}

type algolEngine struct {
	inCommentUntilSemicolon bool
}

func (e *algolEngine) scanLine(line string, _ int64, stats *model.LineStats) {
	lower := strings.ToLower(strings.TrimSpace(line))

	if e.inCommentUntilSemicolon {
		stats.Comment++
		if strings.Contains(lower, ";") {
			e.inCommentUntilSemicolon = false
		}
		return
	}

	if strings.HasPrefix(lower, "comment") {
		stats.Comment++
		if !strings.Contains(lower, ";") {
			e.inCommentUntilSemicolon = true
		}
		return
	}

	if strings.HasPrefix(lower, "co ") && strings.HasSuffix(lower, " co") {
		stats.Comment++
		return
	}

	if strings.HasPrefix(lower, "#") {
		stats.Comment++
		return
	}

	stats.Code++
}
