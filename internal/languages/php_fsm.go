package languages

import (
	"io"
	"strings"

	"mdkloc/internal/model"
)

// PHPAnalyzer 是 PHP 专用计数器。
// 同时支持 C 风格注释与 # 行注释。
type PHPAnalyzer struct{}

// NewPHPAnalyzer 创建 PHP 计数器。
func NewPHPAnalyzer() *PHPAnalyzer {
	return &PHPAnalyzer{}
}

// Name 返回语言名称。
func (a *PHPAnalyzer) Name() string {
	return "PHP"
}

// Extensions 返回 PHP 文件后缀。
func (a *PHPAnalyzer) Extensions() []string {
	return []string{".php"}
}

// Analyze 使用 PHP 专用状态机对输入流逐行扫描。
func (a *PHPAnalyzer) Analyze(source io.Reader) (model.CountResult, error) {
	return countWithScanner(source, &phpEngine{})
}

// phpEngine 维护跨行块注释状态。
type phpEngine struct {
	inBlockComment bool
}

// scanLine 处理一行 PHP 文本。
// 块注释结束标记之后以 // 或 # 开头的剩余文本仍按注释处理。
func (e *phpEngine) scanLine(line string, _ int64, stats *model.LineStats) {
	trimmed := strings.TrimSpace(line)

	if e.inBlockComment {
		stats.Comment++
		if strings.Contains(trimmed, "*/") {
			e.inBlockComment = false
			if after, ok := splitSecondPart(trimmed, "*/"); ok {
				countPHPCodeAfterClose(after, stats)
			}
		}
		return
	}

	if pos := strings.Index(trimmed, "/*"); pos >= 0 {
		if !isBlank(trimmed[:pos]) {
			stats.Code++
		}
		stats.Comment++

		end := strings.Index(trimmed[pos:], "*/")
		if end < 0 {
			e.inBlockComment = true
			return
		}
		countPHPCodeAfterClose(trimmed[pos+end+2:], stats)
		return
	}

	if strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "#") {
		stats.Comment++
		return
	}

	stats.Code++
}

// countPHPCodeAfterClose 在块注释关闭后补计代码事件。
func countPHPCodeAfterClose(after string, stats *model.LineStats) {
	afterTrimmed := strings.TrimLeft(after, " \t")
	if afterTrimmed == "" {
		return
	}
	if strings.HasPrefix(afterTrimmed, "//") || strings.HasPrefix(afterTrimmed, "#") {
		return
	}
	stats.Code++
}
