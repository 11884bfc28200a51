package languages

import (
	"io"
	"strings"

	"mdkloc/internal/model"
)

// PerlAnalyzer 是 Perl 专用计数器，识别 POD 文档块。
type PerlAnalyzer struct{}

// NewPerlAnalyzer 创建 Perl 计数器。
func NewPerlAnalyzer() *PerlAnalyzer {
	return &PerlAnalyzer{}
}

// Name 返回语言名称。
func (a *PerlAnalyzer) Name() string {
	return "Perl"
}

// Extensions 返回 Perl 文件后缀。
func (a *PerlAnalyzer) Extensions() []string {
	return []string{".pl", ".pm", ".t"}
}

// Analyze 使用 Perl 专用状态机对输入流逐行扫描。
func (a *PerlAnalyzer) Analyze(source io.Reader) (model.CountResult, error) {
	return countWithScanner(source, &perlEngine{})
}

// perlEngine 维护 POD 块状态。
type perlEngine struct {
	inPOD bool
}

// scanLine 处理一行 Perl 文本。
//
// 注意：
// - =pod 与 =head 开启 POD 块，=cut 关闭，边界行本身计注释
// - 首行的 #! 按代码统计，其余位置的 # 一律是注释
func (e *perlEngine) scanLine(line string, number int64, stats *model.LineStats) {
	trimmed := strings.TrimSpace(line)

	if strings.HasPrefix(trimmed, "=pod") || strings.HasPrefix(trimmed, "=head") {
		e.inPOD = true
		stats.Comment++
		return
	}
	if strings.HasPrefix(trimmed, "=cut") {
		e.inPOD = false
		stats.Comment++
		return
	}
	if e.inPOD {
		stats.Comment++
		return
	}

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
