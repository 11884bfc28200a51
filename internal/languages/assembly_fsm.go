package languages

import (
	"io"
	"strings"

	"mdkloc/internal/model"
)

// AssemblyAnalyzer 处理汇编源码，识别 NASM/MASM 的 ; 注释、
// GAS 的 # 注释以及 // 行注释，只统计整行注释。
type AssemblyAnalyzer struct {
	extensions []string
}

// NewAssemblyAnalyzer 创建汇编计数器。
func NewAssemblyAnalyzer(extensions ...string) *AssemblyAnalyzer {
	return &AssemblyAnalyzer{extensions: extensions}
}

// Name 返回语言名称。
func (a *AssemblyAnalyzer) Name() string {
	return "Assembly"
}

// Extensions 返回该语言的后缀列表。
func (a *AssemblyAnalyzer) Extensions() []string {
	return a.extensions
}

// Analyze 逐行扫描输入流。
func (a *AssemblyAnalyzer) Analyze(source io.Reader) (model.CountResult, error) {
	return countWithScanner(source, assemblyEngine{})
}

type assemblyEngine struct{}

func (assemblyEngine) scanLine(line string, _ int64, stats *model.LineStats) {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, ";") || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "//") {
		stats.Comment++
		return
	}
	stats.Code++
}
