package languages

import (
	"io"
	"strings"

	"mdkloc/internal/model"
)

// BatchAnalyzer 处理 Windows 批处理脚本，
// 注释为 REM(不区分大小写) 或 :: 开头的行。
type BatchAnalyzer struct {
	extensions []string
}

// NewBatchAnalyzer 创建批处理计数器。
func NewBatchAnalyzer(extensions ...string) *BatchAnalyzer {
	return &BatchAnalyzer{extensions: extensions}
}

// Name 返回语言名称。
func (a *BatchAnalyzer) Name() string {
	return "Batch"
}

// Extensions 返回该语言的后缀列表。
func (a *BatchAnalyzer) Extensions() []string {
	return a.extensions
}

// Analyze 逐行扫描输入流。
func (a *BatchAnalyzer) Analyze(source io.Reader) (model.CountResult, error) {
	return countWithScanner(source, batchEngine{})
}

type batchEngine struct{}

func (batchEngine) scanLine(line string, _ int64, stats *model.LineStats) {
	trimmed := strings.TrimSpace(line)
	upper := strings.ToUpper(trimmed)
	if strings.HasPrefix(upper, "REM ") || upper == "REM" || strings.HasPrefix(trimmed, "::") {
		stats.Comment++
		return
	}
	stats.Code++
}
