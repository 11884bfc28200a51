package languages

import (
	"io"
	"strings"

	"mdkloc/internal/model"
)

// DCLAnalyzer 处理 OpenVMS DCL 脚本。.com 后缀同时被其它生态使用，
// 因此按首个非空白行是否以 $ 或 ! 开头判断内容是否为 DCL，
// 判定失败时整个文件不计入统计。
type DCLAnalyzer struct {
	extensions []string
}

// NewDCLAnalyzer 创建 DCL 计数器。
func NewDCLAnalyzer(extensions ...string) *DCLAnalyzer {
	return &DCLAnalyzer{extensions: extensions}
}

// Name 返回语言名称。
func (a *DCLAnalyzer) Name() string {
	return "DCL"
}

// Extensions 返回该语言的后缀列表。
func (a *DCLAnalyzer) Extensions() []string {
	return a.extensions
}

// Analyze 逐行扫描输入流。
// 探测为非 DCL 内容时返回全零统计，调用方据此跳过该文件。
func (a *DCLAnalyzer) Analyze(source io.Reader) (model.CountResult, error) {
	return countWithScanner(source, &dclEngine{})
}

type dclEngine struct {
	decided bool
	isDCL   bool
}

func (e *dclEngine) scanLine(line string, _ int64, stats *model.LineStats) {
	trimmed := strings.TrimSpace(line)

	if !e.decided {
		e.decided = true
		e.isDCL = strings.HasPrefix(trimmed, "$") || strings.HasPrefix(trimmed, "!")
	}
	if !e.isDCL {
		return
	}

	if strings.HasPrefix(trimmed, "$!") || strings.HasPrefix(trimmed, "!") {
		stats.Comment++
		return
	}
	stats.Code++
}

// finish 在探测结果为非 DCL 时清空统计值。
// 全空白文件不触发探测，保留空白行计数。
func (e *dclEngine) finish(stats *model.LineStats) {
	if e.decided && !e.isDCL {
		*stats = model.LineStats{}
	}
}
