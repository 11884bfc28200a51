package languages

import (
	"io"
	"strings"

	"mdkloc/internal/model"
	"mdkloc/internal/reader"
)

// lineCounter 由各语言计数器实现。
// scanLine 只会收到非空白行，可以在一行上累计多个统计事件，
// 例如块注释在行中结束后又出现代码。
type lineCounter interface {
	scanLine(line string, number int64, stats *model.LineStats)
}

// resultFinisher 由需要在文件读取完毕后修正统计值的计数器实现。
// 典型场景是 DCL 探测失败时清空已累计的统计值。
type resultFinisher interface {
	finish(stats *model.LineStats)
}

// countWithScanner 驱动通用的逐行统计流程。
//
// 约束说明：
// - 空白行优先计入 Blank，即使当前处于块注释内部，计数器不会收到这类行
// - 行号从 1 开始，供 shebang 这类只看首行的规则使用
// - 读取完成后统一执行 Normalize，把多余的计数事件折算成 Overlap
func countWithScanner(source io.Reader, counter lineCounter) (model.CountResult, error) {
	var result model.CountResult

	total, err := reader.ForEachLine(source, func(line string) error {
		result.TotalLines++
		if strings.TrimSpace(line) == "" {
			result.Stats.Blank++
			return nil
		}
		counter.scanLine(line, result.TotalLines, &result.Stats)
		return nil
	})
	if err != nil {
		return result, err
	}
	result.TotalLines = total

	if finisher, ok := counter.(resultFinisher); ok {
		finisher.finish(&result.Stats)
	}

	model.Normalize(&result.Stats, result.TotalLines)
	return result, nil
}

// afterMarker 返回 segment 中 marker 之后的剩余文本。
// marker 不存在时返回空串与 false。
func afterMarker(segment string, marker string) (string, bool) {
	index := strings.Index(segment, marker)
	if index < 0 {
		return "", false
	}
	return segment[index+len(marker):], true
}

// lastSplitPart 返回按分隔符切分后的最后一段。
func lastSplitPart(text string, separator string) string {
	parts := strings.Split(text, separator)
	return parts[len(parts)-1]
}

// splitSecondPart 返回按分隔符全量切分后的第二段。
// 分隔符不存在或只切出一段时返回空串与 false。
func splitSecondPart(text string, separator string) (string, bool) {
	parts := strings.Split(text, separator)
	if len(parts) < 2 {
		return "", false
	}
	return parts[1], true
}

// isBlank 判断文本去除首尾空白后是否为空。
func isBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
