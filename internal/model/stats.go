// Package model 定义 mdkloc 的核心数据模型。
// 这些结构会被语言分析器、扫描器、输出层和命令层共同使用。
package model

// LineStats 表示一组行级统计值。
//
// 注意：
// - Code/Comment 可以在同一行同时出现（例如: x = 1 后跟行内注释）
// - Overlap 记录这种“代码与注释同行”的行数，由 Normalize 统一计算
// - Blank 仅用于去除首尾空白后为空的行，块注释内部的空行同样计入 Blank
type LineStats struct {
	Code    int64 `json:"code" yaml:"code"`
	Comment int64 `json:"comment" yaml:"comment"`
	Blank   int64 `json:"blank" yaml:"blank"`
	Overlap int64 `json:"overlap" yaml:"overlap"`
}

// Add 将另一个统计结果叠加到当前对象。
func (s *LineStats) Add(other LineStats) {
	s.Code += other.Code
	s.Comment += other.Comment
	s.Blank += other.Blank
	s.Overlap += other.Overlap
}

// Lines 返回统计值对应的物理行数。
// 恒等式：Code + Comment + Blank - Overlap == 总行数。
func (s LineStats) Lines() int64 {
	return s.Code + s.Comment + s.Blank - s.Overlap
}

// IsZero 判断统计值是否全部为零。
func (s LineStats) IsZero() bool {
	return s.Code == 0 && s.Comment == 0 && s.Blank == 0 && s.Overlap == 0
}

// Normalize 依据文件总行数校正统计值。
//
// 语言计数器允许同一行触发多个计数事件（例如块注释结束后同行出现代码），
// 因此原始累计值可能超过总行数。该函数把超出部分折算成 Overlap：
// - 累计值超过总行数时，先从 Blank 中扣减，剩余差额记入 Overlap
// - 累计值不足总行数且不为零时，缺口补入 Blank
// - totalLines 为 0 时不做任何修改
// 函数是幂等的，重复调用不会改变结果。
func Normalize(stats *LineStats, totalLines int64) {
	if totalLines == 0 {
		return
	}

	sum := stats.Code + stats.Comment + stats.Blank
	switch {
	case sum > totalLines:
		overlap := sum - totalLines
		reduce := overlap
		if stats.Blank < reduce {
			reduce = stats.Blank
		}
		stats.Blank -= reduce
		overlap -= reduce
		stats.Overlap = overlap
	case sum < totalLines && sum > 0:
		stats.Blank += totalLines - sum
		stats.Overlap = 0
	default:
		stats.Overlap = 0
	}
}

// CountResult 表示单文件行数统计的完整产物。
// TotalLines 由读取层统计，Stats 已经过 Normalize 校正。
type CountResult struct {
	Stats      LineStats `json:"stats" yaml:"stats"`
	TotalLines int64     `json:"total_lines" yaml:"total_lines"`
}

// HasContent 判断文件是否应计入结果。
// 空文件（零行）视为有效结果；读取后没有任何统计值的非空文件
// （例如 DCL 探测失败的 .com 文件）则会被过滤。
func (r CountResult) HasContent() bool {
	return r.Stats.Code+r.Stats.Comment+r.Stats.Blank > 0 || r.TotalLines == 0
}
