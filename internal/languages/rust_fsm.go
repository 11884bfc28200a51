package languages

import (
	"io"
	"strings"

	"mdkloc/internal/model"
	"mdkloc/internal/reader"
	"mdkloc/internal/roles"
)

// RustAnalyzer 是 Rust 专用计数器。
// 除常规统计外还实现 RoleAnalyzer，把内联测试模块拆分到测试角色。
type RustAnalyzer struct{}

// NewRustAnalyzer 创建 Rust 计数器。
func NewRustAnalyzer() *RustAnalyzer {
	return &RustAnalyzer{}
}

// Name 返回语言名称。
func (a *RustAnalyzer) Name() string {
	return "Rust"
}

// Extensions 返回 Rust 文件后缀。
func (a *RustAnalyzer) Extensions() []string {
	return []string{".rs"}
}

// Analyze 对输入流做常规统计。
func (a *RustAnalyzer) Analyze(source io.Reader) (model.CountResult, error) {
	return countWithScanner(source, &rustEngine{})
}

// AnalyzeRoles 按主线/测试角色分桶统计。
//
// 角色跟踪器与行计数器共用同一遍扫描：跟踪器决定每行的归属桶，
// 计数器把统计事件累计到该桶。各桶独立做 Normalize，
// 保证桶内恒等式成立，且各桶行数之和等于文件总行数。
func (a *RustAnalyzer) AnalyzeRoles(source io.Reader, hint model.FileRoleHint) (model.RoleSplit, int64, error) {
	tracker := roles.NewTracker(hint)
	engine := &rustEngine{}

	var rawStats [model.RoleCount]model.LineStats
	var roleLines [model.RoleCount]int64
	var seen [model.RoleCount]bool
	var lineNumber int64

	total, err := reader.ForEachLine(source, func(line string) error {
		role := tracker.ScanLine(line)
		index := role.Index()
		seen[index] = true
		roleLines[index]++
		lineNumber++

		if strings.TrimSpace(line) == "" {
			rawStats[index].Blank++
			return nil
		}
		engine.scanLine(line, lineNumber, &rawStats[index])
		return nil
	})
	if err != nil {
		return model.RoleSplit{}, 0, err
	}

	split := model.NewRoleSplit(hint)
	for _, role := range model.AllRoles {
		index := role.Index()
		if !seen[index] {
			continue
		}
		stats := rawStats[index]
		model.Normalize(&stats, roleLines[index])
		split.SetBucket(role, model.RoleBucket{Stats: stats, Lines: roleLines[index]})
	}

	return split, total, nil
}

// rustEngine 维护 Rust 跨行块注释状态。
type rustEngine struct {
	inBlockComment bool
}

// scanLine 按前缀规则处理一行文本。
//
// 注意：
// - 行内尾随的 // 注释不计 comment，整行视为代码
// - 属性行（#[ 前缀）直接视为代码
// - /* 出现在行内任意位置都会开启注释事件
func (e *rustEngine) scanLine(line string, _ int64, stats *model.LineStats) {
	trimmed := strings.TrimSpace(line)

	if e.inBlockComment {
		stats.Comment++
		if strings.Contains(trimmed, "*/") {
			e.inBlockComment = false
			if after, ok := splitSecondPart(trimmed, "*/"); ok {
				afterTrimmed := strings.TrimSpace(after)
				if afterTrimmed != "" && !strings.HasPrefix(afterTrimmed, "//") {
					stats.Code++
				}
			}
		}
		return
	}

	if strings.HasPrefix(trimmed, "#[") {
		stats.Code++
		return
	}

	if strings.Contains(trimmed, "/*") {
		stats.Comment++
		before := strings.Split(trimmed, "/*")[0]
		if strings.TrimSpace(before) != "" {
			stats.Code++
		}
		if !strings.Contains(trimmed, "*/") {
			e.inBlockComment = true
		} else if after, ok := splitSecondPart(trimmed, "*/"); ok {
			afterTrimmed := strings.TrimSpace(after)
			if afterTrimmed != "" && !strings.HasPrefix(afterTrimmed, "//") {
				stats.Code++
			}
		}
		return
	}

	if strings.HasPrefix(trimmed, "///") || strings.HasPrefix(trimmed, "//!") ||
		strings.HasPrefix(trimmed, "//") {
		stats.Comment++
		return
	}

	stats.Code++
}
