package model

// CodeRole 表示一行代码在项目中的角色归属。
type CodeRole int

const (
	// RoleMainline 表示主线实现代码。
	RoleMainline CodeRole = iota
	// RoleTest 表示测试代码，包括内联测试模块和独立测试文件。
	RoleTest
)

// RoleCount 是角色种类总数，用于定长数组索引。
const RoleCount = 2

// AllRoles 按固定顺序列出全部角色，遍历聚合结果时使用。
var AllRoles = [RoleCount]CodeRole{RoleMainline, RoleTest}

// Index 返回角色在定长数组中的下标。
func (r CodeRole) Index() int {
	return int(r)
}

// String 返回角色的展示名称。
func (r CodeRole) String() string {
	switch r {
	case RoleTest:
		return "Test"
	default:
		return "Mainline"
	}
}

// FileRoleHint 是基于路径推断出的文件级角色提示。
//
// 注意：
// - TestFile 提示会让整个文件计入测试角色
// - Unknown 表示无法从路径判断，Rust 文件会继续做行级角色跟踪
// - 路径推断永远不会断言“一定是主线文件”
type FileRoleHint int

const (
	// RoleHintUnknown 表示路径没有提供角色信息。
	RoleHintUnknown FileRoleHint = iota
	// RoleHintTestFile 表示路径特征表明这是测试文件。
	RoleHintTestFile
)

// SeedRole 返回该提示对应的默认角色桶。
func (h FileRoleHint) SeedRole() CodeRole {
	if h == RoleHintTestFile {
		return RoleTest
	}
	return RoleMainline
}

// RoleBucket 表示单一角色的统计值与行数。
type RoleBucket struct {
	Stats LineStats `json:"stats" yaml:"stats"`
	Lines int64     `json:"lines" yaml:"lines"`
}

// RoleSplit 按角色拆分的单文件统计结果。
//
// 构造时会依据路径提示预置一个空桶：TestFile 提示预置测试桶，
// 其余情况预置主线桶。这样即使文件为空，聚合层也能把文件计入
// 正确的角色。
type RoleSplit struct {
	buckets [RoleCount]RoleBucket
	present [RoleCount]bool
}

// NewRoleSplit 创建按提示预置的角色拆分结果。
func NewRoleSplit(hint FileRoleHint) RoleSplit {
	var split RoleSplit
	split.present[hint.SeedRole().Index()] = true
	return split
}

// Record 将一段统计值记入指定角色。
func (s *RoleSplit) Record(role CodeRole, stats LineStats, lines int64) {
	index := role.Index()
	s.present[index] = true
	s.buckets[index].Stats.Add(stats)
	s.buckets[index].Lines += lines
}

// SetBucket 覆盖指定角色的统计值，用于归一化后的回填。
func (s *RoleSplit) SetBucket(role CodeRole, bucket RoleBucket) {
	index := role.Index()
	s.present[index] = true
	s.buckets[index] = bucket
}

// Bucket 返回指定角色的统计桶。
// 第二个返回值表示该角色是否在文件中出现过（含预置桶）。
func (s *RoleSplit) Bucket(role CodeRole) (RoleBucket, bool) {
	index := role.Index()
	return s.buckets[index], s.present[index]
}

// Pairs 按固定角色顺序返回全部出现过的角色及其统计值。
func (s *RoleSplit) Pairs() []RolePair {
	pairs := make([]RolePair, 0, RoleCount)
	for _, role := range AllRoles {
		if !s.present[role.Index()] {
			continue
		}
		pairs = append(pairs, RolePair{
			Role:   role,
			Bucket: s.buckets[role.Index()],
		})
	}
	return pairs
}

// Total 返回所有角色合并后的统计值。
func (s *RoleSplit) Total() LineStats {
	var total LineStats
	for _, role := range AllRoles {
		if s.present[role.Index()] {
			total.Add(s.buckets[role.Index()].Stats)
		}
	}
	return total
}

// TotalLines 返回所有角色合并后的物理行数。
func (s *RoleSplit) TotalLines() int64 {
	var total int64
	for _, role := range AllRoles {
		if s.present[role.Index()] {
			total += s.buckets[role.Index()].Lines
		}
	}
	return total
}

// RolePair 将角色与对应统计桶打包，便于聚合层遍历。
type RolePair struct {
	Role   CodeRole
	Bucket RoleBucket
}
