package model

// roleAggregate 是 LanguageEntry 内部的单角色累计值。
type roleAggregate struct {
	present bool
	files   int64
	stats   LineStats
}

// LanguageEntry 表示某目录下单一语言的聚合结果。
//
// 注意：
// - files 统计物理文件数，一个文件同时包含主线与测试代码时仍只计 1
// - 每个角色桶各自维护文件数，同一文件可以同时进入两个角色桶
type LanguageEntry struct {
	files int64
	stats LineStats
	roles [RoleCount]roleAggregate
}

// RecordAggregate 直接累加一组文件数与统计值到指定角色。
// 合并多个扫描分片的结果时使用。
func (e *LanguageEntry) RecordAggregate(role CodeRole, files int64, stats LineStats) {
	e.files += files
	e.stats.Add(stats)

	bucket := &e.roles[role.Index()]
	bucket.present = true
	bucket.files += files
	bucket.stats.Add(stats)
}

// RecordRoles 记录单个文件按角色拆分后的统计值。
// pairs 为空时不做任何事，文件数也不会增加。
func (e *LanguageEntry) RecordRoles(pairs []RolePair) {
	if len(pairs) == 0 {
		return
	}

	e.files++
	for _, pair := range pairs {
		e.stats.Add(pair.Bucket.Stats)

		bucket := &e.roles[pair.Role.Index()]
		bucket.present = true
		bucket.files++
		bucket.stats.Add(pair.Bucket.Stats)
	}
}

// RoleSummary 返回指定角色的文件数与统计值。
// 该角色从未出现时第三个返回值为 false。
func (e *LanguageEntry) RoleSummary(role CodeRole) (int64, LineStats, bool) {
	bucket := e.roles[role.Index()]
	if !bucket.present {
		return 0, LineStats{}, false
	}
	return bucket.files, bucket.stats, true
}

// Summary 返回全部角色合并后的文件数与统计值。
func (e *LanguageEntry) Summary() (int64, LineStats) {
	return e.files, e.stats
}

// TotalFiles 返回该语言的物理文件总数。
func (e *LanguageEntry) TotalFiles() int64 {
	return e.files
}

// DirectoryStats 表示单个目录内按语言聚合的结果。
// 键是语言展示名，目录本身的路径由上层的 ScanResult 维护。
type DirectoryStats struct {
	Languages map[string]*LanguageEntry
}

// NewDirectoryStats 创建空的目录聚合对象。
func NewDirectoryStats() *DirectoryStats {
	return &DirectoryStats{Languages: make(map[string]*LanguageEntry)}
}

// Entry 返回指定语言的聚合对象，不存在时自动创建。
func (d *DirectoryStats) Entry(language string) *LanguageEntry {
	entry, ok := d.Languages[language]
	if !ok {
		entry = &LanguageEntry{}
		d.Languages[language] = entry
	}
	return entry
}

// ScanResult 是一次完整扫描的聚合产物。
// Directories 以文件所在目录的绝对路径为键。
type ScanResult struct {
	Root        string
	Directories map[string]*DirectoryStats
	ErrorCount  int64
}

// NewScanResult 创建以 root 为扫描根的空结果。
func NewScanResult(root string) *ScanResult {
	return &ScanResult{
		Root:        root,
		Directories: make(map[string]*DirectoryStats),
	}
}

// Directory 返回指定目录的聚合对象，不存在时自动创建。
func (r *ScanResult) Directory(path string) *DirectoryStats {
	stats, ok := r.Directories[path]
	if !ok {
		stats = NewDirectoryStats()
		r.Directories[path] = stats
	}
	return stats
}
