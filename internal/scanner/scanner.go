// Package scanner 提供并发扫描调度能力。
// 该层负责目录遍历、忽略与过滤规则、任务分发、并发执行和结果聚合，
// 不负责各语言的语法解析细节。
package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/bmatcuk/doublestar"
	"golang.org/x/sync/errgroup"

	"mdkloc/internal/languages"
	"mdkloc/internal/model"
	"mdkloc/internal/roles"
)

// 故障注入目录名。仅当环境变量 MDKLOC_ENABLE_FAULTS=1 时生效，
// 用于在测试里模拟元数据读取、目录读取和条目遍历三类失败。
const (
	faultsEnvironmentKey = "MDKLOC_ENABLE_FAULTS"
	metadataFailTag      = "__mdkloc_metadata_fail__"
	readDirFailTag       = "__mdkloc_read_dir_fail__"
	entryIterFailTag     = "__mdkloc_entry_iter_fail__"
)

// 默认跳过的目录名，覆盖常见的构建产物与依赖目录。
var defaultIgnoredDirs = map[string]struct{}{
	"target":       {},
	"node_modules": {},
	"build":        {},
	"dist":         {},
	".git":         {},
	"venv":         {},
	"__pycache__":  {},
	"bin":          {},
	"obj":          {},
}

// Options 控制一次扫描的遍历与过滤行为。
type Options struct {
	// Ignore 是用户追加的忽略目录列表，按路径尾部整段匹配。
	Ignore []string
	// Verbose 为 true 时输出每个文件的统计明细。
	Verbose bool
	// MaxEntries 限制本次扫描遇到的文件总数，超出立即终止。
	MaxEntries int
	// MaxDepth 限制目录递归深度，超出的子树跳过并记一次错误。
	MaxDepth int
	// NonRecursive 为 true 时只扫描根目录第一层。
	NonRecursive bool
	// Filespec 是文件名或相对路径的 glob 过滤模式。
	Filespec string
	// Workers 是并发分析的 worker 数，非正值回落到 CPU 核数。
	Workers int
}

// Service 是扫描服务对象。
type Service struct {
	registry      *languages.Registry
	options       Options
	faultsEnabled bool
}

// scanTask 表示一个待分析文件任务。
type scanTask struct {
	path     string
	analyzer languages.Analyzer
	hint     model.FileRoleHint
}

// scanOutcome 表示单文件的分析产物。
// pairs 为空表示该文件没有可统计内容，不计入目录聚合。
type scanOutcome struct {
	path       string
	directory  string
	language   string
	totalLines int64
	pairs      []model.RolePair
}

// scanState 保存一次扫描的共享状态。
// entries 与 visited 只被遍历协程访问，errorCount 会被 worker 并发累加。
type scanState struct {
	root       string
	entries    int
	visited    map[string]struct{}
	errorCount atomic.Int64
}

// NewService 创建扫描服务。
func NewService(registry *languages.Registry, options Options) *Service {
	if options.Workers <= 0 {
		options.Workers = runtime.NumCPU()
	}
	return &Service{
		registry:      registry,
		options:       options,
		faultsEnabled: os.Getenv(faultsEnvironmentKey) == "1",
	}
}

// ScanPath 扫描目录或单文件并返回按目录聚合的统计结果。
//
// 约束说明：
// - 根路径先做符号链接解析，目录键都是解析后的绝对路径
// - 遍历按目录项名称顺序执行，文件计数与上限检查是确定性的
// - 超出 MaxEntries 会中断扫描并返回错误，已有的部分结果一并返回
func (s *Service) ScanPath(target string, metrics *model.PerformanceMetrics) (*model.ScanResult, error) {
	trimmed := strings.TrimSpace(target)
	if trimmed == "" {
		return nil, errors.New("scan path is empty")
	}

	if s.options.Filespec != "" {
		if _, err := doublestar.Match(s.options.Filespec, ""); err != nil {
			return nil, fmt.Errorf("Invalid filespec pattern '%s': %v", s.options.Filespec, err)
		}
	}

	absolute, err := filepath.Abs(trimmed)
	if err != nil {
		return nil, fmt.Errorf("resolve absolute path: %w", err)
	}
	root := absolute
	if resolved, resolveErr := filepath.EvalSymlinks(absolute); resolveErr == nil {
		root = resolved
	}

	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("stat path: %w", err)
	}

	result := model.NewScanResult(root)
	state := &scanState{
		root:    root,
		visited: make(map[string]struct{}),
	}

	tasks := make(chan scanTask, s.options.Workers*4)
	outcomes := make(chan scanOutcome, s.options.Workers*4)

	var group errgroup.Group
	group.Go(func() error {
		defer close(tasks)
		return s.walk(root, 0, state, tasks)
	})
	for i := 0; i < s.options.Workers; i++ {
		group.Go(func() error {
			s.runWorker(tasks, outcomes, state)
			return nil
		})
	}

	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		for outcome := range outcomes {
			s.record(result, outcome, metrics)
		}
	}()

	walkErr := group.Wait()
	close(outcomes)
	<-collectorDone

	result.ErrorCount = state.errorCount.Load()
	if walkErr != nil {
		return result, walkErr
	}
	return result, nil
}

// walk 递归遍历目录树，把符合条件的文件推入任务队列。
// 除条目上限外的所有失败都只输出到标准错误并累计错误数，不中断扫描。
func (s *Service) walk(path string, depth int, state *scanState, tasks chan<- scanTask) error {
	if depth > s.options.MaxDepth {
		fmt.Fprintf(os.Stderr, "Warning: Maximum directory depth (%d) reached at %s\n", s.options.MaxDepth, path)
		state.errorCount.Add(1)
		return nil
	}
	if s.options.NonRecursive && depth > 0 {
		return nil
	}
	if s.isIgnoredPath(path) {
		return nil
	}

	info, err := s.statPath(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading metadata for %s: %s\n", path, err)
		state.errorCount.Add(1)
		return nil
	}

	if info.Mode().IsRegular() {
		return s.enqueueFile(path, state, tasks)
	}
	if !info.IsDir() {
		return nil
	}

	dirEntries, err := s.readDirectory(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading directory %s: %s\n", path, err)
		state.errorCount.Add(1)
		return nil
	}
	if s.faultsEnabled && filepath.Base(path) == entryIterFailTag {
		fmt.Fprintf(os.Stderr, "Error reading entry in %s: %s\n", path, "simulated entry iteration failure")
		state.errorCount.Add(1)
	}

	for _, entry := range dirEntries {
		entryPath := filepath.Join(path, entry.Name())
		entryType := entry.Type()

		if entryType&fs.ModeSymlink != 0 {
			// 目录符号链接直接跳过以避免环，文件符号链接按解析目标
			// 处理，visited 集合保证同一目标只统计一次。
			linkTarget, statErr := os.Stat(entryPath)
			if statErr != nil || !linkTarget.Mode().IsRegular() {
				continue
			}
			if err := s.enqueueFile(entryPath, state, tasks); err != nil {
				return err
			}
			continue
		}

		if entryType.IsDir() {
			if s.options.NonRecursive {
				continue
			}
			if err := s.walk(entryPath, depth+1, state, tasks); err != nil {
				return err
			}
			continue
		}

		if entryType.IsRegular() {
			if err := s.enqueueFile(entryPath, state, tasks); err != nil {
				return err
			}
		}
	}

	return nil
}

// enqueueFile 对单个文件执行上限检查、过滤、去重和派发。
// 文件计数发生在所有过滤之前，被过滤的文件同样占用条目额度。
func (s *Service) enqueueFile(path string, state *scanState, tasks chan<- scanTask) error {
	state.entries++
	if state.entries > s.options.MaxEntries {
		return fmt.Errorf("Maximum entry limit reached (%d entries)", s.options.MaxEntries)
	}

	if !s.matchesFilespec(path, state.root) {
		return nil
	}

	canonical := path
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		canonical = resolved
	}
	if _, seen := state.visited[canonical]; seen {
		return nil
	}
	state.visited[canonical] = struct{}{}

	analyzer, ok := s.registry.AnalyzerForFile(path)
	if !ok {
		return nil
	}

	tasks <- scanTask{
		path:     path,
		analyzer: analyzer,
		hint:     roles.InferRoleFromPath(state.root, path),
	}
	return nil
}

// runWorker 执行真实的文件读取和计数分析。
func (s *Service) runWorker(tasks <-chan scanTask, outcomes chan<- scanOutcome, state *scanState) {
	for task := range tasks {
		outcome, err := s.analyzeFile(task)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error counting lines in %s: %s\n", task.path, err)
			state.errorCount.Add(1)
			continue
		}
		outcomes <- outcome
	}
}

// analyzeFile 打开文件并运行对应的计数器。
// 支持角色拆分的语言走 AnalyzeRoles，其余语言整体归入提示角色。
func (s *Service) analyzeFile(task scanTask) (scanOutcome, error) {
	outcome := scanOutcome{
		path:      task.path,
		directory: filepath.Dir(task.path),
		language:  task.analyzer.Name(),
	}

	file, err := os.Open(task.path)
	if err != nil {
		return outcome, err
	}

	if roleAware, ok := task.analyzer.(languages.RoleAnalyzer); ok {
		split, total, analyzeErr := roleAware.AnalyzeRoles(file, task.hint)
		closeErr := file.Close()
		if analyzeErr != nil {
			return outcome, analyzeErr
		}
		if closeErr != nil {
			return outcome, closeErr
		}
		outcome.totalLines = total
		outcome.pairs = split.Pairs()
		return outcome, nil
	}

	counted, analyzeErr := task.analyzer.Analyze(file)
	closeErr := file.Close()
	if analyzeErr != nil {
		return outcome, analyzeErr
	}
	if closeErr != nil {
		return outcome, closeErr
	}

	outcome.totalLines = counted.TotalLines
	if counted.HasContent() {
		outcome.pairs = []model.RolePair{{
			Role:   task.hint.SeedRole(),
			Bucket: model.RoleBucket{Stats: counted.Stats, Lines: counted.TotalLines},
		}}
	}
	return outcome, nil
}

// record 把单文件产物聚合进结果。只在收集协程里调用，无需加锁。
func (s *Service) record(result *model.ScanResult, outcome scanOutcome, metrics *model.PerformanceMetrics) {
	metrics.Update(outcome.totalLines)

	if s.options.Verbose {
		s.printVerbose(outcome)
	}

	if len(outcome.pairs) == 0 {
		return
	}
	result.Directory(outcome.directory).Entry(outcome.language).RecordRoles(outcome.pairs)
}

// printVerbose 输出单文件统计明细。
func (s *Service) printVerbose(outcome scanOutcome) {
	var total model.LineStats
	for _, pair := range outcome.pairs {
		total.Add(pair.Bucket.Stats)
	}

	fmt.Printf("File: %s\n", outcome.path)
	fmt.Printf("  Code lines: %d\n", total.Code)
	fmt.Printf("  Comment lines: %d\n", total.Comment)
	fmt.Printf("  Blank lines: %d\n", total.Blank)
	fmt.Printf("  Mixed code/comment lines: %d\n", total.Overlap)
	if len(outcome.pairs) > 1 {
		for _, pair := range outcome.pairs {
			fmt.Printf("  %s: code=%d comment=%d blank=%d mixed=%d\n",
				pair.Role, pair.Bucket.Stats.Code, pair.Bucket.Stats.Comment,
				pair.Bucket.Stats.Blank, pair.Bucket.Stats.Overlap)
		}
	}
	fmt.Println()
}

// statPath 读取路径元数据，必要时注入模拟失败。
func (s *Service) statPath(path string) (os.FileInfo, error) {
	if s.faultsEnabled && filepath.Base(path) == metadataFailTag {
		return nil, errors.New("simulated metadata failure")
	}
	return os.Stat(path)
}

// readDirectory 读取目录项，必要时注入模拟失败。
// os.ReadDir 返回按名称排序的目录项，保证遍历顺序稳定。
func (s *Service) readDirectory(path string) ([]os.DirEntry, error) {
	if s.faultsEnabled && filepath.Base(path) == readDirFailTag {
		return nil, errors.New("simulated directory read failure")
	}
	return os.ReadDir(path)
}

// isIgnoredPath 判断路径是否命中默认忽略目录或用户忽略列表。
// 用户忽略项按整段路径组件从尾部匹配，例如 "sub" 匹配 a/sub 但不匹配 a/subx。
func (s *Service) isIgnoredPath(path string) bool {
	if _, ok := defaultIgnoredDirs[filepath.Base(path)]; ok {
		return true
	}
	for _, suffix := range s.options.Ignore {
		if pathEndsWith(path, suffix) {
			return true
		}
	}
	return false
}

// matchesFilespec 按文件名或根目录相对路径匹配 glob 模式。
// 根目录之外的路径视为不匹配。
func (s *Service) matchesFilespec(path string, root string) bool {
	if s.options.Filespec == "" {
		return true
	}

	name := filepath.Base(path)
	if ok, err := doublestar.Match(s.options.Filespec, name); err == nil && ok {
		return true
	}

	relative, err := filepath.Rel(root, path)
	if err != nil || relative == ".." || strings.HasPrefix(relative, ".."+string(filepath.Separator)) {
		return false
	}
	if ok, err := doublestar.Match(s.options.Filespec, filepath.ToSlash(relative)); err == nil && ok {
		return true
	}
	return false
}

// pathEndsWith 判断路径是否以 suffix 的完整组件序列结尾。
func pathEndsWith(path string, suffix string) bool {
	cleaned := strings.Trim(filepath.ToSlash(suffix), "/")
	if cleaned == "" {
		return false
	}
	pathParts := strings.Split(filepath.ToSlash(path), "/")
	suffixParts := strings.Split(cleaned, "/")
	if len(suffixParts) > len(pathParts) {
		return false
	}

	tail := pathParts[len(pathParts)-len(suffixParts):]
	for i := range suffixParts {
		if tail[i] != suffixParts[i] {
			return false
		}
	}
	return true
}
