package languages

import (
	"io"
	"path/filepath"
	"sort"
	"strings"

	"mdkloc/internal/model"
)

// Analyzer 定义单语言计数器接口。
// 每个实现独立维护自己的跨行状态，可以按文件并发使用。
type Analyzer interface {
	// Name 返回语言展示名称（例如 Rust、C/C++）。
	Name() string
	// Extensions 返回该语言支持的后缀列表（包含点号，如 .rs）。
	Extensions() []string
	// Analyze 执行流式扫描并输出归一化后的统计结果。
	Analyze(source io.Reader) (model.CountResult, error)
}

// RoleAnalyzer 在普通计数之外支持按代码角色拆分统计。
// 目前只有 Rust 计数器实现该接口。
type RoleAnalyzer interface {
	Analyzer
	// AnalyzeRoles 按主线/测试角色分桶统计，并返回文件总行数。
	AnalyzeRoles(source io.Reader, hint model.FileRoleHint) (model.RoleSplit, int64, error)
}

// LanguageDescriptor 用于对外展示语言及后缀信息。
type LanguageDescriptor struct {
	Name       string
	Extensions []string
}

// Registry 管理语言计数器注册与文件派发。
//
// 派发优先级：
// 1. 完整文件名匹配（Makefile、Dockerfile*、CMakeLists.txt）
// 2. Shell 点文件（.bashrc 等）
// 3. 复合后缀（.d.ts、.tfvars.json）
// 4. 单一后缀表
// 5. 未知后缀回落到通用计数器，无后缀文件不派发
type Registry struct {
	analyzers      []Analyzer
	analyzerByExt  map[string]Analyzer
	analyzerByName map[string]Analyzer
	generic        Analyzer
}

// NewRegistry 创建并注册所有内置语言计数器。
func NewRegistry() *Registry {
	dockerfile := NewHashAnalyzer("Dockerfile")
	makefile := NewHashAnalyzer("Makefile", ".mk", ".mak")
	cmake := NewHashAnalyzer("CMake", ".cmake")
	shell := NewShellAnalyzer("Shell", ".sh")

	analyzers := []Analyzer{
		NewRustAnalyzer(),
		NewCStyleAnalyzer("Go", ".go"),
		NewCStyleAnalyzer("C/C++", ".c", ".cpp", ".h", ".hpp"),
		NewCStyleAnalyzer("C#", ".cs"),
		NewCStyleAnalyzer("Java", ".java"),
		NewCStyleAnalyzer("Scala", ".scala", ".sbt"),
		NewCStyleAnalyzer("Protobuf", ".proto"),
		NewCStyleAnalyzer("Dart", ".dart"),
		NewPythonAnalyzer(),
		NewJavaScriptAnalyzer("JavaScript", ".js"),
		NewJavaScriptAnalyzer("TypeScript", ".ts"),
		NewJavaScriptAnalyzer("JSX", ".jsx"),
		NewJavaScriptAnalyzer("TSX", ".tsx"),
		NewPHPAnalyzer(),
		NewPerlAnalyzer(),
		NewRubyAnalyzer(),
		shell,
		NewShellAnalyzer("TCL", ".tcl"),
		NewPascalAnalyzer(),
		NewHashAnalyzer("YAML", ".yaml", ".yml"),
		NewHashAnalyzer("TOML", ".toml"),
		NewHashAnalyzer("MDHAVERS", ".braw"),
		makefile,
		dockerfile,
		cmake,
		NewINIAnalyzer(".ini", ".cfg", ".conf", ".properties", ".prop", ".tfvars"),
		NewHCLAnalyzer(".hcl", ".tf"),
		NewPowerShellAnalyzer(".ps1", ".psm1", ".psd1"),
		NewBatchAnalyzer(".bat", ".cmd"),
		NewPlainAnalyzer("JSON", ".json"),
		NewPlainAnalyzer("ReStructuredText", ".rst", ".rest"),
		NewVelocityAnalyzer(".vm", ".vtl"),
		NewMustacheAnalyzer(".mustache"),
		NewXMLAnalyzer("XML", ".xml", ".xsd"),
		NewXMLAnalyzer("HTML", ".html", ".htm", ".xhtml"),
		NewXMLAnalyzer("SVG", ".svg"),
		NewXMLAnalyzer("XSL", ".xsl", ".xslt"),
		NewAlgolAnalyzer(".alg", ".algol", ".a60", ".a68"),
		NewCOBOLAnalyzer(".cob", ".cbl", ".cobol", ".cpy"),
		NewFortranAnalyzer(".f", ".for", ".f77", ".f90", ".f95", ".f03", ".f08", ".f18"),
		NewAssemblyAnalyzer(".asm", ".s"),
		NewDCLAnalyzer(".com"),
		NewIPLANAnalyzer(".ipl"),
	}

	registry := &Registry{
		analyzers:      analyzers,
		analyzerByExt:  make(map[string]Analyzer),
		analyzerByName: make(map[string]Analyzer),
		generic:        NewPlainAnalyzer("Other"),
	}

	for _, analyzer := range analyzers {
		for _, ext := range analyzer.Extensions() {
			registry.analyzerByExt[strings.ToLower(ext)] = analyzer
		}
	}

	registry.analyzerByName["makefile"] = makefile
	registry.analyzerByName["gnumakefile"] = makefile
	registry.analyzerByName["dockerfile"] = dockerfile
	registry.analyzerByName["cmakelists.txt"] = cmake

	shellDotfiles := []string{
		".bashrc", ".bash_profile", ".profile", ".zshrc",
		".zprofile", ".zshenv", ".kshrc", ".cshrc",
	}
	for _, name := range shellDotfiles {
		registry.analyzerByName[name] = shell
	}

	return registry
}

// AnalyzerForFile 根据文件名与后缀派发计数器。
// 第二个返回值为 false 表示该文件不应统计（无后缀且不在文件名表中）。
func (r *Registry) AnalyzerForFile(path string) (Analyzer, bool) {
	name := strings.ToLower(filepath.Base(path))

	if strings.HasPrefix(name, "dockerfile") {
		return r.analyzerByName["dockerfile"], true
	}
	if analyzer, ok := r.analyzerByName[name]; ok {
		return analyzer, true
	}

	// 复合后缀优先于单一后缀，避免 .tfvars.json 被派发成 INI。
	if strings.HasSuffix(name, ".d.ts") {
		return r.analyzerByExt[".ts"], true
	}
	if strings.HasSuffix(name, ".tfvars.json") {
		return r.analyzerByExt[".json"], true
	}

	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" || ext == name {
		return nil, false
	}
	if analyzer, ok := r.analyzerByExt[ext]; ok {
		return analyzer, true
	}

	return r.generic, true
}

// Languages 返回已注册语言清单，按名称排序。
// 通用回落计数器不在清单内。
func (r *Registry) Languages() []LanguageDescriptor {
	result := make([]LanguageDescriptor, 0, len(r.analyzers))
	for _, analyzer := range r.analyzers {
		extensions := append([]string(nil), analyzer.Extensions()...)
		sort.Strings(extensions)
		result = append(result, LanguageDescriptor{
			Name:       analyzer.Name(),
			Extensions: extensions,
		})
	}

	sort.Slice(result, func(i int, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}
