package languages

import (
	"io"
	"strings"

	"mdkloc/internal/model"
)

// HashAnalyzer 处理只有 # 行注释的格式，
// 覆盖 YAML、TOML、Makefile、Dockerfile、CMake 和 MDHAVERS。
type HashAnalyzer struct {
	name       string
	extensions []string
}

// NewHashAnalyzer 创建指定格式名与后缀的井号注释计数器。
func NewHashAnalyzer(name string, extensions ...string) *HashAnalyzer {
	return &HashAnalyzer{name: name, extensions: extensions}
}

// Name 返回格式名称。
func (a *HashAnalyzer) Name() string {
	return a.name
}

// Extensions 返回该格式的后缀列表。
func (a *HashAnalyzer) Extensions() []string {
	return a.extensions
}

// Analyze 逐行扫描输入流。
func (a *HashAnalyzer) Analyze(source io.Reader) (model.CountResult, error) {
	return countWithScanner(source, hashEngine{})
}

type hashEngine struct{}

// scanLine 只看行首字符。代码行尾部出现的 # 不改变归类。
func (hashEngine) scanLine(line string, _ int64, stats *model.LineStats) {
	if strings.HasPrefix(strings.TrimSpace(line), "#") {
		stats.Comment++
		return
	}
	stats.Code++
}

// INIAnalyzer 处理 INI 族配置文件，注释以 ; 或 # 开头。
type INIAnalyzer struct {
	extensions []string
}

// NewINIAnalyzer 创建 INI 计数器。
func NewINIAnalyzer(extensions ...string) *INIAnalyzer {
	return &INIAnalyzer{extensions: extensions}
}

// Name 返回语言名称。
func (a *INIAnalyzer) Name() string {
	return "INI"
}

// Extensions 返回该格式的后缀列表。
func (a *INIAnalyzer) Extensions() []string {
	return a.extensions
}

// Analyze 逐行扫描输入流。
func (a *INIAnalyzer) Analyze(source io.Reader) (model.CountResult, error) {
	return countWithScanner(source, iniEngine{})
}

type iniEngine struct{}

// scanLine 只看行首字符，键值后方的 ; 或 # 不改变归类。
func (iniEngine) scanLine(line string, _ int64, stats *model.LineStats) {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, ";") || strings.HasPrefix(trimmed, "#") {
		stats.Comment++
		return
	}
	stats.Code++
}
