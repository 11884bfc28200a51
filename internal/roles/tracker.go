package roles

import (
	"strings"

	"mdkloc/internal/model"
)

// stringMode 表示字面量扫描状态。
type stringMode int

const (
	// stringModeNormal 表示处于普通双引号字符串中。
	stringModeNormal stringMode = iota
	// stringModeRaw 表示处于原始字符串中，关闭时需要匹配 hash 数量。
	stringModeRaw
)

// literalState 记录跨行的字符串字面量状态。
type literalState struct {
	mode   stringMode
	hashes int
}

// braceScanState 扫描一行 Rust 代码中的花括号与分号，
// 并忽略字符串、字符字面量与注释内部的内容。
type braceScanState struct {
	stringState    *literalState
	inBlockComment bool
}

// scanLine 逐字符扫描一行，把结构事件回调给 tracker。
//
// 注意：
// - 普通字符串与原始字符串都可能跨行，状态保存在 stringState 中
// - 字符字面量与生命周期标注通过向前探测区分
// - // 之后的内容整体忽略，/* */ 注释支持跨行
func (s *braceScanState) scanLine(line string, tracker *Tracker) {
	i := 0
	for i < len(line) {
		if s.stringState != nil {
			i = s.scanInString(line, i)
			continue
		}

		if s.inBlockComment {
			end := strings.Index(line[i:], "*/")
			if end < 0 {
				return
			}
			s.inBlockComment = false
			i += end + 2
			continue
		}

		c := line[i]
		switch {
		case c == '/' && i+1 < len(line) && line[i+1] == '/':
			return

		case c == '/' && i+1 < len(line) && line[i+1] == '*':
			s.inBlockComment = true
			i += 2

		case c == 'r' && isRawStringStart(line[i:]):
			hashes := countHashes(line[i+1:])
			s.stringState = &literalState{mode: stringModeRaw, hashes: hashes}
			i += 1 + hashes + 1

		case c == '"':
			s.stringState = &literalState{mode: stringModeNormal}
			i++

		case c == '\'':
			i = skipCharLiteral(line, i)

		case c == '{':
			tracker.openBrace()
			i++

		case c == '}':
			tracker.closeBrace()
			i++

		case c == ';':
			tracker.semicolon()
			i++

		default:
			i++
		}
	}
}

// scanInString 在字符串内部继续扫描，返回新的游标位置。
func (s *braceScanState) scanInString(line string, i int) int {
	if s.stringState.mode == stringModeRaw {
		closer := "\"" + strings.Repeat("#", s.stringState.hashes)
		end := strings.Index(line[i:], closer)
		if end < 0 {
			return len(line)
		}
		s.stringState = nil
		return i + end + len(closer)
	}

	for i < len(line) {
		switch line[i] {
		case '\\':
			i += 2
		case '"':
			s.stringState = nil
			return i + 1
		default:
			i++
		}
	}
	return i
}

// isRawStringStart 判断文本是否以原始字符串前缀开头（r"、r#" 等）。
func isRawStringStart(text string) bool {
	rest := text[1:]
	hashes := countHashes(rest)
	return hashes < len(rest) && rest[hashes] == '"'
}

// countHashes 统计文本开头连续 # 的数量。
func countHashes(text string) int {
	count := 0
	for count < len(text) && text[count] == '#' {
		count++
	}
	return count
}

// skipCharLiteral 跳过字符字面量，返回新的游标位置。
// 生命周期标注（如 'a）只前进一个字符，不进入字面量状态。
func skipCharLiteral(line string, i int) int {
	if i+1 >= len(line) {
		return i + 1
	}

	if line[i+1] == '\\' {
		if i+3 >= len(line) {
			return len(line)
		}
		end := strings.IndexByte(line[i+3:], '\'')
		if end < 0 {
			return len(line)
		}
		return i + 3 + end + 1
	}

	if i+2 < len(line) && line[i+2] == '\'' {
		return i + 3
	}

	return i + 1
}

// testScope 记录一个测试作用域开启时的花括号深度。
type testScope struct {
	depthAtOpen int
}

// Tracker 跟踪 Rust 源码的行级角色。
//
// 工作方式：
// - 测试属性（#[cfg(test)] 等）把跟踪器置为待定状态
// - 待定状态由下一个大括号项或分号项消费，花括号项开启测试作用域
// - 作用域随匹配的右括号关闭，支持嵌套
// - 文件级 TestFile 提示让所有行直接归为测试角色
type Tracker struct {
	fileIsTest bool
	pending    bool
	depth      int
	scopes     []testScope
	braceState braceScanState

	lineTouchedTest bool
}

// NewTracker 创建指定文件提示的角色跟踪器。
func NewTracker(hint model.FileRoleHint) *Tracker {
	return &Tracker{fileIsTest: hint == model.RoleHintTestFile}
}

// ScanLine 处理一行源码并返回该行的角色。
func (t *Tracker) ScanLine(line string) model.CodeRole {
	if t.fileIsTest {
		return model.RoleTest
	}

	t.lineTouchedTest = t.pending || len(t.scopes) > 0

	trimmed := strings.TrimSpace(line)
	if t.braceState.stringState == nil && !t.braceState.inBlockComment &&
		strings.HasPrefix(trimmed, "#[") {
		if AttributeIndicatesTest(trimmed) {
			t.pending = true
			t.lineTouchedTest = true
		} else if strings.Contains(trimmed, "cfg(not(test") {
			t.pending = false
		}
	}

	t.braceState.scanLine(line, t)

	if t.lineTouchedTest {
		return model.RoleTest
	}
	return model.RoleMainline
}

// openBrace 处理一个左花括号事件。
func (t *Tracker) openBrace() {
	t.depth++
	if t.pending {
		t.scopes = append(t.scopes, testScope{depthAtOpen: t.depth})
		t.pending = false
		t.lineTouchedTest = true
	}
}

// closeBrace 处理一个右花括号事件。
func (t *Tracker) closeBrace() {
	if len(t.scopes) > 0 && t.depth == t.scopes[len(t.scopes)-1].depthAtOpen {
		t.scopes = t.scopes[:len(t.scopes)-1]
	}
	if t.depth > 0 {
		t.depth--
	}
}

// semicolon 处理一个分号事件。
// 待定状态下的分号表示测试项以声明形式结束（如 mod tests;）。
func (t *Tracker) semicolon() {
	if t.pending {
		t.pending = false
		t.lineTouchedTest = true
	}
}

// DetectLineRoles 对整段源码逐行判定角色。
func DetectLineRoles(lines []string, hint model.FileRoleHint) []model.CodeRole {
	tracker := NewTracker(hint)
	result := make([]model.CodeRole, 0, len(lines))
	for _, line := range lines {
		result = append(result, tracker.ScanLine(line))
	}
	return result
}
