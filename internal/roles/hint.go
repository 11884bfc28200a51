// Package roles 负责判定代码行的角色归属（主线或测试）。
// 大多数语言只依赖路径启发式，Rust 额外支持行级角色跟踪。
package roles

import (
	"path/filepath"
	"strings"

	"mdkloc/internal/model"
)

// testDirNames 是按目录名判定测试代码的路径段集合。
var testDirNames = map[string]bool{
	"tests":    true,
	"testdata": true,
}

// InferRoleFromPath 根据文件相对扫描根的路径推断角色提示。
//
// 判定规则：
// - 路径中任意一段目录名为 tests 或 testdata
// - 文件主名以 _test 结尾（如 parser_test.go）
// - 文件名包含 .spec. 或 .test. 片段（如 app.spec.ts）
// 其余情况一律返回 Unknown，路径推断不会断言主线角色。
func InferRoleFromPath(root string, path string) model.FileRoleHint {
	relative, err := filepath.Rel(root, path)
	if err != nil {
		relative = path
	}
	relative = filepath.ToSlash(relative)

	segments := strings.Split(relative, "/")
	for _, segment := range segments[:len(segments)-1] {
		if testDirNames[strings.ToLower(segment)] {
			return model.RoleHintTestFile
		}
	}

	name := strings.ToLower(segments[len(segments)-1])
	if strings.Contains(name, ".spec.") || strings.Contains(name, ".test.") {
		return model.RoleHintTestFile
	}

	stem := name
	if dot := strings.LastIndex(name, "."); dot > 0 {
		stem = name[:dot]
	}
	if strings.HasSuffix(stem, "_test") {
		return model.RoleHintTestFile
	}

	return model.RoleHintUnknown
}

// AttributeIndicatesTest 判断一个 Rust 属性行是否标记测试代码。
//
// 识别 #[test]、#[cfg(test)]、#[tokio::test] 以及 cfg(any(...)) 中
// 作为独立条件出现的 test；cfg(not(test)) 明确表示非测试。
func AttributeIndicatesTest(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "#[") {
		return false
	}
	if strings.Contains(trimmed, "cfg(not(test") {
		return false
	}
	if strings.Contains(trimmed, "cfg(test") {
		return true
	}

	inner := strings.TrimPrefix(trimmed, "#[")
	inner = strings.TrimSuffix(inner, "]")
	if inner == "test" || strings.HasSuffix(inner, "::test") {
		return true
	}

	return containsTestCondition(trimmed)
}

// containsTestCondition 在属性文本中查找作为完整词出现的 test 条件。
// 避免 feature = "testing" 这类子串造成误判。
func containsTestCondition(text string) bool {
	offset := 0
	for {
		index := strings.Index(text[offset:], "test")
		if index < 0 {
			return false
		}
		index += offset

		beforeOK := index == 0 || isConditionBoundary(text[index-1])
		afterIdx := index + len("test")
		afterOK := afterIdx >= len(text) || isConditionBoundary(text[afterIdx])
		if beforeOK && afterOK {
			return true
		}

		offset = index + len("test")
	}
}

// isConditionBoundary 判断字符是否能作为条件词的边界。
func isConditionBoundary(c byte) bool {
	switch c {
	case '(', ')', ',', ' ':
		return true
	default:
		return false
	}
}
