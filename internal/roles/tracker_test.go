package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdkloc/internal/model"
)

func TestTrackerHandlesCfgNotTest(t *testing.T) {
	lines := []string{
		"#[cfg(not(test))]",
		"fn prod_only() {}",
	}

	roles := DetectLineRoles(lines, model.RoleHintUnknown)
	assert.Equal(t, []model.CodeRole{model.RoleMainline, model.RoleMainline}, roles)
}

func TestTrackerPendingScopeWithSemicolonItem(t *testing.T) {
	lines := []string{
		"#[cfg(test)]",
		"mod tests;",
		"fn mainline() {}",
	}

	roles := DetectLineRoles(lines, model.RoleHintUnknown)
	require.Len(t, roles, 3)
	assert.Equal(t, model.RoleTest, roles[0])
	assert.Equal(t, model.RoleTest, roles[1])
	assert.Equal(t, model.RoleMainline, roles[2])
}

func TestTrackerInlineTestModule(t *testing.T) {
	lines := []string{
		"pub fn add(a: i32, b: i32) -> i32 {",
		"    a + b",
		"}",
		"",
		"#[cfg(test)]",
		"mod tests {",
		"    use super::*;",
		"",
		"    #[test]",
		"    fn adds_numbers() {",
		"        assert_eq!(add(2, 2), 4);",
		"    }",
		"}",
		"",
		"fn after() {}",
	}

	roles := DetectLineRoles(lines, model.RoleHintUnknown)
	require.Len(t, roles, len(lines))

	for i := 0; i <= 3; i++ {
		assert.Equal(t, model.RoleMainline, roles[i], "line %d", i)
	}
	for i := 4; i <= 12; i++ {
		assert.Equal(t, model.RoleTest, roles[i], "line %d", i)
	}
	assert.Equal(t, model.RoleMainline, roles[13])
	assert.Equal(t, model.RoleMainline, roles[14])
}

func TestTrackerHandlesRawStrings(t *testing.T) {
	lines := []string{
		"fn main() {",
		"    let s = r#\"#[cfg(test)]\"#;",
		"}",
	}

	roles := DetectLineRoles(lines, model.RoleHintUnknown)
	assert.Equal(t, []model.CodeRole{
		model.RoleMainline, model.RoleMainline, model.RoleMainline,
	}, roles)
}

func TestTrackerHandlesCharLiterals(t *testing.T) {
	lines := []string{
		"fn main() {",
		"    let c = '#';",
		"}",
	}

	roles := DetectLineRoles(lines, model.RoleHintUnknown)
	assert.Equal(t, []model.CodeRole{
		model.RoleMainline, model.RoleMainline, model.RoleMainline,
	}, roles)
}

func TestTrackerHandlesEscapedStrings(t *testing.T) {
	lines := []string{
		"fn main() {",
		"    let s = \"escaped \\\" quote\";",
		"    let c = '\\'';",
		"}",
	}

	for _, role := range DetectLineRoles(lines, model.RoleHintUnknown) {
		assert.Equal(t, model.RoleMainline, role)
	}
}

func TestTrackerBracesInsideStringsStayInert(t *testing.T) {
	lines := []string{
		"#[cfg(test)]",
		"mod tests {",
		"    const SNIPPET: &str = \"fn x() { }\";",
		"}",
		"fn outside() {}",
	}

	roles := DetectLineRoles(lines, model.RoleHintUnknown)
	require.Len(t, roles, 5)
	assert.Equal(t, model.RoleTest, roles[2], "string content should not close the scope")
	assert.Equal(t, model.RoleTest, roles[3])
	assert.Equal(t, model.RoleMainline, roles[4])
}

func TestTrackerTestFileHintForcesTestRole(t *testing.T) {
	lines := []string{
		"fn helper() {}",
		"// comment",
	}

	roles := DetectLineRoles(lines, model.RoleHintTestFile)
	assert.Equal(t, []model.CodeRole{model.RoleTest, model.RoleTest}, roles)
}

func TestTrackerNestedTestScopes(t *testing.T) {
	lines := []string{
		"#[cfg(test)]",
		"mod outer {",
		"    #[cfg(test)]",
		"    mod inner {",
		"        fn check() {}",
		"    }",
		"    fn still_outer() {}",
		"}",
		"fn mainline() {}",
	}

	roles := DetectLineRoles(lines, model.RoleHintUnknown)
	require.Len(t, roles, 9)
	for i := 0; i <= 7; i++ {
		assert.Equal(t, model.RoleTest, roles[i], "line %d", i)
	}
	assert.Equal(t, model.RoleMainline, roles[8])
}

func TestTrackerCommentedBracesStayInert(t *testing.T) {
	lines := []string{
		"#[cfg(test)]",
		"mod tests {",
		"    // closing brace in comment: }",
		"    /* also here: } */",
		"}",
		"fn outside() {}",
	}

	roles := DetectLineRoles(lines, model.RoleHintUnknown)
	require.Len(t, roles, 6)
	for i := 0; i <= 4; i++ {
		assert.Equal(t, model.RoleTest, roles[i], "line %d", i)
	}
	assert.Equal(t, model.RoleMainline, roles[5])
}

func TestBraceScanStateRawStringEdgeCases(t *testing.T) {
	tracker := NewTracker(model.RoleHintUnknown)
	var state braceScanState

	state.scanLine(`r#" "#`, tracker)
	assert.Nil(t, state.stringState, "single-line raw string should close")

	state.scanLine(`r#"`, tracker)
	assert.NotNil(t, state.stringState, "unterminated raw string should stay open")

	state.scanLine(` " a `, tracker)
	assert.NotNil(t, state.stringState, "plain quote should not close a hashed raw string")

	state.scanLine(`"#`, tracker)
	assert.Nil(t, state.stringState, "hash-quote should close the raw string")
}

func TestBraceScanStateMultilineNormalString(t *testing.T) {
	tracker := NewTracker(model.RoleHintUnknown)
	var state braceScanState

	state.scanLine(`let s = "open`, tracker)
	assert.NotNil(t, state.stringState)

	state.scanLine(`still { inside`, tracker)
	assert.NotNil(t, state.stringState)
	assert.Zero(t, tracker.depth, "braces inside strings must not count")

	state.scanLine(`done";`, tracker)
	assert.Nil(t, state.stringState)
}
