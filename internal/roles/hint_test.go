package roles

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"mdkloc/internal/model"
)

func TestInferRoleFromPathDetectsTestsDirectory(t *testing.T) {
	root := filepath.Join("home", "project")
	path := filepath.Join(root, "tests", "integration.rs")

	assert.Equal(t, model.RoleHintTestFile, InferRoleFromPath(root, path))
}

func TestInferRoleFromPathDetectsNestedTestsDirectory(t *testing.T) {
	root := filepath.Join("home", "project")
	path := filepath.Join(root, "crates", "sample", "tests", "case.rs")

	assert.Equal(t, model.RoleHintTestFile, InferRoleFromPath(root, path))
}

func TestInferRoleFromPathDetectsTestdataDirectory(t *testing.T) {
	root := filepath.Join("home", "project")
	path := filepath.Join(root, "testdata", "fixture.go")

	assert.Equal(t, model.RoleHintTestFile, InferRoleFromPath(root, path))
}

func TestInferRoleFromPathDetectsSuffixes(t *testing.T) {
	root := filepath.Join("home", "project")

	cases := []struct {
		name string
		want model.FileRoleHint
	}{
		{name: "parser_test.go", want: model.RoleHintTestFile},
		{name: "app.spec.ts", want: model.RoleHintTestFile},
		{name: "widget.test.jsx", want: model.RoleHintTestFile},
		{name: "widget.rs", want: model.RoleHintUnknown},
		{name: "contest.rs", want: model.RoleHintUnknown},
		{name: "testing.go", want: model.RoleHintUnknown},
	}

	for _, item := range cases {
		path := filepath.Join(root, "src", item.name)
		assert.Equal(t, item.want, InferRoleFromPath(root, path), "path %s", path)
	}
}

func TestInferRoleFromPathSourceFileStaysUnknown(t *testing.T) {
	root := filepath.Join("home", "project")
	path := filepath.Join(root, "src", "widget.rs")

	assert.Equal(t, model.RoleHintUnknown, InferRoleFromPath(root, path))
}

func TestAttributeIndicatesTestVariants(t *testing.T) {
	assert.True(t, AttributeIndicatesTest("#[cfg(test)]"))
	assert.True(t, AttributeIndicatesTest("#[cfg(any(test, feature = \"x\"))]"))
	assert.False(t, AttributeIndicatesTest("#[cfg(not(test))]"))
	assert.True(t, AttributeIndicatesTest("#[test]"))
	assert.True(t, AttributeIndicatesTest("#[tokio::test]"))
}

func TestAttributeIndicatesTestRejectsLookalikes(t *testing.T) {
	assert.False(t, AttributeIndicatesTest("#[cfg(feature = \"testing\")]"))
	assert.False(t, AttributeIndicatesTest("#[derive(Debug)]"))
	assert.False(t, AttributeIndicatesTest("let x = 1; // #[test]"))
	assert.False(t, AttributeIndicatesTest("#[attest]"))
}
