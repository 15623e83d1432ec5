package blueprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntryValidate(t *testing.T) {
	tests := []struct {
		name    string
		entry   Entry
		wantErr bool
	}{
		{"valid file", Entry{Path: "./src/main.go", Type: EntryFile, Content: "package main"}, false},
		{"valid directory", Entry{Path: "./src", Type: EntryDirectory}, false},
		{"valid empty file", Entry{Path: "./.gitkeep", Type: EntryFile}, false},
		{"missing root marker", Entry{Path: "src/main.go", Type: EntryFile}, true},
		{"absolute path", Entry{Path: "/etc/passwd", Type: EntryFile}, true},
		{"bare root", Entry{Path: "./", Type: EntryDirectory}, true},
		{"parent escape", Entry{Path: "./../outside.txt", Type: EntryFile}, true},
		{"nested parent escape", Entry{Path: "./a/../../outside.txt", Type: EntryFile}, true},
		{"empty segment", Entry{Path: "./a//b.txt", Type: EntryFile}, true},
		{"backslash", Entry{Path: "./a\\b.txt", Type: EntryFile}, true},
		{"unknown type", Entry{Path: "./a.txt", Type: "symlink"}, true},
		{"directory with content", Entry{Path: "./src", Type: EntryDirectory, Content: "oops"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBlueprintValidate(t *testing.T) {
	bp := Blueprint{
		{Path: "./src", Type: EntryDirectory},
		{Path: "./src/main.go", Type: EntryFile, Content: "package main"},
	}
	assert.NoError(t, bp.Validate())
}

func TestBlueprintValidateDuplicatePath(t *testing.T) {
	bp := Blueprint{
		{Path: "./main.go", Type: EntryFile},
		{Path: "./main.go", Type: EntryFile},
	}
	err := bp.Validate()
	assert.ErrorContains(t, err, "duplicate path")
}

func TestSubstitute(t *testing.T) {
	bp := Blueprint{
		{Path: "./{{name}}", Type: EntryDirectory},
		{Path: "./{{name}}/main.go", Type: EntryFile, Content: "// {{name}} entry point\npackage main"},
		{Path: "./README.md", Type: EntryFile, Content: "# {{name}}"},
	}

	got := bp.Substitute("widget")
	assert.Equal(t, "./widget", got[0].Path)
	assert.Equal(t, "./widget/main.go", got[1].Path)
	assert.Equal(t, "// widget entry point\npackage main", got[1].Content)
	assert.Equal(t, "# widget", got[2].Content)

	// Original untouched.
	assert.Equal(t, "./{{name}}", bp[0].Path)
}

func TestSubstituteEmptyName(t *testing.T) {
	bp := Blueprint{{Path: "./{{name}}/main.go", Type: EntryFile}}
	got := bp.Substitute("")
	assert.Equal(t, bp, got)
}

func TestSubstituteSkipsDirectoryContent(t *testing.T) {
	bp := Blueprint{{Path: "./src", Type: EntryDirectory}}
	got := bp.Substitute("widget")
	assert.Equal(t, "./src", got[0].Path)
	assert.Empty(t, got[0].Content)
}
