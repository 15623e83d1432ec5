package blueprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDoc = `{
	"entries": [
		{"path": "./src", "type": "directory"},
		{"path": "./src/index.js", "type": "file", "content": "console.log('hi');\n"},
		{"path": "./package.json", "type": "file", "content": "{}"}
	]
}`

func TestDecode(t *testing.T) {
	bp, err := Decode(validDoc)
	require.NoError(t, err)
	require.Len(t, bp, 3)
	assert.Equal(t, Entry{Path: "./src", Type: EntryDirectory}, bp[0])
	assert.Equal(t, "console.log('hi');\n", bp[1].Content)
}

func TestDecodeWithFence(t *testing.T) {
	for _, raw := range []string{
		"```json\n" + validDoc + "\n```",
		"```\n" + validDoc + "\n```",
		"  \n" + validDoc + "\n  ",
	} {
		bp, err := Decode(raw)
		require.NoError(t, err)
		assert.Len(t, bp, 3)
	}
}

func TestDecodeEmptyResponse(t *testing.T) {
	_, err := Decode("")
	assert.ErrorIs(t, err, ErrNoBlueprint)

	_, err = Decode("```\n```")
	assert.ErrorIs(t, err, ErrNoBlueprint)
}

func TestDecodeNotJSON(t *testing.T) {
	_, err := Decode("Sure! Here is your project structure:")
	assert.ErrorIs(t, err, ErrNoBlueprint)
}

func TestDecodeSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing entries", `{}`},
		{"entries not array", `{"entries": {}}`},
		{"missing type", `{"entries": [{"path": "./a.txt"}]}`},
		{"bad type tag", `{"entries": [{"path": "./a.txt", "type": "link"}]}`},
		{"path without marker", `{"entries": [{"path": "a.txt", "type": "file"}]}`},
		{"unexpected property", `{"entries": [{"path": "./a.txt", "type": "file", "mode": "0755"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.raw)
			assert.ErrorIs(t, err, ErrNoBlueprint)
		})
	}
}

func TestDecodeEmptyEntryList(t *testing.T) {
	_, err := Decode(`{"entries": []}`)
	assert.ErrorIs(t, err, ErrNoBlueprint)
}

func TestDecodePathEscapeIsNotSchemaError(t *testing.T) {
	// The schema only checks the root marker; traversal is caught by path
	// validation with a distinct error.
	_, err := Decode(`{"entries": [{"path": "./../escape.txt", "type": "file"}]}`)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoBlueprint)
	assert.ErrorContains(t, err, "escapes the destination root")
}
