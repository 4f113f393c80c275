package lingo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguageFile_RoundTrip(t *testing.T) {
	dict := map[string]Entry{
		"Greeting":  {Text: "Hello, world", Context: "title screen"},
		"Farewell":  {Text: `She said "bye", then left`, Context: "npc, rude"},
		"Multiline": {Text: "line one\nline two", Context: ""},
		"Comma":     {Text: "a,b,c", Context: "list,separated"},
	}

	data := encodeLanguageFile(dict, "Id")
	got, err := decodeLanguageFile(data, "Id")
	require.NoError(t, err)

	assert.Equal(t, dict, got)
}

func TestDecodeLanguageFile(t *testing.T) {
	t.Run("Header Match Is Case Insensitive", func(t *testing.T) {
		data := []byte("id,Text,Context\nGreeting,Hello,\n")
		dict, err := decodeLanguageFile(data, "Id")
		require.NoError(t, err)

		assert.Len(t, dict, 1)
		assert.Equal(t, "Hello", dict["Greeting"].Text)
	})

	t.Run("Rows With Empty Keys Are Skipped", func(t *testing.T) {
		data := []byte("Id,Text,Context\n,orphan,\nGreeting,Hello,\n")
		dict, err := decodeLanguageFile(data, "Id")
		require.NoError(t, err)

		assert.Len(t, dict, 1)
	})

	t.Run("Short Rows Tolerated", func(t *testing.T) {
		data := []byte("Id,Text,Context\nGreeting,Hello\nSolo\n")
		dict, err := decodeLanguageFile(data, "Id")
		require.NoError(t, err)

		assert.Equal(t, "Hello", dict["Greeting"].Text)
		assert.Equal(t, Entry{}, dict["Solo"])
	})

	t.Run("Empty File", func(t *testing.T) {
		dict, err := decodeLanguageFile(nil, "Id")
		require.NoError(t, err)
		assert.Empty(t, dict)
	})
}
