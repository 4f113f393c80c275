package lingo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSheet(t *testing.T) {
	t.Run("Languages Resolved From Header", func(t *testing.T) {
		data := []byte("Key,~Desc,en,ko\nGreeting,Welcome text,Hello,안녕\n")
		parsed, err := parseSheet(data, "Key", "~")
		require.NoError(t, err)

		assert.Equal(t, "Hello", parsed.entries["en"]["Greeting"].Text)
		assert.Equal(t, "안녕", parsed.entries["ko"]["Greeting"].Text)
		assert.Equal(t, "Welcome text", parsed.keys["Greeting"].Description)
	})

	t.Run("Key Column Match Is Case Insensitive", func(t *testing.T) {
		data := []byte("key,en\nGreeting,Hello\n")
		parsed, err := parseSheet(data, "Key", "~")
		require.NoError(t, err)

		assert.Equal(t, "Hello", parsed.entries["en"]["Greeting"].Text)
	})

	t.Run("Unknown Header Is Ignored", func(t *testing.T) {
		data := []byte("Key,NotALanguage,en\nGreeting,whatever,Hello\n")
		parsed, err := parseSheet(data, "Key", "~")
		require.NoError(t, err)

		assert.Len(t, parsed.languages, 1)
		assert.Equal(t, "Hello", parsed.entries["en"]["Greeting"].Text)
	})

	t.Run("Missing Key Column Is An Error", func(t *testing.T) {
		data := []byte("en,ko\nHello,안녕\n")
		_, err := parseSheet(data, "Key", "~")
		assert.Error(t, err)
	})

	t.Run("Fixed Metadata Column", func(t *testing.T) {
		data := []byte("Key,~Fixed,en\nGreeting,true,Hello\nFarewell,false,Bye\nJunk,banana,Meh\n")
		parsed, err := parseSheet(data, "Key", "~")
		require.NoError(t, err)

		assert.True(t, parsed.keys["Greeting"].Fixed)
		assert.False(t, parsed.keys["Farewell"].Fixed)
		assert.False(t, parsed.keys["Junk"].Fixed)
	})

	t.Run("Empty Sheet", func(t *testing.T) {
		parsed, err := parseSheet(nil, "Key", "~")
		require.NoError(t, err)
		assert.Empty(t, parsed.languages)
	})
}

func TestTypeDeclarationRow(t *testing.T) {
	t.Run("Skipped When Majority Matches", func(t *testing.T) {
		data := []byte("Key,en,ko\ndummy,string,string\nGreeting,Hello,안녕\n")
		parsed, err := parseSheet(data, "Key", "~")
		require.NoError(t, err)

		_, hasDummy := parsed.keys["dummy"]
		assert.False(t, hasDummy, "type row must not become a key")
		assert.Equal(t, "Hello", parsed.entries["en"]["Greeting"].Text)
	})

	t.Run("Kept At Exactly Half", func(t *testing.T) {
		// One of two non-key cells matches: not more than half, so it is data.
		data := []byte("Key,en,ko\nRow,string,actual text\n")
		parsed, err := parseSheet(data, "Key", "~")
		require.NoError(t, err)

		assert.Equal(t, "string", parsed.entries["en"]["Row"].Text)
	})

	t.Run("Heuristic Can Misclassify Data", func(t *testing.T) {
		// A legitimate row whose cells all name primitive types is dropped.
		// Known limitation, carried on purpose.
		data := []byte("Key,en,ko\nTypeNames,int,bool\n")
		parsed, err := parseSheet(data, "Key", "~")
		require.NoError(t, err)

		_, ok := parsed.entries["en"]["TypeNames"]
		assert.False(t, ok)
	})
}
