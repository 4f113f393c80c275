package platform

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softgrid/tabula/pkg/lingo"
)

func TestNewWiresWorkspace(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.csv"),
		[]byte("Id,Text,Context\nGreeting,Hello,\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keys.yaml"),
		[]byte("- id: Greeting\n"), 0644))

	session, err := New(dir)
	require.NoError(t, err)
	defer session.Close()

	ctx := context.Background()
	require.NoError(t, session.Localization.LoadLanguage(ctx, lingo.English))
	assert.Equal(t, "Hello", session.Localization.Text("Greeting"))

	// The manager knows the localization store under its type identity.
	_, ok := session.Manager.Resource(lingo.TypeID)
	assert.True(t, ok)
}

func TestSessionSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	session, err := New(dir, WithDefaultLanguage(lingo.English))
	require.NoError(t, err)
	defer session.Close()

	ctx := context.Background()
	loc := session.Localization
	require.NoError(t, loc.AddKey(ctx, "Farewell", "", "", false))
	loc.SetText("Farewell", "Goodbye", lingo.English)

	report := session.Manager.SaveAll(ctx, false)
	require.True(t, report.OK(), "save failed: %v", report.Err())
	assert.False(t, session.Manager.HasUnsavedChanges())

	// A fresh session over the same directory sees the persisted text.
	reopened, err := New(dir)
	require.NoError(t, err)
	defer reopened.Close()
	require.NoError(t, reopened.Localization.LoadLanguage(ctx, lingo.English))
	assert.Equal(t, "Goodbye", reopened.Localization.Text("Farewell"))
}

func TestSheetModeWorkspace(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "localization.csv"),
		[]byte("Id,~Description,en,ko\nGreeting,Welcome text,Hello,안녕\n"), 0644))

	session, err := New(dir, WithSheetMode())
	require.NoError(t, err)
	defer session.Close()

	loc := session.Localization
	loc.SelectLanguage(lingo.Korean)
	assert.Equal(t, "안녕", loc.Text("Greeting"))
}

func TestWatchRequiresDisk(t *testing.T) {
	dir := t.TempDir()
	session, err := New(dir)
	require.NoError(t, err)
	defer session.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	assert.NoError(t, session.Watch(ctx))
}
