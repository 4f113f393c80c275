package manage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softgrid/tabula/pkg/core"
	"github.com/softgrid/tabula/pkg/manage"
)

// fakeResource is a hand-rolled Resource with scriptable failures.
type fakeResource struct {
	dirty   bool
	saveErr error
	saves   int
	reloads int
	onDirty func(bool)
}

func (f *fakeResource) Dirty() bool { return f.dirty }

func (f *fakeResource) Save(ctx context.Context) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.markDirty(false)
	return nil
}

func (f *fakeResource) Reload(ctx context.Context) error {
	f.reloads++
	f.markDirty(false)
	return nil
}

func (f *fakeResource) OnDirtyChange(fn func(bool)) { f.onDirty = fn }

func (f *fakeResource) markDirty(dirty bool) {
	if f.dirty == dirty {
		return
	}
	f.dirty = dirty
	if f.onDirty != nil {
		f.onDirty(dirty)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	m := manage.NewManager(manage.Config{})
	require.NoError(t, m.Register("items", &fakeResource{}))
	err := m.Register("items", &fakeResource{})
	assert.ErrorIs(t, err, manage.ErrDuplicateType)
	assert.Equal(t, []string{"items"}, m.Types())
}

func TestSaveUnknownType(t *testing.T) {
	m := manage.NewManager(manage.Config{})
	err := m.Save(context.Background(), "ghosts", false)
	assert.ErrorIs(t, err, manage.ErrUnknownType)
}

func TestSaveSkipsClean(t *testing.T) {
	m := manage.NewManager(manage.Config{})
	res := &fakeResource{}
	require.NoError(t, m.Register("items", res))

	require.NoError(t, m.Save(context.Background(), "items", false))
	assert.Zero(t, res.saves, "clean type must not be written")

	require.NoError(t, m.Save(context.Background(), "items", true))
	assert.Equal(t, 1, res.saves, "force writes even when clean")
}

func TestSaveAllBestEffort(t *testing.T) {
	m := manage.NewManager(manage.Config{})
	good := &fakeResource{}
	bad := &fakeResource{saveErr: errors.New("disk full")}
	other := &fakeResource{}
	require.NoError(t, m.Register("items", good))
	require.NoError(t, m.Register("quests", bad))
	require.NoError(t, m.Register("npcs", other))

	good.markDirty(true)
	bad.markDirty(true)
	other.markDirty(true)

	report := m.SaveAll(context.Background(), false)
	assert.False(t, report.OK())
	assert.Equal(t, []string{"quests"}, report.Failed())
	assert.ElementsMatch(t, []string{"items", "npcs"}, report.Saved())
	assert.ErrorContains(t, report.Err(), "disk full")

	// The failing type keeps its modifications and its error.
	assert.Equal(t, []string{"quests"}, m.DirtyTypes())
	assert.Equal(t, manage.StatusDirty, m.Status("quests"))
	assert.ErrorContains(t, m.LastError("quests"), "disk full")

	// The successes are clean and the counters confirm everyone ran.
	assert.Equal(t, manage.StatusClean, m.Status("items"))
	assert.Equal(t, 1, good.saves)
	assert.Equal(t, 1, bad.saves)
	assert.Equal(t, 1, other.saves)
}

func TestSaveAllNothingDirty(t *testing.T) {
	m := manage.NewManager(manage.Config{})
	a := &fakeResource{}
	b := &fakeResource{}
	require.NoError(t, m.Register("items", a))
	require.NoError(t, m.Register("quests", b))

	report := m.SaveAll(context.Background(), false)
	assert.True(t, report.OK())
	assert.Empty(t, report.Saved())
	assert.Zero(t, a.saves)
	assert.Zero(t, b.saves)
}

func TestLastErrorClearedOnSuccess(t *testing.T) {
	m := manage.NewManager(manage.Config{})
	res := &fakeResource{saveErr: errors.New("transient")}
	require.NoError(t, m.Register("items", res))
	res.markDirty(true)

	require.Error(t, m.Save(context.Background(), "items", false))
	require.ErrorContains(t, m.LastError("items"), "transient")

	res.saveErr = nil
	require.NoError(t, m.Save(context.Background(), "items", false))
	assert.NoError(t, m.LastError("items"))
	assert.Equal(t, manage.StatusClean, m.Status("items"))
}

func TestReloadAllRefusedWhileDirty(t *testing.T) {
	m := manage.NewManager(manage.Config{})
	res := &fakeResource{}
	require.NoError(t, m.Register("items", res))
	res.markDirty(true)

	err := m.ReloadAll(context.Background(), true)
	assert.ErrorIs(t, err, manage.ErrUnsavedChanges)
	assert.Zero(t, res.reloads)

	// Without the check the modifications are simply discarded.
	require.NoError(t, m.ReloadAll(context.Background(), false))
	assert.Equal(t, 1, res.reloads)
	assert.False(t, m.HasUnsavedChanges())
}

func TestDirtyEventsDeduplicated(t *testing.T) {
	notifier := core.NewNotifier(core.DefaultEventBuffer)
	defer notifier.Close()
	events, cancel := notifier.Subscribe()
	defer cancel()

	m := manage.NewManager(manage.Config{Notifier: notifier})
	res := &fakeResource{}
	require.NoError(t, m.Register("items", res))

	res.markDirty(true)
	res.markDirty(true) // no-op, resource already dirty
	require.NoError(t, m.Save(context.Background(), "items", false))

	var got []bool
	for len(got) < 2 {
		e := <-events
		if e.Type == core.EventDirtyChanged && e.Resource == "items" {
			got = append(got, e.Dirty)
		}
	}
	assert.Equal(t, []bool{true, false}, got)
	select {
	case e := <-events:
		t.Fatalf("unexpected extra event: %+v", e)
	default:
	}
}

// reentrantResource tries to save itself again from inside Save.
type reentrantResource struct {
	fakeResource
	m  *manage.Manager
	id string

	inner error
}

func (r *reentrantResource) Save(ctx context.Context) error {
	r.inner = r.m.Save(ctx, r.id, true)
	return r.fakeResource.Save(ctx)
}

func TestSaveRejectsReentry(t *testing.T) {
	m := manage.NewManager(manage.Config{})
	res := &reentrantResource{m: m, id: "items"}
	require.NoError(t, m.Register("items", res))
	res.markDirty(true)

	require.NoError(t, m.Save(context.Background(), "items", false))
	assert.ErrorIs(t, res.inner, manage.ErrSaveInFlight)
	assert.Equal(t, 1, res.saves)
}
