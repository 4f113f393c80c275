package manage

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/aretw0/introspection"

	"github.com/softgrid/tabula/pkg/core"
)

// Config carries the manager's collaborators. All fields are optional.
type Config struct {
	// Logger receives save/reload diagnostics. Nil disables logging.
	Logger *slog.Logger
	// Notifier publishes dirty-state events for UI consumers.
	Notifier *core.Notifier
}

// Manager coordinates persistence across every registered resource. It
// owns the per-type save state machine and deduplicates dirty-state
// events so subscribers never see the same boolean twice in a row for
// one type.
type Manager struct {
	cfg Config

	mu        sync.Mutex
	order     []string // registration order, drives batch iteration
	resources map[string]Resource
	status    map[string]Status
	lastErr   map[string]error
	lastDirty map[string]bool
}

// NewManager creates an empty manager.
func NewManager(cfg Config) *Manager {
	return &Manager{
		cfg:       cfg,
		resources: make(map[string]Resource),
		status:    make(map[string]Status),
		lastErr:   make(map[string]error),
		lastDirty: make(map[string]bool),
	}
}

// Register adds a resource under the given type identity. The manager
// hooks the resource's dirty callback; callers must not install their
// own afterward.
func (m *Manager) Register(id string, res Resource) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.resources[id]; ok {
		return fmt.Errorf("%s: %w", id, ErrDuplicateType)
	}
	m.resources[id] = res
	m.order = append(m.order, id)
	m.status[id] = StatusClean
	res.OnDirtyChange(func(dirty bool) { m.setDirty(id, dirty) })
	return nil
}

// setDirty updates the cached status and publishes an event, but only
// when the boolean actually flipped for this type.
func (m *Manager) setDirty(id string, dirty bool) {
	m.mu.Lock()
	if last, seen := m.lastDirty[id]; seen && last == dirty {
		m.mu.Unlock()
		return
	}
	m.lastDirty[id] = dirty
	if m.status[id] != StatusSaving {
		if dirty {
			m.status[id] = StatusDirty
		} else {
			m.status[id] = StatusClean
		}
	}
	m.mu.Unlock()

	if m.cfg.Logger != nil {
		m.cfg.Logger.Debug("dirty state changed", "type", id, "dirty", dirty)
	}
	if m.cfg.Notifier != nil {
		m.cfg.Notifier.Publish(core.Event{
			Type:     core.EventDirtyChanged,
			Resource: id,
			Dirty:    dirty,
		})
	}
}

// Save persists one registered type. Clean types are skipped unless
// force is set. A save already in flight for the type is rejected with
// ErrSaveInFlight rather than queued.
func (m *Manager) Save(ctx context.Context, id string, force bool) error {
	res, err := m.begin(id, force)
	if err != nil || res == nil {
		return err
	}
	return m.finish(ctx, id, res)
}

func (m *Manager) begin(id string, force bool) (Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.resources[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrUnknownType)
	}
	if m.status[id] == StatusSaving {
		return nil, fmt.Errorf("%s: %w", id, ErrSaveInFlight)
	}
	if !force && !res.Dirty() {
		return nil, nil
	}
	m.status[id] = StatusSaving
	return res, nil
}

func (m *Manager) finish(ctx context.Context, id string, res Resource) error {
	err := res.Save(ctx)

	m.mu.Lock()
	if err != nil {
		m.lastErr[id] = err
		m.status[id] = StatusDirty
	} else {
		delete(m.lastErr, id)
		if res.Dirty() {
			m.status[id] = StatusDirty
		} else {
			m.status[id] = StatusClean
		}
	}
	m.mu.Unlock()

	if err != nil {
		if m.cfg.Logger != nil {
			m.cfg.Logger.Error("save failed", "type", id, "error", err)
		}
		return fmt.Errorf("save %s: %w", id, err)
	}
	if m.cfg.Logger != nil {
		m.cfg.Logger.Debug("saved", "type", id)
	}
	return nil
}

// SaveAll commits every registered type in registration order. The
// batch is best effort: a failing type is recorded in the report and the
// remaining types still save.
func (m *Manager) SaveAll(ctx context.Context, force bool) Report {
	m.mu.Lock()
	ids := make([]string, len(m.order))
	copy(ids, m.order)
	m.mu.Unlock()

	var report Report
	for _, id := range ids {
		res, err := m.begin(id, force)
		if err != nil {
			report.Results = append(report.Results, TypeResult{ID: id, Err: err})
			continue
		}
		if res == nil {
			report.Results = append(report.Results, TypeResult{ID: id, Skipped: true})
			continue
		}
		report.Results = append(report.Results, TypeResult{ID: id, Err: m.finish(ctx, id, res)})
	}
	return report
}

// Reload discards unsaved modifications for one type and re-reads it
// from storage.
func (m *Manager) Reload(ctx context.Context, id string) error {
	m.mu.Lock()
	res, ok := m.resources[id]
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrUnknownType)
	}
	if err := res.Reload(ctx); err != nil {
		return fmt.Errorf("reload %s: %w", id, err)
	}
	return nil
}

// ReloadAll re-reads every registered type. With checkModified set, the
// reload is refused while any type has unsaved modifications so callers
// can prompt before discarding work.
func (m *Manager) ReloadAll(ctx context.Context, checkModified bool) error {
	if checkModified {
		if dirty := m.DirtyTypes(); len(dirty) > 0 {
			return fmt.Errorf("%v: %w", dirty, ErrUnsavedChanges)
		}
	}
	m.mu.Lock()
	ids := make([]string, len(m.order))
	copy(ids, m.order)
	m.mu.Unlock()

	for _, id := range ids {
		if err := m.Reload(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// HasUnsavedChanges reports whether any of the named types is dirty,
// or any registered type at all when called without arguments.
func (m *Manager) HasUnsavedChanges(ids ...string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(ids) == 0 {
		for _, res := range m.resources {
			if res.Dirty() {
				return true
			}
		}
		return false
	}
	for _, id := range ids {
		if res, ok := m.resources[id]; ok && res.Dirty() {
			return true
		}
	}
	return false
}

// DirtyTypes returns the sorted identities of the types with unsaved
// modifications.
func (m *Manager) DirtyTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for id, res := range m.resources {
		if res.Dirty() {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Status returns the persistence state of one type, or StatusClean for
// unknown identities.
func (m *Manager) Status(id string) Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status[id]
}

// LastError returns the most recent save failure for the type, cleared
// by the next successful save.
func (m *Manager) LastError(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr[id]
}

// Resource returns the registered resource for the type identity.
func (m *Manager) Resource(id string) (Resource, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.resources[id]
	return res, ok
}

// Types returns the registered identities in registration order.
func (m *Manager) Types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, len(m.order))
	copy(ids, m.order)
	return ids
}

// ManagerState is the introspection snapshot of the manager.
type ManagerState struct {
	Types  []string          `json:"types"`
	Status map[string]string `json:"status"`
	Dirty  []string          `json:"dirty,omitempty"`
}

// State implements introspection.Introspectable.
func (m *Manager) State() any {
	m.mu.Lock()
	defer m.mu.Unlock()
	state := ManagerState{
		Types:  append([]string(nil), m.order...),
		Status: make(map[string]string, len(m.status)),
	}
	for id, st := range m.status {
		state.Status[id] = st.String()
	}
	for id, res := range m.resources {
		if res.Dirty() {
			state.Dirty = append(state.Dirty, id)
		}
	}
	sort.Strings(state.Dirty)
	return state
}

// ComponentType implements introspection.Component.
func (m *Manager) ComponentType() string {
	return "persistence-manager"
}

var _ introspection.Introspectable = (*Manager)(nil)
var _ introspection.Component = (*Manager)(nil)
