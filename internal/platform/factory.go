package platform

import (
	"context"
	"fmt"

	"github.com/softgrid/tabula/pkg/adapters/fs"
	"github.com/softgrid/tabula/pkg/core"
	"github.com/softgrid/tabula/pkg/lingo"
	"github.com/softgrid/tabula/pkg/manage"
)

// Session bundles the wired components of one open workspace.
type Session struct {
	Manager      *manage.Manager
	Localization *lingo.Store
	Files        core.FileStore
	Notifier     *core.Notifier

	watcher  *fs.Watcher
	watching bool
}

// New opens a workspace rooted at dir, wiring the file store, the
// localization store, and the persistence manager. The localization
// store is initialized (availability probed, sheet parsed) before New
// returns.
func New(dir string, opts ...Option) (*Session, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	files := o.files
	if files == nil {
		disk, err := fs.NewStore(fs.Config{
			Root:      dir,
			MustExist: o.mustExist,
			Logger:    o.logger,
		})
		if err != nil {
			return nil, err
		}
		files = disk
	}

	notifier := core.NewNotifier(o.eventBuffer)

	loc := lingo.NewStore(lingo.Config{
		Dir:        o.locDir,
		Mode:       o.mode,
		KeyColumn:  o.keyColumn,
		MetaPrefix: o.metaPrefix,
		SheetName:  o.sheetName,
		KeysName:   o.keysName,
		Default:    o.defaultLang,
		Files:      files,
		Logger:     o.logger,
		Translator: o.translator,
		Notifier:   notifier,
	})
	if err := loc.Initialize(context.Background()); err != nil {
		notifier.Close()
		return nil, fmt.Errorf("initialize localization: %w", err)
	}

	manager := manage.NewManager(manage.Config{
		Logger:   o.logger,
		Notifier: notifier,
	})
	if err := manager.Register(lingo.TypeID, loc); err != nil {
		notifier.Close()
		return nil, err
	}

	s := &Session{
		Manager:      manager,
		Localization: loc,
		Files:        files,
		Notifier:     notifier,
	}
	if disk, ok := files.(*fs.Store); ok {
		s.watcher = fs.NewWatcher(disk, o.watchGlob, notifier, o.logger)
	}
	return s, nil
}

// Watch starts the external-change watcher. It errors when the session
// runs on an injected file store with no disk backing.
func (s *Session) Watch(ctx context.Context) error {
	if s.watcher == nil {
		return fmt.Errorf("watching requires a disk-backed workspace")
	}
	if err := s.watcher.Start(ctx); err != nil {
		return err
	}
	s.watching = true
	return nil
}

// Close stops the watcher, if running, and shuts down the event broker.
func (s *Session) Close() error {
	var err error
	if s.watching {
		err = s.watcher.Stop(context.Background())
		s.watching = false
	}
	s.Notifier.Close()
	return err
}
