package core

import "context"

// FileStore is the injected raw file capability. The engine never touches
// the filesystem directly; adhering to this interface keeps the core
// independent of the underlying storage (disk, memory, remote).
type FileStore interface {
	// ReadFile returns the full contents of the named file.
	ReadFile(ctx context.Context, name string) ([]byte, error)

	// WriteFile replaces the named file with data. Implementations must be
	// atomic: a failed write may not leave a truncated file behind.
	WriteFile(ctx context.Context, name string, data []byte) error

	// Exists reports whether the named file is present.
	Exists(ctx context.Context, name string) (bool, error)

	// Remove deletes the named file. Removing a missing file is not an
	// error.
	Remove(ctx context.Context, name string) error
}
