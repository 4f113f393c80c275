package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// TempFilePrefix is the prefix used for temporary atomic write files.
// The watcher skips files carrying it.
const TempFilePrefix = "tabula-tmp-"

// writeFileAtomic writes data to a temp file in the target directory and
// renames it into place, so readers never observe a partial file.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)

	tmpFile, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name()) // no-op once the rename succeeded

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("rename temp file to %s: %w", filename, err)
	}

	return nil
}
