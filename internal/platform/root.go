package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindRoot walks upward from startDir looking for a workspace indicator:
// a keys.yaml key table, a localization.csv sheet, or a .git directory.
// It returns the first directory containing one, or an error when the
// filesystem root is reached without a match.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, "keys.yaml") || hasFile(dir, "localization.csv") || hasFile(dir, ".git") {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("no workspace found above %s", startDir)
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
