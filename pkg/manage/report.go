package manage

import (
	"errors"
	"fmt"
	"strings"
)

// TypeResult records the outcome of persisting one registered type.
type TypeResult struct {
	ID      string
	Skipped bool // clean type, nothing written
	Err     error
}

// Report aggregates the per-type outcomes of a batch commit. The batch is
// best effort: one failing type never prevents the others from saving.
type Report struct {
	Results []TypeResult
}

// OK reports whether every type either saved or was cleanly skipped.
func (r Report) OK() bool {
	for _, res := range r.Results {
		if res.Err != nil {
			return false
		}
	}
	return true
}

// Failed returns the identities of the types whose save failed.
func (r Report) Failed() []string {
	var ids []string
	for _, res := range r.Results {
		if res.Err != nil {
			ids = append(ids, res.ID)
		}
	}
	return ids
}

// Saved returns the identities of the types that were actually written.
func (r Report) Saved() []string {
	var ids []string
	for _, res := range r.Results {
		if res.Err == nil && !res.Skipped {
			ids = append(ids, res.ID)
		}
	}
	return ids
}

// Err folds the per-type failures into a single error, or nil when the
// whole batch succeeded.
func (r Report) Err() error {
	var errs []error
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	return errors.Join(errs...)
}

func (r Report) String() string {
	if r.OK() {
		return fmt.Sprintf("saved %d, skipped %d", len(r.Saved()), len(r.Results)-len(r.Saved()))
	}
	return fmt.Sprintf("failed: %s", strings.Join(r.Failed(), ", "))
}
