// Package lifecycle bridges the tabula event stream into the generic
// aretw0/lifecycle supervision model, so an application can supervise
// its reaction to edits alongside its other workers.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/softgrid/tabula/pkg/core"
)

type eventSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that emits tabula events. Feed it
// the channel returned by Notifier.Subscribe.
func NewSource(events <-chan core.Event) lifecycle.Source {
	return &eventSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

func (s *eventSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *eventSource) Start(ctx context.Context) error {
	// The bridge goroutine is tracked by lifecycle.Go so shutdown waits
	// for it.
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				// core.Event implements lifecycle.Event (has String())
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
