package watcher

import (
	"context"
	"time"

	"github.com/254carbon/graph-validator/pkg/logging"
)

// Debouncer batches rapid file system events so a flurry of writes triggers
// one re-validation instead of many. Events are flushed after a quiet
// period, or after maxWait if changes keep arriving.
type Debouncer struct {
	input       <-chan ChangeEvent
	output      chan ChangeEvent
	quietPeriod time.Duration
	maxWait     time.Duration
}

// NewDebouncer creates a new event debouncer
func NewDebouncer(input <-chan ChangeEvent, quietPeriod, maxWait time.Duration) *Debouncer {
	return &Debouncer{
		input:       input,
		output:      make(chan ChangeEvent, 10),
		quietPeriod: quietPeriod,
		maxWait:     maxWait,
	}
}

// Start begins processing events with debouncing
func (d *Debouncer) Start(ctx context.Context) {
	go d.run(ctx)
}

// run processes events and applies debouncing logic. All state is owned by
// this goroutine; the timers only signal through their channels.
func (d *Debouncer) run(ctx context.Context) {
	quiet := time.NewTimer(d.quietPeriod)
	quiet.Stop()
	maxWait := time.NewTimer(d.maxWait)
	maxWait.Stop()
	maxWaitActive := false

	accumulated := make(map[ChangeType][]string)
	eventCount := 0

	flush := func() {
		if eventCount == 0 {
			return
		}

		logging.Debug("flushing accumulated events", "count", eventCount)

		// Catalog changes first: they invalidate the whole graph
		if paths := accumulated[ChangeTypeCatalog]; len(paths) > 0 {
			d.output <- ChangeEvent{
				Type:      ChangeTypeCatalog,
				Paths:     paths,
				Timestamp: time.Now(),
			}
		}
		if paths := accumulated[ChangeTypeRules]; len(paths) > 0 {
			d.output <- ChangeEvent{
				Type:      ChangeTypeRules,
				Paths:     paths,
				Timestamp: time.Now(),
			}
		}

		accumulated = make(map[ChangeType][]string)
		eventCount = 0

		quiet.Stop()
		maxWait.Stop()
		maxWaitActive = false
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			close(d.output)
			return

		case event, ok := <-d.input:
			if !ok {
				flush()
				close(d.output)
				return
			}

			accumulated[event.Type] = append(accumulated[event.Type], event.Paths...)
			eventCount++

			quiet.Reset(d.quietPeriod)
			if !maxWaitActive {
				maxWait.Reset(d.maxWait)
				maxWaitActive = true
			}

		case <-quiet.C:
			flush()

		case <-maxWait.C:
			flush()
		}
	}
}

// Output returns the channel of debounced events
func (d *Debouncer) Output() <-chan ChangeEvent {
	return d.output
}
