package consignment

import (
	"fmt"
	"time"

	"shipping/internal/pkg/errs"
)

// TimelineEntry records one accepted status transition and when it happened.
// Entries are immutable once created.
type TimelineEntry struct {
	status Status
	at     time.Time
}

// NewTimelineEntry creates a validated timeline entry.
func NewTimelineEntry(status Status, at time.Time) (TimelineEntry, error) {
	if err := status.Validate(); err != nil {
		return TimelineEntry{}, err
	}
	if at.IsZero() {
		return TimelineEntry{}, errs.NewValueIsRequiredError("timeline entry timestamp")
	}

	return TimelineEntry{status: status, at: at}, nil
}

// Status returns the status this entry recorded.
func (e TimelineEntry) Status() Status {
	return e.status
}

// At returns the transition timestamp.
func (e TimelineEntry) At() time.Time {
	return e.at
}

// Timeline is the append-only, ordered log of a consignment's status
// transitions, oldest first. Entries are never removed or reordered; the last
// entry always mirrors the consignment's current status.
type Timeline struct {
	entries []TimelineEntry
}

// NewTimeline creates a timeline seeded with its first entry, recorded at
// consignment creation.
func NewTimeline(first TimelineEntry) Timeline {
	return Timeline{entries: []TimelineEntry{first}}
}

// RestoreTimeline rebuilds a timeline from persistence. The entry sequence
// must be non-empty and is trusted to be in stored order.
func RestoreTimeline(entries []TimelineEntry) (Timeline, error) {
	if len(entries) == 0 {
		return Timeline{}, errs.NewValueIsRequiredError("timeline entries")
	}
	for i, e := range entries {
		if err := e.Status().Validate(); err != nil {
			return Timeline{}, fmt.Errorf("timeline entry %d: %w", i, err)
		}
	}

	restored := make([]TimelineEntry, len(entries))
	copy(restored, entries)
	return Timeline{entries: restored}, nil
}

// Append adds an entry after all existing entries.
func (t *Timeline) Append(entry TimelineEntry) {
	t.entries = append(t.entries, entry)
}

// Last returns the most recent entry. Calling Last on an empty timeline
// returns the zero entry; timelines built through constructors are never
// empty.
func (t Timeline) Last() TimelineEntry {
	if len(t.entries) == 0 {
		return TimelineEntry{}
	}
	return t.entries[len(t.entries)-1]
}

// Entries returns a copy of the log, oldest first.
func (t Timeline) Entries() []TimelineEntry {
	out := make([]TimelineEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of recorded transitions.
func (t Timeline) Len() int {
	return len(t.entries)
}
