package domain

import "time"

// HistoryEntry records one completed search for later recall.
// Entries are bookkeeping only; they never feed back into search behaviour.
type HistoryEntry struct {
	// ID is a unique identifier (UUID).
	ID string

	// Query is the original query text.
	Query string

	// Mode is the search mode that was used.
	Mode SearchMode

	// ContextSize is the context hint that was used.
	ContextSize ContextSize

	// Text is the answer text returned by the hosted service.
	Text string

	// CitationCount is the number of de-duplicated citations.
	CitationCount int

	// Duration is how long the hosted call took.
	Duration time.Duration

	// CreatedAt is when the search completed.
	CreatedAt time.Time
}
