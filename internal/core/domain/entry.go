package domain

import "time"

// FailedResult is the terminal marker persisted when processing an entry's
// text raised an error. The entry still transitions to completed so it is
// never stuck in-progress.
const FailedResult = "processing failed"

// Entry is a single diary record. Its lifecycle has exactly one forward
// transition: created (InProgress=true, Result=nil) → completed
// (InProgress=false, Result≠nil). Completion is applied at most once; later
// attempts are no-ops, which makes queue redelivery safe.
type Entry struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Text       string    `json:"text"`
	InProgress bool      `json:"in_progress"`
	Result     *string   `json:"result"`
	CreatedOn  time.Time `json:"created_on"`
}

// Completed reports whether the entry has finished processing.
func (e *Entry) Completed() bool {
	return !e.InProgress && e.Result != nil
}
