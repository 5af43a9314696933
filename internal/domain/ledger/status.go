package ledger

// EntryStatus represents the lifecycle status of a payment entry
type EntryStatus string

const (
	StatusDraft     EntryStatus = "draft"
	StatusPending   EntryStatus = "pending"
	StatusScheduled EntryStatus = "scheduled"
	StatusCompleted EntryStatus = "completed"
	StatusPartial   EntryStatus = "partial"
	StatusCancelled EntryStatus = "cancelled"
	StatusFailed    EntryStatus = "failed"
	StatusRefunded  EntryStatus = "refunded"
)

// IsValid checks if the status is part of the fixed status enum
func (s EntryStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusScheduled, StatusCompleted,
		StatusPartial, StatusCancelled, StatusFailed, StatusRefunded:
		return true
	}
	return false
}

// String returns the string representation of the status
func (s EntryStatus) String() string {
	return string(s)
}

// IsTerminal returns true for the terminal set. Entries never leave a
// terminal state.
func (s EntryStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusFailed || s == StatusRefunded
}

// IsSettled returns true when the entry represents money that has actually
// moved, which is what triggers reconciliation.
func (s EntryStatus) IsSettled() bool {
	return s == StatusCompleted || s == StatusPartial
}

// IsCaptureStatus returns true for statuses a capture may land in
func (s EntryStatus) IsCaptureStatus() bool {
	return s == StatusCompleted || s == StatusPartial
}

// IsVoidStatus returns true for statuses a void may land in
func (s EntryStatus) IsVoidStatus() bool {
	return s == StatusCancelled || s == StatusFailed || s == StatusRefunded
}
