package router

// Event is one interaction step from the conversational surface. The set is
// closed: every router transition switches exhaustively over these variants
// instead of branching on string tags.
type Event interface {
	isEvent()
}

// ConfirmYes accepts the currently suggested category and commits.
type ConfirmYes struct{}

// ConfirmNo rejects the suggested category; the user picks one manually.
type ConfirmNo struct{}

// SelectCategory is an explicit category choice from the fixed set.
type SelectCategory struct {
	CategoryID int64
}

// Cancel aborts the conversation and discards all pending state.
type Cancel struct{}

func (ConfirmYes) isEvent()     {}
func (ConfirmNo) isEvent()      {}
func (SelectCategory) isEvent() {}
func (Cancel) isEvent()         {}
