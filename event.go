package focal

import "github.com/germtb/focal/signals"

// TransferEvent describes an in-flight focus move. It is handed to
// each matching record's OnIncoming callback during dispatch, which
// may reassign Next. The event is discarded once the focus side
// effect has been issued; it is never retained across transfers.
type TransferEvent struct {
	// Previous is the element focus is moving away from, or nil.
	Previous Element

	// Next is the element focus is moving toward. Callbacks may
	// rewrite it during dispatch.
	Next Element

	// Context is an optional accessor supplied by an enclosing trap.
	// It yields the trap's remembered focus target so that an area
	// can prefer it over its own default when the trap pulls focus
	// back inside.
	Context signals.Accessor[Element]
}

// ContextTarget reads the event's context accessor, returning nil when
// no context was supplied.
func (ev *TransferEvent) ContextTarget() Element {
	if ev.Context == nil {
		return nil
	}
	return ev.Context()
}
