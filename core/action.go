package core

import "context"

// Action represents a batch action that can be performed on selected records.
type Action struct {
	// ID is the unique identifier for the action (used in URLs)
	ID string `json:"id"`

	// Title is the display name shown in the UI
	Title string `json:"title"`

	// Confirmation, when non-empty, is shown to the user before dispatch
	Confirmation string `json:"confirmation,omitempty"`

	// Handler executes when the action is triggered. It receives the
	// primary keys of the selected records and returns a message for the UI.
	Handler func(ctx context.Context, pks []any) (string, error) `json:"-"`
}

// RowAction represents an action performed on a single record.
type RowAction struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Confirmation string `json:"confirmation,omitempty"`

	Handler func(ctx context.Context, pk any) (string, error) `json:"-"`
}

// ActionBuilder provides a fluent API for configuring batch actions
type ActionBuilder struct {
	action Action
}

// NewAction creates a new action builder
func NewAction(id, title string, handler func(ctx context.Context, pks []any) (string, error)) *ActionBuilder {
	return &ActionBuilder{
		action: Action{ID: id, Title: title, Handler: handler},
	}
}

// Confirm sets a confirmation prompt shown before the action runs
func (ab *ActionBuilder) Confirm(text string) *ActionBuilder {
	ab.action.Confirmation = text
	return ab
}

// Build returns the built action
func (ab *ActionBuilder) Build() Action {
	return ab.action
}

// RowActionBuilder provides a fluent API for configuring row actions
type RowActionBuilder struct {
	action RowAction
}

// NewRowAction creates a new row action builder
func NewRowAction(id, title string, handler func(ctx context.Context, pk any) (string, error)) *RowActionBuilder {
	return &RowActionBuilder{
		action: RowAction{ID: id, Title: title, Handler: handler},
	}
}

// Confirm sets a confirmation prompt shown before the action runs
func (rb *RowActionBuilder) Confirm(text string) *RowActionBuilder {
	rb.action.Confirmation = text
	return rb
}

// Build returns the built row action
func (rb *RowActionBuilder) Build() RowAction {
	return rb.action
}
