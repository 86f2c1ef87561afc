package assistant

import "github.com/arcosplaya/concierge/internal/services/panel"

// PanelCommand is an incoming message on the panel websocket
type PanelCommand struct {
	Action   string `json:"action" validate:"required,oneof=open close submit"`
	Query    string `json:"query,omitempty"`
	Language string `json:"language,omitempty"`
}

// PanelEvent is an outgoing message on the panel websocket
type PanelEvent struct {
	Type     string          `json:"type"`
	Panel    *panel.Snapshot `json:"panel,omitempty"`
	Accepted *bool           `json:"accepted,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// Command actions
const (
	ActionOpen   = "open"
	ActionClose  = "close"
	ActionSubmit = "submit"
)

// Event types
const (
	EventSnapshot = "snapshot"
	EventSubmit   = "submit"
	EventError    = "error"
)

func SnapshotEvent(s panel.Snapshot) PanelEvent {
	return PanelEvent{Type: EventSnapshot, Panel: &s}
}

func SubmitEvent(accepted bool) PanelEvent {
	return PanelEvent{Type: EventSubmit, Accepted: &accepted}
}

func ErrorEvent(msg string) PanelEvent {
	return PanelEvent{Type: EventError, Error: msg}
}
