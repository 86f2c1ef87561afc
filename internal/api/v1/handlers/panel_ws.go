package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/arcosplaya/concierge/internal/api/v1/middleware"
	"github.com/arcosplaya/concierge/internal/assistant"
	"github.com/arcosplaya/concierge/internal/connections"
	"github.com/arcosplaya/concierge/internal/services/panel"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// NewUpgrader accepts the listed origins, or only the request's own host
// when none are configured. Requests without an Origin header are allowed.
func NewUpgrader(allowedOrigins []string) *websocket.Upgrader {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[strings.TrimRight(strings.ToLower(o), "/")] = true
	}

	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			if len(allowed) > 0 {
				return allowed[strings.ToLower(origin)]
			}
			u, err := url.Parse(origin)
			return err == nil && strings.EqualFold(u.Host, r.Host)
		},
	}
}

// HandlePanelWebSocket streams panel snapshots and accepts open, close and
// submit commands. Every tab of a session shares the same panel.
func HandlePanelWebSocket(panels *panel.Manager, conns *connections.Manager, upgrader *websocket.Upgrader, w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("Panel websocket upgrade failed")
		return
	}

	conns.AddConnection(sessionID, conn)
	defer func() {
		conns.RemoveConnection(sessionID, conn)
		conn.Close()
	}()

	timeouts := conns.GetTimeouts()
	p := panels.Get(sessionID)
	updates, unsubscribe := p.Subscribe()
	defer unsubscribe()

	log.Info().Str("session_id", sessionID).Msg("Panel websocket connected")

	// replies carries command results to the single writer
	replies := make(chan assistant.PanelEvent, 8)
	done := make(chan struct{})
	defer close(done)

	go writePanelEvents(conn, timeouts, updates, replies, done)

	_ = conn.SetReadDeadline(time.Now().Add(timeouts.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(timeouts.PongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("session_id", sessionID).Msg("Panel websocket closed unexpectedly")
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(timeouts.PongWait))

		if reply, ok := handlePanelCommand(p, r, data); ok {
			select {
			case replies <- reply:
			default:
				log.Warn().Str("session_id", sessionID).Msg("Dropping panel reply for slow client")
			}
		}
	}
}

// handlePanelCommand applies one command. State changes reach the client
// through the subscription; only submit results and errors are replied.
func handlePanelCommand(p *panel.Panel, r *http.Request, data []byte) (assistant.PanelEvent, bool) {
	var cmd assistant.PanelCommand
	if err := json.Unmarshal(data, &cmd); err != nil {
		return assistant.ErrorEvent("Invalid message format"), true
	}
	if err := validate.Struct(cmd); err != nil {
		return assistant.ErrorEvent("Invalid command"), true
	}

	switch cmd.Action {
	case assistant.ActionOpen:
		p.Open()
	case assistant.ActionClose:
		p.Close()
	case assistant.ActionSubmit:
		lang, err := requestLanguage(cmd.Language)
		if err != nil {
			return assistant.ErrorEvent(err.Error()), true
		}
		return assistant.SubmitEvent(p.Submit(r.Context(), cmd.Query, lang)), true
	}
	return assistant.PanelEvent{}, false
}

func writePanelEvents(conn *websocket.Conn, timeouts connections.TimeoutConfig, updates <-chan panel.Snapshot, replies <-chan assistant.PanelEvent, done <-chan struct{}) {
	ticker := time.NewTicker(timeouts.PingPeriod)
	defer ticker.Stop()

	write := func(ev assistant.PanelEvent) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(timeouts.WriteWait))
		return conn.WriteJSON(ev) == nil
	}

	for {
		select {
		case snap, ok := <-updates:
			if !ok {
				// panel expired; end the connection
				msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "panel expired")
				_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(timeouts.WriteWait))
				_ = conn.Close()
				return
			}
			if !write(assistant.SnapshotEvent(snap)) {
				return
			}
		case reply := <-replies:
			if !write(reply) {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(timeouts.WriteWait)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
