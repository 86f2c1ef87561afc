package handlers

import (
	"net/http"

	"github.com/arcosplaya/concierge/internal/services/session"
	"github.com/rs/zerolog/log"
)

const conciergeJS = `(function () {
  var api = "/v1";
  window.ArcosConcierge = {
    api: api,
    content: function (lang, category) {
      var q = category ? "?category=" + encodeURIComponent(category) : "";
      return fetch(api + "/content/" + lang + q, { credentials: "include" }).then(function (r) { return r.json(); });
    },
    panel: function () {
      var scheme = location.protocol === "https:" ? "wss://" : "ws://";
      return new WebSocket(scheme + location.host + api + "/panel/ws");
    }
  };
})();
`

// HandleConciergeJS serves the bootstrap script and starts the visitor's session.
func HandleConciergeJS(sessionService *session.Service, w http.ResponseWriter, r *http.Request) {
	log.Info().
		Str("client_ip", r.RemoteAddr).
		Str("user_agent", r.UserAgent()).
		Msg("concierge.js requested")

	claims, err := sessionService.EnsureSession(w, r)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create session for concierge.js")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/javascript")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")

	if _, err := w.Write([]byte(conciergeJS)); err != nil {
		return
	}

	log.Debug().
		Str("session_id", claims.SessionID).
		Int("content_length", len(conciergeJS)).
		Msg("concierge.js served")
}
