package handlers

import (
	"net/http"

	"github.com/arcosplaya/concierge/internal/services"
	"github.com/arcosplaya/concierge/pkg/httpext"
	"github.com/rs/zerolog/log"
)

// HandleEndSession tears a visitor's page down: the panel, its sockets, the
// uploaded photos and the session itself.
func HandleEndSession(svcs *services.Services, w http.ResponseWriter, r *http.Request) {
	sessionID := svcs.GetSessionService().ClearSession(w, r)
	if sessionID == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	svcs.GetPanelManager().Remove(sessionID)
	sockets := svcs.GetConnectionsManager().CloseSession(sessionID)
	released := svcs.GetPhotoService().ReleaseSession(sessionID)

	log.Info().
		Str("session_id", sessionID).
		Int("sockets", sockets).
		Int("photos", released).
		Msg("Visitor session ended")

	httpext.JsonResponse(w, http.StatusOK, map[string]int{"released": released})
}
