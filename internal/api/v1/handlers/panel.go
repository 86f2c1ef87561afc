package handlers

import (
	"net/http"

	"github.com/arcosplaya/concierge/internal/api/v1/middleware"
	"github.com/arcosplaya/concierge/internal/services/panel"
	"github.com/arcosplaya/concierge/pkg/httpext"
)

type SubmitRequest struct {
	Query    string `json:"query"`
	Language string `json:"language"`
}

type SubmitResponse struct {
	Accepted bool           `json:"accepted"`
	Panel    panel.Snapshot `json:"panel"`
}

func HandlePanelGet(panels *panel.Manager, w http.ResponseWriter, r *http.Request) {
	p := panels.Get(middleware.GetSessionID(r))
	httpext.JsonResponse(w, http.StatusOK, p.Snapshot())
}

func HandlePanelOpen(panels *panel.Manager, w http.ResponseWriter, r *http.Request) {
	p := panels.Get(middleware.GetSessionID(r))
	httpext.JsonResponse(w, http.StatusOK, p.Open())
}

func HandlePanelClose(panels *panel.Manager, w http.ResponseWriter, r *http.Request) {
	p := panels.Get(middleware.GetSessionID(r))
	httpext.JsonResponse(w, http.StatusOK, p.Close())
}

// HandlePanelSubmit dispatches a question. Rejected submissions (blank query,
// closed or busy panel) are not errors: the panel is returned unchanged with
// accepted=false.
func HandlePanelSubmit(panels *panel.Manager, w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	lang, err := requestLanguage(req.Language)
	if err != nil {
		httpext.JsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	p := panels.Get(middleware.GetSessionID(r))
	accepted := p.Submit(r.Context(), req.Query, lang)

	status := http.StatusOK
	if accepted {
		status = http.StatusAccepted
	}
	httpext.JsonResponse(w, status, SubmitResponse{Accepted: accepted, Panel: p.Snapshot()})
}
