package handlers

import (
	"errors"
	"net/http"

	"github.com/arcosplaya/concierge/internal/services/contact"
	"github.com/arcosplaya/concierge/pkg/httpext"
	"github.com/rs/zerolog/log"
)

type ContactResponse struct {
	ID string `json:"id"`
}

// HandleContact validates inside the contact service so the rules live in one place.
func HandleContact(contactService *contact.Service, w http.ResponseWriter, r *http.Request) {
	var req contact.Request
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := decodeBody(r, &req); err != nil {
		log.Warn().Err(err).Msg("Client sent malformed contact request")
		httpext.JsonError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	sub, err := contactService.Submit(r.Context(), req)
	if errors.Is(err, contact.ErrInvalidRequest) {
		httpext.JsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to store contact request")
		httpext.JsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	httpext.JsonResponse(w, http.StatusCreated, ContactResponse{ID: sub.ID})
}
