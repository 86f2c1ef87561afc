package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/arcosplaya/concierge/internal/content"
	"github.com/arcosplaya/concierge/internal/services/concierge"
	"github.com/arcosplaya/concierge/pkg/httpext"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

const maxBodyBytes = 64 << 10

// use a single instance of Validate, it caches struct info
var validate = validator.New(validator.WithRequiredStructEnabled())

type AskRequest struct {
	Query    string `json:"query" validate:"required,max=2000"`
	Language string `json:"language"`
}

type AskResponse struct {
	Response string `json:"response"`
}

// requestLanguage defaults a blank language to English.
func requestLanguage(s string) (content.Language, error) {
	if s == "" {
		return content.DefaultLanguage, nil
	}
	return content.ParseLanguage(s)
}

func decodeBody(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := decodeBody(r, v); err != nil {
		log.Warn().Err(err).Str("path", r.URL.Path).Msg("Client sent malformed JSON request")
		httpext.JsonError(w, "Invalid request format", http.StatusBadRequest)
		return false
	}

	if err := validate.Struct(v); err != nil {
		log.Warn().Err(err).Str("path", r.URL.Path).Msg("Request validation failed")
		httpext.JsonError(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return false
	}

	return true
}

// HandleAsk runs one stateless concierge exchange. It always answers 200;
// failures surface as the fallback text.
func HandleAsk(asker concierge.Asker, w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		httpext.JsonError(w, "Query must not be blank", http.StatusBadRequest)
		return
	}

	lang, err := requestLanguage(req.Language)
	if err != nil {
		httpext.JsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	httpext.JsonResponse(w, http.StatusOK, AskResponse{
		Response: asker.GetResponse(r.Context(), req.Query, lang),
	})
}
