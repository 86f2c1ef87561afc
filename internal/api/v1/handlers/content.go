package handlers

import (
	"net/http"

	"github.com/arcosplaya/concierge/internal/api/v1/middleware"
	"github.com/arcosplaya/concierge/internal/content"
	"github.com/arcosplaya/concierge/internal/services/site"
	"github.com/arcosplaya/concierge/pkg/httpext"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// HandleContent returns the page for /content/{lang}?category=
func HandleContent(siteService *site.Service, w http.ResponseWriter, r *http.Request) {
	lang, err := content.ParseLanguage(mux.Vars(r)["lang"])
	if err != nil {
		httpext.JsonError(w, err.Error(), http.StatusNotFound)
		return
	}

	category, err := content.ParseCategory(r.URL.Query().Get("category"))
	if err != nil {
		httpext.JsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	page := siteService.Page(middleware.GetSessionID(r), lang, category)

	log.Debug().
		Str("language", lang.String()).
		Str("category", string(category)).
		Int("gallery_items", len(page.Gallery)).
		Msg("Serving page content")

	httpext.JsonResponse(w, http.StatusOK, page)
}
