package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/arcosplaya/concierge/internal/api/v1/middleware"
	"github.com/arcosplaya/concierge/internal/services/photos"
	"github.com/arcosplaya/concierge/pkg/httpext"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// multipart framing allowance on top of the image limit
const multipartOverhead = 1 << 20

type PhotoResponse struct {
	Slot   string `json:"slot,omitempty"`
	Handle string `json:"handle"`
	URL    string `json:"url"`
}

// readUpload returns the bytes of the multipart "file" field.
func readUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)

	file, _, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpext.JsonError(w, photos.ErrTooLarge.Error(), http.StatusRequestEntityTooLarge)
			return nil, false
		}
		log.Warn().Err(err).Msg("Photo upload without a file field")
		httpext.JsonError(w, "Missing file", http.StatusBadRequest)
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		httpext.JsonError(w, "Could not read upload", http.StatusBadRequest)
		return nil, false
	}
	return data, true
}

func photoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, photos.ErrTooLarge):
		httpext.JsonError(w, err.Error(), http.StatusRequestEntityTooLarge)
	case errors.Is(err, photos.ErrNotImage):
		httpext.JsonError(w, err.Error(), http.StatusUnsupportedMediaType)
	case errors.Is(err, photos.ErrUnknownSlot), errors.Is(err, photos.ErrHandleNotFound):
		httpext.JsonError(w, err.Error(), http.StatusNotFound)
	default:
		log.Error().Err(err).Msg("Photo operation failed")
		httpext.JsonError(w, "Internal server error", http.StatusInternalServerError)
	}
}

// HandleReplacePhoto swaps the image of /photos/{slot}
func HandleReplacePhoto(photoService *photos.Service, maxBytes int64, w http.ResponseWriter, r *http.Request) {
	data, ok := readUpload(w, r, maxBytes)
	if !ok {
		return
	}

	slot := mux.Vars(r)["slot"]
	h, err := photoService.Replace(middleware.GetSessionID(r), slot, data)
	if err != nil {
		photoError(w, err)
		return
	}

	httpext.JsonResponse(w, http.StatusCreated, PhotoResponse{
		Slot:   slot,
		Handle: string(h),
		URL:    photos.URLPrefix + string(h),
	})
}

func HandleAddGalleryPhoto(photoService *photos.Service, maxBytes int64, w http.ResponseWriter, r *http.Request) {
	data, ok := readUpload(w, r, maxBytes)
	if !ok {
		return
	}

	item, err := photoService.AddGalleryPhoto(middleware.GetSessionID(r), data)
	if err != nil {
		photoError(w, err)
		return
	}

	httpext.JsonResponse(w, http.StatusCreated, item)
}

// HandleGetPhoto serves a live handle. Handles are unguessable and are
// served without a session.
func HandleGetPhoto(photoService *photos.Service, w http.ResponseWriter, r *http.Request) {
	img, err := photoService.Image(photos.Handle(mux.Vars(r)["handle"]))
	if err != nil {
		photoError(w, err)
		return
	}

	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(img.Data)))
	w.Header().Set("Cache-Control", "private, no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img.Data)
}

// HandleReleasePhotos frees every image of the session.
func HandleReleasePhotos(photoService *photos.Service, w http.ResponseWriter, r *http.Request) {
	n := photoService.ReleaseSession(middleware.GetSessionID(r))
	httpext.JsonResponse(w, http.StatusOK, map[string]int{"released": n})
}
