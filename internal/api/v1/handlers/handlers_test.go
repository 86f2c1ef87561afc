package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/arcosplaya/concierge/internal/assistant"
	"github.com/arcosplaya/concierge/internal/config"
	"github.com/arcosplaya/concierge/internal/content"
	"github.com/arcosplaya/concierge/internal/services"
	"github.com/arcosplaya/concierge/internal/services/panel"
	"github.com/arcosplaya/concierge/internal/services/site"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const seafoodAnswer = "I recommend La Terraza del Mar for seafood."

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

type MockAsker struct {
	mock.Mock
}

func (m *MockAsker) GetResponse(ctx context.Context, query string, lang content.Language) string {
	return m.Called(ctx, query, lang).String(0)
}

// fakeGemini answers every generateContent call with text.
func fakeGemini(t *testing.T, text string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": text}},
				},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

type testSite struct {
	server *httptest.Server
	cookie *http.Cookie
}

func newTestSite(t *testing.T, generatorURL string) *testSite {
	t.Helper()

	svcs, err := services.InitializeServices(context.Background(), services.Config{
		Concierge: config.ConciergeConfig{
			Provider: config.ProviderGemini,
			Model:    "gemini-2.5-flash",
			APIKey:   "test-key",
			BaseURL:  generatorURL,
		},
		Photos: config.PhotoConfig{MaxBytes: 1 << 10, MaxHandles: 16, TTL: time.Hour},
		Panels: config.PanelConfig{MaxPanels: 16, TTL: time.Hour},
	})
	require.NoError(t, err)
	t.Cleanup(svcs.Close)

	router := mux.NewRouter()
	RegisterV1Routes(router, svcs, RouteConfig{MaxPhotoBytes: 1 << 10})

	ts := &testSite{server: httptest.NewServer(router)}
	t.Cleanup(ts.server.Close)

	resp, err := http.Get(ts.server.URL + "/v1/concierge.js")
	require.NoError(t, err)
	resp.Body.Close()
	for _, c := range resp.Cookies() {
		if c.Name == config.GetSessionCookieName() {
			ts.cookie = c
		}
	}
	require.NotNil(t, ts.cookie, "concierge.js must start a session")

	return ts
}

func (ts *testSite) cookieHeader() string {
	return (&http.Cookie{Name: ts.cookie.Name, Value: ts.cookie.Value}).String()
}

func (ts *testSite) do(t *testing.T, method, path, contentType string, body io.Reader) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, ts.server.URL+path, body)
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.AddCookie(ts.cookie)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (ts *testSite) doJSON(t *testing.T, method, path, body string) *http.Response {
	return ts.do(t, method, path, "application/json", strings.NewReader(body))
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHandleConciergeJS(t *testing.T) {
	ts := newTestSite(t, "")

	resp, err := http.Get(ts.server.URL + "/v1/concierge.js")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	expectedHeaders := map[string]string{
		"Content-Type":  "application/javascript",
		"Cache-Control": "no-cache, no-store, must-revalidate",
		"Pragma":        "no-cache",
		"Expires":       "0",
	}
	for key, expected := range expectedHeaders {
		assert.Equal(t, expected, resp.Header.Get(key), key)
	}

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "window.ArcosConcierge")
}

func TestHandleAsk(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantLang   content.Language
	}{
		{"answered", `{"query":"What restaurants do you recommend?","language":"es"}`, http.StatusOK, content.Spanish},
		{"default language", `{"query":"What restaurants do you recommend?"}`, http.StatusOK, content.English},
		{"language code is case-insensitive", `{"query":"What restaurants do you recommend?","language":"EN"}`, http.StatusOK, content.English},
		{"blank query", `{"query":"   "}`, http.StatusBadRequest, ""},
		{"missing query", `{"language":"en"}`, http.StatusBadRequest, ""},
		{"unsupported language", `{"query":"hola","language":"pt"}`, http.StatusBadRequest, ""},
		{"malformed", `{"query":`, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asker := new(MockAsker)
			if tt.wantLang != "" {
				asker.On("GetResponse", mock.Anything, "What restaurants do you recommend?", tt.wantLang).Return(seafoodAnswer).Once()
			}

			rec := httptest.NewRecorder()
			HandleAsk(asker, rec, httptest.NewRequest(http.MethodPost, "/v1/concierge/ask", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				var resp AskResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, seafoodAnswer, resp.Response)
			}
			asker.AssertExpectations(t)
			if tt.wantLang == "" {
				asker.AssertNotCalled(t, "GetResponse", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestAskRoute(t *testing.T) {
	gen := fakeGemini(t, seafoodAnswer)
	ts := newTestSite(t, gen.URL)

	resp := ts.doJSON(t, http.MethodPost, "/v1/concierge/ask", `{"query":"What restaurants do you recommend?"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, seafoodAnswer, decode[AskResponse](t, resp).Response)
}

func TestAskRouteUnavailable(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(down.Close)
	ts := newTestSite(t, down.URL)

	resp := ts.doJSON(t, http.MethodPost, "/v1/concierge/ask", `{"query":"Any tips?"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.DefaultUnavailableMessage, decode[AskResponse](t, resp).Response)
}

func TestContentRoute(t *testing.T) {
	ts := newTestSite(t, "")

	resp := ts.do(t, http.MethodGet, "/v1/content/fr?category=beach", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	page := decode[site.Page](t, resp)
	assert.Equal(t, content.French, page.Language)
	assert.Equal(t, content.Translate(content.French).Nav.Home, page.Text.Nav.Home)
	require.NotEmpty(t, page.Gallery)
	for _, item := range page.Gallery {
		assert.Equal(t, content.CategoryBeach, item.Category)
	}

	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, "/v1/content/pt", "", nil).StatusCode)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodGet, "/v1/content/en?category=pool", "", nil).StatusCode)
}

func TestPanelRoutes(t *testing.T) {
	gen := fakeGemini(t, seafoodAnswer)
	ts := newTestSite(t, gen.URL)

	snap := decode[panel.Snapshot](t, ts.do(t, http.MethodGet, "/v1/panel", "", nil))
	assert.Equal(t, panel.Idle, snap.State)

	// submitting to a closed panel is a no-op
	resp := ts.doJSON(t, http.MethodPost, "/v1/panel/submit", `{"query":"hello"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, decode[SubmitResponse](t, resp).Accepted)

	snap = decode[panel.Snapshot](t, ts.do(t, http.MethodPost, "/v1/panel/open", "", nil))
	assert.Equal(t, panel.OpenEmpty, snap.State)

	resp = ts.doJSON(t, http.MethodPost, "/v1/panel/submit", `{"query":"  "}`)
	sub := decode[SubmitResponse](t, resp)
	assert.False(t, sub.Accepted)
	assert.Equal(t, panel.OpenEmpty, sub.Panel.State)

	resp = ts.doJSON(t, http.MethodPost, "/v1/panel/submit", `{"query":"What restaurants do you recommend?","language":"EN"}`)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.True(t, decode[SubmitResponse](t, resp).Accepted)

	require.Eventually(t, func() bool {
		resp, err := http.DefaultClient.Do(withCookie(t, ts, http.MethodGet, "/v1/panel"))
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		var s panel.Snapshot
		if json.NewDecoder(resp.Body).Decode(&s) != nil {
			return false
		}
		snap = s
		return s.State == panel.OpenSettled
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, seafoodAnswer, snap.Response)
	assert.False(t, snap.Busy)

	snap = decode[panel.Snapshot](t, ts.do(t, http.MethodPost, "/v1/panel/close", "", nil))
	assert.Equal(t, panel.Idle, snap.State)
	assert.Empty(t, snap.Response)
}

func withCookie(t *testing.T, ts *testSite, method, path string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, ts.server.URL+path, nil)
	require.NoError(t, err)
	req.AddCookie(ts.cookie)
	return req
}

func TestPanelWebSocket(t *testing.T) {
	gen := fakeGemini(t, seafoodAnswer)
	ts := newTestSite(t, gen.URL)

	header := http.Header{}
	header.Add("Cookie", ts.cookieHeader())
	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.server.URL, "http")+"/v1/panel/ws", header)
	require.NoError(t, err)
	defer ws.Close()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(5*time.Second)))

	read := func() assistant.PanelEvent {
		var ev assistant.PanelEvent
		require.NoError(t, ws.ReadJSON(&ev))
		return ev
	}

	ev := read()
	require.Equal(t, assistant.EventSnapshot, ev.Type)
	assert.Equal(t, panel.Idle, ev.Panel.State)

	require.NoError(t, ws.WriteJSON(assistant.PanelCommand{Action: assistant.ActionOpen}))
	ev = read()
	assert.Equal(t, panel.OpenEmpty, ev.Panel.State)

	require.NoError(t, ws.WriteJSON(assistant.PanelCommand{Action: "dance"}))
	assert.Equal(t, assistant.EventError, read().Type)

	require.NoError(t, ws.WriteJSON(assistant.PanelCommand{Action: assistant.ActionSubmit, Query: "What restaurants do you recommend?", Language: "Es"}))

	// the submit reply and the busy snapshot may arrive in either order
	var accepted bool
	var settled *panel.Snapshot
	for settled == nil || !accepted {
		ev = read()
		switch {
		case ev.Type == assistant.EventSubmit:
			accepted = *ev.Accepted
		case ev.Panel != nil && ev.Panel.State == panel.OpenSettled:
			settled = ev.Panel
		}
	}

	assert.True(t, accepted)
	assert.Equal(t, uint64(1), settled.RequestID)
	assert.Equal(t, seafoodAnswer, settled.Response)

	// the HTTP view shares the same panel
	snap := decode[panel.Snapshot](t, ts.do(t, http.MethodGet, "/v1/panel", "", nil))
	assert.Equal(t, panel.OpenSettled, snap.State)
}

func TestPanelWebSocketRejectsForeignOrigin(t *testing.T) {
	ts := newTestSite(t, "")

	header := http.Header{}
	header.Add("Cookie", ts.cookieHeader())
	header.Add("Origin", "https://evil.example")
	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.server.URL, "http")+"/v1/panel/ws", header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func multipartFile(t *testing.T, data []byte) (string, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "upload.png")
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return mw.FormDataContentType(), &buf
}

func TestPhotoRoutes(t *testing.T) {
	ts := newTestSite(t, "")

	ct, body := multipartFile(t, pngBytes)
	resp := ts.do(t, http.MethodPost, "/v1/photos/hero", ct, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	hero := decode[PhotoResponse](t, resp)
	assert.Equal(t, "hero", hero.Slot)

	img, err := http.Get(ts.server.URL + hero.URL)
	require.NoError(t, err)
	defer img.Body.Close()
	assert.Equal(t, http.StatusOK, img.StatusCode)
	assert.Equal(t, "image/png", img.Header.Get("Content-Type"))
	served, err := io.ReadAll(img.Body)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, served)

	ct, body = multipartFile(t, pngBytes)
	resp = ts.do(t, http.MethodPost, "/v1/photos/gallery", ct, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	item := decode[content.GalleryItem](t, resp)
	assert.Equal(t, "Uploaded Photo", item.Title)

	ct, body = multipartFile(t, pngBytes)
	assert.Equal(t, http.StatusCreated, ts.do(t, http.MethodPost, "/v1/photos/food/2", ct, body).StatusCode)

	page := decode[site.Page](t, ts.do(t, http.MethodGet, "/v1/content/en", "", nil))
	assert.Equal(t, hero.URL, page.Catalog.HeroImage)
	assert.Equal(t, item.ID, page.Gallery[0].ID)
	assert.True(t, strings.HasPrefix(page.Catalog.Food[1].Image, "/v1/photos/"))

	ct, body = multipartFile(t, []byte("plain text notes"))
	assert.Equal(t, http.StatusUnsupportedMediaType, ts.do(t, http.MethodPost, "/v1/photos/hero", ct, body).StatusCode)

	ct, body = multipartFile(t, pngBytes)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodPost, "/v1/photos/pool", ct, body).StatusCode)

	ct, body = multipartFile(t, append(append([]byte(nil), pngBytes...), make([]byte, 2<<10)...))
	assert.Equal(t, http.StatusRequestEntityTooLarge, ts.do(t, http.MethodPost, "/v1/photos/hero", ct, body).StatusCode)

	released := decode[map[string]int](t, ts.do(t, http.MethodDelete, "/v1/photos", "", nil))
	assert.Equal(t, 3, released["released"])

	gone, err := http.Get(ts.server.URL + hero.URL)
	require.NoError(t, err)
	gone.Body.Close()
	assert.Equal(t, http.StatusNotFound, gone.StatusCode)
}

func TestContactRoute(t *testing.T) {
	ts := newTestSite(t, "")

	resp := ts.doJSON(t, http.MethodPost, "/v1/contact", `{"name":"Hans","email":"hans@example.de","message":"Parking available?","language":"de"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, decode[ContactResponse](t, resp).ID)

	resp = ts.doJSON(t, http.MethodPost, "/v1/contact", `{"name":"Hans","email":"nope","message":"x"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = ts.doJSON(t, http.MethodPost, "/v1/contact", `not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEndSession(t *testing.T) {
	ts := newTestSite(t, "")

	ct, body := multipartFile(t, pngBytes)
	hero := decode[PhotoResponse](t, ts.do(t, http.MethodPost, "/v1/photos/hero", ct, body))
	ts.do(t, http.MethodPost, "/v1/panel/open", "", nil)

	resp := ts.do(t, http.MethodDelete, "/v1/session", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decode[map[string]int](t, resp)["released"])

	gone, err := http.Get(ts.server.URL + hero.URL)
	require.NoError(t, err)
	gone.Body.Close()
	assert.Equal(t, http.StatusNotFound, gone.StatusCode)

	// the old cookie no longer names a session; a fresh one is issued
	resp = ts.do(t, http.MethodGet, "/v1/panel", "", nil)
	assert.Equal(t, panel.Idle, decode[panel.Snapshot](t, resp).State)
	assert.NotEmpty(t, resp.Cookies())
}
