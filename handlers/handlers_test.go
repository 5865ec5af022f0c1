package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/tournament-dashboard/handlers"
	"github.com/Dosada05/tournament-dashboard/realtime"
	"github.com/Dosada05/tournament-dashboard/repositories"
	"github.com/Dosada05/tournament-dashboard/routes"
	"github.com/Dosada05/tournament-dashboard/services"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

const (
	adminPassword = "let-me-in"
	jwtSecret     = "test-secret"
)

type testApp struct {
	server *httptest.Server
	store  *services.EntityStore
	hub    *realtime.Hub
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := services.NewEntityStore()
	gateway := services.NewPersistenceGateway(repositories.NewMemoryDocumentStore(0), store, logger)
	if err := gateway.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	hub := realtime.NewHub(logger)
	go hub.Run(ctx)

	auth, err := services.NewAuthService(adminPassword)
	if err != nil {
		t.Fatalf("NewAuthService() error = %v", err)
	}
	sessions := services.NewSessionController(auth, store, gateway, hub, time.Hour, logger)
	admin := services.NewAdminService(store, sessions, hub)
	media := services.NewMediaService(store, sessions, nil, hub, logger)

	router := chi.NewRouter()
	routes.SetupRoutes(router, []byte(jwtSecret), []string{"*"},
		handlers.NewAuthHandler(sessions, jwtSecret),
		handlers.NewDashboardHandler(services.NewDashboardService(store)),
		handlers.NewEditHandler(sessions),
		handlers.NewTeamHandler(admin, media),
		handlers.NewPlayerHandler(admin, media),
		handlers.NewBracketHandler(admin, services.NewBracketService(store, sessions, hub)),
		handlers.NewWebSocketHandler(hub, store, []string{"*"}, logger),
	)

	server := httptest.NewServer(router)
	t.Cleanup(func() {
		server.Close()
		cancel()
	})
	return &testApp{server: server, store: store, hub: hub}
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, a.server.URL+path, reader)
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return a.send(t, req)
}

func (a *testApp) send(t *testing.T, req *http.Request) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	var out map[string]any
	raw, _ := io.ReadAll(resp.Body)
	if len(bytes.TrimSpace(raw)) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return resp, out
}

func (a *testApp) login(t *testing.T) string {
	t.Helper()
	resp, body := a.do(t, http.MethodPost, "/api/session/login", "", map[string]string{"password": adminPassword})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, body %v", resp.StatusCode, body)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("login returned no token: %v", body)
	}
	return token
}

func expectStatus(t *testing.T, resp *http.Response, body map[string]any, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("%s %s status = %d, want %d (body %v)", resp.Request.Method, resp.Request.URL.Path, resp.StatusCode, want, body)
	}
}

func TestPublicReads(t *testing.T) {
	app := newTestApp(t)

	resp, body := app.do(t, http.MethodGet, "/api/dashboard", "", nil)
	expectStatus(t, resp, body, http.StatusOK)
	if body["hasChanges"] != false {
		t.Errorf("hasChanges = %v, want false", body["hasChanges"])
	}
	if info, _ := body["competitionInfo"].(map[string]any); info["title"] != "东华杯" {
		t.Errorf("competitionInfo = %v", body["competitionInfo"])
	}

	resp, body = app.do(t, http.MethodGet, "/api/teams/ghost", "", nil)
	expectStatus(t, resp, body, http.StatusNotFound)

	resp, body = app.do(t, http.MethodGet, "/api/players/ITZY_BaiLu", "", nil)
	expectStatus(t, resp, body, http.StatusOK)
	if body["avatarClass"] != "hunter-avatar" {
		t.Errorf("avatarClass = %v", body["avatarClass"])
	}

	resp, body = app.do(t, http.MethodGet, "/healthz", "", nil)
	expectStatus(t, resp, body, http.StatusOK)
}

func TestAuthRequired(t *testing.T) {
	app := newTestApp(t)

	resp, body := app.do(t, http.MethodPost, "/api/edits", "", map[string]string{"type": "competition-title", "content": "x"})
	expectStatus(t, resp, body, http.StatusUnauthorized)

	resp, body = app.do(t, http.MethodPost, "/api/save", "not-a-jwt", nil)
	expectStatus(t, resp, body, http.StatusUnauthorized)

	resp, body = app.do(t, http.MethodPost, "/api/session/login", "", map[string]string{"password": "nope"})
	expectStatus(t, resp, body, http.StatusUnauthorized)
}

func TestEditSaveLogoutFlow(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t)

	edit := map[string]any{"type": "team-name", "ids": map[string]string{"teamId": "itzy"}, "content": "ITZY战队"}

	resp, body := app.do(t, http.MethodPost, "/api/edits", token, edit)
	expectStatus(t, resp, body, http.StatusForbidden)

	resp, body = app.do(t, http.MethodPost, "/api/session/edit-mode", token, nil)
	expectStatus(t, resp, body, http.StatusOK)
	if body["state"] != string(services.StateEditing) {
		t.Errorf("state = %v", body["state"])
	}

	resp, body = app.do(t, http.MethodPost, "/api/edits", token, edit)
	expectStatus(t, resp, body, http.StatusOK)
	if body["mutated"] != true {
		t.Errorf("edit result = %v", body)
	}

	resp, body = app.do(t, http.MethodGet, "/api/teams/itzy", "", nil)
	expectStatus(t, resp, body, http.StatusOK)
	if body["name"] != "ITZY战队" {
		t.Errorf("team name = %v", body["name"])
	}

	resp, body = app.do(t, http.MethodPost, "/api/edits", token, map[string]any{"type": "mystery", "content": "x"})
	expectStatus(t, resp, body, http.StatusBadRequest)

	resp, body = app.do(t, http.MethodPost, "/api/edits", token, map[string]any{
		"attributes": map[string]string{"data-type": "match-team1-score", "data-match-id": "match1"},
		"content":    "2",
	})
	expectStatus(t, resp, body, http.StatusOK)

	resp, body = app.do(t, http.MethodGet, "/api/session", token, nil)
	expectStatus(t, resp, body, http.StatusOK)
	if body["has_changes"] != true {
		t.Errorf("session status = %v", body)
	}

	resp, body = app.do(t, http.MethodPost, "/api/session/logout", token, nil)
	expectStatus(t, resp, body, http.StatusConflict)

	resp, body = app.do(t, http.MethodPost, "/api/save", token, nil)
	expectStatus(t, resp, body, http.StatusOK)
	if app.store.HasChanges() {
		t.Errorf("store dirty after save")
	}

	resp, body = app.do(t, http.MethodPost, "/api/session/logout", token, nil)
	expectStatus(t, resp, body, http.StatusOK)

	resp, body = app.do(t, http.MethodGet, "/api/session", token, nil)
	expectStatus(t, resp, body, http.StatusUnauthorized)
}

func TestDiscardRestoresSavedData(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t)
	app.do(t, http.MethodPost, "/api/session/edit-mode", token, nil)

	resp, body := app.do(t, http.MethodPost, "/api/edits", token, map[string]any{"type": "location-value", "content": "线上"})
	expectStatus(t, resp, body, http.StatusOK)

	resp, body = app.do(t, http.MethodPost, "/api/discard", token, nil)
	expectStatus(t, resp, body, http.StatusOK)

	if got := app.store.CompetitionInfo().Location; got == "线上" {
		t.Errorf("discard kept the local edit")
	}

	resp, body = app.do(t, http.MethodPost, "/api/session/logout", token, map[string]bool{"confirm_discard": false})
	expectStatus(t, resp, body, http.StatusOK)
}

func TestTeamCRUD(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t)
	app.do(t, http.MethodPost, "/api/session/edit-mode", token, nil)

	resp, body := app.do(t, http.MethodPost, "/api/teams", token, map[string]any{"id": "newbie", "name": "新队"})
	expectStatus(t, resp, body, http.StatusCreated)

	resp, body = app.do(t, http.MethodPost, "/api/teams", token, map[string]any{"id": "newbie", "name": "again"})
	expectStatus(t, resp, body, http.StatusConflict)

	resp, body = app.do(t, http.MethodPut, "/api/teams/newbie", token, map[string]any{"id": "other", "name": "x"})
	expectStatus(t, resp, body, http.StatusBadRequest)

	resp, body = app.do(t, http.MethodPut, "/api/teams/newbie", token, map[string]any{"id": "newbie", "name": "改名"})
	expectStatus(t, resp, body, http.StatusOK)

	resp, body = app.do(t, http.MethodDelete, "/api/teams/newbie", token, nil)
	expectStatus(t, resp, body, http.StatusNoContent)

	resp, body = app.do(t, http.MethodGet, "/api/teams/newbie", "", nil)
	expectStatus(t, resp, body, http.StatusNotFound)
}

func TestGenerateBracketEndpoint(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t)
	app.do(t, http.MethodPost, "/api/session/edit-mode", token, nil)

	resp, body := app.do(t, http.MethodPost, "/api/brackets/generate", token, map[string]any{
		"id": "cup", "name": "杯赛", "teams": []string{"A", "B", "C", "D"},
	})
	expectStatus(t, resp, body, http.StatusCreated)

	resp, body = app.do(t, http.MethodGet, "/api/brackets/cup", "", nil)
	expectStatus(t, resp, body, http.StatusOK)
	if rounds, _ := body["rounds"].([]any); len(rounds) != 3 {
		t.Errorf("rounds = %d, want 3", len(rounds))
	}

	resp, body = app.do(t, http.MethodPost, "/api/brackets/generate", token, map[string]any{
		"name": "x", "teams": []string{"solo"},
	})
	expectStatus(t, resp, body, http.StatusBadRequest)
}

func TestLogoUploadWithoutStorage(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t)
	app.do(t, http.MethodPost, "/api/session/edit-mode", token, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="logo"; filename="logo.png"`)
	header.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatalf("CreatePart() error = %v", err)
	}
	part.Write([]byte("\x89PNG"))
	mw.Close()

	req, err := http.NewRequest(http.MethodPost, app.server.URL+"/api/teams/itzy/logo", &buf)
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, body := app.send(t, req)
	expectStatus(t, resp, body, http.StatusServiceUnavailable)
}

func TestWebSocketReceivesNotifications(t *testing.T) {
	app := newTestApp(t)

	wsURL := "ws" + strings.TrimPrefix(app.server.URL, "http") + "/ws/dashboard"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	var msg realtime.WebSocketMessage
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read welcome: %v", err)
	}
	if msg.Type != realtime.MessageWelcome {
		t.Fatalf("first message type = %q, want %q", msg.Type, realtime.MessageWelcome)
	}

	deadline := time.Now().Add(5 * time.Second)
	for app.hub.ClientCount(realtime.DashboardRoom) == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("client never joined the dashboard room")
		}
		time.Sleep(10 * time.Millisecond)
	}

	token := app.login(t)
	app.do(t, http.MethodPost, "/api/session/edit-mode", token, nil)
	resp, body := app.do(t, http.MethodPost, "/api/edits", token, map[string]any{"type": "team1-stat-value-0", "content": "5/5"})
	expectStatus(t, resp, body, http.StatusOK)

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read notification: %v", err)
	}
	payload, _ := msg.Payload.(map[string]any)
	if msg.Type != realtime.MessageNotification || payload["event"] != services.EventEditApplied {
		t.Errorf("notification = %+v", msg)
	}
	if refresh, _ := payload["refresh"].([]any); len(refresh) != 1 || refresh[0] != services.RefreshProgressBars {
		t.Errorf("refresh hints = %v", payload["refresh"])
	}
}
