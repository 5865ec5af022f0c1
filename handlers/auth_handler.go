package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Dosada05/tournament-dashboard/middleware"
	"github.com/Dosada05/tournament-dashboard/services"
)

type AuthHandler struct {
	sessions  *services.SessionController
	jwtSecret []byte
}

func NewAuthHandler(sessions *services.SessionController, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		sessions:  sessions,
		jwtSecret: []byte(jwtSecret),
	}
}

// Login godoc
// @Summary Вход администратора
// @Tags session
// @Description Проверяет общий пароль и открывает сессию с выключенным режимом редактирования.
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Пароль администратора"
// @Success 200 {object} map[string]interface{} "Токен и состояние сессии"
// @Failure 400 {object} map[string]string "Некорректный запрос"
// @Failure 401 {object} map[string]string "Неверный пароль"
// @Router /session/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input services.LoginInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Password == "" {
		badRequestResponse(w, r, errors.New("password is required"))
		return
	}

	session, err := h.sessions.Login(r.Context(), input.Password)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	token, err := middleware.IssueToken(h.jwtSecret, session.ID, session.ExpiresAt)
	if err != nil {
		serverErrorResponse(w, r, fmt.Errorf("issue token: %w", err))
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"token": token, "session": session}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Status godoc
// @Summary Состояние сессии
// @Tags session
// @Produce json
// @Success 200 {object} services.SessionStatus
// @Failure 401 {object} map[string]string "Сессия не найдена"
// @Security BearerAuth
// @Router /session [get]
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	status, err := h.sessions.Status(sid)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, status, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// EnableEditMode godoc
// @Summary Включить режим редактирования
// @Tags session
// @Produce json
// @Success 200 {object} services.Session
// @Failure 401 {object} map[string]string "Сессия не найдена"
// @Security BearerAuth
// @Router /session/edit-mode [post]
func (h *AuthHandler) EnableEditMode(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	session, err := h.sessions.EnableEditing(sid)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, session, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DisableEditMode godoc
// @Summary Выключить режим редактирования
// @Tags session
// @Produce json
// @Success 200 {object} services.Session
// @Failure 401 {object} map[string]string "Сессия не найдена"
// @Security BearerAuth
// @Router /session/edit-mode [delete]
func (h *AuthHandler) DisableEditMode(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	session, err := h.sessions.DisableEditing(sid)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, session, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Logout godoc
// @Summary Выход администратора
// @Tags session
// @Description При несохранённых изменениях требуется confirm_discard=true. Изменения не сохраняются автоматически.
// @Accept json
// @Produce json
// @Param body body object false "{\"confirm_discard\": true}"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string "Сессия не найдена"
// @Failure 409 {object} map[string]string "Есть несохранённые изменения"
// @Security BearerAuth
// @Router /session/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}

	var input struct {
		ConfirmDiscard bool `json:"confirm_discard"`
	}
	if r.ContentLength != 0 {
		if err := readJSON(w, r, &input); err != nil {
			badRequestResponse(w, r, err)
			return
		}
	}

	if err := h.sessions.Logout(r.Context(), sid, input.ConfirmDiscard); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "logged out"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	sid, err := middleware.GetSessionIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return "", false
	}
	return sid, true
}
