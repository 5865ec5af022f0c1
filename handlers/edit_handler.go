package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/tournament-dashboard/models"
	"github.com/Dosada05/tournament-dashboard/services"
)

type EditHandler struct {
	sessions *services.SessionController
}

func NewEditHandler(sessions *services.SessionController) *EditHandler {
	return &EditHandler{sessions: sessions}
}

// EditInput carries one edited cell. Either Attributes (the element's
// data-* attributes as rendered) or Type plus IDs must be set.
type EditInput struct {
	Type       string            `json:"type,omitempty"`
	IDs        models.ScopedIDs  `json:"ids"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Content    string            `json:"content"`
}

// ApplyEdit godoc
// @Summary Применить правку поля
// @Tags edits
// @Description Записывает новый текст в поле, указанное дескриптором. Числа разбираются нестрого: ошибка разбора не отклоняет правку.
// @Accept json
// @Produce json
// @Param body body EditInput true "Дескриптор поля и новое содержимое"
// @Success 200 {object} services.EditResult
// @Failure 400 {object} map[string]string "Неизвестный тип поля или нет нужного ID"
// @Failure 401 {object} map[string]string "Сессия не найдена"
// @Failure 403 {object} map[string]string "Режим редактирования выключен"
// @Failure 404 {object} map[string]string "Объект не найден"
// @Failure 409 {object} map[string]string "Идёт загрузка или сохранение"
// @Security BearerAuth
// @Router /edits [post]
func (h *EditHandler) ApplyEdit(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}

	var input EditInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var (
		fd  models.FieldDescriptor
		err error
	)
	switch {
	case input.Attributes != nil:
		fd, err = models.FieldDescriptorFromAttributes(input.Attributes)
	case input.Type != "":
		fd, err = models.ParseFieldDescriptor(input.Type, input.IDs)
	default:
		err = errors.New("either type or attributes is required")
	}
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	res, err := h.sessions.ApplyEdit(r.Context(), sid, fd, input.Content)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, res, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Save godoc
// @Summary Сохранить изменения
// @Tags edits
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string "Сессия не найдена"
// @Failure 409 {object} map[string]string "Идёт загрузка или сохранение"
// @Failure 500 {object} map[string]string "Ошибка сохранения, изменения сохранены в памяти"
// @Security BearerAuth
// @Router /save [post]
func (h *EditHandler) Save(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	if err := h.sessions.Save(r.Context(), sid); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "saved"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Discard godoc
// @Summary Отменить изменения
// @Tags edits
// @Description Перезагружает данные из хранилища. При ошибке загрузки показываются встроенные данные по умолчанию.
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string "Сессия не найдена"
// @Failure 409 {object} map[string]string "Идёт загрузка или сохранение"
// @Failure 500 {object} map[string]string "Ошибка загрузки"
// @Security BearerAuth
// @Router /discard [post]
func (h *EditHandler) Discard(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	if err := h.sessions.Discard(r.Context(), sid); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "changes discarded"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
