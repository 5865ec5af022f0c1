package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Dosada05/tournament-dashboard/models"
	"github.com/Dosada05/tournament-dashboard/services"
)

// TeamHandler serves admin writes on teams, including logo uploads.
type TeamHandler struct {
	adminService services.AdminService
	mediaService services.MediaService
}

func NewTeamHandler(as services.AdminService, ms services.MediaService) *TeamHandler {
	return &TeamHandler{
		adminService: as,
		mediaService: ms,
	}
}

func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	var input models.Team
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.adminService.CreateTeam(r.Context(), sid, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TeamHandler) ReplaceTeam(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input models.Team
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.ID != "" && input.ID != teamID {
		badRequestResponse(w, r, errors.New("team id in body does not match URL"))
		return
	}
	input.ID = teamID

	team, err := h.adminService.ReplaceTeam(r.Context(), sid, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TeamHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.adminService.DeleteTeam(r.Context(), sid, teamID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadTeamLogo godoc
// @Summary Загрузить логотип команды
// @Tags teams
// @Accept multipart/form-data
// @Produce json
// @Param teamID path string true "Team ID"
// @Param logo formData file true "Логотип (png, jpeg, gif, webp)"
// @Success 200 {object} map[string]interface{} "Команда с новым логотипом"
// @Failure 400 {object} map[string]string "Некорректный файл"
// @Failure 403 {object} map[string]string "Режим редактирования выключен"
// @Failure 404 {object} map[string]string "Команда не найдена"
// @Failure 503 {object} map[string]string "Загрузка не настроена"
// @Security BearerAuth
// @Router /teams/{teamID}/logo [post]
func (h *TeamHandler) UploadTeamLogo(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	input, cleanup, err := readUpload(w, r, "logo")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	defer cleanup()

	team, err := h.mediaService.UploadTeamLogo(r.Context(), sid, teamID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// readUpload pulls one file from a multipart form.
func readUpload(w http.ResponseWriter, r *http.Request, field string) (services.UploadInput, func(), error) {
	r.Body = http.MaxBytesReader(w, r.Body, services.MaxUploadSize+1<<20)
	if err := r.ParseMultipartForm(services.MaxUploadSize); err != nil {
		return services.UploadInput{}, nil, fmt.Errorf("failed to parse multipart form: %w", err)
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return services.UploadInput{}, nil, fmt.Errorf("failed to get %s file from form: %w", field, err)
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		file.Close()
		return services.UploadInput{}, nil, fmt.Errorf("content-type header is required for %s", field)
	}

	cleanup := func() {
		file.Close()
		if r.MultipartForm != nil {
			r.MultipartForm.RemoveAll()
		}
	}
	return services.UploadInput{ContentType: contentType, Body: file}, cleanup, nil
}
