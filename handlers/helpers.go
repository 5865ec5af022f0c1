package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Dosada05/tournament-dashboard/brackets"
	"github.com/Dosada05/tournament-dashboard/models"
	"github.com/Dosada05/tournament-dashboard/services"
	"github.com/go-chi/chi/v5"
)

type jsonResponse map[string]any

func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	maxBytes := 1_048_576 // 1MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case err.Error() == "http: request body too large":
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err) // Паника, т.к. это ошибка программиста (передан не указатель)
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	if err != nil {
		return err
	}

	return nil
}

func errorResponse(w http.ResponseWriter, r *http.Request, status int, message any) {
	env := jsonResponse{"error": message}
	if err := writeJSON(w, status, env, nil); err != nil {
		slog.Error("failed to write error response", slog.String("path", r.URL.Path), slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("internal server error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err))
	message := "the server encountered a problem and could not process your request"
	errorResponse(w, r, http.StatusInternalServerError, message)
}

func badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func notFoundResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusNotFound, message)
}

func conflictResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusConflict, message)
}

func unauthorizedResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusUnauthorized, message)
}

func forbiddenResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusForbidden, message)
}

func serviceUnavailableResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusServiceUnavailable, message)
}

// mapServiceErrorToHTTP преобразует ошибки сервисного слоя в HTTP-ответы
func mapServiceErrorToHTTP(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	// Не найдено
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrTeamNotFound),
		errors.Is(err, services.ErrPlayerNotFound),
		errors.Is(err, services.ErrBracketNotFound),
		errors.Is(err, services.ErrMemberNotFound),
		errors.Is(err, services.ErrMatchNotFound),
		errors.Is(err, services.ErrRoundNotFound),
		errors.Is(err, services.ErrStatNotFound):
		notFoundResponse(w, r, err.Error())

	// Невалидные данные
	case errors.Is(err, services.ErrValidationFailed),
		errors.Is(err, models.ErrUnknownFieldKind),
		errors.Is(err, models.ErrMissingScopedID),
		errors.Is(err, models.ErrInvalidScopedID),
		errors.Is(err, brackets.ErrNotEnoughTeams),
		errors.Is(err, brackets.ErrDuplicateTeam),
		errors.Is(err, brackets.ErrUnknownGenerator):
		badRequestResponse(w, r, err)

	// Сессия и режим редактирования
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrSessionNotFound):
		unauthorizedResponse(w, r, err.Error())
	case errors.Is(err, services.ErrEditModeDisabled):
		forbiddenResponse(w, r, err.Error())

	// Конфликты
	case errors.Is(err, services.ErrDuplicateID),
		errors.Is(err, services.ErrUnsavedChanges),
		errors.Is(err, services.ErrOperationInProgress):
		conflictResponse(w, r, err.Error())

	// Ошибки хранилища: причина в логе, клиенту только тип ошибки
	case errors.Is(err, services.ErrSaveFailed):
		slog.Error("save failed", slog.Any("error", err))
		errorResponse(w, r, http.StatusInternalServerError, services.ErrSaveFailed.Error())
	case errors.Is(err, services.ErrLoadFailed):
		slog.Error("load failed", slog.Any("error", err))
		errorResponse(w, r, http.StatusInternalServerError, services.ErrLoadFailed.Error())

	case errors.Is(err, services.ErrUploadUnavailable):
		serviceUnavailableResponse(w, r, err.Error())

	default:
		serverErrorResponse(w, r, err)
	}
}

func getIDFromURL(r *http.Request, key string) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, key))
	if id == "" {
		return "", fmt.Errorf("missing %s in URL path", key)
	}
	return id, nil
}
