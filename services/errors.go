package services

import "errors"

// Ошибки сервисного слоя, используемые в маппинге HTTP.
var (
	// Ресурс не найден
	ErrNotFound        = errors.New("requested resource not found")
	ErrTeamNotFound    = errors.New("team not found")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrBracketNotFound = errors.New("bracket not found")
	ErrMemberNotFound  = errors.New("team member not found")
	ErrMatchNotFound   = errors.New("bracket match not found")
	ErrRoundNotFound   = errors.New("bracket round not found")
	ErrStatNotFound    = errors.New("stat not found")

	// Ошибки валидации
	ErrValidationFailed = errors.New("validation failed")
	ErrDuplicateID      = errors.New("an entity with this id already exists")

	// Ошибки сессии и режима редактирования
	ErrInvalidCredentials = errors.New("invalid admin password")
	ErrSessionNotFound    = errors.New("admin session not found or expired")
	ErrEditModeDisabled   = errors.New("edit mode is not enabled for this session")
	ErrUnsavedChanges     = errors.New("there are unsaved changes; confirm to log out without saving")

	// Ошибки хранилища
	ErrOperationInProgress = errors.New("another load or save is in progress")
	ErrLoadFailed          = errors.New("failed to load dashboard data; showing built-in defaults")
	ErrSaveFailed          = errors.New("failed to save dashboard data")
	ErrUploadUnavailable   = errors.New("media uploads are not configured")
)
