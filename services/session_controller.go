package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Dosada05/tournament-dashboard/models"
	"github.com/google/uuid"
)

type SessionState string

const (
	StateLoggedOut    SessionState = "logged_out"
	StateEditDisabled SessionState = "edit_disabled"
	StateEditing      SessionState = "editing"
)

type Session struct {
	ID        string       `json:"id"`
	State     SessionState `json:"state"`
	CreatedAt time.Time    `json:"created_at"`
	ExpiresAt time.Time    `json:"expires_at"`
}

type SessionStatus struct {
	Session
	HasChanges bool `json:"has_changes"`
}

// EditGate admits a mutation on behalf of a session. The returned release
// must be called once the mutation is done.
type EditGate interface {
	BeginEdit(sessionID string) (release func(), err error)
}

// SessionController tracks admin sessions through
// logged out → logged in → editing → logged out, and is the only way edits,
// saves and discards reach the entity store and the gateway.
type SessionController struct {
	auth     AuthService
	store    *EntityStore
	gateway  *PersistenceGateway
	resolver *EditResolver
	notifier Notifier
	logger   *slog.Logger
	ttl      time.Duration
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionController(
	auth AuthService,
	store *EntityStore,
	gateway *PersistenceGateway,
	notifier Notifier,
	ttl time.Duration,
	logger *slog.Logger,
) *SessionController {
	if notifier == nil {
		notifier = NopNotifier()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionController{
		auth:     auth,
		store:    store,
		gateway:  gateway,
		resolver: NewEditResolver(store),
		notifier: notifier,
		logger:   logger,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Login opens a session in the edit-disabled state. A wrong password
// changes nothing.
func (c *SessionController) Login(ctx context.Context, password string) (Session, error) {
	if err := c.auth.Login(ctx, LoginInput{Password: password}); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.logger.Info("admin login rejected")
		}
		return Session{}, err
	}

	now := c.now()
	s := &Session{
		ID:        uuid.NewString(),
		State:     StateEditDisabled,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
	}

	c.mu.Lock()
	c.pruneLocked(now)
	c.sessions[s.ID] = s
	c.mu.Unlock()

	c.logger.Info("admin logged in", slog.String("session_id", s.ID))
	return *s, nil
}

// Status reports the session state together with the dirty flag.
func (c *SessionController) Status(sessionID string) (SessionStatus, error) {
	c.mu.Lock()
	s, err := c.lookupLocked(sessionID)
	c.mu.Unlock()
	if err != nil {
		return SessionStatus{Session: Session{ID: sessionID, State: StateLoggedOut}}, err
	}
	return SessionStatus{Session: s, HasChanges: c.store.HasChanges()}, nil
}

func (c *SessionController) EnableEditing(sessionID string) (Session, error) {
	return c.setState(sessionID, StateEditing)
}

func (c *SessionController) DisableEditing(sessionID string) (Session, error) {
	return c.setState(sessionID, StateEditDisabled)
}

func (c *SessionController) setState(sessionID string, state SessionState) (Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.lookupLocked(sessionID); err != nil {
		return Session{}, err
	}
	s := c.sessions[sessionID]
	s.State = state
	c.logger.Info("edit mode changed", slog.String("session_id", sessionID), slog.String("state", string(state)))
	return *s, nil
}

// Logout ends the session. With unsaved changes it refuses unless the
// caller confirmed; it never saves on its own and leaves the unsaved data
// in memory.
func (c *SessionController) Logout(ctx context.Context, sessionID string, confirmDiscard bool) error {
	c.mu.Lock()
	if _, err := c.lookupLocked(sessionID); err != nil {
		c.mu.Unlock()
		return err
	}
	if c.store.HasChanges() && !confirmDiscard {
		c.mu.Unlock()
		return ErrUnsavedChanges
	}
	delete(c.sessions, sessionID)
	c.mu.Unlock()

	c.logger.Info("admin logged out", slog.String("session_id", sessionID))
	c.notifier.Notify(ctx, Notification{Event: EventSession, Level: LevelInfo, Message: "admin logged out"})
	return nil
}

// BeginEdit admits a mutation when the session is editing and no load or
// save is running.
func (c *SessionController) BeginEdit(sessionID string) (func(), error) {
	c.mu.Lock()
	s, err := c.lookupLocked(sessionID)
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if s.State != StateEditing {
		return nil, ErrEditModeDisabled
	}
	return c.gateway.Guard().Shared()
}

// ApplyEdit routes one edited field through the resolver.
func (c *SessionController) ApplyEdit(ctx context.Context, sessionID string, fd models.FieldDescriptor, content string) (EditResult, error) {
	release, err := c.BeginEdit(sessionID)
	if err != nil {
		return EditResult{Kind: fd.Kind, Field: fd.Kind.String()}, err
	}
	res, err := c.resolver.Apply(fd, content)
	release()
	if err != nil {
		return res, err
	}

	if res.Mutated {
		c.notifier.Notify(ctx, Notification{
			Event:   EventEditApplied,
			Level:   LevelInfo,
			Message: fmt.Sprintf("%s updated", res.Field),
			Refresh: refreshHints(res),
		})
	}
	return res, nil
}

// Save flushes the entity store through the gateway.
func (c *SessionController) Save(ctx context.Context, sessionID string) error {
	if err := c.requireSession(sessionID); err != nil {
		return err
	}
	if err := c.gateway.Save(ctx); err != nil {
		if !errors.Is(err, ErrOperationInProgress) {
			c.notifier.Notify(ctx, Notification{Event: EventSaveFailed, Level: LevelError, Message: err.Error()})
		}
		return err
	}
	c.notifier.Notify(ctx, Notification{Event: EventSaved, Level: LevelSuccess, Message: "changes saved"})
	return nil
}

// Discard drops local edits by reloading from the document store. When
// loading fails the built-in defaults are shown instead.
func (c *SessionController) Discard(ctx context.Context, sessionID string) error {
	if err := c.requireSession(sessionID); err != nil {
		return err
	}
	if err := c.gateway.Load(ctx); err != nil {
		if !errors.Is(err, ErrOperationInProgress) {
			c.notifier.Notify(ctx, Notification{
				Event: EventLoadFailed, Level: LevelError, Message: err.Error(), Refresh: []string{RefreshAll},
			})
		}
		return err
	}
	c.notifier.Notify(ctx, Notification{
		Event: EventDiscarded, Level: LevelInfo, Message: "changes discarded", Refresh: []string{RefreshAll},
	})
	return nil
}

func (c *SessionController) requireSession(sessionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := c.lookupLocked(sessionID)
	return err
}

func (c *SessionController) lookupLocked(sessionID string) (Session, error) {
	s, ok := c.sessions[sessionID]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	if !c.now().Before(s.ExpiresAt) {
		delete(c.sessions, sessionID)
		return Session{}, ErrSessionNotFound
	}
	return *s, nil
}

func (c *SessionController) pruneLocked(now time.Time) {
	for id, s := range c.sessions {
		if !now.Before(s.ExpiresAt) {
			delete(c.sessions, id)
		}
	}
}
