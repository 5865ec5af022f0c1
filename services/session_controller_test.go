package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Dosada05/tournament-dashboard/models"
	"github.com/Dosada05/tournament-dashboard/repositories"
)

const testPassword = "s3cret"

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) Notify(_ context.Context, note Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, note.Event)
}

func (n *recordingNotifier) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.events) == 0 {
		return ""
	}
	return n.events[len(n.events)-1]
}

type controllerFixture struct {
	ctrl     *SessionController
	store    *EntityStore
	docs     *recordingStore
	notifier *recordingNotifier
}

func newControllerFixture(t *testing.T) controllerFixture {
	t.Helper()
	docs := &recordingStore{DocumentStore: repositories.NewMemoryDocumentStore(0)}
	store := NewEntityStore()
	gw := NewPersistenceGateway(docs, store, discardLogger())
	if err := gw.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	auth, err := NewAuthService(testPassword)
	if err != nil {
		t.Fatalf("NewAuthService() error = %v", err)
	}
	n := &recordingNotifier{}
	return controllerFixture{
		ctrl:     NewSessionController(auth, store, gw, n, time.Hour, discardLogger()),
		store:    store,
		docs:     docs,
		notifier: n,
	}
}

func (f controllerFixture) editingSession(t *testing.T) string {
	t.Helper()
	s, err := f.ctrl.Login(context.Background(), testPassword)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if _, err := f.ctrl.EnableEditing(s.ID); err != nil {
		t.Fatalf("EnableEditing() error = %v", err)
	}
	return s.ID
}

func titleEdit(t *testing.T) models.FieldDescriptor {
	t.Helper()
	return mustDescriptor(t, "competition-title", models.ScopedIDs{})
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	f := newControllerFixture(t)

	if _, err := f.ctrl.Login(context.Background(), "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login(wrong) error = %v, want ErrInvalidCredentials", err)
	}

	s, err := f.ctrl.Login(context.Background(), testPassword)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if s.State != StateEditDisabled {
		t.Errorf("new session state = %q, want %q", s.State, StateEditDisabled)
	}
}

func TestEditRequiresEditMode(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()

	if _, err := f.ctrl.ApplyEdit(ctx, "nobody", titleEdit(t), "x"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("edit without session error = %v", err)
	}

	s, _ := f.ctrl.Login(ctx, testPassword)
	if _, err := f.ctrl.ApplyEdit(ctx, s.ID, titleEdit(t), "x"); !errors.Is(err, ErrEditModeDisabled) {
		t.Errorf("edit with editing disabled error = %v", err)
	}
	if f.store.HasChanges() {
		t.Fatalf("rejected edit marked the store dirty")
	}

	if _, err := f.ctrl.EnableEditing(s.ID); err != nil {
		t.Fatalf("EnableEditing() error = %v", err)
	}
	res, err := f.ctrl.ApplyEdit(ctx, s.ID, titleEdit(t), "新赛季")
	if err != nil || !res.Mutated {
		t.Fatalf("ApplyEdit() = %+v, %v", res, err)
	}
	if f.notifier.last() != EventEditApplied {
		t.Errorf("last event = %q, want %q", f.notifier.last(), EventEditApplied)
	}

	if _, err := f.ctrl.DisableEditing(s.ID); err != nil {
		t.Fatalf("DisableEditing() error = %v", err)
	}
	if _, err := f.ctrl.ApplyEdit(ctx, s.ID, titleEdit(t), "again"); !errors.Is(err, ErrEditModeDisabled) {
		t.Errorf("edit after disabling error = %v", err)
	}
	if got := f.store.CompetitionInfo().Title; got != "新赛季" {
		t.Errorf("title = %q", got)
	}
}

func TestSaveAndDiscard(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()
	sid := f.editingSession(t)

	if _, err := f.ctrl.ApplyEdit(ctx, sid, titleEdit(t), "已保存"); err != nil {
		t.Fatalf("ApplyEdit() error = %v", err)
	}
	if err := f.ctrl.Save(ctx, sid); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if f.store.HasChanges() || f.notifier.last() != EventSaved {
		t.Errorf("after save: dirty=%v last event=%q", f.store.HasChanges(), f.notifier.last())
	}

	if _, err := f.ctrl.ApplyEdit(ctx, sid, titleEdit(t), "草稿"); err != nil {
		t.Fatalf("ApplyEdit() error = %v", err)
	}
	if err := f.ctrl.Discard(ctx, sid); err != nil {
		t.Fatalf("Discard() error = %v", err)
	}
	if got := f.store.CompetitionInfo().Title; got != "已保存" {
		t.Errorf("title after discard = %q, want the saved one", got)
	}
	if f.store.HasChanges() || f.notifier.last() != EventDiscarded {
		t.Errorf("after discard: dirty=%v last event=%q", f.store.HasChanges(), f.notifier.last())
	}
}

func TestSaveFailureIsReported(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()
	sid := f.editingSession(t)

	if _, err := f.ctrl.ApplyEdit(ctx, sid, titleEdit(t), "x"); err != nil {
		t.Fatalf("ApplyEdit() error = %v", err)
	}
	f.docs.failBatches = true
	if err := f.ctrl.Save(ctx, sid); !errors.Is(err, ErrSaveFailed) {
		t.Fatalf("Save() error = %v, want ErrSaveFailed", err)
	}
	if f.notifier.last() != EventSaveFailed {
		t.Errorf("last event = %q, want %q", f.notifier.last(), EventSaveFailed)
	}
	if !f.store.HasChanges() {
		t.Errorf("failed save cleared the dirty flag")
	}
}

func TestLogoutWithUnsavedChanges(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()
	sid := f.editingSession(t)

	if _, err := f.ctrl.ApplyEdit(ctx, sid, titleEdit(t), "未保存"); err != nil {
		t.Fatalf("ApplyEdit() error = %v", err)
	}
	if err := f.ctrl.Logout(ctx, sid, false); !errors.Is(err, ErrUnsavedChanges) {
		t.Fatalf("Logout() error = %v, want ErrUnsavedChanges", err)
	}
	if _, err := f.ctrl.Status(sid); err != nil {
		t.Fatalf("refused logout ended the session: %v", err)
	}

	f.docs.reset()
	if err := f.ctrl.Logout(ctx, sid, true); err != nil {
		t.Fatalf("Logout(confirm) error = %v", err)
	}
	status, err := f.ctrl.Status(sid)
	if !errors.Is(err, ErrSessionNotFound) || status.State != StateLoggedOut {
		t.Errorf("Status() after logout = %+v, %v", status, err)
	}
	if n := f.docs.writes(); n != 0 || !f.store.HasChanges() {
		t.Errorf("logout saved changes on its own: %d writes", n)
	}
	if got := f.store.CompetitionInfo().Title; got != "未保存" {
		t.Errorf("logout dropped in-memory edits: title = %q", got)
	}
}

func TestSessionExpires(t *testing.T) {
	f := newControllerFixture(t)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	f.ctrl.now = func() time.Time { return now }

	s, err := f.ctrl.Login(context.Background(), testPassword)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	now = now.Add(2 * time.Hour)
	if _, err := f.ctrl.Status(s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Status() of expired session error = %v", err)
	}
}

func TestEditsBlockedWhileSaving(t *testing.T) {
	f := newControllerFixture(t)
	sid := f.editingSession(t)

	release, err := f.ctrl.gateway.Guard().Exclusive()
	if err != nil {
		t.Fatalf("Exclusive() error = %v", err)
	}
	defer release()

	if _, err := f.ctrl.ApplyEdit(context.Background(), sid, titleEdit(t), "x"); !errors.Is(err, ErrOperationInProgress) {
		t.Errorf("edit during save error = %v, want ErrOperationInProgress", err)
	}
}
