package services

import (
	"sync"

	"github.com/Dosada05/tournament-dashboard/models"
	"github.com/Dosada05/tournament-dashboard/repositories"
)

// EntityStore is the in-memory copy of everything the dashboard shows.
// Readers get deep copies; writers go through Mutate or the CRUD methods,
// all of which end with MarkChanged.
//
// Adds reject ids already present in their collection. Member ids are not
// checked across teams.
type EntityStore struct {
	mu         sync.RWMutex
	data       models.Dataset
	hasChanges bool
	// version grows on every mutation so a save can tell whether the
	// snapshot it flushed is still current.
	version uint64
	// deleted ids per collection, removed from the document store on save
	deleted map[string]map[string]struct{}
}

func NewEntityStore() *EntityStore {
	return &EntityStore{deleted: make(map[string]map[string]struct{})}
}

// HasChanges reports unsaved local mutations.
func (s *EntityStore) HasChanges() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasChanges
}

// MarkChanged is the only way the dirty flag becomes true.
func (s *EntityStore) MarkChanged() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markChangedLocked()
}

func (s *EntityStore) markChangedLocked() {
	s.hasChanges = true
	s.version++
}

// Snapshot returns a deep copy of the whole data set.
func (s *EntityStore) Snapshot() models.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

func (s *EntityStore) CompetitionInfo() models.CompetitionInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.CompetitionInfo
}

func (s *EntityStore) CurrentMatch() models.CurrentMatch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.CurrentMatch.Clone()
}

func (s *EntityStore) Teams() []models.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	teams := make([]models.Team, len(s.data.Teams))
	for i, t := range s.data.Teams {
		teams[i] = t.Clone()
	}
	return teams
}

func (s *EntityStore) Players() []models.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Player{}, s.data.Players...)
}

func (s *EntityStore) Brackets() []models.Bracket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	brackets := make([]models.Bracket, len(s.data.Brackets))
	for i, b := range s.data.Brackets {
		brackets[i] = b.Clone()
	}
	return brackets
}

// GetTeamByID returns a copy of the team, or false when absent.
func (s *EntityStore) GetTeamByID(id string) (models.Team, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t := s.data.TeamByID(id); t != nil {
		return t.Clone(), true
	}
	return models.Team{}, false
}

func (s *EntityStore) GetPlayerByID(id string) (models.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p := s.data.PlayerByID(id); p != nil {
		return *p, true
	}
	return models.Player{}, false
}

func (s *EntityStore) GetBracketByID(id string) (models.Bracket, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if b := s.data.BracketByID(id); b != nil {
		return b.Clone(), true
	}
	return models.Bracket{}, false
}

// Mutate runs fn under the write lock. When fn reports a change and no
// error, the store is marked changed.
func (s *EntityStore) Mutate(fn func(d *models.Dataset) (bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed, err := fn(&s.data)
	if err != nil {
		return err
	}
	if changed {
		s.markChangedLocked()
	}
	return nil
}

func (s *EntityStore) AddTeam(team models.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if models.IndexByID(s.data.Teams, team.ID) >= 0 {
		return ErrDuplicateID
	}
	s.data.Teams = append(s.data.Teams, team.Clone())
	s.undelete(repositories.CollectionTeams, team.ID)
	s.markChangedLocked()
	return nil
}

func (s *EntityStore) UpdateTeam(team models.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := models.IndexByID(s.data.Teams, team.ID)
	if i < 0 {
		return ErrTeamNotFound
	}
	s.data.Teams[i] = team.Clone()
	s.markChangedLocked()
	return nil
}

func (s *EntityStore) DeleteTeam(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := models.IndexByID(s.data.Teams, id)
	if i < 0 {
		return ErrTeamNotFound
	}
	s.data.Teams = append(s.data.Teams[:i], s.data.Teams[i+1:]...)
	s.markDeleted(repositories.CollectionTeams, id)
	s.markChangedLocked()
	return nil
}

func (s *EntityStore) AddPlayer(player models.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if models.IndexByID(s.data.Players, player.ID) >= 0 {
		return ErrDuplicateID
	}
	s.data.Players = append(s.data.Players, player)
	s.undelete(repositories.CollectionPlayers, player.ID)
	s.markChangedLocked()
	return nil
}

func (s *EntityStore) UpdatePlayer(player models.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := models.IndexByID(s.data.Players, player.ID)
	if i < 0 {
		return ErrPlayerNotFound
	}
	s.data.Players[i] = player
	s.markChangedLocked()
	return nil
}

func (s *EntityStore) DeletePlayer(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := models.IndexByID(s.data.Players, id)
	if i < 0 {
		return ErrPlayerNotFound
	}
	s.data.Players = append(s.data.Players[:i], s.data.Players[i+1:]...)
	s.markDeleted(repositories.CollectionPlayers, id)
	s.markChangedLocked()
	return nil
}

func (s *EntityStore) AddBracket(bracket models.Bracket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if models.IndexByID(s.data.Brackets, bracket.ID) >= 0 {
		return ErrDuplicateID
	}
	s.data.Brackets = append(s.data.Brackets, bracket.Clone())
	s.undelete(repositories.CollectionBrackets, bracket.ID)
	s.markChangedLocked()
	return nil
}

func (s *EntityStore) UpdateBracket(bracket models.Bracket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := models.IndexByID(s.data.Brackets, bracket.ID)
	if i < 0 {
		return ErrBracketNotFound
	}
	s.data.Brackets[i] = bracket.Clone()
	s.markChangedLocked()
	return nil
}

func (s *EntityStore) DeleteBracket(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := models.IndexByID(s.data.Brackets, id)
	if i < 0 {
		return ErrBracketNotFound
	}
	s.data.Brackets = append(s.data.Brackets[:i], s.data.Brackets[i+1:]...)
	s.markDeleted(repositories.CollectionBrackets, id)
	s.markChangedLocked()
	return nil
}

// replace overwrites everything with freshly loaded data and clears the
// dirty flag.
func (s *EntityStore) replace(d models.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = d.Clone()
	s.deleted = make(map[string]map[string]struct{})
	s.hasChanges = false
	s.version++
}

// replaceUnsaved installs data that is not in the document store yet, so
// the store stays dirty until the next successful save.
func (s *EntityStore) replaceUnsaved(d models.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = d.Clone()
	s.deleted = make(map[string]map[string]struct{})
	s.markChangedLocked()
}

// pendingSave captures what a save has to write.
type pendingSave struct {
	data    models.Dataset
	deleted map[string][]string
	version uint64
}

func (s *EntityStore) pendingSave() pendingSave {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := pendingSave{
		data:    s.data.Clone(),
		deleted: make(map[string][]string, len(s.deleted)),
		version: s.version,
	}
	for collection, ids := range s.deleted {
		for id := range ids {
			p.deleted[collection] = append(p.deleted[collection], id)
		}
	}
	return p
}

// markSaved clears the dirty flag when nothing changed since p was taken.
func (s *EntityStore) markSaved(p pendingSave) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.version != p.version {
		return false
	}
	s.hasChanges = false
	for collection, ids := range p.deleted {
		for _, id := range ids {
			delete(s.deleted[collection], id)
		}
	}
	return true
}

func (s *EntityStore) markDeleted(collection, id string) {
	ids, ok := s.deleted[collection]
	if !ok {
		ids = make(map[string]struct{})
		s.deleted[collection] = ids
	}
	ids[id] = struct{}{}
}

func (s *EntityStore) undelete(collection, id string) {
	delete(s.deleted[collection], id)
}
