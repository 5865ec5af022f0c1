package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/tournament-dashboard/models"
	"github.com/Dosada05/tournament-dashboard/repositories"
	"golang.org/x/sync/errgroup"
)

// PersistenceGateway moves the entity store to and from the document store.
type PersistenceGateway struct {
	docs   repositories.DocumentStore
	store  *EntityStore
	guard  *OperationGuard
	logger *slog.Logger
}

func NewPersistenceGateway(docs repositories.DocumentStore, store *EntityStore, logger *slog.Logger) *PersistenceGateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &PersistenceGateway{
		docs:   docs,
		store:  store,
		guard:  &OperationGuard{},
		logger: logger,
	}
}

// Guard is shared with everything that mutates the entity store.
func (g *PersistenceGateway) Guard() *OperationGuard {
	return g.guard
}

// Load replaces the entity store with the document store's content. Missing
// documents and empty collections are seeded with built-in defaults. On any
// other failure the entity store gets the defaults in memory only, stays
// dirty, and ErrLoadFailed is returned.
func (g *PersistenceGateway) Load(ctx context.Context) error {
	release, err := g.guard.Exclusive()
	if err != nil {
		return err
	}
	defer release()

	g.logger.Info("loading dashboard data")
	data, err := g.fetch(ctx)
	if err != nil {
		g.logger.Error("failed to load dashboard data, falling back to defaults", slog.Any("error", err))
		g.store.replaceUnsaved(DefaultDataset())
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	g.store.replace(data)
	g.logger.Info("dashboard data loaded",
		slog.Int("teams", len(data.Teams)),
		slog.Int("players", len(data.Players)),
		slog.Int("brackets", len(data.Brackets)))
	return nil
}

func (g *PersistenceGateway) fetch(ctx context.Context) (models.Dataset, error) {
	var data models.Dataset

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		info, err := loadSingleton(egCtx, g, repositories.CollectionCompetitionInfo, repositories.KeyCompetitionInfo, DefaultCompetitionInfo)
		data.CompetitionInfo = info
		return err
	})
	eg.Go(func() error {
		match, err := loadSingleton(egCtx, g, repositories.CollectionCurrentMatch, repositories.KeyCurrentMatch, DefaultCurrentMatch)
		data.CurrentMatch = match
		return err
	})
	if err := eg.Wait(); err != nil {
		return data, err
	}

	var err error
	if data.Teams, err = loadCollection(ctx, g, repositories.CollectionTeams, DefaultTeams,
		func(t *models.Team, id string) { t.ID = id }); err != nil {
		return data, err
	}
	if data.Players, err = loadCollection(ctx, g, repositories.CollectionPlayers, DefaultPlayers,
		func(p *models.Player, id string) { p.ID = id }); err != nil {
		return data, err
	}
	if data.Brackets, err = loadCollection(ctx, g, repositories.CollectionBrackets, DefaultBrackets,
		func(b *models.Bracket, id string) { b.ID = id }); err != nil {
		return data, err
	}
	return data, nil
}

func loadSingleton[T any](ctx context.Context, g *PersistenceGateway, collection, key string, seed func() T) (T, error) {
	var value T
	doc, err := g.docs.Get(ctx, collection, key)
	if errors.Is(err, repositories.ErrDocumentNotFound) {
		g.logger.Info("document missing, seeding defaults", slog.String("collection", collection), slog.String("key", key))
		value = seed()
		body, err := json.Marshal(value)
		if err != nil {
			return value, fmt.Errorf("encode default %s/%s: %w", collection, key, err)
		}
		if err := g.docs.Set(ctx, repositories.Document{Collection: collection, Key: key, Body: body}); err != nil {
			return value, fmt.Errorf("seed %s/%s: %w", collection, key, err)
		}
		return value, nil
	}
	if err != nil {
		return value, fmt.Errorf("get %s/%s: %w", collection, key, err)
	}
	if err := json.Unmarshal(doc.Body, &value); err != nil {
		return value, fmt.Errorf("malformed document %s/%s: %w", collection, key, err)
	}
	return value, nil
}

// loadCollection reads a collection in stored order. The document key is
// authoritative for the entity id.
func loadCollection[T interface{ GetID() string }](
	ctx context.Context,
	g *PersistenceGateway,
	collection string,
	seed func() []T,
	setID func(*T, string),
) ([]T, error) {
	docs, err := g.docs.GetAll(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}

	if len(docs) == 0 {
		g.logger.Info("collection empty, seeding defaults", slog.String("collection", collection))
		items := seed()
		writes, err := upserts(collection, items)
		if err != nil {
			return nil, err
		}
		if err := g.writeChunked(ctx, collection, writes); err != nil {
			return nil, fmt.Errorf("seed %s: %w", collection, err)
		}
		return items, nil
	}

	items := make([]T, 0, len(docs))
	for _, doc := range docs {
		var item T
		if err := json.Unmarshal(doc.Body, &item); err != nil {
			return nil, fmt.Errorf("malformed document %s/%s: %w", collection, doc.Key, err)
		}
		setID(&item, doc.Key)
		items = append(items, item)
	}
	return items, nil
}

// Save flushes the entity store. It is a no-op when nothing changed. The
// singletons go first, then teams, brackets and players in batches capped
// at the document store's limit. The dirty flag is cleared only when every
// batch succeeded.
func (g *PersistenceGateway) Save(ctx context.Context) error {
	release, err := g.guard.Exclusive()
	if err != nil {
		return err
	}
	defer release()

	if !g.store.HasChanges() {
		g.logger.Debug("no changes to save")
		return nil
	}

	pending := g.store.pendingSave()
	if err := g.flush(ctx, pending); err != nil {
		g.logger.Error("failed to save dashboard data", slog.Any("error", err))
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	if !g.store.markSaved(pending) {
		g.logger.Warn("dashboard data changed during save, keeping unsaved flag")
		return nil
	}
	g.logger.Info("dashboard data saved",
		slog.Int("teams", len(pending.data.Teams)),
		slog.Int("players", len(pending.data.Players)),
		slog.Int("brackets", len(pending.data.Brackets)))
	return nil
}

func (g *PersistenceGateway) flush(ctx context.Context, p pendingSave) error {
	info, err := json.Marshal(p.data.CompetitionInfo)
	if err != nil {
		return fmt.Errorf("encode competition info: %w", err)
	}
	match, err := json.Marshal(p.data.CurrentMatch)
	if err != nil {
		return fmt.Errorf("encode current match: %w", err)
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return g.docs.Set(egCtx, repositories.Document{
			Collection: repositories.CollectionCompetitionInfo, Key: repositories.KeyCompetitionInfo, Body: info,
		})
	})
	eg.Go(func() error {
		return g.docs.Set(egCtx, repositories.Document{
			Collection: repositories.CollectionCurrentMatch, Key: repositories.KeyCurrentMatch, Body: match,
		})
	})
	if err := eg.Wait(); err != nil {
		return fmt.Errorf("write singletons: %w", err)
	}

	teams, err := upserts(repositories.CollectionTeams, p.data.Teams)
	if err != nil {
		return err
	}
	brackets, err := upserts(repositories.CollectionBrackets, p.data.Brackets)
	if err != nil {
		return err
	}
	players, err := upserts(repositories.CollectionPlayers, p.data.Players)
	if err != nil {
		return err
	}

	for _, c := range []struct {
		name   string
		writes []repositories.DocumentWrite
	}{
		{repositories.CollectionTeams, teams},
		{repositories.CollectionBrackets, brackets},
		{repositories.CollectionPlayers, players},
	} {
		writes := append(c.writes, deletions(c.name, p.deleted[c.name])...)
		if err := g.writeChunked(ctx, c.name, writes); err != nil {
			return err
		}
	}
	return nil
}

// writeChunked issues batches one after another, never interleaved.
func (g *PersistenceGateway) writeChunked(ctx context.Context, collection string, writes []repositories.DocumentWrite) error {
	size := g.docs.MaxBatchSize()
	if size <= 0 {
		size = repositories.DefaultMaxBatchSize
	}
	for start := 0; start < len(writes); start += size {
		end := min(start+size, len(writes))
		if err := g.docs.BatchWrite(ctx, writes[start:end]); err != nil {
			return fmt.Errorf("write %s batch %d-%d: %w", collection, start, end, err)
		}
	}
	return nil
}

func upserts[T interface{ GetID() string }](collection string, items []T) ([]repositories.DocumentWrite, error) {
	writes := make([]repositories.DocumentWrite, 0, len(items))
	for i, item := range items {
		body, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("encode %s/%s: %w", collection, item.GetID(), err)
		}
		writes = append(writes, repositories.DocumentWrite{Document: repositories.Document{
			Collection: collection,
			Key:        item.GetID(),
			Body:       body,
			Position:   i,
		}})
	}
	return writes, nil
}

func deletions(collection string, ids []string) []repositories.DocumentWrite {
	writes := make([]repositories.DocumentWrite, 0, len(ids))
	for _, id := range ids {
		writes = append(writes, repositories.DocumentWrite{
			Document: repositories.Document{Collection: collection, Key: id},
			Delete:   true,
		})
	}
	return writes
}
