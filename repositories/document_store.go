package repositories

import (
	"context"
	"errors"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrBatchTooLarge    = errors.New("batch exceeds the store's item limit")
)

// Logical collections and singleton keys used by the dashboard.
const (
	CollectionCompetitionInfo = "competitionInfo"
	CollectionCurrentMatch    = "currentMatch"
	CollectionTeams           = "teams"
	CollectionPlayers         = "players"
	CollectionBrackets        = "brackets"

	KeyCompetitionInfo = "info"
	KeyCurrentMatch    = "current"
)

// DefaultMaxBatchSize mirrors the per-batch write cap of hosted document
// stores.
const DefaultMaxBatchSize = 500

// Document is one stored JSON body. Position keeps collection order stable
// across a save/load round trip.
type Document struct {
	Collection string
	Key        string
	Body       []byte
	Position   int
}

// DocumentWrite is a single batched operation: an upsert of Document, or a
// removal of Document.Collection/Document.Key when Delete is set.
type DocumentWrite struct {
	Document
	Delete bool
}

// DocumentStore is the external store the persistence gateway talks to.
type DocumentStore interface {
	Get(ctx context.Context, collection, key string) (*Document, error)
	GetAll(ctx context.Context, collection string) ([]Document, error)
	Set(ctx context.Context, doc Document) error
	// BatchWrite applies all writes atomically. Batches larger than
	// MaxBatchSize are rejected with ErrBatchTooLarge.
	BatchWrite(ctx context.Context, writes []DocumentWrite) error
	MaxBatchSize() int
}
