package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type sqlDocumentStore struct {
	db           *sql.DB
	dialect      Dialect
	maxBatchSize int
}

// NewSQLDocumentStore stores documents as JSON bodies in the documents
// table created by the db migrations.
func NewSQLDocumentStore(db *sql.DB, dialect Dialect, maxBatchSize int) DocumentStore {
	if maxBatchSize <= 0 {
		maxBatchSize = DefaultMaxBatchSize
	}
	return &sqlDocumentStore{db: db, dialect: dialect, maxBatchSize: maxBatchSize}
}

const (
	getDocumentQuery = `SELECT body, position FROM documents WHERE collection = $1 AND doc_id = $2`

	listDocumentsQuery = `SELECT doc_id, body, position FROM documents WHERE collection = $1 ORDER BY position ASC, doc_id ASC`

	upsertDocumentQuery = `
INSERT INTO documents (collection, doc_id, body, position, updated_at)
VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
ON CONFLICT (collection, doc_id) DO UPDATE SET
  body = excluded.body, position = excluded.position, updated_at = CURRENT_TIMESTAMP`

	deleteDocumentQuery = `DELETE FROM documents WHERE collection = $1 AND doc_id = $2`
)

func (s *sqlDocumentStore) Get(ctx context.Context, collection, key string) (*Document, error) {
	doc := Document{Collection: collection, Key: key}
	var body string
	err := s.db.QueryRowContext(ctx, rebind(s.dialect, getDocumentQuery), collection, key).Scan(&body, &doc.Position)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, wrapDriverError(fmt.Sprintf("get %s/%s", collection, key), err)
	}
	doc.Body = []byte(body)
	return &doc, nil
}

func (s *sqlDocumentStore) GetAll(ctx context.Context, collection string) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx, rebind(s.dialect, listDocumentsQuery), collection)
	if err != nil {
		return nil, wrapDriverError("list "+collection, err)
	}
	defer rows.Close()

	docs := make([]Document, 0)
	for rows.Next() {
		doc := Document{Collection: collection}
		var body string
		if err := rows.Scan(&doc.Key, &body, &doc.Position); err != nil {
			return nil, wrapDriverError("scan "+collection, err)
		}
		doc.Body = []byte(body)
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDriverError("list "+collection, err)
	}
	return docs, nil
}

func (s *sqlDocumentStore) Set(ctx context.Context, doc Document) error {
	_, err := s.db.ExecContext(ctx, rebind(s.dialect, upsertDocumentQuery),
		doc.Collection, doc.Key, string(doc.Body), doc.Position)
	if err != nil {
		return wrapDriverError(fmt.Sprintf("set %s/%s", doc.Collection, doc.Key), err)
	}
	return nil
}

func (s *sqlDocumentStore) BatchWrite(ctx context.Context, writes []DocumentWrite) (err error) {
	if len(writes) > s.maxBatchSize {
		return fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, len(writes), s.maxBatchSize)
	}
	if len(writes) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapDriverError("begin batch", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	upsert, err := tx.PrepareContext(ctx, rebind(s.dialect, upsertDocumentQuery))
	if err != nil {
		return wrapDriverError("prepare upsert", err)
	}
	defer upsert.Close()

	for _, w := range writes {
		if w.Delete {
			if _, err = tx.ExecContext(ctx, rebind(s.dialect, deleteDocumentQuery), w.Collection, w.Key); err != nil {
				return wrapDriverError(fmt.Sprintf("delete %s/%s", w.Collection, w.Key), err)
			}
			continue
		}
		if _, err = upsert.ExecContext(ctx, w.Collection, w.Key, string(w.Body), w.Position); err != nil {
			return wrapDriverError(fmt.Sprintf("set %s/%s", w.Collection, w.Key), err)
		}
	}

	if err = tx.Commit(); err != nil {
		return wrapDriverError("commit batch", err)
	}
	return nil
}

func (s *sqlDocumentStore) MaxBatchSize() int {
	return s.maxBatchSize
}
