package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/wisemind/internal/db"
)

// SQLiteDocumentRepo stores resource bodies as opaque JSON keyed by
// (user, resource, key). Singleton resources use an empty key.
type SQLiteDocumentRepo struct {
	db db.DBTX
}

func NewSQLiteDocumentRepo(conn db.DBTX) *SQLiteDocumentRepo {
	return &SQLiteDocumentRepo{db: conn}
}

func (r *SQLiteDocumentRepo) Get(ctx context.Context, userID, resource, key string) (*Document, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT resource, doc_key, body, updated_at FROM documents
		WHERE user_id = ? AND resource = ? AND doc_key = ?`,
		userID, resource, key)

	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("document %s/%s: %w", resource, key, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	return doc, nil
}

func (r *SQLiteDocumentRepo) Put(ctx context.Context, userID string, doc *Document) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (user_id, resource, doc_key, body, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, resource, doc_key) DO UPDATE SET
			body = excluded.body, updated_at = excluded.updated_at`,
		userID, doc.Resource, doc.Key, string(doc.Body), nowUTC())
	if err != nil {
		return fmt.Errorf("storing document %s/%s: %w", doc.Resource, doc.Key, err)
	}
	return nil
}

// ListByResource returns every document of resource whose key starts with
// keyPrefix, ordered by key.
func (r *SQLiteDocumentRepo) ListByResource(ctx context.Context, userID, resource, keyPrefix string) ([]*Document, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT resource, doc_key, body, updated_at FROM documents
		WHERE user_id = ? AND resource = ? AND doc_key LIKE ? ESCAPE '\'
		ORDER BY doc_key`,
		userID, resource, escapeLike(keyPrefix)+"%")
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []*Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(s scanner) (*Document, error) {
	var (
		doc       Document
		body      string
		updatedAt string
	)
	if err := s.Scan(&doc.Resource, &doc.Key, &body, &updatedAt); err != nil {
		return nil, err
	}
	doc.Body = []byte(body)
	doc.UpdatedAt = parseTimestamp(updatedAt)
	return &doc, nil
}
