// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access for stored documents.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mdpress/internal/models"
)

// DocumentStore handles all document-related database operations.
type DocumentStore struct {
	db *sql.DB
}

// NewDocumentStore creates a new DocumentStore with the given database connection.
func NewDocumentStore(db *sql.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// List returns all documents, ordered by creation date descending.
func (s *DocumentStore) List() ([]models.Document, error) {
	rows, err := s.db.Query(`
		SELECT id, slug, title, source, status, created_at, updated_at
		FROM documents
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(
			&d.ID, &d.Slug, &d.Title, &d.Source, &d.Status, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// FindByID retrieves a document by its UUID. Returns nil if not found.
func (s *DocumentStore) FindByID(id uuid.UUID) (*models.Document, error) {
	d := &models.Document{}
	err := s.db.QueryRow(`
		SELECT id, slug, title, source, status, created_at, updated_at
		FROM documents WHERE id = $1
	`, id).Scan(&d.ID, &d.Slug, &d.Title, &d.Source, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find document by id: %w", err)
	}
	return d, nil
}

// FindBySlug retrieves a published document by its slug. Used for public
// page rendering. Returns nil if not found.
func (s *DocumentStore) FindBySlug(slug string) (*models.Document, error) {
	d := &models.Document{}
	err := s.db.QueryRow(`
		SELECT id, slug, title, source, status, created_at, updated_at
		FROM documents WHERE slug = $1 AND status = 'published'
	`, slug).Scan(&d.ID, &d.Slug, &d.Title, &d.Source, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find document by slug: %w", err)
	}
	return d, nil
}

// Create inserts a new document and returns it with generated fields populated.
func (s *DocumentStore) Create(slug, title, source string, status models.DocStatus) (*models.Document, error) {
	d := &models.Document{
		ID:     uuid.New(),
		Slug:   slug,
		Title:  title,
		Source: source,
		Status: status,
	}
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now

	_, err := s.db.Exec(`
		INSERT INTO documents (id, slug, title, source, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, d.ID, d.Slug, d.Title, d.Source, d.Status, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return d, nil
}

// Update replaces a document's editable fields.
func (s *DocumentStore) Update(id uuid.UUID, slug, title, source string, status models.DocStatus) error {
	res, err := s.db.Exec(`
		UPDATE documents
		SET slug = $2, title = $3, source = $4, status = $5, updated_at = now()
		WHERE id = $1
	`, id, slug, title, source, status)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update document rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a document by id.
func (s *DocumentStore) Delete(id uuid.UUID) error {
	if _, err := s.db.Exec("DELETE FROM documents WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}
