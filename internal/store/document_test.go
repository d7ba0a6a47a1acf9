package store

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"

	"mdpress/internal/models"
)

func TestDocumentStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewDocumentStore(db)

	slug := "test-create-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanDocuments(t, db, slug) })

	created, err := s.Create(slug, "Test Document", "# Hello", models.DocStatusDraft)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if created.Status != models.DocStatusDraft {
		t.Errorf("status: got %q, want %q", created.Status, models.DocStatusDraft)
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil {
		t.Fatal("expected document, got nil")
	}
	if found.Slug != slug {
		t.Errorf("slug: got %q, want %q", found.Slug, slug)
	}
	if found.Source != "# Hello" {
		t.Errorf("source: got %q, want %q", found.Source, "# Hello")
	}
}

func TestDocumentStoreFindBySlugPublishedOnly(t *testing.T) {
	db := testDB(t)
	s := NewDocumentStore(db)

	draftSlug := "test-draft-" + uuid.NewString()[:8]
	pubSlug := "test-pub-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanDocuments(t, db, draftSlug, pubSlug) })

	if _, err := s.Create(draftSlug, "Draft", "body", models.DocStatusDraft); err != nil {
		t.Fatalf("Create draft: %v", err)
	}
	if _, err := s.Create(pubSlug, "Published", "body", models.DocStatusPublished); err != nil {
		t.Fatalf("Create published: %v", err)
	}

	found, err := s.FindBySlug(draftSlug)
	if err != nil {
		t.Fatalf("FindBySlug draft: %v", err)
	}
	if found != nil {
		t.Error("drafts must not be visible by slug")
	}

	found, err = s.FindBySlug(pubSlug)
	if err != nil {
		t.Fatalf("FindBySlug published: %v", err)
	}
	if found == nil {
		t.Fatal("expected published document, got nil")
	}
	if found.Title != "Published" {
		t.Errorf("title: got %q, want %q", found.Title, "Published")
	}
}

func TestDocumentStoreUpdate(t *testing.T) {
	db := testDB(t)
	s := NewDocumentStore(db)

	slug := "test-update-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanDocuments(t, db, slug) })

	created, err := s.Create(slug, "Before", "old body", models.DocStatusDraft)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.Update(created.ID, slug, "After", "new body", models.DocStatusPublished); err != nil {
		t.Fatalf("Update: %v", err)
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.Title != "After" {
		t.Errorf("title: got %q, want %q", found.Title, "After")
	}
	if found.Source != "new body" {
		t.Errorf("source: got %q, want %q", found.Source, "new body")
	}
	if found.Status != models.DocStatusPublished {
		t.Errorf("status: got %q, want %q", found.Status, models.DocStatusPublished)
	}
}

func TestDocumentStoreUpdateMissing(t *testing.T) {
	db := testDB(t)
	s := NewDocumentStore(db)

	err := s.Update(uuid.New(), "nope", "Nope", "body", models.DocStatusDraft)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows for missing id, got %v", err)
	}
}

func TestDocumentStoreDelete(t *testing.T) {
	db := testDB(t)
	s := NewDocumentStore(db)

	slug := "test-delete-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanDocuments(t, db, slug) })

	created, err := s.Create(slug, "Doomed", "body", models.DocStatusDraft)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found != nil {
		t.Errorf("expected nil after delete, got %+v", found)
	}
}

func TestDocumentStoreList(t *testing.T) {
	db := testDB(t)
	s := NewDocumentStore(db)

	slug := "test-list-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanDocuments(t, db, slug) })

	if _, err := s.Create(slug, "Listed", "body", models.DocStatusDraft); err != nil {
		t.Fatalf("Create: %v", err)
	}

	docs, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var seen bool
	for _, d := range docs {
		if d.Slug == slug {
			seen = true
		}
	}
	if !seen {
		t.Errorf("created document %q missing from List", slug)
	}
}
