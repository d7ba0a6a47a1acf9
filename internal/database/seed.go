package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// welcomeDoc is the sample document inserted on first run in development.
// It exercises front matter, headings, lists, raw HTML, and footnotes.
const welcomeDoc = `---
title: Welcome to mdpress
description: A sample document
author: mdpress
tags: [welcome, sample]
---

# Welcome

This document is rendered from **Markdown** through the event pipeline.

## Features

- Heading anchors with collision-safe slugs
- Tables, ~~strikethrough~~, task lists, and autolinks
- Raw HTML, including <em>inline</em> fragments
- Footnotes[^note]

[^note]: Numbered in order of first appearance.
`

// Seed populates the database with initial development data. It inserts a
// sample published document if the documents table is empty.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM documents").Scan(&count); err != nil {
		return fmt.Errorf("seed check documents: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	_, err := db.Exec(`
		INSERT INTO documents (id, slug, title, source, status)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.New(), "welcome", "Welcome to mdpress", welcomeDoc, "published")
	if err != nil {
		return fmt.Errorf("seed insert welcome document: %w", err)
	}

	slog.Info("database seeded with welcome document", "slug", "welcome")
	return nil
}
