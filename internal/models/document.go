// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// DocStatus represents the publishing state of a document.
type DocStatus string

const (
	DocStatusDraft     DocStatus = "draft"
	DocStatusPublished DocStatus = "published"
)

// DocMeta is the front matter schema for documents. It is decoded from the
// YAML block at the top of a document's source.
type DocMeta struct {
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description,omitempty"`
	Author      string   `yaml:"author" json:"author,omitempty"`
	Date        string   `yaml:"date" json:"date,omitempty"`
	Tags        []string `yaml:"tags" json:"tags,omitempty"`
}

// Document is a stored Markdown document. Source holds the raw text
// including front matter; parsing happens at render time, with the parsed
// event stream cached separately.
type Document struct {
	ID        uuid.UUID `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Source    string    `json:"source"`
	Status    DocStatus `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsPublished returns true if the document is visible on the public site.
func (d *Document) IsPublished() bool {
	return d.Status == DocStatusPublished
}
