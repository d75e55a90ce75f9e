// Package storage persists hub documents and their rotated backup versions.
// Two implementations exist: a file-backed store (the default layout, one
// file per document plus a backups directory per stem) and a Postgres store.
package storage

import (
	"context"
	"time"
)

// MaxBackupVersions is how many backup versions are kept per document;
// older ones are removed on rotation.
const MaxBackupVersions = 10

// BackupInfo describes one stored backup version.
type BackupInfo struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mtime"`
}

// Store is the document persistence contract shared by the HTTP handlers.
// Filenames are already sanitized by the caller. Documents are raw text;
// frontmatter handling happens above this layer.
type Store interface {
	// SaveDocument writes the document, backing up and rotating any
	// existing version first.
	SaveDocument(ctx context.Context, filename, raw string) error

	// LoadDocument returns the raw document text.
	// Missing documents yield shared.ErrorNotFound.
	LoadDocument(ctx context.Context, filename string) (string, error)

	// SaveSnapshot stores content as a snapshot-tagged backup version and
	// rotates. It returns the stored version's name.
	SaveSnapshot(ctx context.Context, filename, content string) (string, error)

	// ListBackups returns the document's backup versions, newest first.
	ListBackups(ctx context.Context, filename string) ([]BackupInfo, error)

	// RestoreBackup replaces the document with the named backup version.
	// An unknown version yields shared.ErrorBackupNotFound.
	RestoreBackup(ctx context.Context, filename, backupName string) error
}
