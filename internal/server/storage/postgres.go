package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/cynit/hub/internal/dbx"
	"github.com/cynit/hub/internal/server/storage/migrations"
	"github.com/cynit/hub/internal/shared"
)

// PostgresStore keeps documents and backup versions in two tables. Version
// names follow the same "<stem>__<version><ext>" convention as the file
// store, so clients see identical listings either way.
type PostgresStore struct {
	db *sql.DB

	now   func() time.Time
	newID func() string
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, now: time.Now, newID: uuid.NewString}
}

// OpenPostgres connects via the pgx stdlib driver and applies pending
// migrations.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return NewPostgresStore(db), nil
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error { return s.db.Close() }

func (s *PostgresStore) insertBackup(ctx context.Context, tx dbx.DBTX, filename, version, content string) (string, error) {
	stem, ext := stemExt(filename)
	name := fmt.Sprintf("%s__%s%s", stem, version, ext)

	query := `INSERT INTO backups (id, filename, name, content, size, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (filename, name) DO UPDATE SET
			content = excluded.content,
			size = excluded.size,
			created_at = excluded.created_at`
	_, err := tx.ExecContext(ctx, query,
		s.newID(), filename, name, content, int64(len(content)), s.now())
	if err != nil {
		return "", fmt.Errorf("failed to insert backup: %w", err)
	}
	return name, nil
}

func (s *PostgresStore) rotate(ctx context.Context, tx dbx.DBTX, filename string) error {
	query := `DELETE FROM backups WHERE filename = $1 AND id NOT IN (
		SELECT id FROM backups WHERE filename = $1
		ORDER BY created_at DESC, name DESC LIMIT $2)`
	if _, err := tx.ExecContext(ctx, query, filename, MaxBackupVersions); err != nil {
		return fmt.Errorf("failed to rotate backups: %w", err)
	}
	return nil
}

func (s *PostgresStore) upsertDocument(ctx context.Context, tx dbx.DBTX, filename, raw string) error {
	query := `INSERT INTO documents (filename, raw, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (filename) DO UPDATE SET raw = excluded.raw, updated_at = excluded.updated_at`
	if _, err := tx.ExecContext(ctx, query, filename, raw, s.now()); err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}
	return nil
}

func (s *PostgresStore) SaveDocument(ctx context.Context, filename, raw string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var current string
		err := tx.QueryRowContext(ctx,
			`SELECT raw FROM documents WHERE filename = $1`, filename).Scan(&current)
		switch {
		case err == nil:
			version := shared.BackupTimestamp(s.now())
			if _, err := s.insertBackup(ctx, tx, filename, version, current); err != nil {
				return err
			}
			if err := s.rotate(ctx, tx, filename); err != nil {
				return err
			}
		case errors.Is(err, sql.ErrNoRows):
			// first save, nothing to back up
		default:
			return fmt.Errorf("failed to read current document: %w", err)
		}

		return s.upsertDocument(ctx, tx, filename, raw)
	})
}

func (s *PostgresStore) LoadDocument(ctx context.Context, filename string) (string, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT raw FROM documents WHERE filename = $1`, filename).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", shared.ErrorNotFound, filename)
	}
	if err != nil {
		return "", fmt.Errorf("failed to load document: %w", err)
	}
	return raw, nil
}

func (s *PostgresStore) SaveSnapshot(ctx context.Context, filename, content string) (string, error) {
	var name string
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		version := "SNAP_" + shared.BackupTimestamp(s.now())
		var err error
		if name, err = s.insertBackup(ctx, tx, filename, version, content); err != nil {
			return err
		}
		return s.rotate(ctx, tx, filename)
	})
	if err != nil {
		return "", err
	}
	return name, nil
}

func (s *PostgresStore) ListBackups(ctx context.Context, filename string) ([]BackupInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, size, created_at FROM backups WHERE filename = $1
		 ORDER BY created_at DESC, name DESC`, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}
	defer rows.Close()

	backups := []BackupInfo{}
	for rows.Next() {
		var b BackupInfo
		if err := rows.Scan(&b.Name, &b.Size, &b.ModTime); err != nil {
			return nil, err
		}
		backups = append(backups, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return backups, nil
}

func (s *PostgresStore) RestoreBackup(ctx context.Context, filename, backupName string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var content string
		err := tx.QueryRowContext(ctx,
			`SELECT content FROM backups WHERE filename = $1 AND name = $2`,
			filename, backupName).Scan(&content)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", shared.ErrorBackupNotFound, backupName)
		}
		if err != nil {
			return fmt.Errorf("failed to read backup: %w", err)
		}

		return s.upsertDocument(ctx, tx, filename, content)
	})
}
