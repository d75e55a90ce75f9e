package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cynit/hub/internal/filex"
	"github.com/cynit/hub/internal/shared"
)

// FileStore keeps documents as plain files with per-document backup
// directories:
//
//	<dataDir>/<filename>
//	<dataDir>/backups/<stem>/<stem>__<version><ext>
//
// Snapshot versions carry a "SNAP_" tag in front of the timestamp.
type FileStore struct {
	dataDir   string
	backupDir string

	now func() time.Time
}

func NewFileStore(dataDir string) (*FileStore, error) {
	if _, err := filex.EnsureDir(dataDir); err != nil {
		return nil, err
	}
	backupDir := filepath.Join(dataDir, "backups")
	if _, err := filex.EnsureDir(backupDir); err != nil {
		return nil, err
	}
	return &FileStore{dataDir: dataDir, backupDir: backupDir, now: time.Now}, nil
}

func stemExt(filename string) (string, string) {
	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	if ext == "" {
		ext = ".txt"
	}
	return stem, ext
}

func (s *FileStore) docPath(filename string) string {
	return filepath.Join(s.dataDir, filename)
}

func (s *FileStore) backupPath(filename, version string) string {
	stem, ext := stemExt(filename)
	return filepath.Join(s.backupDir, stem, fmt.Sprintf("%s__%s%s", stem, version, ext))
}

func (s *FileStore) SaveDocument(ctx context.Context, filename, raw string) error {
	path := s.docPath(filename)

	if current, err := os.ReadFile(path); err == nil {
		version := shared.BackupTimestamp(s.now())
		if err := filex.WriteFileAtomic(s.backupPath(filename, version), current, 0o640); err != nil {
			return fmt.Errorf("backing up %s: %w", filename, err)
		}
		if err := s.rotate(filename); err != nil {
			return err
		}
	}

	if err := filex.WriteFileAtomic(path, []byte(raw), 0o640); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	return nil
}

func (s *FileStore) LoadDocument(ctx context.Context, filename string) (string, error) {
	data, err := os.ReadFile(s.docPath(filename))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", shared.ErrorNotFound, filename)
		}
		return "", fmt.Errorf("reading %s: %w", filename, err)
	}
	return string(data), nil
}

func (s *FileStore) SaveSnapshot(ctx context.Context, filename, content string) (string, error) {
	version := "SNAP_" + shared.BackupTimestamp(s.now())
	path := s.backupPath(filename, version)

	if err := filex.WriteFileAtomic(path, []byte(content), 0o640); err != nil {
		return "", fmt.Errorf("storing snapshot of %s: %w", filename, err)
	}
	if err := s.rotate(filename); err != nil {
		return "", err
	}
	return filepath.Base(path), nil
}

func (s *FileStore) ListBackups(ctx context.Context, filename string) ([]BackupInfo, error) {
	stem, _ := stemExt(filename)
	dir := filepath.Join(s.backupDir, stem)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []BackupInfo{}, nil
		}
		return nil, fmt.Errorf("listing backups of %s: %w", filename, err)
	}

	backups := make([]BackupInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{Name: e.Name(), Size: info.Size(), ModTime: info.ModTime()})
	}

	sort.Slice(backups, func(i, j int) bool {
		if !backups[i].ModTime.Equal(backups[j].ModTime) {
			return backups[i].ModTime.After(backups[j].ModTime)
		}
		return backups[i].Name > backups[j].Name
	})
	return backups, nil
}

func (s *FileStore) RestoreBackup(ctx context.Context, filename, backupName string) error {
	stem, _ := stemExt(filename)
	path := filepath.Join(s.backupDir, stem, backupName)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", shared.ErrorBackupNotFound, backupName)
		}
		return fmt.Errorf("reading backup %s: %w", backupName, err)
	}

	if err := filex.WriteFileAtomic(s.docPath(filename), data, 0o640); err != nil {
		return fmt.Errorf("restoring %s: %w", filename, err)
	}
	return nil
}

// rotate drops the oldest versions beyond MaxBackupVersions.
func (s *FileStore) rotate(filename string) error {
	backups, err := s.ListBackups(context.Background(), filename)
	if err != nil {
		return err
	}

	stem, _ := stemExt(filename)
	for _, b := range backups[min(len(backups), MaxBackupVersions):] {
		_ = os.Remove(filepath.Join(s.backupDir, stem, b.Name))
	}
	return nil
}
