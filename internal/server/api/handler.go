// Package api exposes the hub's HTTP surface under /i18n: document load and
// save with backup rotation, snapshot ingestion, restore, preview
// sanitization, server-side ZIP export, and the configured mode set.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cynit/hub/internal/archive"
	"github.com/cynit/hub/internal/frontmatter"
	"github.com/cynit/hub/internal/htmlx"
	"github.com/cynit/hub/internal/logging"
	"github.com/cynit/hub/internal/modes"
	"github.com/cynit/hub/internal/server/storage"
	"github.com/cynit/hub/internal/shared"
)

// Handler holds the HTTP request handlers for the /i18n routes.
type Handler struct {
	store        storage.Store
	registry     *modes.Registry
	exportPrefix string
	log          logging.Logger
	now          func() time.Time
}

func NewHandler(store storage.Store, registry *modes.Registry, exportPrefix string, log logging.Logger) *Handler {
	return &Handler{
		store:        store,
		registry:     registry,
		exportPrefix: exportPrefix,
		log:          log,
		now:          time.Now,
	}
}

type loadRequest struct {
	Filename string `json:"filename"`
}

// Load returns a document split into frontmatter metadata and body,
// alongside the raw text.
func (h *Handler) Load(c *gin.Context) {
	var req loadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	filename := shared.SanitizeFilename(req.Filename)
	if filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No filename"})
		return
	}

	raw, err := h.store.LoadDocument(c.Request.Context(), filename)
	if errors.Is(err, shared.ErrorNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}
	if err != nil {
		h.log.Error(c.Request.Context(), "loading document", "filename", filename, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	meta, body := frontmatter.Split(raw)
	c.JSON(http.StatusOK, gin.H{
		"filename": filename,
		"meta":     meta,
		"body":     body,
		"raw":      raw,
	})
}

type saveRequest struct {
	Filename string         `json:"filename"`
	Meta     map[string]any `json:"meta"`
	Body     string         `json:"body"`
}

// Save assembles frontmatter and body into a document and persists it.
// The store backs up and rotates any existing version.
func (h *Handler) Save(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	filename := shared.SanitizeFilename(req.Filename)
	if filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No filename"})
		return
	}

	raw, err := frontmatter.Assemble(req.Meta, req.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.SaveDocument(c.Request.Context(), filename, raw); err != nil {
		h.log.Error(c.Request.Context(), "saving document", "filename", filename, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type snapshotRequest struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// Snapshot stores posted content as a snapshot-tagged backup version.
// A missing filename falls back to "autosave.md".
func (h *Handler) Snapshot(c *gin.Context) {
	var req snapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	filename := shared.SanitizeFilename(req.Filename)
	if filename == "" {
		filename = "autosave.md"
	}

	name, err := h.store.SaveSnapshot(c.Request.Context(), filename, req.Content)
	if err != nil {
		h.log.Error(c.Request.Context(), "storing snapshot", "filename", filename, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "snapshot": name})
}

// Backups lists a document's backup versions, newest first.
func (h *Handler) Backups(c *gin.Context) {
	filename := shared.SanitizeFilename(c.Query("filename"))
	if filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No filename"})
		return
	}

	backups, err := h.store.ListBackups(c.Request.Context(), filename)
	if err != nil {
		h.log.Error(c.Request.Context(), "listing backups", "filename", filename, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"filename": filename, "backups": backups})
}

type restoreRequest struct {
	Filename   string `json:"filename"`
	BackupName string `json:"backup_name"`
}

// RestoreBackup replaces a document with one of its backup versions.
func (h *Handler) RestoreBackup(c *gin.Context) {
	var req restoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	filename := shared.SanitizeFilename(req.Filename)
	backupName := shared.SanitizeFilename(req.BackupName)
	if filename == "" || backupName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing filename/backup_name"})
		return
	}

	err := h.store.RestoreBackup(c.Request.Context(), filename, backupName)
	if errors.Is(err, shared.ErrorBackupNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Backup not found"})
		return
	}
	if err != nil {
		h.log.Error(c.Request.Context(), "restoring backup", "filename", filename, "backup", backupName, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type previewRequest struct {
	HTML string `json:"html"`
}

// Preview returns the sanitized form of posted HTML.
func (h *Handler) Preview(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"safe_html": htmlx.Sanitize(req.HTML)})
}

type exportRequest struct {
	Files map[string]string `json:"files"`
}

// Export bundles the posted name-to-content map into a ZIP archive and
// returns it as a download. Entry names are sanitized; order is stable.
func (h *Handler) Export(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	names := make([]string, 0, len(req.Files))
	for name := range req.Files {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]archive.Entry, 0, len(names))
	for _, name := range names {
		safe := shared.SanitizeFilename(name)
		if safe == "" {
			continue
		}
		entries = append(entries, archive.TextEntry(safe, req.Files[name]))
	}

	data := archive.Build(entries)
	downloadName := fmt.Sprintf("%s_%s.zip", h.exportPrefix, shared.TimestampToken(h.now()))

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadName))
	c.Data(http.StatusOK, "application/zip", data)
}

// Modes returns the configured mode definitions in order.
func (h *Handler) Modes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"modes": h.registry.All()})
}
