// Package session owns the state of one editing session: the mode registry,
// one editor backend per mode, the active mode, local autosave and the
// snapshot scheduler. All orchestration state lives on the Session object and
// is passed by reference; nothing here is global.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cynit/hub/internal/client/autosave"
	"github.com/cynit/hub/internal/client/editor"
	"github.com/cynit/hub/internal/client/snapshot"
	"github.com/cynit/hub/internal/logging"
	"github.com/cynit/hub/internal/modes"
	"github.com/cynit/hub/internal/shared"
)

// PreviewFunc refreshes a live preview for modes that render (html, markdown)
// or inject styles (css). Presentation only; failures are the hook's problem.
type PreviewFunc func(mode modes.Mode, content string)

type Session struct {
	registry *modes.Registry
	store    *autosave.Store
	sched    *snapshot.Scheduler
	log      logging.Logger

	mu       sync.Mutex
	backends map[modes.Mode]editor.Backend
	current  modes.Mode
	preview  PreviewFunc

	now func() time.Time
}

// New builds a session over the registry's modes. Each mode gets its own
// backend; edits flow through OnContentChanged into the autosave slot.
func New(registry *modes.Registry, store *autosave.Store, transport snapshot.Transport, log logging.Logger) *Session {
	s := &Session{
		registry: registry,
		store:    store,
		log:      log,
		backends: make(map[modes.Mode]editor.Backend),
		current:  registry.First(),
		now:      time.Now,
	}

	for _, d := range registry.All() {
		mode := d.Name
		b := editor.New(d.Editor)
		b.OnChange(func(content string) { s.OnContentChanged(mode, content) })
		s.backends[mode] = b
	}

	s.sched = snapshot.NewScheduler(transport, s.snapshotSource, log.With("component", "snapshot"))
	return s
}

// SetPreview installs the live-preview hook.
func (s *Session) SetPreview(fn PreviewFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preview = fn
}

// Current returns the active mode.
func (s *Session) Current() modes.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Backend returns the editor backend for a mode.
func (s *Session) Backend(mode modes.Mode) (editor.Backend, error) {
	b, ok := s.backends[mode]
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrorUnknownMode, mode)
	}
	return b, nil
}

// Content returns the active editor's current text.
func (s *Session) Content() string {
	s.mu.Lock()
	b := s.backends[s.current]
	s.mu.Unlock()
	return b.Content()
}

// SetContent replaces the active editor's text, which fires the
// content-changed path (autosave + preview).
func (s *Session) SetContent(content string) {
	s.mu.Lock()
	b := s.backends[s.current]
	s.mu.Unlock()
	b.SetContent(content)
}

// OnContentChanged is invoked synchronously on every edit. The local autosave
// write always happens; a failing write degrades to a logged no-op and never
// interrupts editing. Rendering modes additionally refresh the live preview.
func (s *Session) OnContentChanged(mode modes.Mode, content string) {
	rec := autosave.Record{Mode: mode, Content: content, Timestamp: s.now()}
	if err := s.store.Save(rec); err != nil {
		s.log.Warn(context.Background(), "autosave degraded", "error", err.Error())
	}

	s.mu.Lock()
	preview := s.preview
	s.mu.Unlock()

	if preview != nil && previewable(mode) {
		preview(mode, content)
	}
}

func previewable(mode modes.Mode) bool {
	switch mode {
	case modes.HTML, modes.Markdown, modes.CSS:
		return true
	default:
		return false
	}
}

// SwitchMode snapshots the outgoing mode once, activates newMode, and
// restores the autosaved content when the slot holds a record for it.
func (s *Session) SwitchMode(newMode modes.Mode) error {
	if !s.registry.Contains(newMode) {
		return fmt.Errorf("%w: %s", shared.ErrorUnknownMode, newMode)
	}

	s.sched.Trigger()

	s.mu.Lock()
	if s.current == newMode {
		s.mu.Unlock()
		return nil
	}
	s.current = newMode
	b := s.backends[newMode]
	s.mu.Unlock()

	rec, err := s.store.Load()
	if err != nil {
		s.log.Warn(context.Background(), "autosave restore failed", "error", err.Error())
		return nil
	}
	if rec != nil && rec.Mode == newMode && b.Content() == "" {
		b.SetContent(rec.Content)
	}
	return nil
}

func (s *Session) snapshotSource() (snapshot.Payload, bool) {
	s.mu.Lock()
	mode := s.current
	b := s.backends[mode]
	s.mu.Unlock()

	return snapshot.Payload{
		Filename: modes.SnapshotFilename(mode),
		Content:  b.Content(),
	}, true
}

// Snapshot queues one immediate snapshot of the active mode.
func (s *Session) Snapshot() { s.sched.Trigger() }

// StartAutoSnapshots begins the periodic snapshot timer; idempotent.
func (s *Session) StartAutoSnapshots(interval time.Duration) bool {
	return s.sched.Start(interval)
}

// SnapshotStatus reports the ambient snapshot indicator.
func (s *Session) SnapshotStatus() snapshot.Status {
	return s.sched.Status()
}

// Modes returns the registry backing this session.
func (s *Session) Modes() *modes.Registry { return s.registry }

// Close fires a final snapshot (the page-unload analog) and shuts the
// scheduler down, draining queued sends until ctx expires.
func (s *Session) Close(ctx context.Context) error {
	s.sched.Trigger()
	return s.sched.Close(ctx)
}
