// Package cli implements the interactive hub client: a REPL over the editing
// session, snapshot scheduler, export pipeline, draft watcher, and the small
// admin inspection tools.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cynit/hub/internal/client/autosave"
	"github.com/cynit/hub/internal/client/config"
	"github.com/cynit/hub/internal/client/export"
	"github.com/cynit/hub/internal/client/session"
	"github.com/cynit/hub/internal/client/snapshot"
	"github.com/cynit/hub/internal/client/watch"
	"github.com/cynit/hub/internal/filex"
	"github.com/cynit/hub/internal/logging"
	"github.com/cynit/hub/internal/modes"
	"github.com/cynit/hub/internal/tools/certview"
	"github.com/cynit/hub/internal/tools/jwtinspect"
)

const closeTimeout = 5 * time.Second

type App struct {
	config    *config.Config
	logger    logging.Logger
	session   *session.Session
	exporter  *export.Exporter
	publisher *export.Publisher
	watcher   *watch.Watcher
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewDefault()

	registry := modes.DefaultRegistry()
	if c.ModesFile != "" {
		var err error
		registry, err = modes.LoadRegistry(c.ModesFile)
		if err != nil {
			return nil, fmt.Errorf("modes init error: %w", err)
		}
	}

	if _, err := filex.EnsureDir(c.DataDir); err != nil {
		return nil, fmt.Errorf("data dir init error: %w", err)
	}
	store := autosave.NewStore(c.DataDir)

	transport := snapshot.NewHTTPTransport(c.SnapshotEndpoint)
	sess := session.New(registry, store, transport, logger)

	app := &App{
		config:   c,
		logger:   logger,
		session:  sess,
		exporter: export.NewExporter(c.ExportPrefix),
	}

	s3 := export.S3Settings{
		RootUser:     c.S3RootUser,
		RootPassword: c.S3RootPassword,
		Bucket:       c.S3Bucket,
		Region:       c.S3Region,
		BaseEndpoint: c.S3BaseEndpoint,
	}
	if s3.Enabled() {
		app.publisher = export.NewPublisher(s3)
	}

	return app, nil
}

func (a *App) getStatus() string {
	st := a.session.SnapshotStatus()
	s := string(a.session.Current())
	if st.State != snapshot.StateIdle {
		s = s + " " + string(st.State)
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) Run(ctx context.Context) {
	a.session.StartAutoSnapshots(a.config.SnapshotInterval)

	printlnFn("Welcome to hub CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)

	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.logger.Warn(ctx, "closing watcher", "error", err.Error())
		}
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := a.session.Close(closeCtx); err != nil {
		a.logger.Warn(ctx, "closing session", "error", err.Error())
	}
}

// Modes lists the configured content modes.
func (a *App) Modes(ctx context.Context) error {
	current := a.session.Current()
	for _, d := range a.session.Modes().All() {
		marker := "  "
		if d.Name == current {
			marker = "* "
		}
		printlnFn(fmt.Sprintf("%s%s (%s, editor: %s)", marker, d.Name, d.Label, d.Editor))
	}
	return nil
}

// SwitchMode activates another content mode.
func (a *App) SwitchMode(ctx context.Context, name string) error {
	if err := a.session.SwitchMode(modes.Mode(name)); err != nil {
		printlnFn("Cannot switch mode:", err.Error())
		return err
	}
	printlnFn("Switched to mode:", name)
	return nil
}

// Edit reads content lines until a single "." line and stores them in the
// active editor.
func (a *App) Edit(ctx context.Context, scanner *bufio.Scanner) error {
	printlnFn("Enter content, finish with a single '.' on its own line:")

	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if line == "." {
			break
		}
		lines = append(lines, line)
	}

	content := strings.Join(lines, "\n")
	a.session.SetContent(content)
	printlnFn(fmt.Sprintf("Stored %d bytes in mode %s", len(content), a.session.Current()))
	return nil
}

// Show prints the active editor's content.
func (a *App) Show(ctx context.Context) error {
	printlnFn(a.session.Content())
	return nil
}

// Snapshot queues one immediate snapshot.
func (a *App) Snapshot(ctx context.Context) error {
	a.session.Snapshot()
	printlnFn("Snapshot queued")
	return nil
}

// Status prints the snapshot indicator.
func (a *App) Status(ctx context.Context) error {
	st := a.session.SnapshotStatus()
	printlnFn("Snapshot state:", string(st.State))
	if !st.LastSuccess.IsZero() {
		printlnFn("Last success:", st.LastSuccess.Format(time.RFC3339))
	}
	if st.LastError != "" {
		printlnFn("Last error:", st.LastError)
	}
	return nil
}

// Export bundles every mode's content into a ZIP in the data directory and,
// when a publish target is configured, uploads it.
func (a *App) Export(ctx context.Context) error {
	result := a.exporter.Export(a.session.Modes(), func(m modes.Mode) string {
		b, err := a.session.Backend(m)
		if err != nil {
			return ""
		}
		return b.Content()
	})

	path, err := a.exporter.WriteFile(a.config.DataDir, result)
	if err != nil {
		a.logger.Error(ctx, "export failed", "error", err.Error())
		printlnFn("Export failed:", err.Error())
		return err
	}
	printlnFn("Export written:", path)

	if a.publisher != nil {
		key, err := a.publisher.Publish(ctx, result)
		if err != nil {
			a.logger.Error(ctx, "publish failed", "error", err.Error())
			printlnFn("Publish failed:", err.Error())
			return err
		}
		printlnFn("Published as:", key)
	}
	return nil
}

// Watch mirrors writes to a draft file into the active editor. Only one
// watcher runs at a time; a new path replaces the old watcher.
func (a *App) Watch(ctx context.Context, path string) error {
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.logger.Warn(ctx, "closing previous watcher", "error", err.Error())
		}
		a.watcher = nil
	}

	w, err := watch.New(path, a.config.DraftDebounce, func(content string) {
		a.session.SetContent(content)
	}, a.logger)
	if err != nil {
		printlnFn("Cannot watch:", err.Error())
		return err
	}
	a.watcher = w
	printlnFn("Watching:", path)
	return nil
}

// InspectJWT decodes a token, verifying the signature when a key is given.
func (a *App) InspectJWT(ctx context.Context, token, secret string) error {
	var info *jwtinspect.Info
	var err error

	if secret != "" {
		info, err = jwtinspect.Verify(token, []byte(secret))
	} else {
		info, err = jwtinspect.Decode(token)
	}
	if err != nil {
		printlnFn("Invalid token:", err.Error())
		return err
	}

	printlnFn("Algorithm:", info.Algorithm)
	if info.Subject != "" {
		printlnFn("Subject:", info.Subject)
	}
	if info.ExpiresAt != nil {
		printlnFn("Expires:", info.ExpiresAt.Format(time.RFC3339))
	}
	if info.Expired {
		printlnFn("Token is EXPIRED")
	}
	if secret != "" {
		printlnFn("Signature: valid")
	} else {
		printlnFn("Signature: not checked")
	}
	for k, v := range info.Claims {
		printlnFn(fmt.Sprintf("  %s: %v", k, v))
	}
	return nil
}

// InspectCert summarizes the certificates in a PEM file.
func (a *App) InspectCert(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		printlnFn("Cannot read file:", err.Error())
		return err
	}

	summaries, err := certview.Parse(data)
	if err != nil {
		printlnFn("Cannot parse certificates:", err.Error())
		return err
	}

	for i, s := range summaries {
		printlnFn(fmt.Sprintf("Certificate %d:", i+1))
		printlnFn("  Subject:", s.Subject)
		printlnFn("  Issuer:", s.Issuer)
		printlnFn("  Serial:", s.SerialNumber)
		printlnFn("  Valid:", s.NotBefore.Format(time.RFC3339), "to", s.NotAfter.Format(time.RFC3339))
		if len(s.DNSNames) > 0 {
			printlnFn("  DNS names:", fmt.Sprintf("%v", s.DNSNames))
		}
		if s.Expired {
			printlnFn("  EXPIRED")
		}
	}
	return nil
}
