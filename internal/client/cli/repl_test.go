package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	calls []string
	args  []string
}

func (f *fakeExec) Modes(ctx context.Context) error {
	f.calls = append(f.calls, "modes")
	return nil
}
func (f *fakeExec) SwitchMode(ctx context.Context, name string) error {
	f.calls = append(f.calls, "mode")
	f.args = append(f.args, name)
	return nil
}
func (f *fakeExec) Edit(ctx context.Context, scanner *bufio.Scanner) error {
	f.calls = append(f.calls, "edit")
	for scanner.Scan() {
		if scanner.Text() == "." {
			break
		}
	}
	return nil
}
func (f *fakeExec) Show(ctx context.Context) error {
	f.calls = append(f.calls, "show")
	return nil
}
func (f *fakeExec) Snapshot(ctx context.Context) error {
	f.calls = append(f.calls, "snapshot")
	return nil
}
func (f *fakeExec) Status(ctx context.Context) error {
	f.calls = append(f.calls, "status")
	return nil
}
func (f *fakeExec) Export(ctx context.Context) error {
	f.calls = append(f.calls, "export")
	return nil
}
func (f *fakeExec) Watch(ctx context.Context, path string) error {
	f.calls = append(f.calls, "watch")
	f.args = append(f.args, path)
	return nil
}
func (f *fakeExec) InspectJWT(ctx context.Context, token, secret string) error {
	f.calls = append(f.calls, "jwt")
	f.args = append(f.args, token, secret)
	return nil
}
func (f *fakeExec) InspectCert(ctx context.Context, path string) error {
	f.calls = append(f.calls, "cert")
	f.args = append(f.args, path)
	return nil
}

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"modes",
		"mode html",
		"edit",
		"line one",
		".",
		"show",
		"snapshot",
		"status",
		"export",
		"watch draft.md",
		"jwt eyJ0 secret",
		"cert ca.pem",
		"nonsense",
		"exit",
	}, "\n"))

	exec := &fakeExec{}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	want := []string{"modes", "mode", "edit", "show", "snapshot", "status", "export", "watch", "jwt", "cert"}
	if len(exec.calls) != len(want) {
		t.Fatalf("calls mismatch: got %v, want %v", exec.calls, want)
	}
	for i, c := range exec.calls {
		if c != want[i] {
			t.Fatalf("call %d: got %q, want %q (all: %v)", i, c, want[i], exec.calls)
		}
	}

	wantArgs := []string{"html", "draft.md", "eyJ0", "secret", "ca.pem"}
	for i, a := range exec.args {
		if a != wantArgs[i] {
			t.Fatalf("arg %d: got %q, want %q", i, a, wantArgs[i])
		}
	}
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader("mode\nwatch\njwt\ncert\nquit\n")
	exec := &fakeExec{}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
