// Package shared provides small utilities and sentinel errors used by both
// the hub client and server.
package shared

import (
	"path"
	"regexp"
	"strings"
	"time"
)

var unsafeChars = regexp.MustCompile(`[\\/:*?"<>|]+`)

// SanitizeFilename reduces a user-supplied filename to a safe basename:
// leading/trailing space is trimmed, any directory part is stripped, and
// characters that are unsafe on common filesystems are replaced with '_'.
// An empty or all-directory input yields "".
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	// Normalize Windows separators before taking the basename.
	name = strings.ReplaceAll(name, `\`, "/")
	name = path.Base(name)
	if name == "/" || name == "." {
		return ""
	}
	return unsafeChars.ReplaceAllString(name, "_")
}

// TimestampToken renders t as an RFC3339-like token safe for filenames:
// colons and dots are replaced with dashes.
func TimestampToken(t time.Time) string {
	s := t.UTC().Format(time.RFC3339)
	s = strings.ReplaceAll(s, ":", "-")
	return strings.ReplaceAll(s, ".", "-")
}

// BackupTimestamp renders t in the compact UTC form used for backup and
// snapshot version names, e.g. "20260830-141502".
func BackupTimestamp(t time.Time) string {
	return t.UTC().Format("20060102-150405")
}
