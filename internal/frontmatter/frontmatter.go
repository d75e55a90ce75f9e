// Package frontmatter splits and assembles documents carrying a YAML
// frontmatter block between "---" fences, as used by the markdown content mode.
package frontmatter

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Split separates an optional leading frontmatter block from the body.
// Documents without a valid block come back with empty metadata and an
// unchanged body. A malformed YAML block is treated as absent rather than
// failing the caller: the raw text is the source of truth.
func Split(text string) (map[string]any, string) {
	if text == "" {
		return map[string]any{}, ""
	}
	if !strings.HasPrefix(text, "---") {
		return map[string]any{}, text
	}

	parts := strings.SplitN(text, "---", 3)
	if len(parts) < 3 {
		return map[string]any{}, text
	}

	meta := map[string]any{}
	if err := yaml.Unmarshal([]byte(strings.TrimSpace(parts[1])), &meta); err != nil || meta == nil {
		meta = map[string]any{}
	}
	return meta, strings.TrimLeft(parts[2], " \t\r\n")
}

// Assemble prepends meta as a YAML frontmatter block to body. With empty
// metadata the body is returned as-is.
func Assemble(meta map[string]any, body string) (string, error) {
	if len(meta) == 0 {
		return body, nil
	}

	y, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshaling frontmatter: %w", err)
	}
	return fmt.Sprintf("---\n%s---\n\n%s", y, body), nil
}
