// Package importer brings existing writing into the journal. It parses
// Markdown files with optional YAML frontmatter and turns each file into
// one journal entry, so users migrating from a notes app keep their
// history and get mood classification over it.
package importer

import (
	"bufio"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/solacehq/solace/pkg/types"
)

// ParsedEntry is a single Markdown file parsed into journal-entry form.
type ParsedEntry struct {
	// Title is from frontmatter, the first H1 heading, or the filename.
	Title string

	// Content is the Markdown body with frontmatter stripped.
	Content string

	// MoodTag is the frontmatter "mood" field coerced into the taxonomy,
	// empty when absent.
	MoodTag types.Mood

	// WrittenAt is from the frontmatter date field, or zero when absent.
	WrittenAt time.Time
}

// ParseMarkdownFile parses one Markdown file's content. path is used
// only to derive a fallback title from the filename.
func ParseMarkdownFile(content []byte, path string) (*ParsedEntry, error) {
	text := string(content)

	fm, body, err := splitFrontmatter(text)
	if err != nil {
		return nil, fmt.Errorf("frontmatter parse error in %s: %w", filepath.Base(path), err)
	}

	title := extractString(fm, "title", "")
	if title == "" {
		if h1 := extractH1(body); h1 != "" {
			title = h1
		} else {
			title = titleFromPath(path)
		}
	}

	entry := &ParsedEntry{
		Title:     title,
		Content:   strings.TrimSpace(body),
		WrittenAt: extractTimestamp(fm),
	}
	if mood := extractString(fm, "mood", ""); mood != "" {
		entry.MoodTag = types.ParseMood(mood)
	}
	if entry.Content == "" {
		return nil, fmt.Errorf("%s has no body text", filepath.Base(path))
	}
	return entry, nil
}

// splitFrontmatter separates YAML frontmatter (between --- delimiters)
// from the Markdown body. Returns empty map and full text when no
// frontmatter found.
func splitFrontmatter(text string) (map[string]interface{}, string, error) {
	scanner := bufio.NewScanner(strings.NewReader(text))

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if len(lines) == 0 {
		return map[string]interface{}{}, text, nil
	}

	// Frontmatter must start with "---" on the first line.
	if strings.TrimSpace(lines[0]) != "---" {
		return map[string]interface{}{}, text, nil
	}

	closeIdx := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			closeIdx = i
			break
		}
	}
	if closeIdx == -1 {
		// No closing delimiter - treat entire file as body.
		return map[string]interface{}{}, text, nil
	}

	fmText := strings.Join(lines[1:closeIdx], "\n")
	fm := make(map[string]interface{})
	if err := yaml.Unmarshal([]byte(fmText), &fm); err != nil {
		return map[string]interface{}{}, text, fmt.Errorf("invalid YAML: %w", err)
	}

	body := strings.Join(lines[closeIdx+1:], "\n")
	return fm, body, nil
}

// titleFromPath derives a human-readable title from the file name.
func titleFromPath(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = strings.ReplaceAll(name, "-", " ")
	name = strings.ReplaceAll(name, "_", " ")
	return strings.TrimSpace(name)
}

// extractH1 returns the text of the first ATX heading (# ...) in the body.
func extractH1(body string) string {
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:])
		}
	}
	return ""
}

// extractTimestamp reads a date field from frontmatter and attempts
// several common layouts.
func extractTimestamp(fm map[string]interface{}) time.Time {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
		"January 2, 2006",
		"Jan 2, 2006",
	}

	for _, key := range []string{"date", "created", "created_at", "written_at"} {
		raw, ok := fm[key]
		if !ok {
			continue
		}
		var s string
		switch v := raw.(type) {
		case string:
			s = v
		case time.Time:
			return v
		default:
			s = fmt.Sprintf("%v", v)
		}
		for _, layout := range layouts {
			if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

// extractString pulls a string value from frontmatter by key with a default.
func extractString(fm map[string]interface{}, key, defaultVal string) string {
	v, ok := fm[key]
	if !ok {
		return defaultVal
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return defaultVal
}
