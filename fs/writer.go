// Package fs exports matches as markdown files, one file per source.
package fs

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/blocksearch"
	"gopkg.in/yaml.v3"
)

// Export is the markdown rendering of every match found in one source.
type Export struct {
	Source    string
	Templates []string
	Matches   int
	Generated time.Time
	Content   string
}

// frontmatter is the YAML header written above an export's content.
type frontmatter struct {
	Source    string   `yaml:"source"`
	Templates []string `yaml:"templates,flow"`
	Matches   int      `yaml:"matches"`
	Generated string   `yaml:"generated"`
}

// SourceToPath returns the relative markdown path for a source. URLs map
// to their path (https://example.com/docs/api → docs/api.md), files to
// their base name and stdin to stdin.md.
func SourceToPath(source string) (string, error) {
	if source == "-" {
		return "stdin.md", nil
	}
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		base := filepath.Base(source)
		return strings.TrimSuffix(base, filepath.Ext(base)) + ".md", nil
	}

	u, err := url.Parse(source)
	if err != nil {
		return "", blocksearch.Errorf(blocksearch.EINVALID, "invalid URL %q", source)
	}
	path := strings.TrimPrefix(u.Path, "/")
	switch {
	case path == "":
		return "index.md", nil
	case strings.HasSuffix(path, "/"):
		return path + "index.md", nil
	default:
		return strings.TrimSuffix(path, ".html") + ".md", nil
	}
}

// FormatExport renders e with a YAML frontmatter header.
func FormatExport(e *Export) (string, error) {
	header, err := yaml.Marshal(frontmatter{
		Source:    e.Source,
		Templates: e.Templates,
		Matches:   e.Matches,
		Generated: e.Generated.Format("2006-01-02"),
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(e.Content)
	return b.String(), nil
}

// Writer writes exports below a base directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer rooted at baseDir.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// Write stores e at the path derived from its source and returns that
// path.
func (w *Writer) Write(e *Export) (string, error) {
	if e.Source == "" {
		return "", blocksearch.Errorf(blocksearch.EINVALID, "export source required")
	}
	rel, err := SourceToPath(e.Source)
	if err != nil {
		return "", err
	}
	content, err := FormatExport(e)
	if err != nil {
		return "", err
	}

	full := filepath.Join(w.baseDir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		return "", err
	}
	return full, nil
}
