package site

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	g "maragu.dev/gomponents"

	"github.com/ziadkadry99/robobook/internal/progress"
	"github.com/ziadkadry99/robobook/internal/widget"
)

// Build writes the static site to outputDir: index.html, one
// docs/<slug>/index.html per chapter and the static assets. It returns the
// number of HTML pages written. reporter may be nil.
func (s *Site) Build(outputDir string, reporter progress.Reporter) (int, error) {
	reporter = progress.OrNop(reporter)

	if err := os.MkdirAll(filepath.Join(outputDir, "static"), 0o755); err != nil {
		return 0, fmt.Errorf("creating output dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outputDir, filepath.FromSlash(StylePath)), styleCSS, 0o644); err != nil {
		return 0, fmt.Errorf("writing stylesheet: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outputDir, filepath.FromSlash(widget.ScriptPath)), widget.ScriptSource(), 0o644); err != nil {
		return 0, fmt.Errorf("writing widget script: %w", err)
	}

	reporter.Start(len(s.pages) + 1)
	defer reporter.Finish()

	if err := writePage(filepath.Join(outputDir, "index.html"), s.homePage()); err != nil {
		return 0, err
	}
	reporter.Update(1, "index.html")

	for i, p := range s.pages {
		out := filepath.Join(outputDir, "docs", filepath.FromSlash(p.Chapter.Slug), "index.html")
		if err := writePage(out, s.chapterPage(i)); err != nil {
			return i + 1, err
		}
		reporter.Update(i+2, p.Chapter.File)
	}
	return len(s.pages) + 1, nil
}

func writePage(path string, page g.Node) error {
	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
