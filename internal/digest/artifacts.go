package digest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Artifacts are the previewable renderings of one digest run.
type Artifacts struct {
	ThreadPath   string
	EmailPath    string
	PlatformPath string
	StatsPath    string
}

// WriteArtifacts renders every long-form view of stats and writes the
// preview files (plain-text thread, HTML email, Markdown platform post,
// JSON stats dump) into dir.
func (f *Formatter) WriteArtifacts(dir string, stats *Stats) (*Artifacts, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	base := Slugify("hive digest " + stats.GeneratedAt.Format("2006-01-02"))
	out := &Artifacts{
		ThreadPath:   filepath.Join(dir, base+"-thread.txt"),
		EmailPath:    filepath.Join(dir, base+"-email.html"),
		PlatformPath: filepath.Join(dir, base+".md"),
		StatsPath:    filepath.Join(dir, base+"-stats.json"),
	}

	thread := f.Thread(stats)
	if err := os.WriteFile(out.ThreadPath, []byte(strings.Join(thread, "\n\n---\n\n")), 0o644); err != nil {
		return nil, fmt.Errorf("write thread preview: %w", err)
	}

	email, err := f.Email(stats)
	if err != nil {
		return nil, fmt.Errorf("render email: %w", err)
	}
	if err := os.WriteFile(out.EmailPath, []byte(email), 0o644); err != nil {
		return nil, fmt.Errorf("write email preview: %w", err)
	}

	platform, err := f.Platform(stats)
	if err != nil {
		return nil, fmt.Errorf("render platform post: %w", err)
	}
	if err := os.WriteFile(out.PlatformPath, []byte(platform), 0o644); err != nil {
		return nil, fmt.Errorf("write platform preview: %w", err)
	}

	raw, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal stats: %w", err)
	}
	if err := os.WriteFile(out.StatsPath, raw, 0o644); err != nil {
		return nil, fmt.Errorf("write stats dump: %w", err)
	}

	return out, nil
}
