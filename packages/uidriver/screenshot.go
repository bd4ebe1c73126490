package uidriver

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"go.uber.org/zap"

	"github.com/verityhq/verity/packages/assert"
)

// Screenshotter captures page screenshots into a directory when assertions
// fail with the screenshot option enabled.
type Screenshotter struct {
	page *rod.Page
	dir  string
	log  *zap.Logger
}

// NewScreenshotter creates a screenshotter writing PNGs under dir.
func NewScreenshotter(page *rod.Page, dir string, log *zap.Logger) *Screenshotter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Screenshotter{page: page, dir: dir, log: log}
}

// Capture takes a viewport screenshot and writes it to a timestamped file.
func (s *Screenshotter) Capture() (string, error) {
	data, err := s.page.Screenshot(false, nil)
	if err != nil {
		return "", fmt.Errorf("screenshot capture failed: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, fmt.Sprintf("failure-%s.png", time.Now().Format("20060102-150405.000")))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// ArtifactFunc adapts the screenshotter to the base engine's failure hook.
// Capture problems are logged, never allowed to mask the assertion failure.
func (s *Screenshotter) ArtifactFunc() assert.ArtifactFunc {
	return func(message string) {
		path, err := s.Capture()
		if err != nil {
			s.log.Warn("failed to capture failure screenshot", zap.Error(err))
			return
		}
		s.log.Info("captured failure screenshot",
			zap.String("path", path),
			zap.String("assertion", message))
	}
}
