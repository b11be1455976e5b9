// Package images locates design artwork for scanned task codes. Artwork
// lives in a flat directory keyed by task-code file names; vector formats
// are rasterized on demand through an external converter. Everything here
// is best-effort: a missing or unreadable artwork directory degrades the
// scan display, never the scan.
package images

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"tagsight/internal/config"
	"tagsight/internal/logging"
)

// supportedExtensions lists the artwork formats the terminal can show or
// convert, lowercase with the leading dot.
var supportedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
	".ai":   true,
	".pdf":  true,
}

// vectorExtensions require conversion before display.
var vectorExtensions = map[string]bool{
	".ai":  true,
	".pdf": true,
}

const defaultConvertTimeout = 30 * time.Second

// Library serves artwork lookups against the configured directory.
type Library struct {
	cfg    config.Images
	logger *slog.Logger
}

// New creates an artwork library.
func New(cfg config.Images, logger *slog.Logger) *Library {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Library{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "images"),
	}
}

// Configured reports whether an artwork directory is set.
func (l *Library) Configured() bool {
	return strings.TrimSpace(l.cfg.Dir) != ""
}

// Supported reports whether the file name carries a usable artwork
// extension.
func Supported(name string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(name))]
}

// IsVector reports whether the file needs conversion before display.
func IsVector(name string) bool {
	return vectorExtensions[strings.ToLower(filepath.Ext(name))]
}

// List returns all usable artwork files in the configured directory,
// sorted by name. A missing directory yields an empty list.
func (l *Library) List() []string {
	if !l.Configured() {
		return nil
	}
	entries, err := os.ReadDir(l.cfg.Dir)
	if err != nil {
		l.logger.Warn("artwork directory unreadable",
			logging.String("dir", l.cfg.Dir), logging.Error(err))
		return nil
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !Supported(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names
}

// Exists reports whether the named artwork file is present in the
// configured directory.
func (l *Library) Exists(name string) bool {
	if !l.Configured() || !Supported(name) {
		return false
	}
	info, err := os.Stat(filepath.Join(l.cfg.Dir, name))
	return err == nil && !info.IsDir()
}

// Read returns the raw bytes of the named artwork file.
func (l *Library) Read(name string) ([]byte, error) {
	if !l.Configured() {
		return nil, fmt.Errorf("no artwork directory configured")
	}
	if !Supported(name) {
		return nil, fmt.Errorf("unsupported artwork file: %s", name)
	}
	data, err := os.ReadFile(filepath.Join(l.cfg.Dir, name))
	if err != nil {
		return nil, fmt.Errorf("read artwork %s: %w", name, err)
	}
	return data, nil
}

// FindForTaskCode returns the artwork files whose names start with the
// scanned task code, ignoring case.
func (l *Library) FindForTaskCode(taskCode string) []string {
	taskCode = strings.TrimSpace(taskCode)
	if taskCode == "" {
		return nil
	}
	prefix := strings.ToLower(taskCode)
	var matches []string
	for _, name := range l.List() {
		base := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
		if strings.HasPrefix(base, prefix) {
			matches = append(matches, filepath.Join(l.cfg.Dir, name))
		}
	}
	return matches
}

// ConvertVector rasterizes a vector artwork file to PNG next to the
// source, returning the output path. The configured converter (an
// ImageMagick-style command taking source and destination) does the work.
func (l *Library) ConvertVector(ctx context.Context, srcPath string) (string, error) {
	if !IsVector(srcPath) {
		return "", fmt.Errorf("not a vector artwork file: %s", filepath.Base(srcPath))
	}
	converter := strings.TrimSpace(l.cfg.ConvertCommand)
	if converter == "" {
		return "", fmt.Errorf("no convert command configured")
	}

	timeout := defaultConvertTimeout
	if l.cfg.ConvertTimeoutSeconds > 0 {
		timeout = time.Duration(l.cfg.ConvertTimeoutSeconds) * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	dstPath := strings.TrimSuffix(srcPath, filepath.Ext(srcPath)) + ".png"
	cmd := exec.CommandContext(ctx, converter, srcPath, dstPath)
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("convert %s: %w (%s)",
			filepath.Base(srcPath), err, strings.TrimSpace(string(output)))
	}
	l.logger.InfoContext(ctx, "artwork converted",
		logging.String("src", filepath.Base(srcPath)),
		logging.String("dst", filepath.Base(dstPath)))
	return dstPath, nil
}
