package io

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/contribgraph/backend/pkg/loader"
)

// IOSourceLoader reads source files from the local filesystem. Relative
// paths are resolved against BaseDir. Nothing is cached: every call hits
// the disk so that edits to the files show up on the next request.
type IOSourceLoader struct {
	BaseDir string
}

// NewIOSourceLoader creates a filesystem loader rooted at baseDir.
func NewIOSourceLoader(baseDir string) *IOSourceLoader {
	return &IOSourceLoader{BaseDir: baseDir}
}

func (l *IOSourceLoader) resolve(p string) string {
	if filepath.IsAbs(p) || l.BaseDir == "" {
		return p
	}
	return filepath.Join(l.BaseDir, p)
}

// GetFileBytes reads the file content from the filesystem.
func (l *IOSourceLoader) GetFileBytes(ctx context.Context, file loader.SourceFile) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p := l.resolve(file.FilePath)
	content, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", p, loader.ErrNotFound)
		}
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	return content, nil
}
