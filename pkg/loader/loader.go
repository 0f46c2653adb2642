package loader

import (
	"context"
	"errors"
	"path"
	"strings"
)

// ErrNotFound is returned (wrapped) by a SourceLoader when the requested
// file does not exist. Callers treat it as an empty table, not a failure.
var ErrNotFound = errors.New("source file not found")

type SourceFormat string

const (
	SourceFormatCSV  SourceFormat = "csv"
	SourceFormatXLSX SourceFormat = "xlsx"
)

// FormatOf picks the parser for a file by its extension. Anything that is
// not a workbook is read as delimited text.
func FormatOf(filePath string) SourceFormat {
	switch strings.ToLower(path.Ext(filePath)) {
	case ".xlsx", ".xlsm":
		return SourceFormatXLSX
	default:
		return SourceFormatCSV
	}
}

// Table is a raw tabular source: ordered rows of ordered string cells.
// Rows may have different lengths.
type Table [][]string

// SourceFile is one tabular input. FilePath is interpreted by the Loader
// (a local path for the filesystem loader, an object key for S3).
type SourceFile struct {
	ID       string
	FilePath string
	Format   SourceFormat
	Loader   SourceLoader
}

// NewSourceFile creates a SourceFile whose format is derived from its path.
func NewSourceFile(id, filePath string, l SourceLoader) SourceFile {
	return SourceFile{
		ID:       id,
		FilePath: filePath,
		Format:   FormatOf(filePath),
		Loader:   l,
	}
}

// GetBytes retrieves the raw file content using the file's Loader.
func (f *SourceFile) GetBytes(ctx context.Context) ([]byte, error) {
	return f.Loader.GetFileBytes(ctx, *f)
}

// SourceLoader defines how the bytes of a SourceFile are fetched.
// Implementations must wrap ErrNotFound when the file is absent.
type SourceLoader interface {
	GetFileBytes(ctx context.Context, file SourceFile) ([]byte, error)
}
