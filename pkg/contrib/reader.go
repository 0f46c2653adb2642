package contrib

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/contribgraph/backend/pkg/loader"
	"github.com/contribgraph/backend/pkg/loader/csv"
	"github.com/contribgraph/backend/pkg/loader/excel"
	"github.com/contribgraph/backend/pkg/logger"
)

// Source ties a file to the provenance its records are tagged with.
type Source struct {
	Provenance Provenance
	File       loader.SourceFile
}

// ReadResult is the outcome of reading all sources. Records is always
// usable: when Err is set it holds empty record sets.
type ReadResult struct {
	Records Records
	Err     error
}

// OK reports whether every source was read without a failure.
func (r ReadResult) OK() bool {
	return r.Err == nil
}

// Reader loads and normalizes the contributor sources.
type Reader struct {
	sources []Source
	columns ColumnMap
}

// NewReader creates a Reader over sources. A nil columns uses DefaultColumns.
func NewReader(columns ColumnMap, sources ...Source) *Reader {
	if columns == nil {
		columns = DefaultColumns
	}
	return &Reader{sources: sources, columns: columns}
}

// Sources returns the configured sources in processing order.
func (r *Reader) Sources() []Source {
	return r.sources
}

// ParseFile decodes raw file content into a table according to the file's
// format.
func ParseFile(file loader.SourceFile, content []byte) (loader.Table, error) {
	switch file.Format {
	case loader.SourceFormatXLSX:
		return excel.ParseTable(content)
	default:
		return csv.ParseTable(content)
	}
}

// LoadTable fetches and parses one file. A missing file yields a nil table
// and an error wrapping loader.ErrNotFound.
func LoadTable(ctx context.Context, file loader.SourceFile) (loader.Table, error) {
	content, err := file.GetBytes(ctx)
	if err != nil {
		return nil, err
	}
	table, err := ParseFile(file, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", file.FilePath, err)
	}
	return table, nil
}

// Read loads every source and normalizes it. Missing files count as empty.
// Any other failure in any source fails the whole read: the result carries
// the cause and empty record sets for both provenances.
func (r *Reader) Read(ctx context.Context) ReadResult {
	tables := make([]loader.Table, len(r.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range r.sources {
		i, src := i, src
		g.Go(func() error {
			table, err := LoadTable(gctx, src.File)
			if errors.Is(err, loader.ErrNotFound) {
				logger.Debug("Source file not found, treating as empty", "source", src.Provenance, "path", src.File.FilePath)
				return nil
			}
			if err != nil {
				return fmt.Errorf("%s source: %w", src.Provenance, err)
			}
			tables[i] = table
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ReadResult{Records: EmptyRecords(), Err: err}
	}

	records := EmptyRecords()
	for i, src := range r.sources {
		if tables[i] == nil {
			continue
		}
		recs, err := Normalize(tables[i], src.Provenance, r.columns)
		if err != nil {
			return ReadResult{
				Records: EmptyRecords(),
				Err:     fmt.Errorf("%s source %s: %w", src.Provenance, src.File.FilePath, err),
			}
		}
		records.add(src.Provenance, recs)
	}

	return ReadResult{Records: records}
}

// GetNormalizedRecords reads the sources and reports any failure to the
// operator log. It never fails: on error both record sets are empty.
func (r *Reader) GetNormalizedRecords(ctx context.Context) Records {
	res := r.Read(ctx)
	if res.Err != nil {
		logger.Error("Failed to read contributor sources", "err", res.Err)
		return res.Records
	}
	logger.Debug("Read contributor sources", "records", res.Records.Len())
	return res.Records
}
