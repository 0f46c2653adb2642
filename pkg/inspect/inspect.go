// Package inspect dumps what the reader sees in a contributor source: raw
// lines, header labels, shape, and the records that survive normalization.
package inspect

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/contribgraph/backend/pkg/contrib"
	"github.com/contribgraph/backend/pkg/loader"
)

const (
	rawLineLimit = 10
	headRowLimit = 5
	sampleLimit  = 3
)

type Report struct {
	Path     string
	Exists   bool
	RawLines []string
	Labels   []string
	Rows     int
	Columns  int
	Head     [][]string
	ValidWho int
	Samples  []contrib.Record
	Err      error
}

// Inspect loads file and describes it. Problems are stored in the report
// rather than returned.
func Inspect(ctx context.Context, file loader.SourceFile, columns contrib.ColumnMap) Report {
	r := Report{Path: file.FilePath}

	content, err := file.GetBytes(ctx)
	if errors.Is(err, loader.ErrNotFound) {
		return r
	}
	r.Exists = true
	if err != nil {
		r.Err = err
		return r
	}

	if file.Format == loader.SourceFormatCSV {
		r.RawLines = rawLines(content, rawLineLimit)
	}

	table, err := contrib.ParseFile(file, content)
	if err != nil {
		r.Err = err
		return r
	}
	r.Labels, err = contrib.HeaderLabels(table)
	if err != nil {
		r.Err = err
		return r
	}
	r.Columns = len(r.Labels)
	r.Rows = len(table) - 2
	r.Head = table[2:min(len(table), 2+headRowLimit)]

	records, err := contrib.Normalize(table, contrib.Internal, columns)
	if err != nil {
		r.Err = err
		return r
	}
	r.ValidWho = len(records)
	r.Samples = records[:min(len(records), sampleLimit)]
	return r
}

// rawLines returns up to limit lines of content, quoted with their line
// endings.
func rawLines(content []byte, limit int) []string {
	var out []string
	rd := bufio.NewReader(bytes.NewReader(content))
	for len(out) < limit {
		line, err := rd.ReadString('\n')
		if line != "" {
			out = append(out, strconv.Quote(line))
		}
		if err != nil {
			break
		}
	}
	return out
}

// Render writes the report as text with pterm tables.
func Render(w io.Writer, r Report) error {
	pterm.Fprintln(w, pterm.Bold.Sprintf("=== %s ===", r.Path))

	if !r.Exists {
		pterm.Fprintln(w, pterm.Yellow(fmt.Sprintf("File %s does not exist", r.Path)))
		return nil
	}

	if len(r.RawLines) > 0 {
		pterm.Fprintln(w, "Raw lines:")
		for i, line := range r.RawLines {
			pterm.Fprintln(w, fmt.Sprintf("%d: %s", i, line))
		}
	}

	if r.Err != nil {
		pterm.Fprintln(w, pterm.Red(fmt.Sprintf("Error reading %s: %v", r.Path, r.Err)))
		return nil
	}

	pterm.Fprintln(w, fmt.Sprintf("Columns: [%s]", strings.Join(quoteAll(r.Labels), ", ")))
	pterm.Fprintln(w, fmt.Sprintf("Shape: (%d, %d)", r.Rows, r.Columns))

	if len(r.Head) > 0 {
		pterm.Fprintln(w, "First rows:")
		data := pterm.TableData{r.Labels}
		for _, row := range r.Head {
			data = append(data, padRow(row, len(r.Labels)))
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(w).Render(); err != nil {
			return err
		}
	}

	pterm.Fprintln(w, fmt.Sprintf("Valid 'who' rows: %d", r.ValidWho))
	if len(r.Samples) == 0 {
		return nil
	}

	pterm.Fprintln(w, "Sample valid data:")
	data := pterm.TableData{{"who", "what", "topics_raw"}}
	for _, rec := range r.Samples {
		data = append(data, []string{
			strconv.Quote(rec.Who),
			strconv.Quote(rec.What),
			strconv.Quote(rec.TopicsRaw),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(w).Render()
}

func quoteAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strconv.Quote(s)
	}
	return out
}

// padRow fits row to width columns so every table line has the same shape.
func padRow(row []string, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}
