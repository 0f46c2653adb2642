// Package contrib turns the raw contributor spreadsheets into normalized
// ContributionRecords.
//
// The exports carry no reliable header text, so fields are bound to column
// positions through a ColumnMap. Every run re-reads the sources from
// scratch; nothing is cached between calls.
package contrib

import (
	"encoding/json"
	"strings"
)

// Provenance tells which of the two source tables a record came from.
type Provenance string

const (
	Internal Provenance = "internal"
	External Provenance = "external"
)

// Provenances lists the sources in processing order. Contributor ids are
// assigned by walking this order, so it must not change between runs.
var Provenances = []Provenance{Internal, External}

// Field names a semantic column of a contributor table.
type Field string

const (
	FieldWho    Field = "who"
	FieldWhat   Field = "what"
	FieldTopics Field = "topics_raw"
)

// ColumnBinding maps one field to a zero-based raw column index.
type ColumnBinding struct {
	Field Field
	Index int
}

// ColumnMap is the ordered set of positional bindings used to extract a
// record from a row.
type ColumnMap []ColumnBinding

// DefaultColumns is the layout of the contributor exports: column 1 holds
// who, column 3 what and column 5 the comma separated topics. Columns in
// between are blank spacer columns in the spreadsheet.
var DefaultColumns = ColumnMap{
	{Field: FieldWho, Index: 1},
	{Field: FieldWhat, Index: 3},
	{Field: FieldTopics, Index: 5},
}

// Index returns the column bound to f, or -1.
func (m ColumnMap) Index(f Field) int {
	for _, b := range m {
		if b.Field == f {
			return b.Index
		}
	}
	return -1
}

type fieldSet uint8

const (
	hasWho fieldSet = 1 << iota
	hasWhat
	hasTopics
)

func fieldBit(f Field) fieldSet {
	switch f {
	case FieldWho:
		return hasWho
	case FieldWhat:
		return hasWhat
	case FieldTopics:
		return hasTopics
	}
	return 0
}

// Record is one normalized contributor row. A field whose column is out of
// range for its table is absent: its value is "" and Has reports false.
type Record struct {
	Who        string
	What       string
	TopicsRaw  string
	Provenance Provenance

	present fieldSet
}

// NewRecord builds a record with all three fields present.
func NewRecord(p Provenance, who, what, topics string) Record {
	return Record{
		Who:        who,
		What:       what,
		TopicsRaw:  topics,
		Provenance: p,
		present:    hasWho | hasWhat | hasTopics,
	}
}

// Has reports whether f was extracted for this record.
func (r Record) Has(f Field) bool {
	return r.present&fieldBit(f) != 0
}

func (r *Record) set(f Field, value string) {
	switch f {
	case FieldWho:
		r.Who = value
	case FieldWhat:
		r.What = value
	case FieldTopics:
		r.TopicsRaw = value
	default:
		return
	}
	r.present |= fieldBit(f)
}

type recordJSON struct {
	Who        *string    `json:"who,omitempty"`
	What       *string    `json:"what,omitempty"`
	TopicsRaw  *string    `json:"topics_raw,omitempty"`
	Provenance Provenance `json:"provenance"`
}

// MarshalJSON writes the record as a flat object keyed by field name,
// leaving out fields that were not extracted.
func (r Record) MarshalJSON() ([]byte, error) {
	out := recordJSON{Provenance: r.Provenance}
	if r.Has(FieldWho) {
		out.Who = &r.Who
	}
	if r.Has(FieldWhat) {
		out.What = &r.What
	}
	if r.Has(FieldTopics) {
		out.TopicsRaw = &r.TopicsRaw
	}
	return json.Marshal(out)
}

// IsValidWho reports whether who identifies a contributor: non-empty after
// trimming and not the "nan" placeholder left by spreadsheet tools.
func IsValidWho(who string) bool {
	w := strings.TrimSpace(who)
	return w != "" && !strings.EqualFold(w, "nan")
}

// Records holds the normalized record sets of both sources.
type Records struct {
	Internal []Record `json:"internal"`
	External []Record `json:"external"`
}

// EmptyRecords returns record sets that encode as empty arrays.
func EmptyRecords() Records {
	return Records{Internal: []Record{}, External: []Record{}}
}

// Get returns the records of one provenance.
func (r Records) Get(p Provenance) []Record {
	switch p {
	case Internal:
		return r.Internal
	case External:
		return r.External
	}
	return nil
}

func (r *Records) add(p Provenance, recs []Record) {
	switch p {
	case Internal:
		r.Internal = append(r.Internal, recs...)
	case External:
		r.External = append(r.External, recs...)
	}
}

// Len is the total number of records across both sources.
func (r Records) Len() int {
	return len(r.Internal) + len(r.External)
}
