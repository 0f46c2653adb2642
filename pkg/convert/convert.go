// Package convert turns the contributions log into the flat spreadsheet the
// contributor sources are maintained from.
package convert

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

var Header = []string{"Nom", "Contact", "Papier", "Web"}

// Person is one entry of "qui".
type Person struct {
	Name    string `json:"nom"`
	Contact string `json:"contact"`
}

// People accepts "qui" given either as a single object or as a list.
type People []Person

func (p *People) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []Person
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		*p = list
		return nil
	}
	var one Person
	if err := json.Unmarshal(trimmed, &one); err != nil {
		return err
	}
	*p = People{one}
	return nil
}

type Typology struct {
	Paper any `json:"papier"`
	Web   any `json:"web"`
}

type Contribution struct {
	Who      *People   `json:"qui"`
	Typology *Typology `json:"typologie"`
}

// Row is one output line: Nom, Contact, Papier, Web.
type Row [4]string

// Decode reads a JSON array of contributions.
func Decode(r io.Reader) ([]Contribution, error) {
	var out []Contribution
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode contributions: %w", err)
	}
	return out, nil
}

// Rows flattens contributions. Several people in one contribution are joined
// with ", " in both the name and the contact column.
func Rows(contributions []Contribution) ([]Row, error) {
	rows := make([]Row, 0, len(contributions))
	for i, c := range contributions {
		if c.Who == nil {
			return nil, fmt.Errorf("contribution %d: missing \"qui\"", i)
		}
		if c.Typology == nil {
			return nil, fmt.Errorf("contribution %d: missing \"typologie\"", i)
		}

		names := make([]string, len(*c.Who))
		contacts := make([]string, len(*c.Who))
		for j, p := range *c.Who {
			names[j] = p.Name
			contacts[j] = p.Contact
		}

		rows = append(rows, Row{
			strings.Join(names, ", "),
			strings.Join(contacts, ", "),
			cellText(c.Typology.Paper),
			cellText(c.Typology.Web),
		})
	}
	return rows, nil
}

// cellText renders a JSON scalar the way the sheet expects it: booleans as
// True/False, null as an empty cell.
func cellText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "True"
		}
		return "False"
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// WriteCSV writes the header and rows as comma separated text.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r[:]); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

const sheetName = "Contributions"

// WriteXLSX writes the header and rows into a single-sheet workbook.
func WriteXLSX(w io.Writer, rows []Row) (err error) {
	f := excelize.NewFile()
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return err
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{r[0], r[1], r[2], r[3]}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return err
		}
	}

	_, err = f.WriteTo(w)
	return err
}
