package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const internalCSV = "Export\n#,Qui,,Quoi,,Topic\n1,Alex,,editing,,\"Sound, Design\"\n"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DATA_BACKEND", "fs")
	t.Setenv("INTERNAL_SOURCE", "")
	t.Setenv("EXTERNAL_SOURCE", "")

	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func dataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "contributeurices_int.csv"), []byte(internalCSV), 0o644))
	return dir
}

func TestRecordsCmd(t *testing.T) {
	out, err := run(t, "records", "--data-dir", dataDir(t))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"internal": [{"who":"Alex","what":"editing","topics_raw":"Sound, Design","provenance":"internal"}],
		"external": []
	}`, out)
}

func TestGraphCmd(t *testing.T) {
	out, err := run(t, "graph", "--data-dir", dataDir(t))
	require.NoError(t, err)

	var doc struct {
		Nodes []map[string]any `json:"nodes"`
		Links []map[string]any `json:"links"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Len(t, doc.Nodes, 3)
	assert.Len(t, doc.Links, 2)
}

func TestInspectCmd(t *testing.T) {
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	dir := dataDir(t)
	out, err := run(t, "inspect", "--data-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "contributeurices_int.csv")
	assert.Contains(t, out, "Valid 'who' rows: 1")
	assert.Contains(t, out, "contributeurices_ext.csv does not exist")
}

func TestConvertCmd(t *testing.T) {
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	dir := t.TempDir()
	in := filepath.Join(dir, "contributions.json")
	csvOut := filepath.Join(dir, "contributions.csv")
	xlsxOut := filepath.Join(dir, "contributions.xlsx")
	require.NoError(t, os.WriteFile(in, []byte(`[{"qui":{"nom":"Alex","contact":"a@x"},"typologie":{"papier":"oui","web":"non"}}]`), 0o644))

	out, err := run(t, "convert", "--in", in, "--out", csvOut, "--xlsx", xlsxOut)
	require.NoError(t, err)
	assert.Contains(t, out, "1 rows")

	b, err := os.ReadFile(csvOut)
	require.NoError(t, err)
	assert.Equal(t, "Nom,Contact,Papier,Web\nAlex,a@x,oui,non\n", string(b))
	assert.FileExists(t, xlsxOut)
}

func TestConvertCmdMissingInput(t *testing.T) {
	_, err := run(t, "convert", "--in", filepath.Join(t.TempDir(), "none.json"))
	assert.Error(t, err)
}
