package contrib

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contribgraph/backend/pkg/loader"
	ioloader "github.com/contribgraph/backend/pkg/loader/io"
	"github.com/contribgraph/backend/pkg/logger"
	"github.com/contribgraph/backend/pkg/logger/memory"
)

const internalCSV = `Contributeurices internes,,,,,
#,Qui,,Quoi,,Topic
1,Alex,,editing,,"Sound, sound, Design"
2,,,orphan,,Sound
3,Robin,,layout,,
`

const externalCSV = `Contributeurices externes,,,,,
#,Qui,,Quoi,,Topic
1,Kim,,translation,,design
`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func newTestReader(dir string) *Reader {
	l := ioloader.NewIOSourceLoader(dir)
	return NewReader(nil,
		Source{Provenance: Internal, File: loader.NewSourceFile("internal", "int.csv", l)},
		Source{Provenance: External, File: loader.NewSourceFile("external", "ext.csv", l)},
	)
}

func TestReaderReadsBothSources(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "int.csv", internalCSV)
	writeFile(t, dir, "ext.csv", externalCSV)

	res := newTestReader(dir).Read(context.Background())
	require.True(t, res.OK(), "unexpected error: %v", res.Err)

	assert.Equal(t, []Record{
		NewRecord(Internal, "Alex", "editing", "Sound, sound, Design"),
		NewRecord(Internal, "Robin", "layout", ""),
	}, res.Records.Internal)
	assert.Equal(t, []Record{
		NewRecord(External, "Kim", "translation", "design"),
	}, res.Records.External)
	assert.Equal(t, 3, res.Records.Len())
}

func TestReaderMissingFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "int.csv", internalCSV)

	res := newTestReader(dir).Read(context.Background())
	require.NoError(t, res.Err)
	assert.Len(t, res.Records.Internal, 2)
	assert.NotNil(t, res.Records.External)
	assert.Empty(t, res.Records.External)
}

func TestReaderBothMissing(t *testing.T) {
	res := newTestReader(t.TempDir()).Read(context.Background())
	require.NoError(t, res.Err)
	assert.Equal(t, 0, res.Records.Len())
}

func TestReaderFailsClosed(t *testing.T) {
	tests := []struct {
		name     string
		external []byte
	}{
		{name: "invalid encoding", external: []byte("meta\n#,Qui\n1,\xff\xfe\n")},
		{name: "empty file", external: []byte{}},
		{name: "metadata only", external: []byte("only one line\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "int.csv", internalCSV)
			require.NoError(t, os.WriteFile(filepath.Join(dir, "ext.csv"), tt.external, 0o644))

			mem := memory.NewMemoryLogger()
			logger.Init(mem)
			t.Cleanup(func() { logger.Init() })

			r := newTestReader(dir)
			res := r.Read(context.Background())
			require.Error(t, res.Err)
			assert.Equal(t, 0, res.Records.Len())

			records := r.GetNormalizedRecords(context.Background())
			assert.Empty(t, records.Internal)
			assert.Empty(t, records.External)

			errs := mem.Filter("error")
			require.Len(t, errs, 1)
			assert.NotNil(t, errs[0].Value("err"))
		})
	}
}

func TestReaderXLSXSource(t *testing.T) {
	dir := t.TempDir()
	writeXLSX(t, filepath.Join(dir, "int.xlsx"), [][]any{
		{"meta"},
		{"#", "Qui", "", "Quoi", "", "Topic"},
		{1, "Alex", "", "editing", "", "Sound"},
	})

	l := ioloader.NewIOSourceLoader(dir)
	r := NewReader(nil, Source{Provenance: Internal, File: loader.NewSourceFile("internal", "int.xlsx", l)})
	res := r.Read(context.Background())
	require.NoError(t, res.Err)
	assert.Equal(t, []Record{NewRecord(Internal, "Alex", "editing", "Sound")}, res.Records.Internal)
}

func TestReaderXLSXBlankTrailingHeader(t *testing.T) {
	dir := t.TempDir()
	writeXLSX(t, filepath.Join(dir, "int.xlsx"), [][]any{
		{"meta"},
		{"#", "Qui", "", "Quoi"},
		{1, "Alex", "", "editing", "", "Sound, Design"},
	})
	writeFile(t, dir, "int.csv", "meta\n#,Qui,,Quoi,,\n1,Alex,,editing,,\"Sound, Design\"\n")

	l := ioloader.NewIOSourceLoader(dir)
	for _, name := range []string{"int.xlsx", "int.csv"} {
		t.Run(name, func(t *testing.T) {
			r := NewReader(nil, Source{Provenance: Internal, File: loader.NewSourceFile("internal", name, l)})
			res := r.Read(context.Background())
			require.NoError(t, res.Err)
			require.Len(t, res.Records.Internal, 1)

			rec := res.Records.Internal[0]
			assert.True(t, rec.Has(FieldTopics))
			assert.Equal(t, "Sound, Design", rec.TopicsRaw)
			assert.Equal(t, NewRecord(Internal, "Alex", "editing", "Sound, Design"), rec)
		})
	}
}

func TestReaderBlankMetadataLine(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "int.csv", "\n#,Qui,,Quoi,,Topic\n1,Alex,,editing,,Sound\n")

	res := newTestReader(dir).Read(context.Background())
	require.NoError(t, res.Err)
	assert.Equal(t, []Record{NewRecord(Internal, "Alex", "editing", "Sound")}, res.Records.Internal)
}
