package duckdb

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccmbio/wes-report/internal/report"
	"github.com/ccmbio/wes-report/internal/table"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func mustTable(t *testing.T, header []string, rows ...[]string) *table.Table {
	t.Helper()
	tbl, err := table.New(header, rows)
	require.NoError(t, err)
	return tbl
}

var groupHeader = []string{"Summary", "Gene", "Cadd_score", "Zygosity.F1_P"}

func TestOpenClose(t *testing.T) {
	s := openInMemory(t)
	assert.NotNil(t, s.DB())

	groups, err := s.Groups()
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestWriteAndReadGroup(t *testing.T) {
	s := openInMemory(t)

	in := mustTable(t, groupHeader,
		[]string{"CADD = 25; ...", "BRCA2", "25", "Het"},
		[]string{"CADD = .; ...", "TTN", "NA", "Hom"},
		[]string{"CADD = 31; ...", "ABCA4", "31", "Het"},
	)
	require.NoError(t, s.WriteGroup(report.Group{Name: "Compound_heterozygous", Table: in}))

	out, err := s.ReadGroup("Compound_heterozygous")
	require.NoError(t, err)
	assert.Equal(t, groupHeader, out.Header())
	require.Equal(t, 3, out.Len())
	assert.Equal(t, []string{"CADD = 25; ...", "BRCA2", "25", "Het"}, out.Row(0))
	assert.Equal(t, []string{"CADD = .; ...", "TTN", "", "Hom"}, out.Row(1))
	assert.Equal(t, "ABCA4", out.Row(2)[1])

	var nulls int
	require.NoError(t, s.DB().QueryRow(`SELECT count(*) FROM "Compound_heterozygous" WHERE "Cadd_score" IS NULL`).Scan(&nulls))
	assert.Equal(t, 1, nulls)
}

func TestWriteGroups_Metadata(t *testing.T) {
	s := openInMemory(t)

	groups := []report.Group{
		{Name: "De_novo", Table: mustTable(t, groupHeader, []string{"s", "BRCA2", "25", "Het"})},
		{Name: "Hemizygous", Table: mustTable(t, groupHeader)},
		{Name: "HPO", Table: mustTable(t, nil)},
		{Name: "all", Table: mustTable(t, groupHeader, []string{"s", "TTN", "3", "Hom"}, []string{"s", "OBSCN", "4", "Het"})},
	}
	require.NoError(t, report.WriteGroups(s, groups))

	infos, err := s.Groups()
	require.NoError(t, err)
	assert.Equal(t, []GroupInfo{
		{Name: "De_novo", Position: 0, Columns: 4, Rows: 1},
		{Name: "Hemizygous", Position: 1, Columns: 4, Rows: 0},
		{Name: "HPO", Position: 2, Columns: 0, Rows: 0},
		{Name: "all", Position: 3, Columns: 4, Rows: 2},
	}, infos)

	// Empty groups still get a table with the full header.
	empty, err := s.ReadGroup("Hemizygous")
	require.NoError(t, err)
	assert.Equal(t, groupHeader, empty.Header())
	assert.Zero(t, empty.Len())
}

func TestWriteGroup_Replace(t *testing.T) {
	s := openInMemory(t)

	first := mustTable(t, groupHeader, []string{"s", "BRCA2", "25", "Het"}, []string{"s", "TTN", "3", "Hom"})
	second := mustTable(t, []string{"Gene"}, []string{"ABCA4"})
	require.NoError(t, s.WriteGroup(report.Group{Name: "Panels", Table: first}))
	require.NoError(t, s.WriteGroup(report.Group{Name: "Panels", Table: second}))

	out, err := s.ReadGroup("Panels")
	require.NoError(t, err)
	assert.Equal(t, []string{"Gene"}, out.Header())
	assert.Equal(t, 1, out.Len())

	infos, err := s.Groups()
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, int64(1), infos[0].Rows)
}

func TestWriteGroup_QuotedNames(t *testing.T) {
	s := openInMemory(t)

	tbl := mustTable(t, []string{`odd "col"`, "select"}, []string{"a", "b"})
	require.NoError(t, s.WriteGroup(report.Group{Name: "rare high qual", Table: tbl}))

	out, err := s.ReadGroup("rare high qual")
	require.NoError(t, err)
	assert.Equal(t, []string{`odd "col"`, "select"}, out.Header())
	assert.Equal(t, []string{"a", "b"}, out.Row(0))
}

func TestReadGroup_Missing(t *testing.T) {
	s := openInMemory(t)
	_, err := s.ReadGroup("nope")
	assert.Error(t, err)
}

func TestRecordSource(t *testing.T) {
	s := openInMemory(t)

	path := filepath.Join(t.TempDir(), "F1.wes.csv")
	require.NoError(t, os.WriteFile(path, []byte("Gene\nBRCA2\n"), 0o644))

	fp, err := StatFile(path)
	require.NoError(t, err)
	assert.Equal(t, int64(11), fp.Size)

	require.NoError(t, s.RecordSource(fp))

	sources, err := s.Sources()
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, path, sources[0].Path)
	assert.Equal(t, fp.Size, sources[0].Size)
	assert.WithinDuration(t, fp.ModTime, sources[0].ModTime, time.Millisecond)
}

func TestStatFile_Missing(t *testing.T) {
	_, err := StatFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "F1.duckdb")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.WriteGroup(report.Group{Name: "all", Table: mustTable(t, []string{"Gene"}, []string{"BRCA2"})}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	out, err := s.ReadGroup("all")
	require.NoError(t, err)
	assert.Equal(t, []string{"BRCA2"}, out.Row(0))
}
