package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ccmbio/wes-report/internal/report"
	"github.com/ccmbio/wes-report/internal/table"
)

func sampleGroups(t *testing.T) []report.Group {
	t.Helper()
	header := []string{"Gene", "Position", "Cadd_score", "Sift_score", "Quality", "Clinvar"}
	full, err := table.New(header, [][]string{
		{"BRCA2", "13:32914438", "25.3", "0.01", "812", "Pathogenic"},
		{"Ménétrier", "X:100", ".", "", "250", "."},
	})
	require.NoError(t, err)
	empty, err := table.New(header, nil)
	require.NoError(t, err)
	bare, err := table.New(nil, nil)
	require.NoError(t, err)
	return []report.Group{
		{Name: "De_novo", Table: full},
		{Name: "Hemizygous", Table: empty},
		{Name: "HPO", Table: bare},
	}
}

func writeWorkbook(t *testing.T, highlight bool) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.xlsx")
	w := NewXLSXWriter(path, highlight)
	require.NoError(t, report.WriteGroups(w, sampleGroups(t)))
	require.NoError(t, w.Close())
	return path
}

func TestXLSXWriter_Sheets(t *testing.T) {
	path := writeWorkbook(t, false)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"De_novo", "Hemizygous", "HPO"}, f.GetSheetList())

	rows, err := f.GetRows("De_novo")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Gene", "Position", "Cadd_score", "Sift_score", "Quality", "Clinvar"}, rows[0])
	assert.Equal(t, []string{"BRCA2", "13:32914438", "25.3", "0.01", "812", "Pathogenic"}, rows[1])
	assert.Equal(t, "Ménétrier", rows[2][0])
	assert.Equal(t, ".", rows[2][2])
	assert.Equal(t, "", rows[2][3])

	// Empty groups keep their header.
	rows, err = f.GetRows("Hemizygous")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Gene", rows[0][0])

	rows, err = f.GetRows("HPO")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestXLSXWriter_Highlight(t *testing.T) {
	f, err := excelize.OpenFile(writeWorkbook(t, true))
	require.NoError(t, err)
	defer f.Close()

	formats, err := f.GetConditionalFormats("De_novo")
	require.NoError(t, err)
	// Cadd_score, Sift_score and Quality are highlighted.
	assert.Len(t, formats, 3)
	assert.Contains(t, formats, "C2:C3")
	assert.Contains(t, formats, "E2:E3")

	formats, err = f.GetConditionalFormats("Hemizygous")
	require.NoError(t, err)
	assert.Empty(t, formats)
}

func TestXLSXWriter_NoHighlight(t *testing.T) {
	f, err := excelize.OpenFile(writeWorkbook(t, false))
	require.NoError(t, err)
	defer f.Close()

	formats, err := f.GetConditionalFormats("De_novo")
	require.NoError(t, err)
	assert.Empty(t, formats)
}

func TestCellValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"25.3", 25.3},
		{"0", 0.0},
		{" 812 ", 812.0},
		{"", nil},
		{"NA", nil},
		{".", "."},
		{"13:32914438", "13:32914438"},
		{"NaN", nil},
		{"Inf", "Inf"},
		{"BRCA2", "BRCA2"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, cellValue(tt.in))
		})
	}
}

func TestWriteCSV_Latin1(t *testing.T) {
	tbl, err := table.New([]string{"Gene", "Summary"}, [][]string{
		{"Ménétrier", "CADD = 25; 2/3 tools predict an impact, \"high\""},
		{"ABC", "α"},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tbl))

	want := "Gene,Summary\n" +
		"M\xe9n\xe9trier,\"CADD = 25; 2/3 tools predict an impact, \"\"high\"\"\"\n" +
		"ABC,\x1a\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	tbl, err := table.New([]string{"Gene", "Note"}, [][]string{{"Ménétrier", "a, b"}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tbl))

	back, err := table.Read(&buf, table.Options{Delimiter: ','})
	require.NoError(t, err)
	assert.Equal(t, tbl.Header(), back.Header())
	assert.Equal(t, tbl.Row(0), back.Row(0))
}

func TestTSVWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w, err := NewTSVWriter(dir)
	require.NoError(t, err)
	require.NoError(t, report.WriteGroups(w, sampleGroups(t)))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(filepath.Join(dir, "De_novo.tsv"))
	require.NoError(t, err)
	assert.Equal(t,
		"Gene\tPosition\tCadd_score\tSift_score\tQuality\tClinvar\n"+
			"BRCA2\t13:32914438\t25.3\t0.01\t812\tPathogenic\n"+
			"M\xe9n\xe9trier\tX:100\t.\t\t250\t.\n",
		string(data))

	data, err = os.ReadFile(filepath.Join(dir, "Hemizygous.tsv"))
	require.NoError(t, err)
	assert.Equal(t, "Gene\tPosition\tCadd_score\tSift_score\tQuality\tClinvar\n", string(data))

	data, err = os.ReadFile(filepath.Join(dir, "HPO.tsv"))
	require.NoError(t, err)
	assert.Empty(t, data)
}
