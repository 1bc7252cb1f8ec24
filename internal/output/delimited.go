package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/ccmbio/wes-report/internal/report"
	"github.com/ccmbio/wes-report/internal/table"
)

// WriteCSV writes t as comma-separated ISO-8859-1 text. Characters outside
// Latin-1 are replaced.
func WriteCSV(w io.Writer, t *table.Table) error {
	return writeDelimited(w, t, ',')
}

func writeDelimited(w io.Writer, t *table.Table, comma rune) error {
	enc := transform.NewWriter(w, encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder()))

	cw := csv.NewWriter(enc)
	cw.Comma = comma
	if t.Width() > 0 {
		if err := cw.Write(t.Header()); err != nil {
			return err
		}
	}
	for i := range t.Len() {
		if err := cw.Write(t.Row(i)); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return enc.Close()
}

// TSVWriter writes each group to <dir>/<name>.tsv.
type TSVWriter struct {
	dir    string
	logger *zap.Logger
}

// NewTSVWriter creates dir if needed and returns a writer into it.
func NewTSVWriter(dir string) (*TSVWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &TSVWriter{dir: dir, logger: zap.NewNop()}, nil
}

// SetLogger sets the logger for progress messages.
func (w *TSVWriter) SetLogger(l *zap.Logger) {
	w.logger = l
}

// WriteGroup writes the group's header and rows to its own file.
func (w *TSVWriter) WriteGroup(g report.Group) error {
	path := filepath.Join(w.dir, g.Name+".tsv")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeDelimited(f, g.Table, '\t'); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	w.logger.Debug("wrote group file", zap.String("path", path), zap.Int("rows", g.Table.Len()))
	return nil
}

// Close is a no-op; every group file is closed as soon as it is written.
func (w *TSVWriter) Close() error {
	return nil
}
