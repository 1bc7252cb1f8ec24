package table

import (
	"bufio"
	"compress/gzip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Options controls how a report is read.
type Options struct {
	// Delimiter separates fields. Zero means detect from the file name,
	// then from the header line.
	Delimiter rune
}

// Load reads a comma- or tab-delimited report from path.
// Supports both plain and gzipped files; "-" reads stdin.
func Load(path string, opts Options) (*Table, error) {
	if opts.Delimiter == 0 {
		opts.Delimiter = delimiterForPath(path)
	}
	if path == "-" {
		return Read(os.Stdin, opts)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report: %w", err)
	}
	defer file.Close()

	return Read(file, opts)
}

// Read reads a delimited report from r. Input is decoded as ISO-8859-1, so
// any byte sequence in free-text clinical fields is accepted.
func Read(r io.Reader, opts Options) (*Table, error) {
	br := bufio.NewReader(r)

	// Check for gzip magic number (0x1f, 0x8b)
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		defer gz.Close()
		br = bufio.NewReader(gz)
	}

	decoded := bufio.NewReader(charmap.ISO8859_1.NewDecoder().Reader(br))

	delim := opts.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(decoded)
	}

	cr := csv.NewReader(decoded)
	cr.Comma = delim
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Line: 1, Message: "no header line found"}
		}
		return nil, wrapCSVError(err)
	}

	var rows [][]string
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, wrapCSVError(err)
		}
		rows = append(rows, record)
	}

	return New(header, rows)
}

// wrapCSVError converts csv reader errors into a *ParseError.
func wrapCSVError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Line: pe.Line, Message: pe.Err.Error()}
	}
	return fmt.Errorf("read report: %w", err)
}

// delimiterForPath picks a delimiter from the file extension, or 0 if the
// extension says nothing.
func delimiterForPath(path string) rune {
	lower := strings.ToLower(path)
	lower = strings.TrimSuffix(lower, ".gz")
	switch filepath.Ext(lower) {
	case ".csv":
		return ','
	case ".tsv", ".tab":
		return '\t'
	}
	return 0
}

// sniffDelimiter inspects the header line without consuming it. Tabs win
// over commas when the header holds more of them.
func sniffDelimiter(r *bufio.Reader) rune {
	buf, _ := r.Peek(64 * 1024)
	line := string(buf)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if strings.Count(line, "\t") > strings.Count(line, ",") {
		return '\t'
	}
	return ','
}
