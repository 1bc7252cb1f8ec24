package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"

	goduckdb "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"

	"github.com/ccmbio/wes-report/internal/report"
	"github.com/ccmbio/wes-report/internal/table"
)

// GroupInfo describes one group table.
type GroupInfo struct {
	Name     string
	Position int
	Columns  int
	Rows     int64
}

// quoteIdent quotes a table or column name.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// WriteGroup replaces the table named after the group with its rows, using
// the Appender API. Every column is VARCHAR and null cells are stored as
// NULL. Groups without columns are only recorded in report_groups.
func (s *Store) WriteGroup(g report.Group) error {
	t := g.Table
	if t.Width() > 0 {
		cols := make([]string, t.Width())
		for i, c := range t.Header() {
			cols[i] = quoteIdent(c) + " VARCHAR"
		}
		stmt := fmt.Sprintf("CREATE OR REPLACE TABLE %s (%s)", quoteIdent(g.Name), strings.Join(cols, ", "))
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("create table %s: %w", g.Name, err)
		}
		if err := s.appendRows(g.Name, t); err != nil {
			return err
		}
	}

	if _, err := s.db.Exec("DELETE FROM report_groups WHERE name = ?", g.Name); err != nil {
		return fmt.Errorf("record group %s: %w", g.Name, err)
	}
	if _, err := s.db.Exec("INSERT INTO report_groups VALUES (?, ?, ?, ?)",
		g.Name, s.position, t.Width(), int64(t.Len())); err != nil {
		return fmt.Errorf("record group %s: %w", g.Name, err)
	}
	s.position++

	s.logger.Debug("wrote group table", zap.String("table", g.Name), zap.Int("rows", t.Len()))
	return nil
}

func (s *Store) appendRows(name string, t *table.Table) error {
	if t.Len() == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", name)
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	values := make([]driver.Value, t.Width())
	for i := range t.Len() {
		for j, cell := range t.Row(i) {
			if table.IsNull(cell) {
				values[j] = nil
			} else {
				values[j] = cell
			}
		}
		if err := appender.AppendRow(values...); err != nil {
			return fmt.Errorf("append row %d of %s: %w", i+1, name, err)
		}
	}

	return appender.Flush()
}

// Groups lists the written groups in write order.
func (s *Store) Groups() ([]GroupInfo, error) {
	rows, err := s.db.Query("SELECT name, position, column_count, row_count FROM report_groups ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("query groups: %w", err)
	}
	defer rows.Close()

	var groups []GroupInfo
	for rows.Next() {
		var g GroupInfo
		if err := rows.Scan(&g.Name, &g.Position, &g.Columns, &g.Rows); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate groups: %w", err)
	}
	return groups, nil
}

// ReadGroup loads a group table back in insertion order. NULL cells are
// returned as empty strings.
func (s *Store) ReadGroup(name string) (*table.Table, error) {
	rows, err := s.db.Query(fmt.Sprintf("SELECT * FROM %s ORDER BY rowid", quoteIdent(name)))
	if err != nil {
		return nil, fmt.Errorf("query group %s: %w", name, err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var cells [][]string
	for rows.Next() {
		values := make([]sql.NullString, len(header))
		dest := make([]any, len(header))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan group %s: %w", name, err)
		}
		row := make([]string, len(header))
		for i, v := range values {
			row[i] = v.String
		}
		cells = append(cells, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate group %s: %w", name, err)
	}
	return table.New(header, cells)
}
