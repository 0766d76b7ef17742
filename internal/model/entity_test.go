package model

import (
	"database/sql"
	"database/sql/driver"
	"io"
	"reflect"
	"strings"
	"testing"
	"time"

	"ai-diary/internal/datekey"
)

// The diary date must survive storage as the literal day key. A SQL DATE
// column does not: with parseTime enabled the driver returns it as
// time.Time, which database/sql renders into a string destination as
// RFC3339 instead of YYYY-MM-DD.
func TestDiaryEntryDateColumnIsPlainString(t *testing.T) {
	f, ok := reflect.TypeOf(DiaryEntry{}).FieldByName("Date")
	if !ok {
		t.Fatal("DiaryEntry has no Date field")
	}
	tag := f.Tag.Get("gorm")
	if strings.Contains(tag, "type:date") {
		t.Fatalf("Date column declared as SQL DATE (%q); it must stay a string column", tag)
	}
	if !strings.Contains(tag, "size:10") {
		t.Fatalf("Date column tag = %q, want a size:10 string column", tag)
	}
}

func TestDateRoundTripsAsDayKey(t *testing.T) {
	day := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	// What a DATE column would hand back under parseTime=true.
	asTime := scanDateColumn(t, "diary-date-as-time", day)
	if datekey.Valid(asTime) {
		t.Fatalf("time.Time value scanned into string as valid day key %q, expected it mangled", asTime)
	}

	// What the string column hands back.
	asString := scanDateColumn(t, "diary-date-as-string", datekey.FromTime(day))
	if want := "2026-08-29"; asString != want {
		t.Fatalf("string column scanned as %q, want %q", asString, want)
	}
	if !datekey.Valid(asString) {
		t.Fatalf("stored day key %q did not survive the round trip", asString)
	}
}

// scanDateColumn scans a single-value result set into a string the way
// the diary store reads dates back.
func scanDateColumn(t *testing.T, name string, value driver.Value) string {
	t.Helper()
	sql.Register(name, &dayDriver{value: value})
	db, err := sql.Open(name, "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	var got string
	if err := db.QueryRow("SELECT date FROM diary_entries").Scan(&got); err != nil {
		t.Fatalf("scan: %v", err)
	}
	return got
}

// dayDriver replays one column value per query, mimicking what the MySQL
// driver produces for the diary date column.
type dayDriver struct{ value driver.Value }

func (d *dayDriver) Open(string) (driver.Conn, error) { return &dayConn{value: d.value}, nil }

type dayConn struct{ value driver.Value }

func (c *dayConn) Prepare(string) (driver.Stmt, error) { return &dayStmt{value: c.value}, nil }
func (c *dayConn) Close() error                        { return nil }
func (c *dayConn) Begin() (driver.Tx, error)           { return nil, driver.ErrSkip }

type dayStmt struct{ value driver.Value }

func (s *dayStmt) Close() error                               { return nil }
func (s *dayStmt) NumInput() int                              { return 0 }
func (s *dayStmt) Exec([]driver.Value) (driver.Result, error) { return nil, driver.ErrSkip }
func (s *dayStmt) Query([]driver.Value) (driver.Rows, error) {
	return &dayRows{value: s.value}, nil
}

type dayRows struct {
	value driver.Value
	done  bool
}

func (r *dayRows) Columns() []string { return []string{"date"} }
func (r *dayRows) Close() error      { return nil }
func (r *dayRows) Next(dest []driver.Value) error {
	if r.done {
		return io.EOF
	}
	r.done = true
	dest[0] = r.value
	return nil
}
