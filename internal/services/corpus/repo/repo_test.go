package repo

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	perr "phishguard/internal/platform/errors"
	"phishguard/internal/platform/store"
	"phishguard/internal/services/corpus/domain"
)

type tag int64

func (t tag) String() string      { return "INSERT 0 1" }
func (t tag) RowsAffected() int64 { return int64(t) }

// fakeRows yields pairs of nullable strings
type fakeRows struct {
	data [][2]*string
	i    int
}

func (r *fakeRows) Next() bool        { r.i++; return r.i <= len(r.data) }
func (r *fakeRows) Err() error        { return nil }
func (r *fakeRows) Close()            {}
func (r *fakeRows) Columns() []string { return []string{"text", "label"} }
func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.i-1]
	*(dest[0].(**string)) = row[0]
	*(dest[1].(**string)) = row[1]
	return nil
}

type scalarRow struct{ n int64 }

func (s scalarRow) Scan(dest ...any) error { *(dest[0].(*int64)) = s.n; return nil }

type fakeQ struct {
	sqls     []string
	args     [][]any
	rows     store.Rows
	queryErr error
	execErr  error
	count    int64
}

func (f *fakeQ) Exec(_ context.Context, sql string, args ...any) (store.CommandTag, error) {
	f.sqls = append(f.sqls, sql)
	f.args = append(f.args, args)
	return tag(1), f.execErr
}

func (f *fakeQ) Query(_ context.Context, sql string, args ...any) (store.Rows, error) {
	f.sqls = append(f.sqls, sql)
	return f.rows, f.queryErr
}

func (f *fakeQ) QueryRow(_ context.Context, sql string, args ...any) store.Row {
	f.sqls = append(f.sqls, sql)
	return scalarRow{n: f.count}
}

func ptr(s string) *string { return &s }

func TestList_QuotesIdentifiersAndDerefsNulls(t *testing.T) {
	q := &fakeQ{rows: &fakeRows{data: [][2]*string{
		{ptr("Free money now"), ptr("phishing")},
		{nil, ptr("legit")},
		{ptr("Meeting at 3pm"), nil},
	}}}
	src := domain.Source{Schema: "mail", Table: `inbox"; drop`, TextColumn: "body", LabelColumn: "label"}

	rows, err := NewPG().Bind(q).List(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	want := []domain.Row{{"Free money now", "phishing"}, {"", "legit"}, {"Meeting at 3pm", ""}}
	if len(rows) != len(want) {
		t.Fatalf("rows = %v", rows)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Fatalf("row %d = %+v, want %+v", i, rows[i], want[i])
		}
	}
	sql := q.sqls[0]
	if !strings.Contains(sql, `"mail"."inbox""; drop"`) || !strings.Contains(sql, `"body"::text`) {
		t.Fatalf("identifiers not quoted: %s", sql)
	}
}

func TestList_MapsUndefinedTableToDataFormat(t *testing.T) {
	q := &fakeQ{queryErr: &pgconn.PgError{Code: "42P01", Message: `relation "emails" does not exist`}}
	_, err := NewPG().Bind(q).List(context.Background(), domain.DefaultSource())
	if !perr.IsCode(err, perr.ErrorCodeDataFormat) {
		t.Fatalf("want DataFormat, got %v (%d)", err, perr.CodeOf(err))
	}

	q = &fakeQ{queryErr: &pgconn.PgError{Code: "42703", Message: `column "label" does not exist`}}
	_, err = NewPG().Bind(q).List(context.Background(), domain.DefaultSource())
	if !perr.IsCode(err, perr.ErrorCodeDataFormat) {
		t.Fatalf("undefined column: want DataFormat, got %v", err)
	}

	q = &fakeQ{queryErr: errors.New("conn reset")}
	_, err = NewPG().Bind(q).List(context.Background(), domain.DefaultSource())
	if !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("plain error: want DB, got %v", err)
	}
}

func TestCountEnsureInsert(t *testing.T) {
	q := &fakeQ{count: 12}
	st := NewPG().Bind(q)
	src := domain.DefaultSource()

	n, err := st.Count(context.Background(), src)
	if err != nil || n != 12 {
		t.Fatalf("Count = %d, %v", n, err)
	}
	if err := st.Ensure(context.Background(), src); err != nil {
		t.Fatal(err)
	}
	if err := st.Insert(context.Background(), src, domain.Row{Text: "hi", Label: "legit"}); err != nil {
		t.Fatal(err)
	}
	if got := q.sqls[len(q.sqls)-1]; got != `INSERT INTO "emails" ("text", "label") VALUES ($1, $2)` {
		t.Fatalf("insert sql = %s", got)
	}
	if args := q.args[len(q.args)-1]; args[0] != "hi" || args[1] != "legit" {
		t.Fatalf("insert args = %v", args)
	}

	q.execErr = &pgconn.PgError{Code: "42501"}
	if err := st.Insert(context.Background(), src, domain.Row{}); !perr.IsCode(err, perr.ErrorCodeForbidden) {
		t.Fatalf("want Forbidden, got %v", err)
	}
}
