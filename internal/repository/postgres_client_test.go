package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"health-assistant/internal/domain"
)

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return errors.New("fakeRow: column count mismatch")
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = r.values[i].(string)
		case *[]byte:
			if r.values[i] != nil {
				*p = r.values[i].([]byte)
			}
		case **time.Time:
			if r.values[i] != nil {
				t := r.values[i].(time.Time)
				*p = &t
			}
		case *time.Time:
			*p = r.values[i].(time.Time)
		default:
			return errors.New("fakeRow: unsupported destination")
		}
	}
	return nil
}

type execCall struct {
	sql  string
	args []any
}

type fakePg struct {
	row     fakeRow
	execErr error
	queries []string
	execs   []execCall
}

func (f *fakePg) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	f.queries = append(f.queries, sql)
	return f.row
}

func (f *fakePg) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, execCall{sql: sql, args: args})
	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func mustNewPostgres(t *testing.T, db *fakePg) *PostgresClient {
	t.Helper()
	c, err := NewPostgres(db)
	require.NoError(t, err)
	c.now = func() time.Time { return time.Date(2026, 2, 25, 10, 0, 0, 0, time.UTC) }
	return c
}

func TestPostgresGetProfile_HappyPath(t *testing.T) {
	dob := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)
	db := &fakePg{row: fakeRow{values: []any{
		"hi", "Patna", "awaiting_dob",
		[]byte(`[{"vaccine":"BCG","dueDate":"2023-06-15","dueLabel":"At birth"}]`),
		dob,
		time.Date(2026, 2, 20, 8, 0, 0, 0, time.UTC),
	}}}
	c := mustNewPostgres(t, db)

	p, found, err := c.GetProfile(context.Background(), "+91888")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, domain.LangHindi, p.Language)
	require.Equal(t, "Patna", p.District)
	require.Equal(t, domain.StateAwaitingDOB, p.State)
	require.Equal(t, dob, *p.DateOfBirth)
	require.Equal(t, "2026-02-20T08:00:00Z", p.UpdatedAt)
	require.Equal(t, []domain.ScheduleEntry{{Vaccine: "BCG", DueDate: dob, DueLabel: "At birth"}}, p.Schedule)
	require.Contains(t, db.queries[0], "FROM sender_profiles")
}

func TestPostgresGetProfile_UnknownValuesFallBack(t *testing.T) {
	db := &fakePg{row: fakeRow{values: []any{
		"de", "", "legacy", []byte(`[]`), nil, time.Time{},
	}}}
	c := mustNewPostgres(t, db)

	p, found, err := c.GetProfile(context.Background(), "+91888")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, domain.LangEnglish, p.Language)
	require.Equal(t, domain.StateNone, p.State)
	require.Nil(t, p.DateOfBirth)
	require.Empty(t, p.Schedule)
}

func TestPostgresGetProfile_NotFound(t *testing.T) {
	c := mustNewPostgres(t, &fakePg{row: fakeRow{err: pgx.ErrNoRows}})
	_, found, err := c.GetProfile(context.Background(), "+91888")
	require.NoError(t, err)
	require.False(t, found)
}

func TestPostgresGetProfile_QueryError(t *testing.T) {
	c := mustNewPostgres(t, &fakePg{row: fakeRow{err: errors.New("connection refused")}})
	_, _, err := c.GetProfile(context.Background(), "+91888")
	require.Error(t, err)
	require.Contains(t, err.Error(), "connection refused")
}

func TestPostgresGetProfile_BadScheduleJSON(t *testing.T) {
	db := &fakePg{row: fakeRow{values: []any{
		"en", "", "none", []byte(`{not json`), nil, time.Time{},
	}}}
	c := mustNewPostgres(t, db)
	_, _, err := c.GetProfile(context.Background(), "+91888")
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode")
}

func TestPostgresUpdateProfile_OnlyGivenColumns(t *testing.T) {
	db := &fakePg{}
	c := mustNewPostgres(t, db)
	state := domain.StateAwaitingDOB

	require.NoError(t, c.UpdateProfile(context.Background(), "+91888", domain.ProfileUpdate{State: &state}))
	require.Len(t, db.execs, 1)
	require.Equal(t,
		"INSERT INTO sender_profiles (sender_id, updated_at, state) VALUES ($1, $2, $3) "+
			"ON CONFLICT (sender_id) DO UPDATE SET updated_at = EXCLUDED.updated_at, state = EXCLUDED.state",
		db.execs[0].sql)
	require.Equal(t, []any{"+91888", time.Date(2026, 2, 25, 10, 0, 0, 0, time.UTC), "awaiting_dob"}, db.execs[0].args)
}

func TestPostgresUpdateProfile_ScheduleAndDOB(t *testing.T) {
	db := &fakePg{}
	c := mustNewPostgres(t, db)
	dob := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)
	entries := []domain.ScheduleEntry{{Vaccine: "BCG", DueDate: dob, DueLabel: "At birth"}}
	state := domain.StateNone

	err := c.UpdateProfile(context.Background(), "+91888", domain.ProfileUpdate{
		State: &state, Schedule: &entries, DateOfBirth: &dob,
	})
	require.NoError(t, err)
	sql := db.execs[0].sql
	require.Contains(t, sql, "$4::jsonb")
	require.Contains(t, sql, "$5::date")
	args := db.execs[0].args
	require.JSONEq(t, `[{"vaccine":"BCG","dueDate":"2023-06-15","dueLabel":"At birth"}]`, args[3].(string))
	require.Equal(t, "2023-06-15", args[4])
}

func TestPostgresUpdateProfile_EmptyIsNoop(t *testing.T) {
	db := &fakePg{}
	c := mustNewPostgres(t, db)
	require.NoError(t, c.UpdateProfile(context.Background(), "+91888", domain.ProfileUpdate{}))
	require.Empty(t, db.execs)
}

func TestPostgresUpdateProfile_ExecError(t *testing.T) {
	db := &fakePg{execErr: errors.New("deadlock detected")}
	c := mustNewPostgres(t, db)
	district := "Cuttack"
	err := c.UpdateProfile(context.Background(), "+91888", domain.ProfileUpdate{District: &district})
	require.Error(t, err)
	require.Contains(t, err.Error(), "deadlock detected")
}

func TestPostgresAppendFeedback(t *testing.T) {
	db := &fakePg{}
	c := mustNewPostgres(t, db)
	newUUID = func() string { return "00000000-0000-0000-0000-000000000001" }
	t.Cleanup(func() { newUUID = defaultNewUUID })

	err := c.AppendFeedback(context.Background(), domain.FeedbackRecord{SenderID: "+91888", Message: "thanks"})
	require.NoError(t, err)
	require.Contains(t, db.execs[0].sql, "INSERT INTO feedback")
	require.Equal(t, []any{
		"00000000-0000-0000-0000-000000000001", "+91888", "thanks",
		time.Date(2026, 2, 25, 10, 0, 0, 0, time.UTC),
	}, db.execs[0].args)
}

func TestPostgresAppendFeedback_ExecError(t *testing.T) {
	c := mustNewPostgres(t, &fakePg{execErr: errors.New("disk full")})
	err := c.AppendFeedback(context.Background(), domain.FeedbackRecord{SenderID: "+91888", Message: "x"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "AppendFeedback")
}

func TestPostgresEnsureSchema(t *testing.T) {
	db := &fakePg{}
	c := mustNewPostgres(t, db)
	require.NoError(t, c.EnsureSchema(context.Background()))
	require.Equal(t, Schema, db.execs[0].sql)

	db.execErr = errors.New("permission denied")
	require.Error(t, c.EnsureSchema(context.Background()))
}

func TestNewPostgres_Nil(t *testing.T) {
	_, err := NewPostgres(nil)
	require.Error(t, err)
}
