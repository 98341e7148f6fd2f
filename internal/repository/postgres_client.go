package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"health-assistant/internal/domain"
)

// Schema creates the tables used by PostgresClient. It is idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS sender_profiles (
	sender_id     TEXT PRIMARY KEY,
	language      TEXT NOT NULL DEFAULT 'en',
	district      TEXT NOT NULL DEFAULT '',
	state         TEXT NOT NULL DEFAULT 'none',
	schedule      JSONB NOT NULL DEFAULT '[]'::jsonb,
	date_of_birth DATE,
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS feedback (
	id         UUID PRIMARY KEY,
	sender_id  TEXT NOT NULL,
	message    TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS feedback_sender_created_idx ON feedback (sender_id, created_at);
`

// pgxAPI is the subset of *pgxpool.Pool used by PostgresClient.
type pgxAPI interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresClient is the relational alternative to Client. It implements the
// same profile and feedback operations.
type PostgresClient struct {
	db  pgxAPI
	now func() time.Time
}

func NewPostgres(db pgxAPI) (*PostgresClient, error) {
	if db == nil {
		return nil, errors.New("repository: postgres pool must not be nil")
	}
	return &PostgresClient{db: db, now: time.Now}, nil
}

func (c *PostgresClient) EnsureSchema(ctx context.Context) error {
	if _, err := c.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("repository: EnsureSchema: %w", err)
	}
	return nil
}

type scheduleRow struct {
	Vaccine  string `json:"vaccine"`
	DueDate  string `json:"dueDate"`
	DueLabel string `json:"dueLabel"`
}

func (c *PostgresClient) GetProfile(ctx context.Context, senderID string) (domain.Profile, bool, error) {
	if strings.TrimSpace(senderID) == "" {
		return domain.Profile{}, false, errors.New("repository: GetProfile: sender id is required")
	}

	var (
		lang, district, state string
		scheduleJSON          []byte
		dob                   *time.Time
		updatedAt             time.Time
	)
	err := c.db.QueryRow(ctx, `
		SELECT language, district, state, schedule, date_of_birth, updated_at
		FROM sender_profiles
		WHERE sender_id = $1`, senderID).
		Scan(&lang, &district, &state, &scheduleJSON, &dob, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Profile{}, false, nil
		}
		return domain.Profile{}, false, fmt.Errorf("repository: GetProfile query: %w", err)
	}

	p := domain.NewProfile(senderID)
	if l, ok := domain.ParseLanguage(lang); ok {
		p.Language = l
	}
	p.District = district
	p.State = domain.ParseConversationState(state)
	p.DateOfBirth = dob
	if !updatedAt.IsZero() {
		p.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
	}
	if len(scheduleJSON) > 0 {
		entries, err := decodeSchedule(scheduleJSON)
		if err != nil {
			return domain.Profile{}, false, fmt.Errorf("repository: GetProfile decode: %w", err)
		}
		p.Schedule = entries
	}
	return p, true, nil
}

// UpdateProfile upserts the sender row. Only the columns set in u are written
// on conflict, so concurrent updates to different fields do not clobber each
// other.
func (c *PostgresClient) UpdateProfile(ctx context.Context, senderID string, u domain.ProfileUpdate) error {
	if strings.TrimSpace(senderID) == "" {
		return errors.New("repository: UpdateProfile: sender id is required")
	}
	if u.IsEmpty() {
		return nil
	}

	cols := []string{"sender_id", "updated_at"}
	args := []any{senderID, c.now().UTC()}
	add := func(col string, v any) {
		cols = append(cols, col)
		args = append(args, v)
	}

	if u.Language != nil {
		add("language", string(*u.Language))
	}
	if u.District != nil {
		add("district", *u.District)
	}
	if u.State != nil {
		add("state", string(*u.State))
	}
	if u.Schedule != nil {
		raw, err := encodeSchedule(*u.Schedule)
		if err != nil {
			return fmt.Errorf("repository: UpdateProfile encode: %w", err)
		}
		add("schedule", raw)
	}
	if u.DateOfBirth != nil {
		add("date_of_birth", u.DateOfBirth.Format(dateLayout))
	}

	_, err := c.db.Exec(ctx, upsertProfileSQL(cols), args...)
	if err != nil {
		return fmt.Errorf("repository: UpdateProfile: %w", err)
	}
	return nil
}

func upsertProfileSQL(cols []string) string {
	placeholders := make([]string, len(cols))
	sets := make([]string, 0, len(cols)-1)
	for i, col := range cols {
		ph := "$" + strconv.Itoa(i+1)
		switch col {
		case "schedule":
			ph += "::jsonb"
		case "date_of_birth":
			ph += "::date"
		}
		placeholders[i] = ph
		if col != "sender_id" {
			sets = append(sets, col+" = EXCLUDED."+col)
		}
	}
	return "INSERT INTO sender_profiles (" + strings.Join(cols, ", ") + ") VALUES (" +
		strings.Join(placeholders, ", ") + ") ON CONFLICT (sender_id) DO UPDATE SET " +
		strings.Join(sets, ", ")
}

func (c *PostgresClient) AppendFeedback(ctx context.Context, r domain.FeedbackRecord) error {
	if strings.TrimSpace(r.SenderID) == "" {
		return errors.New("repository: AppendFeedback: sender id is required")
	}
	ts := r.Timestamp
	if ts.IsZero() {
		ts = c.now()
	}
	_, err := c.db.Exec(ctx, `
		INSERT INTO feedback (id, sender_id, message, created_at) VALUES ($1, $2, $3, $4)`,
		newUUID(), r.SenderID, r.Message, ts.UTC())
	if err != nil {
		return fmt.Errorf("repository: AppendFeedback: %w", err)
	}
	return nil
}

func encodeSchedule(entries []domain.ScheduleEntry) (string, error) {
	rows := make([]scheduleRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, scheduleRow{Vaccine: e.Vaccine, DueDate: e.DueDate.Format(dateLayout), DueLabel: e.DueLabel})
	}
	b, err := json.Marshal(rows)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeSchedule(raw []byte) ([]domain.ScheduleEntry, error) {
	var rows []scheduleRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}
	out := make([]domain.ScheduleEntry, 0, len(rows))
	for i, r := range rows {
		due, err := time.Parse(dateLayout, r.DueDate)
		if err != nil {
			return nil, fmt.Errorf("schedule[%d] due date: %w", i, err)
		}
		out = append(out, domain.ScheduleEntry{Vaccine: r.Vaccine, DueDate: due, DueLabel: r.DueLabel})
	}
	return out, nil
}
