package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"github.com/rbhasinn/personal-assist/internal/domain"
)

// SQLiteRepo implements Repo on an embedded SQLite database. This is the
// durable tier: pending jobs survive a process restart.
type SQLiteRepo struct{ db *sql.DB }

// OpenSQLite opens (or creates) the database at path, applies PRAGMAs,
// runs migrations and returns a repository.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// SQLite is a single-writer engine; keep the pool at one connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

// --- Profiles ---

func (r *SQLiteRepo) UpsertProfile(ctx context.Context, p *domain.Profile) error {
	if p == nil {
		return errors.New("nil profile")
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (recipient, language, assistant_name, tz, last_seen_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(recipient) DO UPDATE SET
			language       = excluded.language,
			assistant_name = excluded.assistant_name,
			tz             = excluded.tz,
			last_seen_at   = excluded.last_seen_at`,
		p.Recipient, string(p.Language), p.AssistantName, p.TZ,
		toUnix(p.LastSeenAt), toUnix(p.CreatedAt),
	)
	return err
}

func (r *SQLiteRepo) GetProfile(ctx context.Context, recipient string) (*domain.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT recipient, language, assistant_name, tz, last_seen_at, created_at
		FROM profiles
		WHERE recipient = ?`,
		recipient,
	)

	var (
		p        domain.Profile
		language string
		lastSeen int64
		created  int64
	)
	if err := row.Scan(&p.Recipient, &language, &p.AssistantName, &p.TZ, &lastSeen, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	p.Language = domain.Locale(language)
	p.LastSeenAt = fromUnix(lastSeen)
	p.CreatedAt = fromUnix(created)
	return &p, nil
}

func (r *SQLiteRepo) TouchProfile(ctx context.Context, recipient string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE profiles SET last_seen_at = ? WHERE recipient = ?`,
		toUnix(at), recipient,
	)
	return err
}

// --- Reminders ---

func (r *SQLiteRepo) SaveReminder(ctx context.Context, rem *domain.Reminder) error {
	if rem == nil {
		return errors.New("nil reminder")
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reminders (id, recipient, task, fire_at, done, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			task    = excluded.task,
			fire_at = excluded.fire_at,
			done    = excluded.done`,
		rem.ID, rem.Recipient, rem.Task, toUnix(rem.FireAt),
		boolToInt(rem.Done), toUnix(rem.CreatedAt),
	)
	return err
}

func (r *SQLiteRepo) GetReminder(ctx context.Context, id string) (*domain.Reminder, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, recipient, task, fire_at, done, created_at
		FROM reminders
		WHERE id = ?`,
		id,
	)

	var (
		rem     domain.Reminder
		doneInt int
		fireAt  int64
		created int64
	)
	if err := row.Scan(&rem.ID, &rem.Recipient, &rem.Task, &fireAt, &doneInt, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	rem.FireAt = fromUnix(fireAt)
	rem.Done = doneInt != 0
	rem.CreatedAt = fromUnix(created)
	return &rem, nil
}

func (r *SQLiteRepo) ListPendingReminders(ctx context.Context, recipient string) ([]domain.Reminder, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, recipient, task, fire_at, done, created_at
		FROM reminders
		WHERE recipient = ? AND done = 0
		ORDER BY created_at DESC`,
		recipient,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Reminder
	for rows.Next() {
		var (
			rem     domain.Reminder
			doneInt int
			fireAt  int64
			created int64
		)
		if err := rows.Scan(&rem.ID, &rem.Recipient, &rem.Task, &fireAt, &doneInt, &created); err != nil {
			return nil, err
		}
		rem.FireAt = fromUnix(fireAt)
		rem.Done = doneInt != 0
		rem.CreatedAt = fromUnix(created)
		res = append(res, rem)
	}
	return res, rows.Err()
}

func (r *SQLiteRepo) MarkReminderDone(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE reminders SET done = 1 WHERE id = ?`, id)
	return err
}

// --- Goals ---

func (r *SQLiteRepo) SaveGoal(ctx context.Context, g *domain.Goal) error {
	if g == nil {
		return errors.New("nil goal")
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO goals (id, recipient, text, offsets, done, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			text    = excluded.text,
			offsets = excluded.offsets,
			done    = excluded.done`,
		g.ID, g.Recipient, g.Text, encodeOffsets(g.Offsets),
		boolToInt(g.Done), toUnix(g.CreatedAt),
	)
	return err
}

func (r *SQLiteRepo) GetGoal(ctx context.Context, id string) (*domain.Goal, error) {
	return r.scanGoal(r.db.QueryRowContext(ctx, `
		SELECT id, recipient, text, offsets, done, created_at
		FROM goals
		WHERE id = ?`,
		id,
	))
}

func (r *SQLiteRepo) LatestOpenGoal(ctx context.Context, recipient string) (*domain.Goal, error) {
	return r.scanGoal(r.db.QueryRowContext(ctx, `
		SELECT id, recipient, text, offsets, done, created_at
		FROM goals
		WHERE recipient = ? AND done = 0
		ORDER BY created_at DESC
		LIMIT 1`,
		recipient,
	))
}

func (r *SQLiteRepo) scanGoal(row *sql.Row) (*domain.Goal, error) {
	var (
		g       domain.Goal
		offsets string
		doneInt int
		created int64
	)
	if err := row.Scan(&g.ID, &g.Recipient, &g.Text, &offsets, &doneInt, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	g.Offsets = decodeOffsets(offsets)
	g.Done = doneInt != 0
	g.CreatedAt = fromUnix(created)
	return &g, nil
}

func (r *SQLiteRepo) MarkGoalDone(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE goals SET done = 1 WHERE id = ?`, id)
	return err
}

// --- Jobs ---

func (r *SQLiteRepo) UpsertJob(ctx context.Context, j *domain.ScheduledJob) error {
	if j == nil {
		return errors.New("nil job")
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO jobs (id, recipient, kind, ref, seq, fire_at, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			recipient = excluded.recipient,
			kind      = excluded.kind,
			ref       = excluded.ref,
			seq       = excluded.seq,
			fire_at   = excluded.fire_at,
			status    = excluded.status`,
		j.ID, j.Recipient, string(j.Kind), j.Ref, j.Seq,
		toUnix(j.FireAt), string(j.Status), toUnix(j.CreatedAt),
	)
	return err
}

func (r *SQLiteRepo) CancelJob(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE jobs SET status = ? WHERE id = ? AND status = ?`,
		string(domain.JobCancelled), id, string(domain.JobPending),
	)
	return err
}

func (r *SQLiteRepo) ListDueJobs(ctx context.Context, now time.Time, limit int) ([]domain.ScheduledJob, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, recipient, kind, ref, seq, fire_at, status, created_at
		FROM jobs
		WHERE status = ? AND fire_at <= ?
		ORDER BY fire_at ASC
		LIMIT ?`,
		string(domain.JobPending), toUnix(now), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.ScheduledJob
	for rows.Next() {
		var (
			j       domain.ScheduledJob
			kind    string
			status  string
			fireAt  int64
			created int64
		)
		if err := rows.Scan(&j.ID, &j.Recipient, &kind, &j.Ref, &j.Seq, &fireAt, &status, &created); err != nil {
			return nil, err
		}
		j.Kind = domain.JobKind(kind)
		j.Status = domain.JobStatus(status)
		j.FireAt = fromUnix(fireAt)
		j.CreatedAt = fromUnix(created)
		res = append(res, j)
	}
	return res, rows.Err()
}

func (r *SQLiteRepo) MarkJobFired(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE jobs SET status = ? WHERE id = ? AND status = ?`,
		string(domain.JobFired), id, string(domain.JobPending),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
