package history

import (
	"database/sql"
	"fmt"
	"time"
)

// Run is one invocation of the start command. Durations are in seconds.
type Run struct {
	ID                int64
	WorkDuration      int
	ShortBreak        int
	LongBreak         int
	LongBreakEvery    int
	TargetSessions    int
	CompletedSessions int
	ShortBreaks       int
	LongBreaks        int
	Status            string // running, completed, cancelled, interrupted
	StartedAt         time.Time
	FinishedAt        *time.Time
}

// DailyCount aggregates completed pomodoros per calendar day.
type DailyCount struct {
	Date      string // YYYY-MM-DD (UTC)
	Completed int
}

func (s *Store) StartRun(workDuration, shortBreak, longBreak, longBreakEvery, targetSessions int) (*Run, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO runs (work_duration, short_break, long_break, long_break_every, target_sessions, status, started_at)
		 VALUES (?, ?, ?, ?, ?, 'running', ?)`,
		workDuration, shortBreak, longBreak, longBreakEvery, targetSessions, now,
	)
	if err != nil {
		return nil, fmt.Errorf("start run: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetRun(id)
}

func (s *Store) GetRun(id int64) (*Run, error) {
	r := &Run{}
	var startedAt string
	var finishedAt sql.NullString

	err := s.db.QueryRow(
		`SELECT id, work_duration, short_break, long_break, long_break_every, target_sessions,
		        completed_sessions, short_breaks, long_breaks, status, started_at, finished_at
		 FROM runs WHERE id = ?`, id,
	).Scan(&r.ID, &r.WorkDuration, &r.ShortBreak, &r.LongBreak, &r.LongBreakEvery, &r.TargetSessions,
		&r.CompletedSessions, &r.ShortBreaks, &r.LongBreaks, &r.Status, &startedAt, &finishedAt)
	if err != nil {
		return nil, fmt.Errorf("get run %d: %w", id, err)
	}
	r.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
	if finishedAt.Valid {
		t, _ := time.Parse(time.RFC3339, finishedAt.String)
		r.FinishedAt = &t
	}
	return r, nil
}

func (s *Store) IncrementCompleted(id int64) error {
	_, err := s.db.Exec(
		`UPDATE runs SET completed_sessions = completed_sessions + 1 WHERE id = ?`, id,
	)
	return err
}

func (s *Store) IncrementBreak(id int64, long bool) error {
	column := "short_breaks"
	if long {
		column = "long_breaks"
	}
	_, err := s.db.Exec(
		fmt.Sprintf(`UPDATE runs SET %s = %s + 1 WHERE id = ?`, column, column), id,
	)
	return err
}

func (s *Store) FinishRun(id int64, status string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE runs SET status = ?, finished_at = ? WHERE id = ?`,
		status, now, id,
	)
	return err
}

// RecentRuns returns the newest runs first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT id, work_duration, short_break, long_break, long_break_every, target_sessions,
		        completed_sessions, short_breaks, long_breaks, status, started_at, finished_at
		 FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedAt string
		var finishedAt sql.NullString
		if err := rows.Scan(&r.ID, &r.WorkDuration, &r.ShortBreak, &r.LongBreak, &r.LongBreakEvery,
			&r.TargetSessions, &r.CompletedSessions, &r.ShortBreaks, &r.LongBreaks,
			&r.Status, &startedAt, &finishedAt); err != nil {
			return nil, err
		}
		r.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		if finishedAt.Valid {
			t, _ := time.Parse(time.RFC3339, finishedAt.String)
			r.FinishedAt = &t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// DailyPomodoros sums completed pomodoros per day over [from, to).
func (s *Store) DailyPomodoros(from, to time.Time) ([]DailyCount, error) {
	rows, err := s.db.Query(`
		SELECT substr(started_at, 1, 10) AS day, SUM(completed_sessions)
		FROM runs
		WHERE started_at >= ? AND started_at < ?
		GROUP BY day
		ORDER BY day`,
		from.Format(time.RFC3339), to.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("daily pomodoros: %w", err)
	}
	defer rows.Close()

	var counts []DailyCount
	for rows.Next() {
		var c DailyCount
		if err := rows.Scan(&c.Date, &c.Completed); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// Clear removes all recorded runs.
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM runs`)
	return err
}
