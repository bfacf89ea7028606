package daily

import (
	"context"
	"database/sql"
)

// Result is one completed puzzle on one day.
type Result struct {
	UserID    string `json:"userId"`
	Date      string `json:"date"`
	Level     string `json:"level"`
	Gestures  int    `json:"gestures"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// Store reads and writes daily_results.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyCompleted reports whether the player finished level on date.
func (s *Store) AlreadyCompleted(ctx context.Context, userID, date, level string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=? AND level=?`,
		userID, date, level,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult records a completion. Only the first completion per player,
// day and level counts; later ones are ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(user_id, date, level, gestures, elapsed_ms)
		 VALUES(?,?,?,?,?)`, r.UserID, r.Date, r.Level, r.Gestures, r.ElapsedMs,
	)
	return err
}

// LBRow is one leaderboard line.
type LBRow struct {
	UserID    string `json:"userId"`
	Gestures  int    `json:"gestures"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// Leaderboard returns the fastest completions of level on date, fewest
// gestures breaking ties. limit <= 0 means 20.
func (s *Store) Leaderboard(ctx context.Context, date, level string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, gestures, elapsed_ms
		 FROM daily_results
		 WHERE date=? AND level=?
		 ORDER BY elapsed_ms ASC, gestures ASC, created_at ASC, id ASC
		 LIMIT ?`, date, level, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.Gestures, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
