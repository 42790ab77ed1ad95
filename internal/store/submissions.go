package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/Zedonkay/rent/internal/fairsplit"
)

// Submission is one person's valuation vector in a round.
type Submission struct {
	ID          string            `json:"id"`
	Seq         int64             `json:"seq"`
	Name        string            `json:"name"`
	Values      fairsplit.Vector3 `json:"values"`
	SubmittedAt time.Time         `json:"timestamp"`
}

// NameKey folds a display name for duplicate detection: trimmed, NFC
// normalized and Unicode case folded.
func NameKey(name string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(name)))
}

// AppendSubmission adds a submission at the end of the round, refusing it
// once the round holds limit submissions. A limit <= 0 means no limit.
// ID and SubmittedAt are assigned when empty.
//
// Returns ErrDuplicateSubmitter if the folded name is taken and ErrRoundFull
// if the round is full.
func (s *Store) AppendSubmission(ctx context.Context, sub Submission, limit int) (Submission, error) {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = s.now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Submission{}, fmt.Errorf("append submission: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if limit > 0 {
		var count int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM submissions`).Scan(&count); err != nil {
			return Submission{}, fmt.Errorf("append submission: count: %w", err)
		}
		if count >= limit {
			return Submission{}, ErrRoundFull
		}
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO submissions
		(id, name, name_key, value_0, value_1, value_2, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		sub.ID,
		sub.Name,
		NameKey(sub.Name),
		sub.Values[0],
		sub.Values[1],
		sub.Values[2],
		formatTime(sub.SubmittedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return Submission{}, ErrDuplicateSubmitter
		}
		return Submission{}, fmt.Errorf("append submission: insert: %w", err)
	}

	sub.Seq, err = result.LastInsertId()
	if err != nil {
		return Submission{}, fmt.Errorf("append submission: last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Submission{}, fmt.Errorf("append submission: commit: %w", err)
	}
	return sub, nil
}

// ListSubmissions returns all submissions in insertion order.
func (s *Store) ListSubmissions(ctx context.Context) ([]Submission, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, name, value_0, value_1, value_2, submitted_at
		FROM submissions
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	subs := []Submission{}
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("list submissions: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return subs, nil
}

// FindSubmission looks a submission up by case-insensitive name.
// Returns ErrNotFound when nobody by that name has submitted.
func (s *Store) FindSubmission(ctx context.Context, name string) (Submission, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, name, value_0, value_1, value_2, submitted_at
		FROM submissions
		WHERE name_key = ?
	`, NameKey(name))

	sub, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Submission{}, ErrNotFound
	}
	if err != nil {
		return Submission{}, fmt.Errorf("find submission: %w", err)
	}
	return sub, nil
}

// CountSubmissions returns the number of submissions in the round.
func (s *Store) CountSubmissions(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM submissions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count submissions: %w", err)
	}
	return count, nil
}

// ResetSubmissions empties the round. Split history is kept.
// Returns the number of submissions removed.
func (s *Store) ResetSubmissions(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM submissions`)
	if err != nil {
		return 0, fmt.Errorf("reset submissions: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reset submissions: rows affected: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row scanner) (Submission, error) {
	var sub Submission
	var submittedAt string
	err := row.Scan(
		&sub.ID,
		&sub.Seq,
		&sub.Name,
		&sub.Values[0],
		&sub.Values[1],
		&sub.Values[2],
		&submittedAt,
	)
	if err != nil {
		return Submission{}, err
	}
	sub.SubmittedAt, err = parseTime(submittedAt)
	if err != nil {
		return Submission{}, fmt.Errorf("parse submitted_at: %w", err)
	}
	return sub, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
