package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Zedonkay/rent/internal/fairsplit"
)

// SplitRecord is a computed split together with the input that produced it.
type SplitRecord struct {
	ID         string               `json:"id"`
	InputID    string               `json:"input_id"`
	Seq        int64                `json:"seq"`
	Names      [fairsplit.N]string  `json:"names"`
	Valuations fairsplit.Valuations `json:"valuations"`
	TotalRent  float64              `json:"total_rent"`
	Solution   fairsplit.Solution   `json:"solution"`
	ComputedAt time.Time            `json:"computed_at"`
}

// RecordSplit stores a split. Uses ON CONFLICT(id) DO NOTHING: recording the
// same split twice is a no-op and returns inserted=false.
func (s *Store) RecordSplit(ctx context.Context, rec SplitRecord) (inserted bool, err error) {
	if rec.ComputedAt.IsZero() {
		rec.ComputedAt = s.now()
	}

	names, err := json.Marshal(rec.Names)
	if err != nil {
		return false, fmt.Errorf("record split: marshal names: %w", err)
	}
	valuations, err := json.Marshal(rec.Valuations)
	if err != nil {
		return false, fmt.Errorf("record split: marshal valuations: %w", err)
	}
	assignment, err := json.Marshal(rec.Solution.Assignment)
	if err != nil {
		return false, fmt.Errorf("record split: marshal assignment: %w", err)
	}
	prices, err := json.Marshal(rec.Solution.Prices)
	if err != nil {
		return false, fmt.Errorf("record split: marshal prices: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO splits
		(id, input_id, method, total_rent, names, valuations, assignment, prices, computed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		rec.ID,
		rec.InputID,
		string(rec.Solution.Method),
		rec.TotalRent,
		string(names),
		string(valuations),
		string(assignment),
		string(prices),
		formatTime(rec.ComputedAt),
	)
	if err != nil {
		return false, fmt.Errorf("record split: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("record split: rows affected: %w", err)
	}
	return n > 0, nil
}

const splitColumns = `id, input_id, seq, method, total_rent, names, valuations, assignment, prices, computed_at`

// ListSplits returns every recorded split, oldest first.
func (s *Store) ListSplits(ctx context.Context) ([]SplitRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+splitColumns+` FROM splits ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("list splits: %w", err)
	}
	defer rows.Close()

	recs := []SplitRecord{}
	for rows.Next() {
		rec, err := scanSplit(rows)
		if err != nil {
			return nil, fmt.Errorf("list splits: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list splits: %w", err)
	}
	return recs, nil
}

// GetSplit returns the split with the given ID, or ErrNotFound.
func (s *Store) GetSplit(ctx context.Context, id string) (SplitRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+splitColumns+` FROM splits WHERE id = ?`, id)
	rec, err := scanSplit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return SplitRecord{}, ErrNotFound
	}
	if err != nil {
		return SplitRecord{}, fmt.Errorf("get split: %w", err)
	}
	return rec, nil
}

func scanSplit(row scanner) (SplitRecord, error) {
	var rec SplitRecord
	var method, names, valuations, assignment, prices, computedAt string
	err := row.Scan(
		&rec.ID,
		&rec.InputID,
		&rec.Seq,
		&method,
		&rec.TotalRent,
		&names,
		&valuations,
		&assignment,
		&prices,
		&computedAt,
	)
	if err != nil {
		return SplitRecord{}, err
	}

	rec.Solution.Method = fairsplit.Method(method)
	if err := json.Unmarshal([]byte(names), &rec.Names); err != nil {
		return SplitRecord{}, fmt.Errorf("unmarshal names: %w", err)
	}
	if err := json.Unmarshal([]byte(valuations), &rec.Valuations); err != nil {
		return SplitRecord{}, fmt.Errorf("unmarshal valuations: %w", err)
	}
	if err := json.Unmarshal([]byte(assignment), &rec.Solution.Assignment); err != nil {
		return SplitRecord{}, fmt.Errorf("unmarshal assignment: %w", err)
	}
	if err := json.Unmarshal([]byte(prices), &rec.Solution.Prices); err != nil {
		return SplitRecord{}, fmt.Errorf("unmarshal prices: %w", err)
	}
	rec.ComputedAt, err = parseTime(computedAt)
	if err != nil {
		return SplitRecord{}, fmt.Errorf("parse computed_at: %w", err)
	}
	return rec, nil
}
