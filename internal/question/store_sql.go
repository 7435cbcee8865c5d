package question

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// SQLStore holds the collection in a single table of (position,
// payload) rows, one JSON object per question. It satisfies the same
// whole-collection-replace contract as FileStore: Replace rewrites the
// table in one transaction, Load reads rows back in position order.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Load(ctx context.Context) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM questions ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	qs := []Question{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var q Question
		if err := json.Unmarshal([]byte(payload), &q); err != nil {
			return nil, &FormatError{Path: "questions table", Err: err}
		}
		qs = append(qs, q)
	}
	return qs, rows.Err()
}

func (s *SQLStore) Replace(ctx context.Context, qs []Question) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM questions`); err != nil {
		return err
	}
	for i, q := range qs {
		buf, err := json.Marshal(q)
		if err != nil {
			return fmt.Errorf("encode question %d: %w", i, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO questions (position, payload) VALUES ($1, $2)`,
			i, string(buf)); err != nil {
			return err
		}
	}
	return tx.Commit()
}
