package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Store wraps the generated Queries with the transactional operations the
// services need.
type Store struct {
	*Queries
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		Queries: New(db),
		db:      db,
	}
}

func (s *Store) execTx(ctx context.Context, fn func(*Queries) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(New(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %v, rollback err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

// RecordReading stores a reading and, when issueDescription is non-empty, the
// issue the reading raised. Both rows commit together or not at all.
func (s *Store) RecordReading(ctx context.Context, arg CreateReadingParams, issueDescription string) (EnvironmentalReading, *Issue, error) {
	var (
		reading EnvironmentalReading
		issue   *Issue
	)

	err := s.execTx(ctx, func(q *Queries) error {
		var err error
		reading, err = q.CreateReading(ctx, arg)
		if err != nil {
			return err
		}

		if issueDescription == "" {
			return nil
		}

		created, err := q.CreateIssue(ctx, CreateIssueParams{
			GreenhouseID: arg.GreenhouseID,
			Description:  issueDescription,
		})
		if err != nil {
			return err
		}

		issue = &created
		return nil
	})

	return reading, issue, err
}

// ResolveIssueWithReading marks the issue resolved and logs the reading that
// returns the greenhouse to normal values, atomically.
func (s *Store) ResolveIssueWithReading(ctx context.Context, issueID int64, resolvedAt time.Time, reading CreateReadingParams) (Issue, EnvironmentalReading, error) {
	var (
		issue  Issue
		logged EnvironmentalReading
	)

	err := s.execTx(ctx, func(q *Queries) error {
		var err error
		issue, err = q.ResolveIssue(ctx, ResolveIssueParams{
			ID:         issueID,
			ResolvedAt: sql.NullTime{Time: resolvedAt, Valid: true},
		})
		if err != nil {
			return err
		}

		logged, err = q.CreateReading(ctx, reading)
		return err
	})

	return issue, logged, err
}
