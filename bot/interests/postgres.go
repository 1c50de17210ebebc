package interests

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"newsbot/core/logger"
)

// listSeparator joins the interest set into the single-column payload.
const listSeparator = ", "

// PostgresStore keeps one row per user with the interest set joined into a
// text payload. The row is always replaced wholesale so a reader never
// observes a partial write; an empty payload is a valid empty set.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore wraps the shared database handle.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Get implements Store.
func (s *PostgresStore) Get(ctx context.Context, userID int64) ([]string, error) {
	start := time.Now()
	var payload string
	err := s.db.GetContext(ctx, &payload, `SELECT interests FROM interests WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return []string{}, nil
	}
	if err != nil {
		logger.DB.Error("interests read failed",
			slog.String("event", "interests.get"),
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("interests get: %w", err)
	}
	logger.DB.Debug("interests read",
		slog.String("event", "interests.get"),
		slog.Int64("user_id", userID),
		slog.Duration("duration", logger.Took(start)),
	)
	return splitPayload(payload), nil
}

// Set implements Store.
func (s *PostgresStore) Set(ctx context.Context, userID int64, values []string) error {
	cleaned := normalize(values)
	sort.Strings(cleaned)
	payload := strings.Join(cleaned, listSeparator)

	start := time.Now()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO interests (user_id, interests) VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET interests = EXCLUDED.interests`,
		userID, payload,
	)
	if err != nil {
		logger.DB.Error("interests write failed",
			slog.String("event", "interests.set"),
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("interests set: %w", err)
	}
	logger.DB.Debug("interests written",
		slog.String("event", "interests.set"),
		slog.Int64("user_id", userID),
		slog.Int("count", len(cleaned)),
		slog.Duration("duration", logger.Took(start)),
	)
	return nil
}

// Add implements Store. The read-modify-write is not atomic across concurrent
// calls for the same user; the bot handles a user's messages sequentially.
func (s *PostgresStore) Add(ctx context.Context, userID int64, interest string) error {
	interest = strings.TrimSpace(interest)
	if interest == "" {
		return nil
	}
	current, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	for _, v := range current {
		if v == interest {
			return nil
		}
	}
	return s.Set(ctx, userID, append(current, interest))
}

// Remove implements Store.
func (s *PostgresStore) Remove(ctx context.Context, userID int64, interest string) error {
	interest = strings.TrimSpace(interest)
	if interest == "" {
		return nil
	}
	current, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	kept := current[:0]
	for _, v := range current {
		if v != interest {
			kept = append(kept, v)
		}
	}
	if len(kept) == len(current) {
		return nil
	}
	return s.Set(ctx, userID, kept)
}

func splitPayload(payload string) []string {
	if strings.TrimSpace(payload) == "" {
		return []string{}
	}
	parts := strings.Split(payload, listSeparator)
	return normalize(parts)
}
