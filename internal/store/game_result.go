package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// GameResult is one finished map quiz.
type GameResult struct {
	Sequence        int64
	GameID          string
	Mode            string
	ContinentFilter string
	Score           int
	Total           int
	Rounds          int
	FinishedAt      time.Time
}

// GameResultRepo persists finished map quizzes.
type GameResultRepo interface {
	// Append stores a result and assigns its sequence number.
	Append(ctx context.Context, r GameResult) (GameResult, error)
	// Recent returns up to limit results, newest first.
	Recent(ctx context.Context, limit int) ([]GameResult, error)
	// Best returns the highest-scoring result for a mode and filter. ok is
	// false when none exists.
	Best(ctx context.Context, mode, continentFilter string) (GameResult, bool, error)
}

var gameResultSelectColumns = []string{
	"sequence", "game_id", "mode", "continent_filter", "score", "total", "rounds", "finished_at",
}

type gameResultRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *gameResultRepo) Append(ctx context.Context, gr GameResult) (GameResult, error) {
	if gr.GameID == "" {
		return GameResult{}, fmt.Errorf("append game result: empty game id")
	}
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return GameResult{}, err
	}
	gr.Sequence = seq
	if gr.FinishedAt.IsZero() {
		gr.FinishedAt = time.Now()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(gameResultsTable.Name).
		Columns(gameResultSelectColumns...).
		Values(gr.Sequence, gr.GameID, gr.Mode, gr.ContinentFilter, gr.Score, gr.Total, gr.Rounds, gr.FinishedAt.UnixMilli()).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return GameResult{}, fmt.Errorf("append game result: %w", err)
	}
	return gr, nil
}

func (r *gameResultRepo) Recent(ctx context.Context, limit int) ([]GameResult, error) {
	if limit <= 0 {
		limit = 10
	}
	query, args := entsql.Dialect(dialect.SQLite).
		Select(gameResultSelectColumns...).
		From(entsql.Table(gameResultsTable.Name)).
		OrderBy(entsql.Desc("sequence")).
		Limit(limit).
		Query()

	return r.query(ctx, query, args)
}

func (r *gameResultRepo) Best(ctx context.Context, mode, continentFilter string) (GameResult, bool, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(gameResultSelectColumns...).
		From(entsql.Table(gameResultsTable.Name)).
		Where(entsql.And(
			entsql.EQ("mode", mode),
			entsql.EQ("continent_filter", continentFilter),
		)).
		OrderBy(entsql.Desc("score"), "sequence").
		Limit(1).
		Query()

	results, err := r.query(ctx, query, args)
	if err != nil {
		return GameResult{}, false, err
	}
	if len(results) == 0 {
		return GameResult{}, false, nil
	}
	return results[0], true, nil
}

func (r *gameResultRepo) query(ctx context.Context, query string, args []any) ([]GameResult, error) {
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query game results: %w", err)
	}
	defer rows.Close()

	var out []GameResult
	for rows.Next() {
		var (
			gr       GameResult
			finished int64
		)
		if err := rows.Scan(&gr.Sequence, &gr.GameID, &gr.Mode, &gr.ContinentFilter,
			&gr.Score, &gr.Total, &gr.Rounds, &finished); err != nil {
			return nil, fmt.Errorf("scan game result: %w", err)
		}
		gr.FinishedAt = time.UnixMilli(finished)
		out = append(out, gr)
	}
	if err := rows.Err(); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("iterate game results: %w", err)
	}
	return out, nil
}
