package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"restack-cli/internal/model"

	"go.uber.org/zap"
)

// Lanes returns one lane per stack, in board order.
func (w *Workspace) Lanes(ctx context.Context) ([]model.Lane, error) {
	rows, err := w.db.QueryContext(ctx, `SELECT id, title FROM stacks ORDER BY lane_rank, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Lane{}
	for rows.Next() {
		var l model.Lane
		if err := rows.Scan(&l.StackID, &l.Title); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// ReorderLanes persists a new lane order. ids must be a permutation of the
// current stack ids.
func (w *Workspace) ReorderLanes(ctx context.Context, ids []string) error {
	tx, err := w.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	cur, err := laneRanks(ctx, tx)
	if err != nil {
		return err
	}
	if err := isPermutation(cur, ids); err != nil {
		return err
	}
	updates, err := planLaneOrder(cur, ids)
	if err != nil {
		return fmt.Errorf("plan lane ranks: %w", err)
	}
	for id, r := range updates {
		if _, err := tx.ExecContext(ctx, `UPDATE stacks SET lane_rank = ? WHERE id = ?`, r, id); err != nil {
			return err
		}
	}
	if err := w.appendEvent(ctx, tx, "lanes.reorder", "lanes", map[string]any{"order": ids}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	w.log.Info("lanes reordered", zap.Strings("order", ids), zap.Int("reranked", len(updates)))
	return nil
}

func (w *Workspace) nextLaneRank(ctx context.Context, tx *sql.Tx) (string, error) {
	var last sql.NullString
	err := tx.QueryRowContext(ctx, `SELECT MAX(lane_rank) FROM stacks`).Scan(&last)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}
	return RankAfter(last.String)
}

func laneRanks(ctx context.Context, tx *sql.Tx) ([]rankedLane, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id, lane_rank FROM stacks ORDER BY lane_rank, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []rankedLane
	for rows.Next() {
		var l rankedLane
		if err := rows.Scan(&l.ID, &l.Rank); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func isPermutation(cur []rankedLane, ids []string) error {
	if len(cur) != len(ids) {
		return InvalidOrderError{Reason: fmt.Sprintf("expected %d lanes, got %d", len(cur), len(ids))}
	}
	known := map[string]bool{}
	for _, l := range cur {
		known[l.ID] = true
	}
	seen := map[string]bool{}
	for _, id := range ids {
		if !known[id] {
			return NotFoundError{Kind: "stack", ID: id}
		}
		if seen[id] {
			return InvalidOrderError{Reason: "duplicate lane " + id}
		}
		seen[id] = true
	}
	return nil
}
