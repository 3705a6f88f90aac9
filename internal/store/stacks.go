package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"restack-cli/internal/model"

	"go.uber.org/zap"
)

// Stack loads one stack.
func (w *Workspace) Stack(ctx context.Context, id string) (model.Stack, error) {
	rec, err := w.stackRecord(ctx, w.db, id)
	if err != nil {
		return model.Stack{}, err
	}
	return model.FromRecords(rec.ID, rec.Series), nil
}

// StackRecords returns every stack in lane order.
func (w *Workspace) StackRecords(ctx context.Context) ([]model.StackRecord, error) {
	lanes, err := w.Lanes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.StackRecord, 0, len(lanes))
	for _, l := range lanes {
		rec, err := w.stackRecord(ctx, w.db, l.StackID)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (w *Workspace) stackRecord(ctx context.Context, q querier, id string) (model.StackRecord, error) {
	rec := model.StackRecord{ID: id}
	err := q.QueryRowContext(ctx, `SELECT title FROM stacks WHERE id = ?`, id).Scan(&rec.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, NotFoundError{Kind: "stack", ID: id}
	}
	if err != nil {
		return rec, err
	}

	rows, err := q.QueryContext(ctx, `
		SELECT s.name, c.id
		FROM series s
		LEFT JOIN commits c ON c.stack_id = s.stack_id AND c.series_name = s.name
		WHERE s.stack_id = ?
		ORDER BY s.pos, c.pos`, id)
	if err != nil {
		return rec, err
	}
	defer rows.Close()

	rec.Series = []model.SeriesRecord{}
	for rows.Next() {
		var name string
		var commit sql.NullString
		if err := rows.Scan(&name, &commit); err != nil {
			return rec, err
		}
		if n := len(rec.Series); n == 0 || rec.Series[n-1].Name != name {
			rec.Series = append(rec.Series, model.SeriesRecord{Name: name, CommitIDs: []string{}})
		}
		if commit.Valid {
			last := &rec.Series[len(rec.Series)-1]
			last.CommitIDs = append(last.CommitIDs, commit.String)
		}
	}
	return rec, rows.Err()
}

// PutStack creates or replaces a stack. New stacks become the last lane.
func (w *Workspace) PutStack(ctx context.Context, rec model.StackRecord) error {
	rec.ID = strings.TrimSpace(rec.ID)
	if rec.ID == "" {
		return InvalidOrderError{Reason: "missing stack id"}
	}
	if err := validateSeries(rec.ID, rec.Series); err != nil {
		return err
	}

	tx, err := w.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, sr := range rec.Series {
		for _, c := range sr.CommitIDs {
			var owner string
			err := tx.QueryRowContext(ctx, `SELECT stack_id FROM commits WHERE id = ? AND stack_id != ?`, c, rec.ID).Scan(&owner)
			if err == nil {
				return InvalidOrderError{StackID: rec.ID, Reason: fmt.Sprintf("commit %s already belongs to stack %s", c, owner)}
			}
			if !errors.Is(err, sql.ErrNoRows) {
				return err
			}
		}
	}

	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM stacks WHERE id = ?`, rec.ID).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		rank, err := w.nextLaneRank(ctx, tx)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO stacks(id, title, lane_rank) VALUES(?, ?, ?)`, rec.ID, rec.Title, rank); err != nil {
			return err
		}
	} else if _, err := tx.ExecContext(ctx, `UPDATE stacks SET title = ? WHERE id = ?`, rec.Title, rec.ID); err != nil {
		return err
	}

	if err := writeSeries(ctx, tx, rec.ID, rec.Series); err != nil {
		return err
	}
	if err := w.appendEvent(ctx, tx, "stack.put", rec.ID, rec); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteStack removes a stack and its lane.
func (w *Workspace) DeleteStack(ctx context.Context, id string) error {
	tx, err := w.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM commits WHERE stack_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM stacks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return NotFoundError{Kind: "stack", ID: id}
	}
	if err := w.appendEvent(ctx, tx, "stack.delete", id, map[string]any{}); err != nil {
		return err
	}
	return tx.Commit()
}

// ReorderStack replaces the commit placement of a stack. The new order must
// contain exactly the commits and series the stack has now.
func (w *Workspace) ReorderStack(ctx context.Context, stackID string, order []model.SeriesRecord) error {
	if err := validateSeries(stackID, order); err != nil {
		return err
	}

	tx, err := w.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	cur, err := w.stackRecord(ctx, tx, stackID)
	if err != nil {
		return err
	}
	if err := sameContents(stackID, cur.Series, order); err != nil {
		return err
	}
	if err := writeSeries(ctx, tx, stackID, order); err != nil {
		return err
	}
	if err := w.appendEvent(ctx, tx, "stack.reorder", stackID, map[string]any{"series": order}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	w.log.Info("stack reordered", zap.String("stack", stackID))
	return nil
}

func writeSeries(ctx context.Context, tx *sql.Tx, stackID string, recs []model.SeriesRecord) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM commits WHERE stack_id = ?`, stackID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM series WHERE stack_id = ?`, stackID); err != nil {
		return err
	}
	for i, sr := range recs {
		if _, err := tx.ExecContext(ctx, `INSERT INTO series(stack_id, name, pos) VALUES(?, ?, ?)`, stackID, sr.Name, i); err != nil {
			return err
		}
		for j, c := range sr.CommitIDs {
			if _, err := tx.ExecContext(ctx, `INSERT INTO commits(id, stack_id, series_name, pos) VALUES(?, ?, ?, ?)`, c, stackID, sr.Name, j); err != nil {
				return fmt.Errorf("insert commit %s: %w", c, err)
			}
		}
	}
	return nil
}

func validateSeries(stackID string, recs []model.SeriesRecord) error {
	names := map[string]bool{}
	commits := map[string]bool{}
	for _, sr := range recs {
		name := strings.TrimSpace(sr.Name)
		if name == "" {
			return InvalidOrderError{StackID: stackID, Reason: "series without a name"}
		}
		if names[name] {
			return InvalidOrderError{StackID: stackID, Reason: "duplicate series " + name}
		}
		names[name] = true
		for _, c := range sr.CommitIDs {
			if strings.TrimSpace(c) == "" {
				return InvalidOrderError{StackID: stackID, Reason: "empty commit id in series " + name}
			}
			if commits[c] {
				return InvalidOrderError{StackID: stackID, Reason: "duplicate commit " + c}
			}
			commits[c] = true
		}
	}
	return nil
}

func sameContents(stackID string, cur, next []model.SeriesRecord) error {
	flat := func(recs []model.SeriesRecord) (names, commits []string) {
		for _, sr := range recs {
			names = append(names, sr.Name)
			commits = append(commits, sr.CommitIDs...)
		}
		sort.Strings(names)
		sort.Strings(commits)
		return names, commits
	}
	cn, cc := flat(cur)
	nn, nc := flat(next)
	if strings.Join(cn, "\x00") != strings.Join(nn, "\x00") {
		return InvalidOrderError{StackID: stackID, Reason: "series set changed"}
	}
	if strings.Join(cc, "\x00") != strings.Join(nc, "\x00") {
		return InvalidOrderError{StackID: stackID, Reason: "commit set changed"}
	}
	return nil
}
