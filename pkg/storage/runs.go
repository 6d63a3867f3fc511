package storage

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ekiara/windows-utils/pkg/domain"
)

const (
	runInsertQuery = `
		INSERT INTO runs (
			volume, destination,
			exec_status, files_copied, files_skipped,
			created_at, finished_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	runUpdateQuery = `
		UPDATE runs SET
			volume = ?, destination = ?,
			exec_status = ?, files_copied = ?, files_skipped = ?,
			created_at = ?, finished_at = ?
		WHERE id = ?
	`

	runSelectRecent = `
		SELECT
			id,
			volume, destination,
			exec_status, files_copied, files_skipped,
			created_at, finished_at
		FROM runs
		ORDER BY created_at DESC
		LIMIT ?
	`
)

// RunRepository journals backup runs in SQLite.
type RunRepository struct {
	db *sqlx.DB
}

func NewRunRepository(db *sqlx.DB) *RunRepository {
	return &RunRepository{
		db: db,
	}
}

func (r *RunRepository) Create(ctx context.Context, run domain.Run) (domain.Run, error) {
	stmt, err := r.db.PrepareContext(ctx, runInsertQuery)
	if err != nil {
		return run, err
	}

	res, err := stmt.ExecContext(
		ctx,
		run.Volume, run.Destination,
		run.ExecStatus, run.FilesCopied, run.FilesSkipped,
		run.CreatedAt, run.FinishedAt,
	)
	if err != nil {
		return run, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return run, err
	}

	run.Id = id

	return run, nil
}

func (r *RunRepository) Update(ctx context.Context, run domain.Run) error {
	stmt, err := r.db.PrepareContext(ctx, runUpdateQuery)
	if err != nil {
		return err
	}

	_, err = stmt.ExecContext(
		ctx,
		run.Volume, run.Destination,
		run.ExecStatus, run.FilesCopied, run.FilesSkipped,
		run.CreatedAt, run.FinishedAt,
		run.Id,
	)

	return err
}

func (r *RunRepository) FindRecent(ctx context.Context, limit int) ([]domain.Run, error) {
	var runs []domain.Run

	err := r.db.SelectContext(ctx, &runs, runSelectRecent, limit)
	if err != nil {
		return nil, err
	}

	return runs, nil
}
