package datasets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitcompare/internal/auth"
	"github.com/2beens/fitcompare/internal/telemetry/tracing"
	"github.com/2beens/fitcompare/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) UpsertUser(ctx context.Context, user auth.User) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO users (id, email) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email`,
		user.ID, user.Email,
	)
	return err
}

func (r *Repo) CreateDataset(ctx context.Context, dataset *Dataset) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.datasets.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("files.count", len(dataset.FitFiles)))

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO datasets (id, name, user_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
			dataset.ID, dataset.Name, dataset.UserID, dataset.CreatedAt, dataset.UpdatedAt,
		); err != nil {
			if pkg.IsForeignKeyViolationError(err) {
				return fmt.Errorf("insert dataset, unknown user [%s]: %w", dataset.UserID, err)
			}
			return fmt.Errorf("insert dataset: %w", err)
		}
		return insertFiles(ctx, tx, dataset.FitFiles)
	})
}

func (r *Repo) AddFiles(ctx context.Context, datasetID uuid.UUID, files []FitFile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.datasets.addFiles")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("files.count", len(files)))

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if err := touch(ctx, tx, datasetID); err != nil {
			return err
		}
		return insertFiles(ctx, tx, files)
	})
}

func insertFiles(ctx context.Context, tx pgx.Tx, files []FitFile) error {
	if len(files) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, f := range files {
		batch.Queue(
			`INSERT INTO fit_files (id, name, dataset_id, file_path, created_at) VALUES ($1, $2, $3, $4, $5)`,
			f.ID, f.Name, f.DatasetID, f.FilePath, f.CreatedAt,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		// dataset removed in the meantime
		if pkg.IsForeignKeyViolationError(err) {
			return ErrNotFound
		}
		return fmt.Errorf("insert fit files: %w", err)
	}
	return nil
}

func touch(ctx context.Context, tx pgx.Tx, datasetID uuid.UUID) error {
	tag, err := tx.Exec(ctx, `UPDATE datasets SET updated_at = now() WHERE id = $1`, datasetID)
	if err != nil {
		return fmt.Errorf("touch dataset: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const datasetColumns = `id, name, user_id, created_at, updated_at, share_token_hash IS NOT NULL`

func scanDataset(row pgx.Row) (*Dataset, error) {
	var d Dataset
	if err := row.Scan(&d.ID, &d.Name, &d.UserID, &d.CreatedAt, &d.UpdatedAt, &d.Shared); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	d.FitFiles = []FitFile{}
	return &d, nil
}

func (r *Repo) ListDatasets(ctx context.Context, userID string) (_ []*Dataset, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.datasets.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT `+datasetColumns+` FROM datasets WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var datasets []*Dataset
	byID := make(map[uuid.UUID]*Dataset)
	for rows.Next() {
		d, err := scanDataset(rows)
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, d)
		byID[d.ID] = d
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(datasets) == 0 {
		return []*Dataset{}, nil
	}

	ids := make([]uuid.UUID, 0, len(datasets))
	for _, d := range datasets {
		ids = append(ids, d.ID)
	}
	files, err := r.filesOf(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if d, ok := byID[f.DatasetID]; ok {
			d.FitFiles = append(d.FitFiles, f)
		}
	}

	return datasets, nil
}

func (r *Repo) GetDataset(ctx context.Context, id uuid.UUID) (_ *Dataset, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.datasets.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	d, err := scanDataset(r.db.QueryRow(ctx, `SELECT `+datasetColumns+` FROM datasets WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	return r.withFiles(ctx, d)
}

func (r *Repo) GetDatasetByShareHash(ctx context.Context, hash []byte) (_ *Dataset, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.datasets.getShared")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	d, err := scanDataset(r.db.QueryRow(ctx, `SELECT `+datasetColumns+` FROM datasets WHERE share_token_hash = $1`, hash))
	if err != nil {
		return nil, err
	}
	return r.withFiles(ctx, d)
}

func (r *Repo) withFiles(ctx context.Context, d *Dataset) (*Dataset, error) {
	files, err := r.filesOf(ctx, []uuid.UUID{d.ID})
	if err != nil {
		return nil, err
	}
	d.FitFiles = append(d.FitFiles, files...)
	return d, nil
}

func (r *Repo) filesOf(ctx context.Context, datasetIDs []uuid.UUID) ([]FitFile, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, dataset_id, file_path, created_at FROM fit_files
		WHERE dataset_id = ANY($1) ORDER BY created_at, name`,
		datasetIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("query fit files: %w", err)
	}
	defer rows.Close()

	var files []FitFile
	for rows.Next() {
		var f FitFile
		if err := rows.Scan(&f.ID, &f.Name, &f.DatasetID, &f.FilePath, &f.CreatedAt); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

func (r *Repo) GetFile(ctx context.Context, id uuid.UUID) (_ *FitFile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.files.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var f FitFile
	if err := r.db.QueryRow(
		ctx,
		`SELECT id, name, dataset_id, file_path, created_at FROM fit_files WHERE id = $1`,
		id,
	).Scan(&f.ID, &f.Name, &f.DatasetID, &f.FilePath, &f.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *Repo) RenameDataset(ctx context.Context, id uuid.UUID, name string) (_ time.Time, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.datasets.rename")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var updatedAt time.Time
	if err := r.db.QueryRow(
		ctx,
		`UPDATE datasets SET name = $2, updated_at = now() WHERE id = $1 RETURNING updated_at`,
		id, name,
	).Scan(&updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, ErrNotFound
		}
		return time.Time{}, err
	}
	return updatedAt, nil
}

// DeleteDataset removes the dataset; its fit_files rows go with it (ON DELETE CASCADE).
func (r *Repo) DeleteDataset(ctx context.Context, id uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.datasets.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `DELETE FROM datasets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) DeleteFile(ctx context.Context, datasetID, fileID uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.files.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM fit_files WHERE id = $1 AND dataset_id = $2`, fileID, datasetID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return touch(ctx, tx, datasetID)
	})
}

// SetShareHash stores the hash of the dataset's share token; nil unshares it.
func (r *Repo) SetShareHash(ctx context.Context, id uuid.UUID, hash []byte) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.datasets.setShareHash")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(
		ctx,
		`UPDATE datasets SET share_token_hash = $2, updated_at = now() WHERE id = $1`,
		id, hash,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
