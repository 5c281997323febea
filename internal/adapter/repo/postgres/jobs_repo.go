package postgres

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/careerflowhq/careerflow-api/internal/domain"
)

// JobRepo persists and loads job listings using a minimal pgx pool.
type JobRepo struct{ Pool PgxPool }

// NewJobRepo constructs a JobRepo with the given pool.
func NewJobRepo(p PgxPool) *JobRepo { return &JobRepo{Pool: p} }

const jobColumns = `id, title, company_id, company, location, job_type,
	experience_level, description, status, application_count, created_at, updated_at`

// Create inserts a new listing and returns its id (generates one if empty).
func (r *JobRepo) Create(ctx domain.Context, j domain.Job) (string, error) {
	tracer := otel.Tracer("repo.jobs")
	ctx, span := tracer.Start(ctx, "jobs.Create")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "jobs"),
	)
	id := j.ID
	if id == "" {
		id = domain.NewNativeID()
	}
	now := time.Now().UTC()
	createdAt, updatedAt := j.CreatedAt, j.UpdatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	if updatedAt.IsZero() {
		updatedAt = now
	}
	q := `INSERT INTO jobs (` + jobColumns + `) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`
	_, err := r.Pool.Exec(ctx, q, id, j.Title, j.CompanyID, j.Company, j.Location, j.JobType,
		j.ExperienceLevel, j.Description, j.Status, j.ApplicationCount, createdAt, updatedAt)
	if err != nil {
		return "", fmt.Errorf("op=job.create: %w", err)
	}
	return id, nil
}

// Get loads a listing by id.
func (r *JobRepo) Get(ctx domain.Context, id string) (domain.Job, error) {
	tracer := otel.Tracer("repo.jobs")
	ctx, span := tracer.Start(ctx, "jobs.Get")
	defer span.End()
	q := `SELECT ` + jobColumns + ` FROM jobs WHERE id=$1`
	row := r.Pool.QueryRow(ctx, q, id)
	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Job{}, fmt.Errorf("op=job.get: %w", domain.ErrNotFound)
		}
		return domain.Job{}, fmt.Errorf("op=job.get: %w", err)
	}
	return j, nil
}

// List pages listings ordered by creation time, newest first.
func (r *JobRepo) List(ctx domain.Context, offset, limit int) ([]domain.Job, error) {
	tracer := otel.Tracer("repo.jobs")
	ctx, span := tracer.Start(ctx, "jobs.List")
	defer span.End()
	q := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at DESC OFFSET $1 LIMIT $2`
	rows, err := r.Pool.Query(ctx, q, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("op=job.list: %w", err)
	}
	defer rows.Close()
	out := make([]domain.Job, 0, limit)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("op=job.list: %w", err)
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=job.list: %w", err)
	}
	return out, nil
}

// Update overwrites the stored listing, leaving the counter untouched.
func (r *JobRepo) Update(ctx domain.Context, j domain.Job) error {
	tracer := otel.Tracer("repo.jobs")
	ctx, span := tracer.Start(ctx, "jobs.Update")
	defer span.End()
	q := `UPDATE jobs SET title=$2, company_id=$3, company=$4, location=$5, job_type=$6,
		experience_level=$7, description=$8, status=$9, updated_at=$10 WHERE id=$1`
	tag, err := r.Pool.Exec(ctx, q, j.ID, j.Title, j.CompanyID, j.Company, j.Location,
		j.JobType, j.ExperienceLevel, j.Description, j.Status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("op=job.update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=job.update: %w", domain.ErrNotFound)
	}
	return nil
}

// AdjustApplicationCount applies delta in a single statement so concurrent
// submissions never lose an increment. GREATEST floors the counter at zero.
func (r *JobRepo) AdjustApplicationCount(ctx domain.Context, id string, delta int) error {
	tracer := otel.Tracer("repo.jobs")
	ctx, span := tracer.Start(ctx, "jobs.AdjustApplicationCount")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "jobs"),
	)
	q := `UPDATE jobs SET application_count = GREATEST(application_count + $2, 0), updated_at=$3 WHERE id=$1`
	tag, err := r.Pool.Exec(ctx, q, id, delta, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("op=job.adjust_count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=job.adjust_count: %w", domain.ErrNotFound)
	}
	return nil
}

// SetApplicationCount overwrites the counter with a re-derived value.
func (r *JobRepo) SetApplicationCount(ctx domain.Context, id string, n int64) error {
	tracer := otel.Tracer("repo.jobs")
	ctx, span := tracer.Start(ctx, "jobs.SetApplicationCount")
	defer span.End()
	q := `UPDATE jobs SET application_count=$2, updated_at=$3 WHERE id=$1`
	tag, err := r.Pool.Exec(ctx, q, id, n, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("op=job.set_count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=job.set_count: %w", domain.ErrNotFound)
	}
	return nil
}

func scanJob(row pgx.Row) (domain.Job, error) {
	var j domain.Job
	err := row.Scan(&j.ID, &j.Title, &j.CompanyID, &j.Company, &j.Location, &j.JobType,
		&j.ExperienceLevel, &j.Description, &j.Status, &j.ApplicationCount, &j.CreatedAt, &j.UpdatedAt)
	return j, err
}
