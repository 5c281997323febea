package postgres

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/careerflowhq/careerflow-api/internal/domain"
)

// ApplicationRepo persists and loads applications using a minimal pgx pool.
type ApplicationRepo struct{ Pool PgxPool }

// NewApplicationRepo constructs an ApplicationRepo with the given pool.
func NewApplicationRepo(p PgxPool) *ApplicationRepo { return &ApplicationRepo{Pool: p} }

const applicationColumns = `id, candidate_id, job_id, status, cover_letter, resume_url,
	full_name, email, phone, location, experience_years, current_position,
	current_company, skills, education, availability, expected_salary, notice_period,
	notes, rating, applied_at, updated_at`

// Create stores a new application and returns its id (generates one if empty).
// The unique candidate+job index surfaces duplicate submissions as ErrConflict.
func (r *ApplicationRepo) Create(ctx domain.Context, a domain.Application) (string, error) {
	tracer := otel.Tracer("repo.applications")
	ctx, span := tracer.Start(ctx, "applications.Create")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "applications"),
	)
	id := a.ID
	if id == "" {
		id = domain.NewNativeID()
	}
	now := time.Now().UTC()
	appliedAt, updatedAt := a.AppliedAt, a.UpdatedAt
	if appliedAt.IsZero() {
		appliedAt = now
	}
	if updatedAt.IsZero() {
		updatedAt = now
	}
	q := `INSERT INTO applications (` + applicationColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)`
	_, err := r.Pool.Exec(ctx, q, id, a.CandidateID, a.JobID, a.Status, a.CoverLetter,
		a.ResumeURL, a.FullName, a.Email, a.Phone, a.Location, a.ExperienceYears,
		a.CurrentPosition, a.CurrentCompany, a.Skills, a.Education, a.Availability,
		a.ExpectedSalary, a.NoticePeriod, a.Notes, a.Rating, appliedAt, updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("op=application.create: %w", domain.ErrConflict)
		}
		return "", fmt.Errorf("op=application.create: %w", err)
	}
	return id, nil
}

// Get loads an application by id.
func (r *ApplicationRepo) Get(ctx domain.Context, id string) (domain.Application, error) {
	tracer := otel.Tracer("repo.applications")
	ctx, span := tracer.Start(ctx, "applications.Get")
	defer span.End()
	q := `SELECT ` + applicationColumns + ` FROM applications WHERE id=$1`
	a, err := scanApplication(r.Pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Application{}, fmt.Errorf("op=application.get: %w", domain.ErrNotFound)
		}
		return domain.Application{}, fmt.Errorf("op=application.get: %w", err)
	}
	return a, nil
}

// ListByCandidate returns the candidate's applications, newest first.
func (r *ApplicationRepo) ListByCandidate(ctx domain.Context, candidateID string) ([]domain.Application, error) {
	tracer := otel.Tracer("repo.applications")
	ctx, span := tracer.Start(ctx, "applications.ListByCandidate")
	defer span.End()
	q := `SELECT ` + applicationColumns + ` FROM applications WHERE candidate_id=$1 ORDER BY applied_at DESC`
	return r.queryList(ctx, "op=application.list_by_candidate", q, candidateID)
}

// ListByJob returns a listing's applications, newest first.
func (r *ApplicationRepo) ListByJob(ctx domain.Context, jobID string) ([]domain.Application, error) {
	tracer := otel.Tracer("repo.applications")
	ctx, span := tracer.Start(ctx, "applications.ListByJob")
	defer span.End()
	q := `SELECT ` + applicationColumns + ` FROM applications WHERE job_id=$1 ORDER BY applied_at DESC`
	return r.queryList(ctx, "op=application.list_by_job", q, jobID)
}

// FindByCandidateAndJob loads the unique application for a candidate+job pair.
func (r *ApplicationRepo) FindByCandidateAndJob(ctx domain.Context, candidateID, jobID string) (domain.Application, error) {
	tracer := otel.Tracer("repo.applications")
	ctx, span := tracer.Start(ctx, "applications.FindByCandidateAndJob")
	defer span.End()
	q := `SELECT ` + applicationColumns + ` FROM applications WHERE candidate_id=$1 AND job_id=$2 LIMIT 1`
	a, err := scanApplication(r.Pool.QueryRow(ctx, q, candidateID, jobID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Application{}, fmt.Errorf("op=application.find: %w", domain.ErrNotFound)
		}
		return domain.Application{}, fmt.Errorf("op=application.find: %w", err)
	}
	return a, nil
}

// UpdateStatus updates the pipeline status; notes and rating only when given.
func (r *ApplicationRepo) UpdateStatus(ctx domain.Context, id string, status domain.ApplicationStatus, notes *string, rating *int) error {
	tracer := otel.Tracer("repo.applications")
	ctx, span := tracer.Start(ctx, "applications.UpdateStatus")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "applications"),
	)
	q := `UPDATE applications SET status=$2, notes=COALESCE($3, notes),
		rating=COALESCE($4, rating), updated_at=$5 WHERE id=$1`
	tag, err := r.Pool.Exec(ctx, q, id, status, notes, rating, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("op=application.update_status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=application.update_status: %w", domain.ErrNotFound)
	}
	return nil
}

// Delete removes an application row.
func (r *ApplicationRepo) Delete(ctx domain.Context, id string) error {
	tracer := otel.Tracer("repo.applications")
	ctx, span := tracer.Start(ctx, "applications.Delete")
	defer span.End()
	tag, err := r.Pool.Exec(ctx, `DELETE FROM applications WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("op=application.delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=application.delete: %w", domain.ErrNotFound)
	}
	return nil
}

// CountByJob counts the live applications for a listing.
func (r *ApplicationRepo) CountByJob(ctx domain.Context, jobID string) (int64, error) {
	tracer := otel.Tracer("repo.applications")
	ctx, span := tracer.Start(ctx, "applications.CountByJob")
	defer span.End()
	var n int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM applications WHERE job_id=$1`, jobID).Scan(&n); err != nil {
		return 0, fmt.Errorf("op=application.count_by_job: %w", err)
	}
	return n, nil
}

// List pages all applications in a stable order for maintenance sweeps.
func (r *ApplicationRepo) List(ctx domain.Context, offset, limit int) ([]domain.Application, error) {
	tracer := otel.Tracer("repo.applications")
	ctx, span := tracer.Start(ctx, "applications.List")
	defer span.End()
	q := `SELECT ` + applicationColumns + ` FROM applications ORDER BY id OFFSET $1 LIMIT $2`
	return r.queryList(ctx, "op=application.list", q, offset, limit)
}

// ClearResumeURL blanks a corrupt resume reference.
func (r *ApplicationRepo) ClearResumeURL(ctx domain.Context, id string) error {
	tracer := otel.Tracer("repo.applications")
	ctx, span := tracer.Start(ctx, "applications.ClearResumeURL")
	defer span.End()
	q := `UPDATE applications SET resume_url='', updated_at=$2 WHERE id=$1`
	if _, err := r.Pool.Exec(ctx, q, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("op=application.clear_resume_url: %w", err)
	}
	return nil
}

func (r *ApplicationRepo) queryList(ctx domain.Context, op, q string, args ...any) ([]domain.Application, error) {
	rows, err := r.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var out []domain.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func scanApplication(row pgx.Row) (domain.Application, error) {
	var a domain.Application
	err := row.Scan(&a.ID, &a.CandidateID, &a.JobID, &a.Status, &a.CoverLetter, &a.ResumeURL,
		&a.FullName, &a.Email, &a.Phone, &a.Location, &a.ExperienceYears, &a.CurrentPosition,
		&a.CurrentCompany, &a.Skills, &a.Education, &a.Availability, &a.ExpectedSalary,
		&a.NoticePeriod, &a.Notes, &a.Rating, &a.AppliedAt, &a.UpdatedAt)
	return a, err
}
