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

// UserRepo persists and loads user profiles using a minimal pgx pool.
type UserRepo struct{ Pool PgxPool }

// NewUserRepo constructs a UserRepo with the given pool.
func NewUserRepo(p PgxPool) *UserRepo { return &UserRepo{Pool: p} }

const userColumns = `id, social_id, first_name, last_name, email, phone, location,
	experience_years, current_position, current_company, skills, education,
	availability, expected_salary, notice_period, role, resume_url, created_at, updated_at`

// Create stores a new user and returns its id (generates one if empty).
func (r *UserRepo) Create(ctx domain.Context, u domain.User) (string, error) {
	tracer := otel.Tracer("repo.users")
	ctx, span := tracer.Start(ctx, "users.Create")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "users"),
	)
	id := u.ID
	if id == "" {
		id = domain.NewNativeID()
	}
	q := `INSERT INTO users (` + userColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)`
	now := time.Now().UTC()
	createdAt, updatedAt := u.CreatedAt, u.UpdatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	if updatedAt.IsZero() {
		updatedAt = now
	}
	_, err := r.Pool.Exec(ctx, q, id, u.SocialID, u.FirstName, u.LastName, u.Email, u.Phone,
		u.Location, u.ExperienceYears, u.CurrentPosition, u.CurrentCompany, u.Skills,
		u.Education, u.Availability, u.ExpectedSalary, u.NoticePeriod, u.Role, u.ResumeURL,
		createdAt, updatedAt)
	if err != nil {
		return "", fmt.Errorf("op=user.create: %w", err)
	}
	return id, nil
}

// GetByID loads a user by native id.
func (r *UserRepo) GetByID(ctx domain.Context, id string) (domain.User, error) {
	tracer := otel.Tracer("repo.users")
	ctx, span := tracer.Start(ctx, "users.GetByID")
	defer span.End()
	q := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return r.scanUser(r.Pool.QueryRow(ctx, q, id), "op=user.get")
}

// GetBySocialID loads a user by the identity provider's id.
func (r *UserRepo) GetBySocialID(ctx domain.Context, socialID string) (domain.User, error) {
	tracer := otel.Tracer("repo.users")
	ctx, span := tracer.Start(ctx, "users.GetBySocialID")
	defer span.End()
	q := `SELECT ` + userColumns + ` FROM users WHERE social_id=$1`
	return r.scanUser(r.Pool.QueryRow(ctx, q, socialID), "op=user.get_by_social")
}

// Update overwrites the stored profile.
func (r *UserRepo) Update(ctx domain.Context, u domain.User) error {
	tracer := otel.Tracer("repo.users")
	ctx, span := tracer.Start(ctx, "users.Update")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "users"),
	)
	q := `UPDATE users SET first_name=$2, last_name=$3, email=$4, phone=$5, location=$6,
		experience_years=$7, current_position=$8, current_company=$9, skills=$10,
		education=$11, availability=$12, expected_salary=$13, notice_period=$14,
		role=$15, resume_url=$16, updated_at=$17 WHERE id=$1`
	tag, err := r.Pool.Exec(ctx, q, u.ID, u.FirstName, u.LastName, u.Email, u.Phone,
		u.Location, u.ExperienceYears, u.CurrentPosition, u.CurrentCompany, u.Skills,
		u.Education, u.Availability, u.ExpectedSalary, u.NoticePeriod, u.Role, u.ResumeURL,
		time.Now().UTC())
	if err != nil {
		return fmt.Errorf("op=user.update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=user.update: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *UserRepo) scanUser(row pgx.Row, op string) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.SocialID, &u.FirstName, &u.LastName, &u.Email, &u.Phone,
		&u.Location, &u.ExperienceYears, &u.CurrentPosition, &u.CurrentCompany, &u.Skills,
		&u.Education, &u.Availability, &u.ExpectedSalary, &u.NoticePeriod, &u.Role,
		&u.ResumeURL, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}
