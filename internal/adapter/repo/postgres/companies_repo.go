package postgres

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"

	"github.com/careerflowhq/careerflow-api/internal/domain"
)

// CompanyRepo persists and loads companies using a minimal pgx pool.
type CompanyRepo struct{ Pool PgxPool }

// NewCompanyRepo constructs a CompanyRepo with the given pool.
func NewCompanyRepo(p PgxPool) *CompanyRepo { return &CompanyRepo{Pool: p} }

// Create stores a new company and returns its id (generates one if empty).
func (r *CompanyRepo) Create(ctx domain.Context, c domain.Company) (string, error) {
	tracer := otel.Tracer("repo.companies")
	ctx, span := tracer.Start(ctx, "companies.Create")
	defer span.End()
	id := c.ID
	if id == "" {
		id = domain.NewNativeID()
	}
	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	q := `INSERT INTO companies (id, name, website, location, created_at) VALUES ($1,$2,$3,$4,$5)`
	if _, err := r.Pool.Exec(ctx, q, id, c.Name, c.Website, c.Location, createdAt); err != nil {
		return "", fmt.Errorf("op=company.create: %w", err)
	}
	return id, nil
}

// Get loads a company by id.
func (r *CompanyRepo) Get(ctx domain.Context, id string) (domain.Company, error) {
	tracer := otel.Tracer("repo.companies")
	ctx, span := tracer.Start(ctx, "companies.Get")
	defer span.End()
	q := `SELECT id, name, website, location, created_at FROM companies WHERE id=$1`
	row := r.Pool.QueryRow(ctx, q, id)
	var c domain.Company
	if err := row.Scan(&c.ID, &c.Name, &c.Website, &c.Location, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Company{}, fmt.Errorf("op=company.get: %w", domain.ErrNotFound)
		}
		return domain.Company{}, fmt.Errorf("op=company.get: %w", err)
	}
	return c, nil
}
