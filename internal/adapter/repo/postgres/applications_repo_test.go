package postgres_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerflowhq/careerflow-api/internal/adapter/repo/postgres"
	"github.com/careerflowhq/careerflow-api/internal/domain"
)

func TestApplicationRepo_Create(t *testing.T) {
	pool := &poolStub{}
	repo := postgres.NewApplicationRepo(pool)

	id, err := repo.Create(context.Background(), domain.Application{
		CandidateID: "cand-1",
		JobID:       "job-1",
		Status:      domain.ApplicationPending,
	})
	require.NoError(t, err)
	assert.Len(t, id, 32)
	require.Len(t, pool.execSQLs, 1)
	assert.Contains(t, pool.execSQLs[0], "INSERT INTO applications")
}

func TestApplicationRepo_Create_DuplicateIsConflict(t *testing.T) {
	pool := &poolStub{execErr: &pgconn.PgError{Code: "23505"}}
	repo := postgres.NewApplicationRepo(pool)

	_, err := repo.Create(context.Background(), domain.Application{CandidateID: "c", JobID: "j"})
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestApplicationRepo_Get_NotFound(t *testing.T) {
	pool := &poolStub{row: rowStub{scan: func(_ ...any) error { return pgx.ErrNoRows }}}
	repo := postgres.NewApplicationRepo(pool)

	_, err := repo.Get(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplicationRepo_FindByCandidateAndJob_NotFound(t *testing.T) {
	pool := &poolStub{row: rowStub{scan: func(_ ...any) error { return pgx.ErrNoRows }}}
	repo := postgres.NewApplicationRepo(pool)

	_, err := repo.FindByCandidateAndJob(context.Background(), "cand-1", "job-1")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplicationRepo_UpdateStatus(t *testing.T) {
	pool := &poolStub{execTag: pgconn.NewCommandTag("UPDATE 1")}
	repo := postgres.NewApplicationRepo(pool)
	notes := "n"
	rating := 3

	err := repo.UpdateStatus(context.Background(), "app-1", domain.ApplicationReviewed, &notes, &rating)
	require.NoError(t, err)
	// Nil patches leave the stored values alone.
	assert.Contains(t, pool.execSQLs[0], "COALESCE($3, notes)")
	assert.Contains(t, pool.execSQLs[0], "COALESCE($4, rating)")
}

func TestApplicationRepo_UpdateStatus_NotFound(t *testing.T) {
	pool := &poolStub{execTag: pgconn.NewCommandTag("UPDATE 0")}
	repo := postgres.NewApplicationRepo(pool)

	err := repo.UpdateStatus(context.Background(), "missing", domain.ApplicationReviewed, nil, nil)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplicationRepo_Delete_NotFound(t *testing.T) {
	pool := &poolStub{execTag: pgconn.NewCommandTag("DELETE 0")}
	repo := postgres.NewApplicationRepo(pool)

	err := repo.Delete(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplicationRepo_CountByJob(t *testing.T) {
	pool := &poolStub{row: rowStub{scan: func(dest ...any) error {
		*(dest[0].(*int64)) = 12
		return nil
	}}}
	repo := postgres.NewApplicationRepo(pool)

	n, err := repo.CountByJob(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)
}

func TestApplicationRepo_ClearResumeURL(t *testing.T) {
	pool := &poolStub{execTag: pgconn.NewCommandTag("UPDATE 1")}
	repo := postgres.NewApplicationRepo(pool)

	require.NoError(t, repo.ClearResumeURL(context.Background(), "app-1"))
	assert.Contains(t, pool.execSQLs[0], "resume_url=''")
}
