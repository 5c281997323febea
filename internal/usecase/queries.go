package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/careerflowhq/careerflow-api/internal/domain"
)

// EnrichedApplication is the read model returned by the list paths: the
// stored record with snapshot fields reconciled against the current profile,
// plus the nested lookups the UI renders.
type EnrichedApplication struct {
	Application domain.Application `json:"application"`
	Job         *domain.Job        `json:"job,omitempty"`
	Company     *domain.Company    `json:"company,omitempty"`
	Candidate   *domain.User       `json:"candidate,omitempty"`
	Resume      ResolvedResume     `json:"resume"`
}

// ApplicationQueryService serves the read paths. Enrichment failures degrade
// per row: one dangling reference never fails the whole list.
type ApplicationQueryService struct {
	Users        domain.UserRepository
	Jobs         domain.JobRepository
	Companies    domain.CompanyRepository
	Applications domain.ApplicationRepository
	Resumes      ResumeResolver
}

// NewApplicationQueryService constructs an ApplicationQueryService.
func NewApplicationQueryService(users domain.UserRepository, jobs domain.JobRepository, companies domain.CompanyRepository, apps domain.ApplicationRepository, resumes ResumeResolver) ApplicationQueryService {
	return ApplicationQueryService{Users: users, Jobs: jobs, Companies: companies, Applications: apps, Resumes: resumes}
}

// ListByUser returns the candidate's applications enriched with job, company
// and resolved resume, in the order of the underlying indexed query.
func (s ApplicationQueryService) ListByUser(ctx domain.Context, socialID string) ([]EnrichedApplication, error) {
	user, err := s.Users.GetBySocialID(ctx, socialID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("op=application.list_by_user: %w", domain.ErrUserNotFound)
		}
		return nil, fmt.Errorf("op=application.list_by_user: %w", err)
	}
	apps, err := s.Applications.ListByCandidate(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("op=application.list_by_user: %w", err)
	}

	out := make([]EnrichedApplication, len(apps))
	var wg sync.WaitGroup
	for i, app := range apps {
		wg.Add(1)
		go func(i int, app domain.Application) {
			defer wg.Done()
			row := EnrichedApplication{Application: MergeSnapshot(app, user)}
			row.Job, row.Company = s.lookupJobAndCompany(ctx, app.JobID)
			row.Resume = s.Resumes.Resolve(ctx, app.ResumeURL)
			out[i] = row
		}(i, app)
	}
	wg.Wait()
	return out, nil
}

// ListByJob returns a listing's applications enriched with candidate and
// resolved resume, reconciled identically to ListByUser so display is
// consistent regardless of query direction.
func (s ApplicationQueryService) ListByJob(ctx domain.Context, jobID string) ([]EnrichedApplication, error) {
	ref := domain.ClassifyJobID(jobID)
	if ref.Kind != domain.JobRefStored {
		return nil, fmt.Errorf("op=application.list_by_job: %w", domain.ErrInvalidJobID)
	}
	apps, err := s.Applications.ListByJob(ctx, ref.ID)
	if err != nil {
		return nil, fmt.Errorf("op=application.list_by_job: %w", err)
	}

	out := make([]EnrichedApplication, len(apps))
	var wg sync.WaitGroup
	for i, app := range apps {
		wg.Add(1)
		go func(i int, app domain.Application) {
			defer wg.Done()
			row := EnrichedApplication{Application: app}
			if cand, err := s.Users.GetByID(ctx, app.CandidateID); err != nil {
				slog.Warn("candidate enrichment failed",
					slog.String("application_id", app.ID), slog.Any("error", err))
				row.Application = MergeSnapshot(app, domain.User{})
			} else {
				row.Candidate = &cand
				row.Application = MergeSnapshot(app, cand)
			}
			row.Resume = s.Resumes.Resolve(ctx, app.ResumeURL)
			out[i] = row
		}(i, app)
	}
	wg.Wait()
	return out, nil
}

// lookupJobAndCompany loads the nested job and its company; either lookup may
// fail independently and yields a nil field.
func (s ApplicationQueryService) lookupJobAndCompany(ctx domain.Context, jobID string) (*domain.Job, *domain.Company) {
	job, err := s.Jobs.Get(ctx, jobID)
	if err != nil {
		slog.Warn("job enrichment failed", slog.String("job_id", jobID), slog.Any("error", err))
		return nil, nil
	}
	if job.CompanyID == "" {
		return &job, nil
	}
	company, err := s.Companies.Get(ctx, job.CompanyID)
	if err != nil {
		slog.Warn("company enrichment failed", slog.String("company_id", job.CompanyID), slog.Any("error", err))
		return &job, nil
	}
	return &job, &company
}
