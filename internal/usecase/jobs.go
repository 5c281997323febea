package usecase

import (
	"errors"
	"fmt"
	"time"

	"github.com/careerflowhq/careerflow-api/internal/domain"
)

// JobService owns the recruiter-facing listing surface and the counter
// recount maintenance path.
type JobService struct {
	Jobs         domain.JobRepository
	Companies    domain.CompanyRepository
	Applications domain.ApplicationRepository
}

// NewJobService constructs a JobService with its dependencies.
func NewJobService(jobs domain.JobRepository, companies domain.CompanyRepository, apps domain.ApplicationRepository) JobService {
	return JobService{Jobs: jobs, Companies: companies, Applications: apps}
}

// PostArgs carries a new listing. Either CompanyID references a stored
// company or Company carries an inline name.
type PostArgs struct {
	Title           string
	CompanyID       string
	Company         string
	Location        string
	JobType         string
	ExperienceLevel string
	Description     string
}

// Post creates an active listing with a zero application count.
func (s JobService) Post(ctx domain.Context, args PostArgs) (domain.Job, error) {
	if args.Title == "" {
		return domain.Job{}, fmt.Errorf("%w: title required", domain.ErrInvalidArgument)
	}
	if args.CompanyID != "" {
		if _, err := s.Companies.Get(ctx, args.CompanyID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.Job{}, fmt.Errorf("%w: company %s", domain.ErrInvalidArgument, args.CompanyID)
			}
			return domain.Job{}, fmt.Errorf("op=job.post: %w", err)
		}
	}
	now := time.Now().UTC()
	j := domain.Job{
		Title:           args.Title,
		CompanyID:       args.CompanyID,
		Company:         args.Company,
		Location:        args.Location,
		JobType:         args.JobType,
		ExperienceLevel: args.ExperienceLevel,
		Description:     args.Description,
		Status:          domain.JobActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	id, err := s.Jobs.Create(ctx, j)
	if err != nil {
		return domain.Job{}, fmt.Errorf("op=job.post: %w", err)
	}
	j.ID = id
	return j, nil
}

// Get loads a stored listing; sample ids never reach the store.
func (s JobService) Get(ctx domain.Context, jobID string) (domain.Job, error) {
	ref := domain.ClassifyJobID(jobID)
	if ref.Kind != domain.JobRefStored {
		return domain.Job{}, fmt.Errorf("op=job.get: %w", domain.ErrInvalidJobID)
	}
	j, err := s.Jobs.Get(ctx, ref.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Job{}, fmt.Errorf("op=job.get: %w", domain.ErrJobNotFound)
		}
		return domain.Job{}, fmt.Errorf("op=job.get: %w", err)
	}
	return j, nil
}

// List pages through listings.
func (s JobService) List(ctx domain.Context, offset, limit int) ([]domain.Job, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	jobs, err := s.Jobs.List(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("op=job.list: %w", err)
	}
	return jobs, nil
}

// Close marks a listing closed.
func (s JobService) Close(ctx domain.Context, jobID string) error {
	j, err := s.Get(ctx, jobID)
	if err != nil {
		return err
	}
	j.Status = domain.JobClosed
	j.UpdatedAt = time.Now().UTC()
	if err := s.Jobs.Update(ctx, j); err != nil {
		return fmt.Errorf("op=job.close: %w", err)
	}
	return nil
}

// RecountApplications re-derives the stored counter from the live aggregate.
// The counter is a cache of a derivable quantity; this is the repair path for
// any historical drift.
func (s JobService) RecountApplications(ctx domain.Context, jobID string) (int64, error) {
	j, err := s.Get(ctx, jobID)
	if err != nil {
		return 0, err
	}
	n, err := s.Applications.CountByJob(ctx, j.ID)
	if err != nil {
		return 0, fmt.Errorf("op=job.recount: %w", err)
	}
	if err := s.Jobs.SetApplicationCount(ctx, j.ID, n); err != nil {
		return 0, fmt.Errorf("op=job.recount: %w", err)
	}
	return n, nil
}
