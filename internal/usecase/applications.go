package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/careerflowhq/careerflow-api/internal/domain"
	"github.com/careerflowhq/careerflow-api/pkg/textx"
)

// StatusAuthorizer decides whether the caller may drive a status transition.
// The shipped default is permissive: the recruiter-facing UI is trusted to
// stay within its own listings. Keeping the hook explicit leaves one place to
// tighten the boundary later.
type StatusAuthorizer func(ctx domain.Context, app domain.Application) error

// ApplicationService owns the application lifecycle: create, status
// transitions, withdraw, and counter maintenance on the parent job.
type ApplicationService struct {
	Users                 domain.UserRepository
	Jobs                  domain.JobRepository
	Applications          domain.ApplicationRepository
	Events                domain.EventPublisher
	AuthorizeStatusUpdate StatusAuthorizer
}

// NewApplicationService constructs an ApplicationService with its dependencies.
func NewApplicationService(users domain.UserRepository, jobs domain.JobRepository, apps domain.ApplicationRepository, events domain.EventPublisher) ApplicationService {
	return ApplicationService{
		Users:                 users,
		Jobs:                  jobs,
		Applications:          apps,
		Events:                events,
		AuthorizeStatusUpdate: func(domain.Context, domain.Application) error { return nil },
	}
}

// CreateArgs carries candidate input for a submission. Snapshot fields left
// empty default from the resolved profile.
type CreateArgs struct {
	SocialID    string
	JobID       string
	CoverLetter string
	// ResumeValue is either an external URL or a stored file id.
	ResumeValue string

	FullName        string
	Email           string
	Phone           string
	Location        string
	ExperienceYears string
	CurrentPosition string
	CurrentCompany  string
	Skills          []string
	Education       string
	Availability    string
	ExpectedSalary  string
	NoticePeriod    string
}

// CreateResult is the outcome of a submission.
type CreateResult struct {
	ApplicationID string `json:"applicationId"`
	Message       string `json:"message"`
}

// Create validates the caller and the job reference, persists the application
// with a profile-defaulted snapshot, and bumps the parent job's counter.
// Sample jobs short-circuit to a synthetic success with zero store writes so
// demo content never contaminates real data or counters.
func (s ApplicationService) Create(ctx domain.Context, args CreateArgs) (CreateResult, error) {
	user, err := s.Users.GetBySocialID(ctx, args.SocialID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return CreateResult{}, fmt.Errorf("op=application.create: %w", domain.ErrUserNotFound)
		}
		return CreateResult{}, fmt.Errorf("op=application.create: %w", err)
	}

	ref := domain.ClassifyJobID(args.JobID)
	switch ref.Kind {
	case domain.JobRefSample:
		slog.Info("demo submission accepted without persistence",
			slog.String("job_id", args.JobID), slog.String("social_id", args.SocialID))
		return CreateResult{
			ApplicationID: domain.NewSampleApplicationID(),
			Message:       "Application submitted (demo listing, not stored)",
		}, nil
	case domain.JobRefMalformed:
		return CreateResult{}, fmt.Errorf("op=application.create: %w", domain.ErrInvalidJobID)
	}

	job, err := s.Jobs.Get(ctx, ref.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return CreateResult{}, fmt.Errorf("op=application.create: %w", domain.ErrJobNotFound)
		}
		return CreateResult{}, fmt.Errorf("op=application.create: %w", err)
	}

	now := time.Now().UTC()
	app := domain.Application{
		CandidateID: user.ID,
		JobID:       job.ID,
		Status:      domain.ApplicationPending,
		CoverLetter: textx.SanitizeText(args.CoverLetter),
		ResumeURL:   domain.EncodeResumeRef(args.ResumeValue),

		FullName:        firstNonEmpty(args.FullName, user.FullName()),
		Email:           firstNonEmpty(args.Email, user.Email),
		Phone:           firstNonEmpty(args.Phone, user.Phone),
		Location:        firstNonEmpty(args.Location, user.Location),
		ExperienceYears: firstNonEmpty(args.ExperienceYears, user.ExperienceYears),
		CurrentPosition: firstNonEmpty(args.CurrentPosition, user.CurrentPosition),
		CurrentCompany:  firstNonEmpty(args.CurrentCompany, user.CurrentCompany),
		Skills:          args.Skills,
		Education:       firstNonEmpty(args.Education, user.Education),
		Availability:    firstNonEmpty(args.Availability, user.Availability),
		ExpectedSalary:  firstNonEmpty(args.ExpectedSalary, user.ExpectedSalary),
		NoticePeriod:    firstNonEmpty(args.NoticePeriod, user.NoticePeriod),

		AppliedAt: now,
		UpdatedAt: now,
	}
	if len(app.Skills) == 0 {
		app.Skills = user.Skills
	}

	appID, err := s.Applications.Create(ctx, app)
	if err != nil {
		return CreateResult{}, fmt.Errorf("op=application.create: %w", err)
	}

	if err := s.Jobs.AdjustApplicationCount(ctx, job.ID, 1); err != nil {
		// The counter is advisory; the application itself is committed.
		slog.Error("application count increment failed",
			slog.String("job_id", job.ID), slog.Any("error", err))
	}

	s.publish(ctx, domain.ApplicationEvent{
		Type:          domain.EventApplicationCreated,
		ApplicationID: appID,
		JobID:         job.ID,
		CandidateID:   user.ID,
		Status:        domain.ApplicationPending,
		OccurredAt:    now,
	})

	return CreateResult{ApplicationID: appID, Message: "Application submitted"}, nil
}

// TransitionStatus is the single entry point for status updates. The graph is
// permissive (any state reachable from any state); only enum membership is
// enforced. Notes and rating are optional patches.
func (s ApplicationService) TransitionStatus(ctx domain.Context, applicationID string, status domain.ApplicationStatus, notes *string, rating *int) error {
	if !domain.ValidApplicationStatus(status) {
		return fmt.Errorf("op=application.transition: %w: status %q", domain.ErrInvalidArgument, status)
	}
	app, err := s.Applications.Get(ctx, applicationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("op=application.transition: %w", domain.ErrApplicationNotFound)
		}
		return fmt.Errorf("op=application.transition: %w", err)
	}
	if s.AuthorizeStatusUpdate != nil {
		if err := s.AuthorizeStatusUpdate(ctx, app); err != nil {
			return fmt.Errorf("op=application.transition: %w", err)
		}
	}
	if err := s.Applications.UpdateStatus(ctx, applicationID, status, notes, rating); err != nil {
		return fmt.Errorf("op=application.transition: %w", err)
	}
	s.publish(ctx, domain.ApplicationEvent{
		Type:          domain.EventApplicationStatus,
		ApplicationID: applicationID,
		JobID:         app.JobID,
		CandidateID:   app.CandidateID,
		Status:        status,
		OccurredAt:    time.Now().UTC(),
	})
	return nil
}

// HasApplied reports whether the user already has an application for the job.
// Sample jobs are never truly applied to, so they always report false.
func (s ApplicationService) HasApplied(ctx domain.Context, socialID, jobID string) (bool, error) {
	user, err := s.Users.GetBySocialID(ctx, socialID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, fmt.Errorf("op=application.has_applied: %w", domain.ErrUserNotFound)
		}
		return false, fmt.Errorf("op=application.has_applied: %w", err)
	}
	ref := domain.ClassifyJobID(jobID)
	if ref.Kind != domain.JobRefStored {
		return false, nil
	}
	_, err = s.Applications.FindByCandidateAndJob(ctx, user.ID, ref.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("op=application.has_applied: %w", err)
	}
	return true, nil
}

// WithdrawResult is the outcome of a withdrawal.
type WithdrawResult struct {
	Message string `json:"message"`
}

// Withdraw deletes the caller's own application and decrements the parent
// job's counter (floored at zero). Non-owners are rejected with no state
// change.
func (s ApplicationService) Withdraw(ctx domain.Context, applicationID, socialID string) (WithdrawResult, error) {
	user, err := s.Users.GetBySocialID(ctx, socialID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return WithdrawResult{}, fmt.Errorf("op=application.withdraw: %w", domain.ErrUserNotFound)
		}
		return WithdrawResult{}, fmt.Errorf("op=application.withdraw: %w", err)
	}
	app, err := s.Applications.Get(ctx, applicationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return WithdrawResult{}, fmt.Errorf("op=application.withdraw: %w", domain.ErrApplicationNotFound)
		}
		return WithdrawResult{}, fmt.Errorf("op=application.withdraw: %w", err)
	}
	if app.CandidateID != user.ID {
		return WithdrawResult{}, fmt.Errorf("op=application.withdraw: %w", domain.ErrNotOwner)
	}

	if err := s.Jobs.AdjustApplicationCount(ctx, app.JobID, -1); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			slog.Error("application count decrement failed",
				slog.String("job_id", app.JobID), slog.Any("error", err))
		}
	}
	if err := s.Applications.Delete(ctx, applicationID); err != nil {
		return WithdrawResult{}, fmt.Errorf("op=application.withdraw: %w", err)
	}

	s.publish(ctx, domain.ApplicationEvent{
		Type:          domain.EventApplicationWithdrawn,
		ApplicationID: applicationID,
		JobID:         app.JobID,
		CandidateID:   user.ID,
		Status:        app.Status,
		OccurredAt:    time.Now().UTC(),
	})
	return WithdrawResult{Message: "Application withdrawn"}, nil
}

// CleanupResult reports the maintenance sweep outcome.
type CleanupResult struct {
	CleanedCount int    `json:"cleanedCount"`
	Message      string `json:"message"`
}

// cleanupPageSize bounds each scan page of the maintenance sweep.
const cleanupPageSize = 500

// CleanupInvalidResumeURLs scans all applications and blanks any resumeUrl
// matching the corrupt-legacy classification.
func (s ApplicationService) CleanupInvalidResumeURLs(ctx domain.Context) (CleanupResult, error) {
	cleaned := 0
	for offset := 0; ; offset += cleanupPageSize {
		page, err := s.Applications.List(ctx, offset, cleanupPageSize)
		if err != nil {
			return CleanupResult{}, fmt.Errorf("op=application.cleanup_resume_urls: %w", err)
		}
		for _, app := range page {
			if !domain.IsCorruptResumeValue(app.ResumeURL) {
				continue
			}
			if err := s.Applications.ClearResumeURL(ctx, app.ID); err != nil {
				slog.Warn("resume url cleanup failed",
					slog.String("application_id", app.ID), slog.Any("error", err))
				continue
			}
			cleaned++
		}
		if len(page) < cleanupPageSize {
			break
		}
	}
	return CleanupResult{
		CleanedCount: cleaned,
		Message:      fmt.Sprintf("Cleaned %d invalid resume references", cleaned),
	}, nil
}

// publish emits an event, fire-and-forget: publish failures are logged and
// never fail the mutation that produced them.
func (s ApplicationService) publish(ctx domain.Context, ev domain.ApplicationEvent) {
	if s.Events == nil {
		return
	}
	if err := s.Events.PublishApplicationEvent(ctx, ev); err != nil {
		slog.Warn("application event publish failed",
			slog.String("type", ev.Type), slog.String("application_id", ev.ApplicationID), slog.Any("error", err))
	}
}
