// Package domain holds the core entities, error taxonomy and repository
// ports of the CareerFlow application engine.
package domain

import (
	"context"
	"errors"
	"time"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrUserNotFound        = errors.New("user not found")
	ErrJobNotFound         = errors.New("job not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrInvalidJobID        = errors.New("invalid job id")
	ErrNotOwner            = errors.New("not application owner")
	ErrInternal            = errors.New("internal error")
)

// User roles
const (
	RoleCandidate = "candidate"
	RoleRecruiter = "recruiter"
)

// User is a candidate or recruiter profile, keyed internally by a native id
// and externally by the identity provider's social id.
type User struct {
	ID              string
	SocialID        string
	FirstName       string
	LastName        string
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
	Role            string
	ResumeURL       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// FullName joins first and last name for snapshot defaulting.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Company is a hiring organization referenced by jobs.
type Company struct {
	ID        string
	Name      string
	Website   string
	Location  string
	CreatedAt time.Time
}

// JobStatus enumerates listing states.
type JobStatus string

const (
	JobActive JobStatus = "active"
	JobClosed JobStatus = "closed"
)

// Job is a persisted listing. ApplicationCount is a denormalized counter of
// non-withdrawn applications; it is advisory and can always be re-derived by
// counting applications with a matching JobID.
type Job struct {
	ID               string
	Title            string
	CompanyID        string
	Company          string
	Location         string
	JobType          string
	ExperienceLevel  string
	Description      string
	Status           JobStatus
	ApplicationCount int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ApplicationStatus enumerates pipeline states. Any state is reachable from
// any state; rejected and hired are terminal by convention only.
type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "pending"
	ApplicationReviewed    ApplicationStatus = "reviewed"
	ApplicationShortlisted ApplicationStatus = "shortlisted"
	ApplicationScheduled   ApplicationStatus = "scheduled_for_interview"
	ApplicationInterviewed ApplicationStatus = "interviewed"
	ApplicationRejected    ApplicationStatus = "rejected"
	ApplicationHired       ApplicationStatus = "hired"
)

// ValidApplicationStatus reports whether s is a member of the status enum.
func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationPending, ApplicationReviewed, ApplicationShortlisted,
		ApplicationScheduled, ApplicationInterviewed, ApplicationRejected, ApplicationHired:
		return true
	}
	return false
}

// Application is one candidate's submission to one real job. The personal and
// professional fields are a snapshot of the profile taken at submission time
// and may be sparse on historical records.
type Application struct {
	ID          string
	CandidateID string
	JobID       string
	Status      ApplicationStatus
	CoverLetter string
	ResumeURL   string

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

	Notes     string
	Rating    int
	AppliedAt time.Time
	UpdatedAt time.Time
}

// FileUpload is an uploaded resume/document owned by a social id.
type FileUpload struct {
	ID          string
	SocialID    string
	FileName    string
	FileType    string
	FileSize    int64
	DownloadURL string
	UploadedAt  time.Time
}

// UploadTicket is a short-lived grant to PUT raw bytes for a pending upload.
type UploadTicket struct {
	ID       string
	FileID   string
	SocialID string
	FileName string
	FileType string
	FileSize int64
}

// ApplicationEvent is published after a successful mutation.
type ApplicationEvent struct {
	Type          string            `json:"type"`
	ApplicationID string            `json:"application_id"`
	JobID         string            `json:"job_id"`
	CandidateID   string            `json:"candidate_id"`
	Status        ApplicationStatus `json:"status"`
	OccurredAt    time.Time         `json:"occurred_at"`
}

// Event types
const (
	EventApplicationCreated   = "application.created"
	EventApplicationStatus    = "application.status_changed"
	EventApplicationWithdrawn = "application.withdrawn"
)

// Repositories (ports)

type UserRepository interface {
	Create(ctx Context, u User) (string, error)
	GetByID(ctx Context, id string) (User, error)
	GetBySocialID(ctx Context, socialID string) (User, error)
	Update(ctx Context, u User) error
}

type CompanyRepository interface {
	Create(ctx Context, c Company) (string, error)
	Get(ctx Context, id string) (Company, error)
}

type JobRepository interface {
	Create(ctx Context, j Job) (string, error)
	Get(ctx Context, id string) (Job, error)
	List(ctx Context, offset, limit int) ([]Job, error)
	Update(ctx Context, j Job) error
	// AdjustApplicationCount applies delta atomically; the stored counter
	// never drops below zero.
	AdjustApplicationCount(ctx Context, id string, delta int) error
	SetApplicationCount(ctx Context, id string, n int64) error
}

type ApplicationRepository interface {
	Create(ctx Context, a Application) (string, error)
	Get(ctx Context, id string) (Application, error)
	ListByCandidate(ctx Context, candidateID string) ([]Application, error)
	ListByJob(ctx Context, jobID string) ([]Application, error)
	FindByCandidateAndJob(ctx Context, candidateID, jobID string) (Application, error)
	UpdateStatus(ctx Context, id string, status ApplicationStatus, notes *string, rating *int) error
	Delete(ctx Context, id string) error
	CountByJob(ctx Context, jobID string) (int64, error)
	List(ctx Context, offset, limit int) ([]Application, error)
	ClearResumeURL(ctx Context, id string) error
}

type FileUploadRepository interface {
	Create(ctx Context, f FileUpload) (string, error)
	Get(ctx Context, id string) (FileUpload, error)
	LatestBySocialID(ctx Context, socialID, fileType string) (FileUpload, error)
	SaveContent(ctx Context, id string, data []byte) error
	GetContent(ctx Context, id string) ([]byte, error)
}

// UploadTicketStore holds pending upload grants with a TTL (port).

type UploadTicketStore interface {
	Put(ctx Context, t UploadTicket, ttl time.Duration) error
	// Take retrieves and invalidates a ticket; a missing or expired ticket
	// yields ErrNotFound.
	Take(ctx Context, id string) (UploadTicket, error)
}

// EventPublisher (port)

type EventPublisher interface {
	PublishApplicationEvent(ctx Context, ev ApplicationEvent) error
}

// Context is an alias to context.Context; adapters and usecases pass it through.
type Context = context.Context
