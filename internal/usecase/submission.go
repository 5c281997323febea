package usecase

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/careerflowhq/careerflow-api/internal/domain"
)

// Wizard steps of the submission flow. Per-step validation gates forward
// navigation; the review step runs the aggregate check.
const (
	StepPersonal   = "personal"
	StepExperience = "experience"
	StepSkills     = "skills"
	StepDocuments  = "documents"
	StepReview     = "review"
)

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

// StepInput is the accumulated wizard state submitted for validation.
type StepInput struct {
	FullName        string   `json:"fullName"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Location        string   `json:"location"`
	ExperienceYears string   `json:"experienceYears"`
	CurrentPosition string   `json:"currentPosition"`
	CurrentCompany  string   `json:"currentCompany"`
	Skills          []string `json:"skills"`
	ResumeValue     string   `json:"resumeValue"`
	CoverLetter     string   `json:"coverLetter"`
}

type personalStep struct {
	FullName string `validate:"required"`
	Email    string `validate:"required,email"`
	Phone    string `validate:"required"`
	Location string `validate:"required"`
}

type experienceStep struct {
	ExperienceYears string `validate:"required"`
}

type skillsStep struct {
	Skills []string `validate:"required,min=1,dive,required"`
}

type documentsStep struct {
	ResumeValue string `validate:"required"`
}

// ValidateStep runs the minimal required-field check for one wizard step.
// Unknown steps fail with ErrInvalidArgument. The review step validates the
// whole accumulated state.
func ValidateStep(step string, in StepInput) error {
	v := getValidator()
	var err error
	switch step {
	case StepPersonal:
		err = v.Struct(personalStep{FullName: in.FullName, Email: in.Email, Phone: in.Phone, Location: in.Location})
	case StepExperience:
		err = v.Struct(experienceStep{ExperienceYears: in.ExperienceYears})
	case StepSkills:
		err = v.Struct(skillsStep{Skills: in.Skills})
	case StepDocuments:
		err = v.Struct(documentsStep{ResumeValue: in.ResumeValue})
	case StepReview:
		return ValidateSubmission(in)
	default:
		return fmt.Errorf("%w: unknown step %q", domain.ErrInvalidArgument, step)
	}
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidArgument, stepErrors(err))
	}
	return nil
}

// ValidateSubmission is the aggregate gate run before Create is called.
func ValidateSubmission(in StepInput) error {
	for _, step := range []string{StepPersonal, StepExperience, StepSkills, StepDocuments} {
		if err := ValidateStep(step, in); err != nil {
			return err
		}
	}
	return nil
}

func stepErrors(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}
	fields := make([]string, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, strings.ToLower(fe.Field()[:1])+fe.Field()[1:]+":"+fe.Tag())
	}
	return strings.Join(fields, ", ")
}

// quickApplyCoverLetter is the templated cover letter generated for the quick
// path; placeholders are filled by plain string substitution.
const quickApplyCoverLetter = `Dear Hiring Manager,

I am excited to apply for the {jobTitle} position at {company}. With {experienceYears} years of experience as a {currentPosition}, I believe my background in {topSkills} makes me a strong fit for this role.

I would welcome the opportunity to discuss how I can contribute to your team.

Best regards,
{fullName}`

// QuickApplyArgs identifies the caller and the target listing. Title and
// company come from the client since sample listings have no stored record.
type QuickApplyArgs struct {
	SocialID string
	JobID    string
	JobTitle string
	Company  string
}

// SubmissionService wraps the wizard and quick-apply paths; both converge on
// ApplicationService.Create.
type SubmissionService struct {
	Users        domain.UserRepository
	Files        domain.FileUploadRepository
	Applications ApplicationService
}

// NewSubmissionService constructs a SubmissionService.
func NewSubmissionService(users domain.UserRepository, files domain.FileUploadRepository, apps ApplicationService) SubmissionService {
	return SubmissionService{Users: users, Files: files, Applications: apps}
}

// Submit validates the aggregate wizard state and creates the application.
func (s SubmissionService) Submit(ctx domain.Context, socialID, jobID string, in StepInput) (CreateResult, error) {
	if err := ValidateSubmission(in); err != nil {
		return CreateResult{}, err
	}
	return s.Applications.Create(ctx, CreateArgs{
		SocialID:        socialID,
		JobID:           jobID,
		CoverLetter:     in.CoverLetter,
		ResumeValue:     in.ResumeValue,
		FullName:        in.FullName,
		Email:           in.Email,
		Phone:           in.Phone,
		Location:        in.Location,
		ExperienceYears: in.ExperienceYears,
		CurrentPosition: in.CurrentPosition,
		CurrentCompany:  in.CurrentCompany,
		Skills:          in.Skills,
	})
}

// QuickApply bypasses the wizard: every field is sourced from the stored
// profile and the most recently uploaded PDF resume, with a templated cover
// letter generated by string substitution.
func (s SubmissionService) QuickApply(ctx domain.Context, args QuickApplyArgs) (CreateResult, error) {
	user, err := s.Users.GetBySocialID(ctx, args.SocialID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return CreateResult{}, fmt.Errorf("op=application.quick_apply: %w", domain.ErrUserNotFound)
		}
		return CreateResult{}, fmt.Errorf("op=application.quick_apply: %w", err)
	}

	resumeValue := user.ResumeURL
	if f, err := s.Files.LatestBySocialID(ctx, args.SocialID, "application/pdf"); err == nil {
		resumeValue = f.ID
	} else if !errors.Is(err, domain.ErrNotFound) {
		return CreateResult{}, fmt.Errorf("op=application.quick_apply: %w", err)
	}
	if resumeValue == "" {
		return CreateResult{}, fmt.Errorf("%w: no resume on file", domain.ErrInvalidArgument)
	}

	cover := strings.NewReplacer(
		"{jobTitle}", args.JobTitle,
		"{company}", args.Company,
		"{experienceYears}", firstNonEmpty(user.ExperienceYears, "several"),
		"{currentPosition}", firstNonEmpty(user.CurrentPosition, "professional"),
		"{topSkills}", topSkills(user.Skills),
		"{fullName}", user.FullName(),
	).Replace(quickApplyCoverLetter)

	return s.Applications.Create(ctx, CreateArgs{
		SocialID:    args.SocialID,
		JobID:       args.JobID,
		CoverLetter: cover,
		ResumeValue: resumeValue,
	})
}

func topSkills(skills []string) string {
	if len(skills) == 0 {
		return "this field"
	}
	if len(skills) > 3 {
		skills = skills[:3]
	}
	return strings.Join(skills, ", ")
}
