package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/careerflowhq/careerflow-api/internal/domain"
	"github.com/careerflowhq/careerflow-api/internal/domain/mocks"
	"github.com/careerflowhq/careerflow-api/internal/usecase"
)

func validStepInput() usecase.StepInput {
	return usecase.StepInput{
		FullName:        "Jane Doe",
		Email:           "jane@example.com",
		Phone:           "+123456789",
		Location:        "Berlin",
		ExperienceYears: "5",
		Skills:          []string{"go", "postgres"},
		ResumeValue:     "https://cdn.example.com/cv.pdf",
	}
}

func TestValidateStep(t *testing.T) {
	tests := []struct {
		name    string
		step    string
		mutate  func(*usecase.StepInput)
		wantErr bool
	}{
		{"personal ok", usecase.StepPersonal, nil, false},
		{"personal missing email", usecase.StepPersonal, func(in *usecase.StepInput) { in.Email = "" }, true},
		{"personal bad email", usecase.StepPersonal, func(in *usecase.StepInput) { in.Email = "not-an-email" }, true},
		{"experience ok", usecase.StepExperience, nil, false},
		{"experience missing", usecase.StepExperience, func(in *usecase.StepInput) { in.ExperienceYears = "" }, true},
		{"skills ok", usecase.StepSkills, nil, false},
		{"skills empty list", usecase.StepSkills, func(in *usecase.StepInput) { in.Skills = nil }, true},
		{"skills blank entry", usecase.StepSkills, func(in *usecase.StepInput) { in.Skills = []string{"go", ""} }, true},
		{"documents ok", usecase.StepDocuments, nil, false},
		{"documents missing resume", usecase.StepDocuments, func(in *usecase.StepInput) { in.ResumeValue = "" }, true},
		{"review ok", usecase.StepReview, nil, false},
		{"review catches earlier step", usecase.StepReview, func(in *usecase.StepInput) { in.Phone = "" }, true},
		{"unknown step", "confirmation", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validStepInput()
			if tt.mutate != nil {
				tt.mutate(&in)
			}
			err := usecase.ValidateStep(tt.step, in)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidArgument)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func newSubmissionService(t *testing.T) (usecase.SubmissionService, *mocks.MockUserRepository, *mocks.MockJobRepository, *mocks.MockApplicationRepository, *mocks.MockFileUploadRepository) {
	users := mocks.NewMockUserRepository(t)
	jobs := mocks.NewMockJobRepository(t)
	apps := mocks.NewMockApplicationRepository(t)
	files := mocks.NewMockFileUploadRepository(t)
	events := mocks.NewMockEventPublisher(t)
	events.On("PublishApplicationEvent", mock.Anything, mock.Anything).Return(nil).Maybe()
	inner := usecase.NewApplicationService(users, jobs, apps, events)
	return usecase.NewSubmissionService(users, files, inner), users, jobs, apps, files
}

func TestSubmit_ValidationGateBeforeCreate(t *testing.T) {
	svc, _, _, _, _ := newSubmissionService(t)
	in := validStepInput()
	in.Skills = nil

	// No repo expectations: an invalid submission must not reach the store.
	_, err := svc.Submit(context.Background(), "social-1", strings.Repeat("j", 32), in)
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestSubmit_Success(t *testing.T) {
	svc, users, jobs, apps, _ := newSubmissionService(t)
	jobID := strings.Repeat("j", 32)

	users.On("GetBySocialID", mock.Anything, "social-1").Return(candidateUser(), nil)
	jobs.On("Get", mock.Anything, jobID).Return(domain.Job{ID: jobID}, nil)

	var stored domain.Application
	apps.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { stored = args.Get(1).(domain.Application) }).
		Return("app-1", nil)
	jobs.On("AdjustApplicationCount", mock.Anything, jobID, 1).Return(nil)

	res, err := svc.Submit(context.Background(), "social-1", jobID, validStepInput())
	require.NoError(t, err)
	assert.Equal(t, "app-1", res.ApplicationID)
	assert.Equal(t, "https://cdn.example.com/cv.pdf", stored.ResumeURL)
}

func TestQuickApply_UsesLatestUploadAndTemplatesCover(t *testing.T) {
	svc, users, jobs, apps, files := newSubmissionService(t)
	jobID := strings.Repeat("j", 32)
	fileID := strings.Repeat("f", 32)
	user := candidateUser()
	user.Skills = []string{"go", "postgres", "kafka", "redis"}

	users.On("GetBySocialID", mock.Anything, "social-1").Return(user, nil)
	files.On("LatestBySocialID", mock.Anything, "social-1", "application/pdf").
		Return(domain.FileUpload{ID: fileID, FileName: "cv.pdf"}, nil)
	jobs.On("Get", mock.Anything, jobID).Return(domain.Job{ID: jobID}, nil)

	var stored domain.Application
	apps.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { stored = args.Get(1).(domain.Application) }).
		Return("app-1", nil)
	jobs.On("AdjustApplicationCount", mock.Anything, jobID, 1).Return(nil)

	_, err := svc.QuickApply(context.Background(), usecase.QuickApplyArgs{
		SocialID: "social-1",
		JobID:    jobID,
		JobTitle: "Go Developer",
		Company:  "Acme",
	})
	require.NoError(t, err)

	assert.Equal(t, "file:"+fileID, stored.ResumeURL)
	assert.Contains(t, stored.CoverLetter, "Go Developer position at Acme")
	assert.Contains(t, stored.CoverLetter, "5 years of experience as a Backend Engineer")
	// Top three skills only.
	assert.Contains(t, stored.CoverLetter, "go, postgres, kafka")
	assert.NotContains(t, stored.CoverLetter, "redis")
	assert.Contains(t, stored.CoverLetter, "Jane Doe")
	assert.NotContains(t, stored.CoverLetter, "{")
}

func TestQuickApply_FallsBackToProfileResume(t *testing.T) {
	svc, users, jobs, apps, files := newSubmissionService(t)
	jobID := strings.Repeat("j", 32)
	user := candidateUser()
	user.ResumeURL = "https://cdn.example.com/profile-cv.pdf"

	users.On("GetBySocialID", mock.Anything, "social-1").Return(user, nil)
	files.On("LatestBySocialID", mock.Anything, "social-1", "application/pdf").
		Return(domain.FileUpload{}, domain.ErrNotFound)
	jobs.On("Get", mock.Anything, jobID).Return(domain.Job{ID: jobID}, nil)

	var stored domain.Application
	apps.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { stored = args.Get(1).(domain.Application) }).
		Return("app-1", nil)
	jobs.On("AdjustApplicationCount", mock.Anything, jobID, 1).Return(nil)

	_, err := svc.QuickApply(context.Background(), usecase.QuickApplyArgs{SocialID: "social-1", JobID: jobID})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/profile-cv.pdf", stored.ResumeURL)
}

func TestQuickApply_NoResumeAnywhere(t *testing.T) {
	svc, users, _, _, files := newSubmissionService(t)

	users.On("GetBySocialID", mock.Anything, "social-1").Return(candidateUser(), nil)
	files.On("LatestBySocialID", mock.Anything, "social-1", "application/pdf").
		Return(domain.FileUpload{}, domain.ErrNotFound)

	_, err := svc.QuickApply(context.Background(), usecase.QuickApplyArgs{SocialID: "social-1", JobID: strings.Repeat("j", 32)})
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestQuickApply_SampleJobStillSynthetic(t *testing.T) {
	svc, users, _, _, files := newSubmissionService(t)
	user := candidateUser()
	user.ResumeURL = "https://cdn.example.com/profile-cv.pdf"
	users.On("GetBySocialID", mock.Anything, "social-1").Return(user, nil)
	files.On("LatestBySocialID", mock.Anything, "social-1", "application/pdf").
		Return(domain.FileUpload{}, domain.ErrNotFound)

	res, err := svc.QuickApply(context.Background(), usecase.QuickApplyArgs{
		SocialID: "social-1",
		JobID:    "k1734x8kDEMO",
		JobTitle: "Demo Role",
		Company:  "Demo Co",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.ApplicationID, "sample_"))
}
