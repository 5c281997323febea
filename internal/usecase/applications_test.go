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

func newApplicationService(t *testing.T) (usecase.ApplicationService, *mocks.MockUserRepository, *mocks.MockJobRepository, *mocks.MockApplicationRepository, *mocks.MockEventPublisher) {
	users := mocks.NewMockUserRepository(t)
	jobs := mocks.NewMockJobRepository(t)
	apps := mocks.NewMockApplicationRepository(t)
	events := mocks.NewMockEventPublisher(t)
	return usecase.NewApplicationService(users, jobs, apps, events), users, jobs, apps, events
}

func candidateUser() domain.User {
	return domain.User{
		ID:              strings.Repeat("u", 32),
		SocialID:        "social-1",
		FirstName:       "Jane",
		LastName:        "Doe",
		Email:           "jane@example.com",
		Phone:           "+123456789",
		Location:        "Berlin",
		ExperienceYears: "5",
		CurrentPosition: "Backend Engineer",
		CurrentCompany:  "Acme",
		Skills:          []string{"go", "postgres"},
		Role:            domain.RoleCandidate,
	}
}

func TestCreate_SampleJob_NoStoreWrites(t *testing.T) {
	svc, users, _, _, _ := newApplicationService(t)
	users.On("GetBySocialID", mock.Anything, "social-1").Return(candidateUser(), nil)

	res, err := svc.Create(context.Background(), usecase.CreateArgs{
		SocialID: "social-1",
		JobID:    "k1734x8kABCDEFGHIJKLMNOPQ",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.ApplicationID, "sample_"))
	assert.Contains(t, res.Message, "demo")
	// No expectations were registered on the job/application repos or the
	// publisher: any write would fail the test via AssertExpectations.
}

func TestCreate_Success_IncrementsCounterAndSnapshots(t *testing.T) {
	svc, users, jobs, apps, events := newApplicationService(t)
	user := candidateUser()
	jobID := strings.Repeat("j", 32)

	users.On("GetBySocialID", mock.Anything, "social-1").Return(user, nil)
	jobs.On("Get", mock.Anything, jobID).Return(domain.Job{ID: jobID, Title: "Go Developer"}, nil)

	var stored domain.Application
	apps.On("Create", mock.Anything, mock.AnythingOfType("domain.Application")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(domain.Application) }).
		Return(strings.Repeat("a", 32), nil)
	jobs.On("AdjustApplicationCount", mock.Anything, jobID, 1).Return(nil)
	events.On("PublishApplicationEvent", mock.Anything, mock.MatchedBy(func(ev domain.ApplicationEvent) bool {
		return ev.Type == domain.EventApplicationCreated && ev.JobID == jobID
	})).Return(nil)

	res, err := svc.Create(context.Background(), usecase.CreateArgs{
		SocialID:    "social-1",
		JobID:       jobID,
		CoverLetter: "hello",
		ResumeValue: strings.Repeat("f", 32),
	})
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("a", 32), res.ApplicationID)

	// Submission defaults snapshot fields from the profile.
	assert.Equal(t, domain.ApplicationPending, stored.Status)
	assert.Equal(t, "Jane Doe", stored.FullName)
	assert.Equal(t, "jane@example.com", stored.Email)
	assert.Equal(t, "5", stored.ExperienceYears)
	assert.Equal(t, []string{"go", "postgres"}, stored.Skills)
	assert.Equal(t, "file:"+strings.Repeat("f", 32), stored.ResumeURL)
}

func TestCreate_ExternalResumeURLStoredAsIs(t *testing.T) {
	svc, users, jobs, apps, events := newApplicationService(t)
	jobID := strings.Repeat("j", 27)

	users.On("GetBySocialID", mock.Anything, "social-1").Return(candidateUser(), nil)
	jobs.On("Get", mock.Anything, jobID).Return(domain.Job{ID: jobID}, nil)

	var stored domain.Application
	apps.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { stored = args.Get(1).(domain.Application) }).
		Return("app-1", nil)
	jobs.On("AdjustApplicationCount", mock.Anything, jobID, 1).Return(nil)
	events.On("PublishApplicationEvent", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Create(context.Background(), usecase.CreateArgs{
		SocialID:    "social-1",
		JobID:       jobID,
		ResumeValue: "https://cdn.example.com/jane.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/jane.pdf", stored.ResumeURL)
}

func TestCreate_UserNotFound(t *testing.T) {
	svc, users, _, _, _ := newApplicationService(t)
	users.On("GetBySocialID", mock.Anything, "ghost").Return(domain.User{}, domain.ErrNotFound)

	_, err := svc.Create(context.Background(), usecase.CreateArgs{SocialID: "ghost", JobID: strings.Repeat("j", 32)})
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestCreate_MalformedJobID(t *testing.T) {
	svc, users, _, _, _ := newApplicationService(t)
	users.On("GetBySocialID", mock.Anything, "social-1").Return(candidateUser(), nil)

	_, err := svc.Create(context.Background(), usecase.CreateArgs{SocialID: "social-1", JobID: "short-id"})
	require.ErrorIs(t, err, domain.ErrInvalidJobID)
}

func TestCreate_JobNotFound(t *testing.T) {
	svc, users, jobs, _, _ := newApplicationService(t)
	jobID := strings.Repeat("j", 32)
	users.On("GetBySocialID", mock.Anything, "social-1").Return(candidateUser(), nil)
	jobs.On("Get", mock.Anything, jobID).Return(domain.Job{}, domain.ErrNotFound)

	_, err := svc.Create(context.Background(), usecase.CreateArgs{SocialID: "social-1", JobID: jobID})
	require.ErrorIs(t, err, domain.ErrJobNotFound)
}

func TestTransitionStatus_Success(t *testing.T) {
	svc, _, _, apps, events := newApplicationService(t)
	notes := "strong candidate"
	rating := 4

	apps.On("Get", mock.Anything, "app-1").Return(domain.Application{ID: "app-1", JobID: "job-1", CandidateID: "cand-1"}, nil)
	apps.On("UpdateStatus", mock.Anything, "app-1", domain.ApplicationShortlisted, &notes, &rating).Return(nil)
	events.On("PublishApplicationEvent", mock.Anything, mock.MatchedBy(func(ev domain.ApplicationEvent) bool {
		return ev.Type == domain.EventApplicationStatus && ev.Status == domain.ApplicationShortlisted
	})).Return(nil)

	err := svc.TransitionStatus(context.Background(), "app-1", domain.ApplicationShortlisted, &notes, &rating)
	require.NoError(t, err)
}

func TestTransitionStatus_PermissiveGraph(t *testing.T) {
	// hired -> pending is allowed: there is no enforced transition graph.
	svc, _, _, apps, events := newApplicationService(t)
	apps.On("Get", mock.Anything, "app-1").Return(domain.Application{ID: "app-1", Status: domain.ApplicationHired}, nil)
	apps.On("UpdateStatus", mock.Anything, "app-1", domain.ApplicationPending, (*string)(nil), (*int)(nil)).Return(nil)
	events.On("PublishApplicationEvent", mock.Anything, mock.Anything).Return(nil)

	err := svc.TransitionStatus(context.Background(), "app-1", domain.ApplicationPending, nil, nil)
	require.NoError(t, err)
}

func TestTransitionStatus_InvalidStatus(t *testing.T) {
	svc, _, _, _, _ := newApplicationService(t)
	err := svc.TransitionStatus(context.Background(), "app-1", "archived", nil, nil)
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestTransitionStatus_AuthorizerDenies(t *testing.T) {
	svc, _, _, apps, _ := newApplicationService(t)
	svc.AuthorizeStatusUpdate = func(domain.Context, domain.Application) error { return domain.ErrNotOwner }
	apps.On("Get", mock.Anything, "app-1").Return(domain.Application{ID: "app-1"}, nil)

	err := svc.TransitionStatus(context.Background(), "app-1", domain.ApplicationReviewed, nil, nil)
	require.ErrorIs(t, err, domain.ErrNotOwner)
}

func TestHasApplied(t *testing.T) {
	jobID := strings.Repeat("j", 32)

	t.Run("sample job is never applied to", func(t *testing.T) {
		svc, users, _, _, _ := newApplicationService(t)
		users.On("GetBySocialID", mock.Anything, "social-1").Return(candidateUser(), nil)
		ok, err := svc.HasApplied(context.Background(), "social-1", "k1734x8kZZZZ")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("existing application", func(t *testing.T) {
		svc, users, _, apps, _ := newApplicationService(t)
		user := candidateUser()
		users.On("GetBySocialID", mock.Anything, "social-1").Return(user, nil)
		apps.On("FindByCandidateAndJob", mock.Anything, user.ID, jobID).Return(domain.Application{ID: "app-1"}, nil)
		ok, err := svc.HasApplied(context.Background(), "social-1", jobID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("no application", func(t *testing.T) {
		svc, users, _, apps, _ := newApplicationService(t)
		user := candidateUser()
		users.On("GetBySocialID", mock.Anything, "social-1").Return(user, nil)
		apps.On("FindByCandidateAndJob", mock.Anything, user.ID, jobID).Return(domain.Application{}, domain.ErrNotFound)
		ok, err := svc.HasApplied(context.Background(), "social-1", jobID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestWithdraw_Success(t *testing.T) {
	svc, users, jobs, apps, events := newApplicationService(t)
	user := candidateUser()

	users.On("GetBySocialID", mock.Anything, "social-1").Return(user, nil)
	apps.On("Get", mock.Anything, "app-1").Return(domain.Application{ID: "app-1", CandidateID: user.ID, JobID: "job-1"}, nil)
	jobs.On("AdjustApplicationCount", mock.Anything, "job-1", -1).Return(nil)
	apps.On("Delete", mock.Anything, "app-1").Return(nil)
	events.On("PublishApplicationEvent", mock.Anything, mock.MatchedBy(func(ev domain.ApplicationEvent) bool {
		return ev.Type == domain.EventApplicationWithdrawn
	})).Return(nil)

	res, err := svc.Withdraw(context.Background(), "app-1", "social-1")
	require.NoError(t, err)
	assert.Contains(t, res.Message, "withdrawn")
}

func TestWithdraw_NotOwner_NoStateChange(t *testing.T) {
	svc, users, _, apps, _ := newApplicationService(t)
	user := candidateUser()

	users.On("GetBySocialID", mock.Anything, "social-1").Return(user, nil)
	apps.On("Get", mock.Anything, "app-1").Return(domain.Application{ID: "app-1", CandidateID: "someone-else", JobID: "job-1"}, nil)

	_, err := svc.Withdraw(context.Background(), "app-1", "social-1")
	require.ErrorIs(t, err, domain.ErrNotOwner)
	// No Delete and no AdjustApplicationCount expectations: any call fails
	// the test.
}

func TestWithdraw_DanglingJobStillDeletes(t *testing.T) {
	svc, users, jobs, apps, events := newApplicationService(t)
	user := candidateUser()

	users.On("GetBySocialID", mock.Anything, "social-1").Return(user, nil)
	apps.On("Get", mock.Anything, "app-1").Return(domain.Application{ID: "app-1", CandidateID: user.ID, JobID: "gone-job"}, nil)
	jobs.On("AdjustApplicationCount", mock.Anything, "gone-job", -1).Return(domain.ErrNotFound)
	apps.On("Delete", mock.Anything, "app-1").Return(nil)
	events.On("PublishApplicationEvent", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Withdraw(context.Background(), "app-1", "social-1")
	require.NoError(t, err)
}

func TestCleanupInvalidResumeURLs(t *testing.T) {
	svc, _, _, apps, _ := newApplicationService(t)
	page := []domain.Application{
		{ID: "a1", ResumeURL: "/old/path/resume.pdf"},
		{ID: "a2", ResumeURL: "https://cdn.example.com/ok.pdf"},
		{ID: "a3", ResumeURL: "Profile%20Resume"},
		{ID: "a4", ResumeURL: "file:" + strings.Repeat("x", 32)},
		{ID: "a5", ResumeURL: ""},
		// Marker substring inside a working external link stays untouched.
		{ID: "a6", ResumeURL: "https://cdn.example.com/Profile%20Resume.pdf"},
	}
	apps.On("List", mock.Anything, 0, 500).Return(page, nil)
	apps.On("ClearResumeURL", mock.Anything, "a1").Return(nil)
	apps.On("ClearResumeURL", mock.Anything, "a3").Return(nil)

	res, err := svc.CleanupInvalidResumeURLs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.CleanedCount)
}

func TestCreate_EventPublishFailureDoesNotFailCreate(t *testing.T) {
	svc, users, jobs, apps, events := newApplicationService(t)
	jobID := strings.Repeat("j", 32)

	users.On("GetBySocialID", mock.Anything, "social-1").Return(candidateUser(), nil)
	jobs.On("Get", mock.Anything, jobID).Return(domain.Job{ID: jobID}, nil)
	apps.On("Create", mock.Anything, mock.Anything).Return("app-1", nil)
	jobs.On("AdjustApplicationCount", mock.Anything, jobID, 1).Return(nil)
	events.On("PublishApplicationEvent", mock.Anything, mock.Anything).Return(assert.AnError)

	_, err := svc.Create(context.Background(), usecase.CreateArgs{SocialID: "social-1", JobID: jobID})
	require.NoError(t, err)
}
