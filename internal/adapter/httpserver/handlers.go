package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/careerflowhq/careerflow-api/internal/adapter/observability"
	"github.com/careerflowhq/careerflow-api/internal/config"
	"github.com/careerflowhq/careerflow-api/internal/domain"
	"github.com/careerflowhq/careerflow-api/internal/usecase"
)

// Server aggregates handler dependencies.
type Server struct {
	Cfg          config.Config
	Profiles     usecase.ProfileService
	Jobs         usecase.JobService
	Applications usecase.ApplicationService
	Queries      usecase.ApplicationQueryService
	Submissions  usecase.SubmissionService
	Files        usecase.FileService

	DBCheck    func(ctx context.Context) error
	RedisCheck func(ctx context.Context) error
	KafkaCheck func(ctx context.Context) error
}

// NewServer constructs an HTTP server with all handlers and checks wired.
func NewServer(cfg config.Config, profiles usecase.ProfileService, jobs usecase.JobService, apps usecase.ApplicationService, queries usecase.ApplicationQueryService, subs usecase.SubmissionService, files usecase.FileService) *Server {
	return &Server{
		Cfg:          cfg,
		Profiles:     profiles,
		Jobs:         jobs,
		Applications: apps,
		Queries:      queries,
		Submissions:  subs,
		Files:        files,
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}
	return nil
}

// SyncUserHandler creates or patches a profile from identity-provider data.
func (s *Server) SyncUserHandler() http.HandlerFunc {
	type request struct {
		SocialID        string   `json:"socialId"`
		FirstName       string   `json:"firstName"`
		LastName        string   `json:"lastName"`
		Email           string   `json:"email"`
		Phone           string   `json:"phone"`
		Location        string   `json:"location"`
		ExperienceYears string   `json:"experienceYears"`
		CurrentPosition string   `json:"currentPosition"`
		CurrentCompany  string   `json:"currentCompany"`
		Skills          []string `json:"skills"`
		Education       string   `json:"education"`
		Availability    string   `json:"availability"`
		ExpectedSalary  string   `json:"expectedSalary"`
		NoticePeriod    string   `json:"noticePeriod"`
		Role            string   `json:"role"`
		ResumeURL       string   `json:"resumeUrl"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err, nil)
			return
		}
		u, err := s.Profiles.Sync(r.Context(), usecase.SyncArgs{
			SocialID:        SanitizeString(req.SocialID),
			FirstName:       SanitizeString(req.FirstName),
			LastName:        SanitizeString(req.LastName),
			Email:           SanitizeString(req.Email),
			Phone:           SanitizeString(req.Phone),
			Location:        SanitizeString(req.Location),
			ExperienceYears: SanitizeString(req.ExperienceYears),
			CurrentPosition: SanitizeString(req.CurrentPosition),
			CurrentCompany:  SanitizeString(req.CurrentCompany),
			Skills:          req.Skills,
			Education:       SanitizeString(req.Education),
			Availability:    SanitizeString(req.Availability),
			ExpectedSalary:  SanitizeString(req.ExpectedSalary),
			NoticePeriod:    SanitizeString(req.NoticePeriod),
			Role:            SanitizeString(req.Role),
			ResumeURL:       req.ResumeURL,
		})
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, userView(u))
	}
}

// GetUserHandler serves a profile by social id.
func (s *Server) GetUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if res := ValidateSocialID(chi.URLParam(r, "socialId")); !res.Valid {
			writeError(w, r, fmt.Errorf("%w: invalid social id", domain.ErrInvalidArgument), res.Errors)
			return
		}
		u, err := s.Profiles.Get(r.Context(), chi.URLParam(r, "socialId"))
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, userView(u))
	}
}

// PostJobHandler creates a listing.
func (s *Server) PostJobHandler() http.HandlerFunc {
	type request struct {
		Title           string `json:"title"`
		CompanyID       string `json:"companyId"`
		Company         string `json:"company"`
		Location        string `json:"location"`
		JobType         string `json:"jobType"`
		ExperienceLevel string `json:"experienceLevel"`
		Description     string `json:"description"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err, nil)
			return
		}
		j, err := s.Jobs.Post(r.Context(), usecase.PostArgs{
			Title:           SanitizeString(req.Title),
			CompanyID:       req.CompanyID,
			Company:         SanitizeString(req.Company),
			Location:        SanitizeString(req.Location),
			JobType:         SanitizeString(req.JobType),
			ExperienceLevel: SanitizeString(req.ExperienceLevel),
			Description:     req.Description,
		})
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusCreated, jobView(j))
	}
}

// ListJobsHandler pages listings.
func (s *Server) ListJobsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if res := ValidatePagination(r.URL.Query().Get("offset"), r.URL.Query().Get("limit")); !res.Valid {
			writeError(w, r, fmt.Errorf("%w: invalid pagination", domain.ErrInvalidArgument), res.Errors)
			return
		}
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		jobs, err := s.Jobs.List(r.Context(), offset, limit)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		out := make([]map[string]any, 0, len(jobs))
		for _, j := range jobs {
			out = append(out, jobView(j))
		}
		writeJSON(w, http.StatusOK, map[string]any{"jobs": out})
	}
}

// GetJobHandler serves one listing.
func (s *Server) GetJobHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		j, err := s.Jobs.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, jobView(j))
	}
}

// CloseJobHandler marks a listing closed.
func (s *Server) CloseJobHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Jobs.Close(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"message": "Job closed"})
	}
}

// RecountJobHandler re-derives a listing's application counter.
func (s *Server) RecountJobHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := s.Jobs.RecountApplications(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"applicationCount": n})
	}
}

type applicationRequest struct {
	SocialID string `json:"socialId"`
	JobID    string `json:"jobId"`
	usecase.StepInput
}

// CreateApplicationHandler validates the full wizard state and submits.
func (s *Server) CreateApplicationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req applicationRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err, nil)
			return
		}
		res, err := s.Submissions.Submit(r.Context(), req.SocialID, req.JobID, req.StepInput)
		if err != nil {
			observability.ApplicationsSubmittedTotal.WithLabelValues("error").Inc()
			writeError(w, r, err, nil)
			return
		}
		observability.ApplicationsSubmittedTotal.WithLabelValues("ok").Inc()
		writeJSON(w, http.StatusCreated, res)
	}
}

// ValidateStepHandler runs one wizard step's gate without submitting.
func (s *Server) ValidateStepHandler() http.HandlerFunc {
	type request struct {
		Step string `json:"step"`
		usecase.StepInput
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err, nil)
			return
		}
		if err := usecase.ValidateStep(req.Step, req.StepInput); err != nil {
			writeJSON(w, http.StatusOK, map[string]any{"valid": false, "message": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"valid": true})
	}
}

// QuickApplyHandler submits from the stored profile and latest resume.
func (s *Server) QuickApplyHandler() http.HandlerFunc {
	type request struct {
		SocialID string `json:"socialId"`
		JobID    string `json:"jobId"`
		JobTitle string `json:"jobTitle"`
		Company  string `json:"company"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err, nil)
			return
		}
		res, err := s.Submissions.QuickApply(r.Context(), usecase.QuickApplyArgs{
			SocialID: req.SocialID,
			JobID:    req.JobID,
			JobTitle: SanitizeString(req.JobTitle),
			Company:  SanitizeString(req.Company),
		})
		if err != nil {
			observability.ApplicationsSubmittedTotal.WithLabelValues("error").Inc()
			writeError(w, r, err, nil)
			return
		}
		observability.ApplicationsSubmittedTotal.WithLabelValues("ok").Inc()
		writeJSON(w, http.StatusCreated, res)
	}
}

func recordResumeOutcomes(rows []usecase.EnrichedApplication) {
	for _, row := range rows {
		outcome := "ok"
		if !row.Resume.IsValid {
			outcome = row.Resume.ErrorKind
		}
		observability.ResumeResolutionsTotal.WithLabelValues(outcome).Inc()
	}
}

// ListApplicationsByUserHandler serves a candidate's enriched applications.
func (s *Server) ListApplicationsByUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := s.Queries.ListByUser(r.Context(), chi.URLParam(r, "socialId"))
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		recordResumeOutcomes(rows)
		writeJSON(w, http.StatusOK, map[string]any{"applications": enrichedViews(rows)})
	}
}

// ListApplicationsByJobHandler serves a listing's enriched applications.
func (s *Server) ListApplicationsByJobHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := s.Queries.ListByJob(r.Context(), chi.URLParam(r, "jobId"))
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		recordResumeOutcomes(rows)
		writeJSON(w, http.StatusOK, map[string]any{"applications": enrichedViews(rows)})
	}
}

// UpdateStatusHandler drives a pipeline transition.
func (s *Server) UpdateStatusHandler() http.HandlerFunc {
	type request struct {
		Status string  `json:"status"`
		Notes  *string `json:"notes"`
		Rating *int    `json:"rating"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err, nil)
			return
		}
		if res := ValidateApplicationStatus(req.Status); !res.Valid {
			writeError(w, r, fmt.Errorf("%w: invalid status", domain.ErrInvalidArgument), res.Errors)
			return
		}
		status := domain.ApplicationStatus(req.Status)
		if err := s.Applications.TransitionStatus(r.Context(), chi.URLParam(r, "id"), status, req.Notes, req.Rating); err != nil {
			writeError(w, r, err, nil)
			return
		}
		observability.StatusTransitionsTotal.WithLabelValues(req.Status).Inc()
		writeJSON(w, http.StatusOK, map[string]any{"message": "Status updated"})
	}
}

// HasAppliedHandler reports whether a user already applied to a job.
func (s *Server) HasAppliedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		socialID := r.URL.Query().Get("socialId")
		jobID := r.URL.Query().Get("jobId")
		if socialID == "" || jobID == "" {
			writeError(w, r, fmt.Errorf("%w: socialId and jobId required", domain.ErrInvalidArgument), nil)
			return
		}
		applied, err := s.Applications.HasApplied(r.Context(), socialID, jobID)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"hasApplied": applied})
	}
}

// WithdrawHandler deletes the caller's own application.
func (s *Server) WithdrawHandler() http.HandlerFunc {
	type request struct {
		SocialID string `json:"socialId"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err, nil)
			return
		}
		res, err := s.Applications.Withdraw(r.Context(), chi.URLParam(r, "id"), req.SocialID)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		observability.ApplicationsWithdrawnTotal.Inc()
		writeJSON(w, http.StatusOK, res)
	}
}

// CleanupResumeURLsHandler runs the corrupt-reference maintenance sweep.
func (s *Server) CleanupResumeURLsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := s.Applications.CleanupInvalidResumeURLs(r.Context())
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		observability.ResumeCleanupTotal.Add(float64(res.CleanedCount))
		writeJSON(w, http.StatusOK, res)
	}
}

// RequestUploadHandler issues a one-time upload ticket.
func (s *Server) RequestUploadHandler() http.HandlerFunc {
	type request struct {
		SocialID string `json:"socialId"`
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
		FileSize int64  `json:"fileSize"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err, nil)
			return
		}
		grant, err := s.Files.RequestUpload(r.Context(), req.SocialID, SanitizeString(req.FileName), req.FileType, req.FileSize)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, grant)
	}
}

// UploadHandler accepts the raw bytes for a previously issued ticket.
func (s *Server) UploadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		maxBytes := s.Cfg.MaxUploadMB * 1024 * 1024
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		data, err := io.ReadAll(r.Body)
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				writeJSON(w, http.StatusRequestEntityTooLarge, errorEnvelope{Error: apiError{
					Code:    "INVALID_ARGUMENT",
					Message: "payload too large",
					Details: map[string]any{"max_mb": s.Cfg.MaxUploadMB},
				}})
				return
			}
			writeError(w, r, fmt.Errorf("%w: read body: %v", domain.ErrInvalidArgument, err), nil)
			return
		}
		f, err := s.Files.CompleteUpload(r.Context(), chi.URLParam(r, "ticket"), data)
		if err != nil {
			observability.FileUploadsTotal.WithLabelValues("error").Inc()
			writeError(w, r, err, nil)
			return
		}
		observability.FileUploadsTotal.WithLabelValues("ok").Inc()
		writeJSON(w, http.StatusOK, fileView(f))
	}
}

// DownloadHandler streams stored resume bytes.
func (s *Server) DownloadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, data, err := s.Files.Download(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		ct := f.FileType
		if ct == "" {
			ct = "application/octet-stream"
		}
		w.Header().Set("Content-Type", ct)
		w.Header().Set("Content-Disposition", `attachment; filename="`+f.FileName+`"`)
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

// HealthzHandler is the liveness probe.
func HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	}
}

// ReadyzHandler probes DB, Redis and the broker.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	type check struct {
		Name    string `json:"name"`
		OK      bool   `json:"ok"`
		Details string `json:"details,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		checks := make([]check, 0, 3)
		run := func(name string, fn func(context.Context) error) {
			if fn == nil {
				return
			}
			if err := fn(ctx); err != nil {
				checks = append(checks, check{Name: name, OK: false, Details: err.Error()})
			} else {
				checks = append(checks, check{Name: name, OK: true})
			}
		}
		run("db", s.DBCheck)
		run("redis", s.RedisCheck)
		run("kafka", s.KafkaCheck)
		ok := true
		for _, c := range checks {
			if !c.OK {
				ok = false
				break
			}
		}
		st := http.StatusOK
		if !ok {
			st = http.StatusServiceUnavailable
		}
		writeJSON(w, st, map[string]any{"checks": checks})
	}
}
