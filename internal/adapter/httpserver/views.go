package httpserver

import (
	"time"

	"github.com/careerflowhq/careerflow-api/internal/domain"
	"github.com/careerflowhq/careerflow-api/internal/usecase"
)

// View builders keep the wire shape (camelCase) independent of the domain
// structs.

func userView(u domain.User) map[string]any {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	return map[string]any{
		"id":              u.ID,
		"socialId":        u.SocialID,
		"firstName":       u.FirstName,
		"lastName":        u.LastName,
		"email":           u.Email,
		"phone":           u.Phone,
		"location":        u.Location,
		"experienceYears": u.ExperienceYears,
		"currentPosition": u.CurrentPosition,
		"currentCompany":  u.CurrentCompany,
		"skills":          skills,
		"education":       u.Education,
		"availability":    u.Availability,
		"expectedSalary":  u.ExpectedSalary,
		"noticePeriod":    u.NoticePeriod,
		"role":            u.Role,
		"resumeUrl":       u.ResumeURL,
		"createdAt":       u.CreatedAt.UTC().Format(time.RFC3339),
		"updatedAt":       u.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func jobView(j domain.Job) map[string]any {
	return map[string]any{
		"id":               j.ID,
		"title":            j.Title,
		"companyId":        j.CompanyID,
		"company":          j.Company,
		"location":         j.Location,
		"jobType":          j.JobType,
		"experienceLevel":  j.ExperienceLevel,
		"description":      j.Description,
		"status":           string(j.Status),
		"applicationCount": j.ApplicationCount,
		"createdAt":        j.CreatedAt.UTC().Format(time.RFC3339),
		"updatedAt":        j.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func companyView(c domain.Company) map[string]any {
	return map[string]any{
		"id":       c.ID,
		"name":     c.Name,
		"website":  c.Website,
		"location": c.Location,
	}
}

func applicationView(a domain.Application) map[string]any {
	skills := a.Skills
	if skills == nil {
		skills = []string{}
	}
	return map[string]any{
		"id":              a.ID,
		"candidateId":     a.CandidateID,
		"jobId":           a.JobID,
		"status":          string(a.Status),
		"coverLetter":     a.CoverLetter,
		"resumeUrl":       a.ResumeURL,
		"fullName":        a.FullName,
		"email":           a.Email,
		"phone":           a.Phone,
		"location":        a.Location,
		"experienceYears": a.ExperienceYears,
		"currentPosition": a.CurrentPosition,
		"currentCompany":  a.CurrentCompany,
		"skills":          skills,
		"education":       a.Education,
		"availability":    a.Availability,
		"expectedSalary":  a.ExpectedSalary,
		"noticePeriod":    a.NoticePeriod,
		"notes":           a.Notes,
		"rating":          a.Rating,
		"appliedAt":       a.AppliedAt.UTC().Format(time.RFC3339),
		"updatedAt":       a.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func resumeView(r usecase.ResolvedResume) map[string]any {
	out := map[string]any{
		"isValid":  r.IsValid,
		"url":      r.URL,
		"fileName": r.FileName,
		"fileSize": r.FileSize,
	}
	if r.ErrorKind != "" {
		out["errorKind"] = r.ErrorKind
	}
	return out
}

func enrichedView(row usecase.EnrichedApplication) map[string]any {
	out := applicationView(row.Application)
	out["resume"] = resumeView(row.Resume)
	if row.Job != nil {
		out["job"] = jobView(*row.Job)
	}
	if row.Company != nil {
		out["company"] = companyView(*row.Company)
	}
	if row.Candidate != nil {
		out["candidate"] = userView(*row.Candidate)
	}
	return out
}

func enrichedViews(rows []usecase.EnrichedApplication) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, enrichedView(row))
	}
	return out
}

func fileView(f domain.FileUpload) map[string]any {
	return map[string]any{
		"id":          f.ID,
		"socialId":    f.SocialID,
		"fileName":    f.FileName,
		"fileType":    f.FileType,
		"fileSize":    f.FileSize,
		"downloadUrl": f.DownloadURL,
		"uploadedAt":  f.UploadedAt.UTC().Format(time.RFC3339),
	}
}
