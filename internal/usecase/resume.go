package usecase

import (
	"errors"
	"log/slog"

	"github.com/careerflowhq/careerflow-api/internal/domain"
)

// Resume resolution error kinds, surfaced to the client so the UI can tell
// "no resume" from "resume broken".
const (
	ResumeErrMissing       = "missing"
	ResumeErrInvalidID     = "invalidId"
	ResumeErrNotFound      = "notFound"
	ResumeErrCorruptLegacy = "corruptLegacy"
)

// fallbackResumeName is used whenever a display name cannot be derived.
const fallbackResumeName = "resume.pdf"

// ResolvedResume is the display-ready view of a stored resume reference.
type ResolvedResume struct {
	IsValid   bool   `json:"isValid"`
	URL       string `json:"url"`
	FileName  string `json:"fileName"`
	FileSize  int64  `json:"fileSize"`
	ErrorKind string `json:"errorKind,omitempty"`
}

// ResumeResolver resolves stored resumeUrl values to display objects. It is
// total over its input: malformed or corrupt values degrade to a fallback
// object and never abort a read path.
type ResumeResolver struct {
	Files domain.FileUploadRepository
}

// NewResumeResolver constructs a ResumeResolver with the given repo.
func NewResumeResolver(files domain.FileUploadRepository) ResumeResolver {
	return ResumeResolver{Files: files}
}

// Resolve classifies raw and performs at most one store lookup (for valid
// file tokens). Lookup errors other than not-found are logged and degrade to
// the notFound kind rather than failing the caller.
func (r ResumeResolver) Resolve(ctx domain.Context, raw string) ResolvedResume {
	ref := domain.ClassifyResumeRef(raw)
	switch ref.Kind {
	case domain.ResumeRefEmpty:
		return ResolvedResume{ErrorKind: ResumeErrMissing}
	case domain.ResumeRefExternalURL:
		// Raw external link: size unknown, synthesize a generic file object.
		return ResolvedResume{IsValid: true, URL: ref.URL, FileName: fallbackResumeName}
	case domain.ResumeRefFileToken:
		f, err := r.Files.Get(ctx, ref.FileID)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				slog.Warn("resume lookup failed", slog.String("file_id", ref.FileID), slog.Any("error", err))
			}
			return ResolvedResume{FileName: fallbackResumeName, ErrorKind: ResumeErrNotFound}
		}
		name := f.FileName
		if name == "" {
			name = fallbackResumeName
		}
		return ResolvedResume{IsValid: true, URL: f.DownloadURL, FileName: name, FileSize: f.FileSize}
	case domain.ResumeRefInvalidToken:
		return ResolvedResume{FileName: fallbackResumeName, ErrorKind: ResumeErrInvalidID}
	default:
		return ResolvedResume{FileName: fallbackResumeName, ErrorKind: ResumeErrCorruptLegacy}
	}
}
