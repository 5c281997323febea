package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SampleJobIDPrefix marks demo jobs that are never persisted. Sample ids are
// never looked up in the store and never used for writes.
const SampleJobIDPrefix = "k1734x8k"

// Native id widths issued by the store: 32-char (current, uuid hex) and
// 27-char (legacy encoding).
const (
	nativeIDLen       = 32
	nativeIDLenLegacy = 27
)

// resumeFileTokenPrefix encodes internally stored resumes in resumeUrl.
const resumeFileTokenPrefix = "file:"

// NewNativeID issues a 32-char native id.
func NewNativeID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// IsNativeID reports whether s has one of the two accepted id widths.
func IsNativeID(s string) bool {
	return len(s) == nativeIDLen || len(s) == nativeIDLenLegacy
}

// NewSampleApplicationID returns the ephemeral id for a demo submission.
func NewSampleApplicationID() string {
	return "sample_" + strconv.FormatInt(time.Now().UnixMilli(), 10)
}

// JobRefKind enumerates job id classifications.
type JobRefKind int

const (
	JobRefMalformed JobRefKind = iota
	JobRefSample
	JobRefStored
)

// JobRef is a job id parsed once at the boundary so downstream logic can
// match on Kind instead of re-checking string shape.
type JobRef struct {
	Kind JobRefKind
	ID   string
	Raw  string
}

// ClassifyJobID is total: it never fails, returning JobRefMalformed for any
// id that is neither sample-prefixed nor native-width.
func ClassifyJobID(raw string) JobRef {
	if strings.HasPrefix(raw, SampleJobIDPrefix) {
		return JobRef{Kind: JobRefSample, ID: raw, Raw: raw}
	}
	if IsNativeID(raw) {
		return JobRef{Kind: JobRefStored, ID: raw, Raw: raw}
	}
	return JobRef{Kind: JobRefMalformed, Raw: raw}
}

// ResumeRefKind enumerates resume reference classifications.
type ResumeRefKind int

const (
	ResumeRefEmpty ResumeRefKind = iota
	ResumeRefExternalURL
	ResumeRefFileToken
	// ResumeRefInvalidToken is a file: token whose inner id is not a native
	// id; the inner id must never reach a store lookup.
	ResumeRefInvalidToken
	// ResumeRefCorrupt covers any shape that is neither an external URL nor
	// a file token: legacy local paths and the literal "Profile Resume" /
	// "Profile%20Resume" marker values among them.
	ResumeRefCorrupt
)

// ResumeRef is a parsed resumeUrl-like value.
type ResumeRef struct {
	Kind   ResumeRefKind
	URL    string
	FileID string
	Raw    string
}

// ClassifyResumeRef is total: every input maps to exactly one kind.
func ClassifyResumeRef(raw string) ResumeRef {
	if raw == "" {
		return ResumeRef{Kind: ResumeRefEmpty}
	}
	if strings.HasPrefix(raw, "http") {
		return ResumeRef{Kind: ResumeRefExternalURL, URL: raw, Raw: raw}
	}
	if inner, ok := strings.CutPrefix(raw, resumeFileTokenPrefix); ok {
		if IsNativeID(inner) {
			return ResumeRef{Kind: ResumeRefFileToken, FileID: inner, Raw: raw}
		}
		return ResumeRef{Kind: ResumeRefInvalidToken, Raw: raw}
	}
	return ResumeRef{Kind: ResumeRefCorrupt, Raw: raw}
}

// IsCorruptResumeValue reports whether raw matches the corrupt-legacy
// classification used by the maintenance sweep. It is exactly the Corrupt
// kind of ClassifyResumeRef: external URLs and file tokens are never corrupt,
// even when they happen to contain a legacy marker substring.
func IsCorruptResumeValue(raw string) bool {
	return ClassifyResumeRef(raw).Kind == ResumeRefCorrupt
}

// EncodeResumeRef stores a submission-time resume argument: external URLs are
// kept as-is, anything else is wrapped as a file token.
func EncodeResumeRef(value string) string {
	if value == "" {
		return ""
	}
	if strings.HasPrefix(value, "http") {
		return value
	}
	return resumeFileTokenPrefix + value
}
