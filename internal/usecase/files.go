package usecase

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/careerflowhq/careerflow-api/internal/domain"
)

// uploadTicketTTL bounds how long an issued upload URL stays valid.
const uploadTicketTTL = 15 * time.Minute

// defaultMaxResumeBytes caps a single resume upload when no limit is
// configured.
const defaultMaxResumeBytes = 10 << 20

// FileService implements the upload handoff contract: issue a short-lived
// upload URL, accept the raw bytes, and associate the stored content with the
// file record. Consumers only ever see the resulting file id.
type FileService struct {
	Files   domain.FileUploadRepository
	Tickets domain.UploadTicketStore
	// BaseURL prefixes issued upload and download URLs.
	BaseURL string
	// MaxBytes caps a single upload; it tracks the HTTP layer's body limit.
	MaxBytes int64
}

// NewFileService constructs a FileService. maxUploadMB bounds upload size;
// zero or negative falls back to the 10 MB default.
func NewFileService(files domain.FileUploadRepository, tickets domain.UploadTicketStore, baseURL string, maxUploadMB int64) FileService {
	maxBytes := maxUploadMB * 1024 * 1024
	if maxBytes <= 0 {
		maxBytes = defaultMaxResumeBytes
	}
	return FileService{
		Files:    files,
		Tickets:  tickets,
		BaseURL:  strings.TrimSuffix(baseURL, "/"),
		MaxBytes: maxBytes,
	}
}

// UploadGrant is returned to the client requesting an upload.
type UploadGrant struct {
	UploadURL string `json:"uploadUrl"`
	FileID    string `json:"fileId"`
}

// RequestUpload registers file metadata and issues a one-time upload ticket.
func (s FileService) RequestUpload(ctx domain.Context, socialID, fileName, fileType string, fileSize int64) (UploadGrant, error) {
	if socialID == "" || fileName == "" {
		return UploadGrant{}, fmt.Errorf("%w: socialId and fileName required", domain.ErrInvalidArgument)
	}
	if fileSize <= 0 || fileSize > s.MaxBytes {
		return UploadGrant{}, fmt.Errorf("%w: file size out of range", domain.ErrInvalidArgument)
	}
	fileID, err := s.Files.Create(ctx, domain.FileUpload{
		SocialID:   socialID,
		FileName:   fileName,
		FileType:   fileType,
		FileSize:   fileSize,
		UploadedAt: time.Now().UTC(),
	})
	if err != nil {
		return UploadGrant{}, fmt.Errorf("op=file.request_upload: %w", err)
	}
	ticket := domain.UploadTicket{
		ID:       uuid.New().String(),
		FileID:   fileID,
		SocialID: socialID,
		FileName: fileName,
		FileType: fileType,
		FileSize: fileSize,
	}
	if err := s.Tickets.Put(ctx, ticket, uploadTicketTTL); err != nil {
		return UploadGrant{}, fmt.Errorf("op=file.request_upload: %w", err)
	}
	return UploadGrant{
		UploadURL: s.BaseURL + "/v1/files/" + ticket.ID,
		FileID:    fileID,
	}, nil
}

// CompleteUpload consumes a ticket and persists the uploaded bytes. The
// ticket is invalidated even when validation fails, so a grant is good for
// exactly one attempt.
func (s FileService) CompleteUpload(ctx domain.Context, ticketID string, data []byte) (domain.FileUpload, error) {
	ticket, err := s.Tickets.Take(ctx, ticketID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.FileUpload{}, fmt.Errorf("%w: upload ticket expired or unknown", domain.ErrNotFound)
		}
		return domain.FileUpload{}, fmt.Errorf("op=file.complete_upload: %w", err)
	}
	if len(data) == 0 || int64(len(data)) > s.MaxBytes {
		return domain.FileUpload{}, fmt.Errorf("%w: upload size out of range", domain.ErrInvalidArgument)
	}
	if mt := mimetype.Detect(data); !allowedResumeMIME(mt.String()) {
		return domain.FileUpload{}, fmt.Errorf("%w: unsupported content type %s", domain.ErrInvalidArgument, mt.String())
	}
	if err := s.Files.SaveContent(ctx, ticket.FileID, data); err != nil {
		return domain.FileUpload{}, fmt.Errorf("op=file.complete_upload: %w", err)
	}
	f, err := s.Files.Get(ctx, ticket.FileID)
	if err != nil {
		return domain.FileUpload{}, fmt.Errorf("op=file.complete_upload: %w", err)
	}
	return f, nil
}

// Download loads file metadata and content by id.
func (s FileService) Download(ctx domain.Context, fileID string) (domain.FileUpload, []byte, error) {
	f, err := s.Files.Get(ctx, fileID)
	if err != nil {
		return domain.FileUpload{}, nil, fmt.Errorf("op=file.download: %w", err)
	}
	data, err := s.Files.GetContent(ctx, fileID)
	if err != nil {
		return domain.FileUpload{}, nil, fmt.Errorf("op=file.download: %w", err)
	}
	return f, data, nil
}

func allowedResumeMIME(m string) bool {
	m = strings.ToLower(m)
	if strings.HasPrefix(m, "text/plain") {
		return true
	}
	return m == "application/pdf" ||
		m == "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}
