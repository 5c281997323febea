package postgres

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"

	"github.com/careerflowhq/careerflow-api/internal/domain"
)

// FileRepo persists uploaded file metadata and content using a minimal pgx
// pool. Content lives in a bytea column; resumes are small enough that object
// storage would be overkill here.
type FileRepo struct{ Pool PgxPool }

// NewFileRepo constructs a FileRepo with the given pool.
func NewFileRepo(p PgxPool) *FileRepo { return &FileRepo{Pool: p} }

// Create stores upload metadata and returns the file id.
func (r *FileRepo) Create(ctx domain.Context, f domain.FileUpload) (string, error) {
	tracer := otel.Tracer("repo.files")
	ctx, span := tracer.Start(ctx, "files.Create")
	defer span.End()
	id := f.ID
	if id == "" {
		id = domain.NewNativeID()
	}
	uploadedAt := f.UploadedAt
	if uploadedAt.IsZero() {
		uploadedAt = time.Now().UTC()
	}
	q := `INSERT INTO file_uploads (id, social_id, file_name, file_type, file_size, uploaded_at)
		VALUES ($1,$2,$3,$4,$5,$6)`
	if _, err := r.Pool.Exec(ctx, q, id, f.SocialID, f.FileName, f.FileType, f.FileSize, uploadedAt); err != nil {
		return "", fmt.Errorf("op=file.create: %w", err)
	}
	return id, nil
}

// Get loads file metadata by id.
func (r *FileRepo) Get(ctx domain.Context, id string) (domain.FileUpload, error) {
	tracer := otel.Tracer("repo.files")
	ctx, span := tracer.Start(ctx, "files.Get")
	defer span.End()
	q := `SELECT id, social_id, file_name, file_type, file_size, uploaded_at FROM file_uploads WHERE id=$1`
	f, err := r.scanFile(r.Pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.FileUpload{}, fmt.Errorf("op=file.get: %w", domain.ErrNotFound)
		}
		return domain.FileUpload{}, fmt.Errorf("op=file.get: %w", err)
	}
	return f, nil
}

// LatestBySocialID loads the most recent upload of the given type that has
// content attached.
func (r *FileRepo) LatestBySocialID(ctx domain.Context, socialID, fileType string) (domain.FileUpload, error) {
	tracer := otel.Tracer("repo.files")
	ctx, span := tracer.Start(ctx, "files.LatestBySocialID")
	defer span.End()
	q := `SELECT id, social_id, file_name, file_type, file_size, uploaded_at FROM file_uploads
		WHERE social_id=$1 AND file_type=$2 AND content IS NOT NULL
		ORDER BY uploaded_at DESC LIMIT 1`
	f, err := r.scanFile(r.Pool.QueryRow(ctx, q, socialID, fileType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.FileUpload{}, fmt.Errorf("op=file.latest: %w", domain.ErrNotFound)
		}
		return domain.FileUpload{}, fmt.Errorf("op=file.latest: %w", err)
	}
	return f, nil
}

// SaveContent attaches the uploaded bytes to an existing metadata row and
// fixes the recorded size to what actually arrived.
func (r *FileRepo) SaveContent(ctx domain.Context, id string, data []byte) error {
	tracer := otel.Tracer("repo.files")
	ctx, span := tracer.Start(ctx, "files.SaveContent")
	defer span.End()
	q := `UPDATE file_uploads SET content=$2, file_size=$3 WHERE id=$1`
	tag, err := r.Pool.Exec(ctx, q, id, data, int64(len(data)))
	if err != nil {
		return fmt.Errorf("op=file.save_content: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=file.save_content: %w", domain.ErrNotFound)
	}
	return nil
}

// GetContent loads the uploaded bytes.
func (r *FileRepo) GetContent(ctx domain.Context, id string) ([]byte, error) {
	tracer := otel.Tracer("repo.files")
	ctx, span := tracer.Start(ctx, "files.GetContent")
	defer span.End()
	var data []byte
	err := r.Pool.QueryRow(ctx, `SELECT content FROM file_uploads WHERE id=$1 AND content IS NOT NULL`, id).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("op=file.get_content: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("op=file.get_content: %w", err)
	}
	return data, nil
}

func (r *FileRepo) scanFile(row pgx.Row) (domain.FileUpload, error) {
	var f domain.FileUpload
	err := row.Scan(&f.ID, &f.SocialID, &f.FileName, &f.FileType, &f.FileSize, &f.UploadedAt)
	if err != nil {
		return domain.FileUpload{}, err
	}
	f.DownloadURL = "/v1/files/" + f.ID + "/download"
	return f, nil
}
