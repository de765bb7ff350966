package services

import (
	"context"
	"database/sql"

	"mediacatalog/models"
	"mediacatalog/utils"
)

const attachmentColumns = `id, media_title_id, kind, storage_key, blob_url,
	integrity_tag, content_type, size_bytes, uploaded_at, uploaded_by`

// AttachmentRepository owns the metadata rows linking titles to stored blobs.
// Rows are created and deleted, never updated.
type AttachmentRepository interface {
	Create(ctx context.Context, att *models.Attachment) error
	GetByID(ctx context.Context, id string) (models.Attachment, error)
	ListByTitle(ctx context.Context, titleID string) ([]models.Attachment, error)
	ListByTitleAndKind(ctx context.Context, titleID string, kind models.AttachmentKind) ([]models.Attachment, error)
	Delete(ctx context.Context, id string) error
	ListStorageKeys(ctx context.Context) ([]string, error)
}

type attachmentRepository struct {
	db SQLExecutor
}

// NewAttachmentRepository creates a repository over the given executor.
func NewAttachmentRepository(db SQLExecutor) AttachmentRepository {
	return &attachmentRepository{db: db}
}

// Create inserts a new attachment row, assigning its ID and upload timestamp.
func (r *attachmentRepository) Create(ctx context.Context, att *models.Attachment) error {
	if att.ID == "" {
		id, err := utils.GenerateID("att")
		if err != nil {
			return models.WrapStorageError("failed to generate attachment ID", err)
		}
		att.ID = id
	}
	if att.UploadedAt == "" {
		att.UploadedAt = utils.FormatDateTimeForDB(utils.NowUTC())
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO attachments
			(id, media_title_id, kind, storage_key, blob_url, integrity_tag,
			 content_type, size_bytes, uploaded_at, uploaded_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		att.ID, att.MediaTitleID, att.Kind, att.StorageKey,
		nullable(att.BlobURL), nullable(att.IntegrityTag), nullable(att.ContentType),
		att.SizeBytes, att.UploadedAt, nullable(att.UploadedBy),
	)
	if err != nil {
		return models.WrapStorageError("failed to persist attachment metadata", err)
	}
	return nil
}

func (r *attachmentRepository) GetByID(ctx context.Context, id string) (models.Attachment, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+attachmentColumns+` FROM attachments WHERE id = ?`, id)

	att, err := scanAttachment(row.Scan)
	if err == sql.ErrNoRows {
		return models.Attachment{}, models.NewCatalogError(models.ErrNotFound,
			"attachment not found: "+id)
	}
	if err != nil {
		return models.Attachment{}, models.WrapStorageError("failed to load attachment", err)
	}
	return att, nil
}

func (r *attachmentRepository) ListByTitle(ctx context.Context, titleID string) ([]models.Attachment, error) {
	return r.list(ctx,
		`SELECT `+attachmentColumns+` FROM attachments
		 WHERE media_title_id = ?
		 ORDER BY uploaded_at DESC, id DESC`, titleID)
}

func (r *attachmentRepository) ListByTitleAndKind(ctx context.Context, titleID string, kind models.AttachmentKind) ([]models.Attachment, error) {
	return r.list(ctx,
		`SELECT `+attachmentColumns+` FROM attachments
		 WHERE media_title_id = ? AND kind = ?
		 ORDER BY uploaded_at DESC, id DESC`, titleID, kind)
}

// Delete removes the metadata row. Removing an absent row returns NotFound.
func (r *attachmentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM attachments WHERE id = ?", id)
	if err != nil {
		return models.WrapStorageError("failed to delete attachment metadata", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return models.NewCatalogError(models.ErrNotFound, "attachment not found: "+id)
	}
	return nil
}

// ListStorageKeys returns every recorded storage key, for the orphan sweep.
func (r *attachmentRepository) ListStorageKeys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT storage_key FROM attachments")
	if err != nil {
		return nil, models.WrapStorageError("failed to list storage keys", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, models.WrapStorageError("failed to scan storage key", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func (r *attachmentRepository) list(ctx context.Context, query string, args ...any) ([]models.Attachment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, models.WrapStorageError("failed to query attachments", err)
	}
	defer rows.Close()

	attachments := make([]models.Attachment, 0)
	for rows.Next() {
		att, err := scanAttachment(rows.Scan)
		if err != nil {
			return nil, models.WrapStorageError("failed to scan attachment", err)
		}
		attachments = append(attachments, att)
	}
	return attachments, rows.Err()
}

func scanAttachment(scan func(dest ...any) error) (models.Attachment, error) {
	var (
		att          models.Attachment
		blobURL      sql.NullString
		integrityTag sql.NullString
		contentType  sql.NullString
		sizeBytes    sql.NullInt64
		uploadedBy   sql.NullString
	)

	err := scan(&att.ID, &att.MediaTitleID, &att.Kind, &att.StorageKey,
		&blobURL, &integrityTag, &contentType, &sizeBytes, &att.UploadedAt, &uploadedBy)
	if err != nil {
		return models.Attachment{}, err
	}

	att.BlobURL = blobURL.String
	att.IntegrityTag = integrityTag.String
	att.ContentType = contentType.String
	att.SizeBytes = sizeBytes.Int64
	att.UploadedBy = uploadedBy.String
	return att, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
