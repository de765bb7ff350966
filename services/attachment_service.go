package services

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"

	"mediacatalog/logger"
	"mediacatalog/models"
	"mediacatalog/storage"
)

// AttachmentService drives the attachment lifecycle: validated uploads into
// the blob store, poster replacement, removal and signed download URLs.
type AttachmentService interface {
	// Attach validates and uploads a file for a title. For posters the
	// previous poster is replaced; technical sheets accumulate.
	Attach(ctx context.Context, titleID string, kind models.AttachmentKind,
		filename, contentType string, data []byte, uploadedBy string) (models.Attachment, error)

	// ListByTitle returns all attachments of a title, newest first.
	ListByTitle(ctx context.Context, titleID string) ([]models.Attachment, error)

	// ListByKind returns a title's attachments of one kind, newest first.
	ListByKind(ctx context.Context, titleID string, kind models.AttachmentKind) ([]models.Attachment, error)

	// GetPoster returns the title's current poster, or NOT_FOUND.
	GetPoster(ctx context.Context, titleID string) (models.Attachment, error)

	// Remove deletes an attachment. The blob delete is best-effort; the
	// metadata row is always removed so the catalog never references a
	// blob it believes gone.
	Remove(ctx context.Context, attachmentID string) error

	// DownloadURL returns a time-limited read URL for an attachment's blob.
	DownloadURL(ctx context.Context, attachmentID string, ttl time.Duration) (string, error)

	// RemoveAllForTitle deletes every attachment of a title, collecting
	// blob-delete failures without stopping.
	RemoveAllForTitle(ctx context.Context, titleID string) error
}

type attachmentService struct {
	db    SQLExecutor
	repo  AttachmentRepository
	store storage.BlobStore

	// now is swappable in tests to pin storage-key timestamps.
	now func() time.Time

	// titleLocks serializes attach/remove per title so poster replacement
	// never interleaves with a concurrent upload for the same title.
	mu         sync.Mutex
	titleLocks map[string]*sync.Mutex
}

// NewAttachmentService creates the attachment service over the given
// repository and blob store.
func NewAttachmentService(db SQLExecutor, repo AttachmentRepository, store storage.BlobStore) AttachmentService {
	return &attachmentService{
		db:         db,
		repo:       repo,
		store:      store,
		now:        time.Now,
		titleLocks: make(map[string]*sync.Mutex),
	}
}

func (s *attachmentService) lockTitle(titleID string) func() {
	s.mu.Lock()
	lock, ok := s.titleLocks[titleID]
	if !ok {
		lock = &sync.Mutex{}
		s.titleLocks[titleID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

func (s *attachmentService) Attach(ctx context.Context, titleID string, kind models.AttachmentKind,
	filename, contentType string, data []byte, uploadedBy string) (models.Attachment, error) {

	if !kind.Valid() {
		return models.Attachment{}, models.NewCatalogError(models.ErrInvalidFile,
			"unknown attachment kind: "+string(kind))
	}

	// Validation happens before any side effect: a rejected upload leaves
	// both the store and the metadata untouched.
	if err := storage.ValidateUpload(kind, contentType, int64(len(data)), filename); err != nil {
		return models.Attachment{}, err
	}

	titleName, err := s.titleName(ctx, titleID)
	if err != nil {
		return models.Attachment{}, err
	}

	unlock := s.lockTitle(titleID)
	defer unlock()

	if kind == models.KindPoster {
		if err := s.replaceExistingPosters(ctx, titleID); err != nil {
			return models.Attachment{}, err
		}
	}

	key := storage.DeriveKey(titleName, kind, filename, s.now().UTC())

	result, err := s.store.Put(ctx, key, data, contentType)
	if err != nil {
		// Upload failed: no metadata row is written, nothing to undo.
		return models.Attachment{}, models.WrapStorageError("failed to upload file", err)
	}

	att := models.Attachment{
		MediaTitleID: titleID,
		Kind:         kind,
		StorageKey:   key,
		BlobURL:      result.URL,
		IntegrityTag: result.IntegrityTag,
		ContentType:  contentType,
		SizeBytes:    int64(len(data)),
		UploadedBy:   uploadedBy,
	}
	if err := s.repo.Create(ctx, &att); err != nil {
		// Metadata write failed after a successful upload. The blob is now
		// orphaned; remove it so the store does not accumulate garbage the
		// sweep would otherwise have to find.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			logger.WithFields(map[string]interface{}{
				"storage_key": key,
				"error":       delErr.Error(),
			}).Warn("Failed to clean up blob after metadata write failure")
		}
		return models.Attachment{}, err
	}

	logger.WithFields(map[string]interface{}{
		"attachment_id": att.ID,
		"title_id":      titleID,
		"kind":          string(kind),
		"storage_key":   key,
		"size_bytes":    att.SizeBytes,
	}).Info("Attachment uploaded")

	return att, nil
}

// replaceExistingPosters removes the current poster(s) of a title before a
// new poster upload. Blob deletes are best-effort; metadata rows always go.
func (s *attachmentService) replaceExistingPosters(ctx context.Context, titleID string) error {
	existing, err := s.repo.ListByTitleAndKind(ctx, titleID, models.KindPoster)
	if err != nil {
		return err
	}

	for _, old := range existing {
		if err := s.store.Delete(ctx, old.StorageKey); err != nil {
			logger.WithFields(map[string]interface{}{
				"attachment_id": old.ID,
				"storage_key":   old.StorageKey,
				"error":         err.Error(),
			}).Warn("Failed to delete replaced poster blob, continuing")
		}
		if err := s.repo.Delete(ctx, old.ID); err != nil && !models.IsKind(err, models.ErrNotFound) {
			return err
		}
	}
	return nil
}

func (s *attachmentService) ListByTitle(ctx context.Context, titleID string) ([]models.Attachment, error) {
	if _, err := s.titleName(ctx, titleID); err != nil {
		return nil, err
	}
	return s.repo.ListByTitle(ctx, titleID)
}

func (s *attachmentService) ListByKind(ctx context.Context, titleID string, kind models.AttachmentKind) ([]models.Attachment, error) {
	if !kind.Valid() {
		return nil, models.NewCatalogError(models.ErrInvalidFile,
			"unknown attachment kind: "+string(kind))
	}
	if _, err := s.titleName(ctx, titleID); err != nil {
		return nil, err
	}
	return s.repo.ListByTitleAndKind(ctx, titleID, kind)
}

func (s *attachmentService) GetPoster(ctx context.Context, titleID string) (models.Attachment, error) {
	posters, err := s.ListByKind(ctx, titleID, models.KindPoster)
	if err != nil {
		return models.Attachment{}, err
	}
	if len(posters) == 0 {
		return models.Attachment{}, models.NewCatalogError(models.ErrNotFound,
			"title has no poster: "+titleID)
	}
	return posters[0], nil
}

func (s *attachmentService) Remove(ctx context.Context, attachmentID string) error {
	att, err := s.repo.GetByID(ctx, attachmentID)
	if err != nil {
		return err
	}

	unlock := s.lockTitle(att.MediaTitleID)
	defer unlock()

	if err := s.store.Delete(ctx, att.StorageKey); err != nil {
		logger.WithFields(map[string]interface{}{
			"attachment_id": attachmentID,
			"storage_key":   att.StorageKey,
			"error":         err.Error(),
		}).Warn("Failed to delete blob, removing metadata anyway")
	}

	if err := s.repo.Delete(ctx, attachmentID); err != nil && !models.IsKind(err, models.ErrNotFound) {
		return err
	}

	logger.WithFields(map[string]interface{}{
		"attachment_id": attachmentID,
		"title_id":      att.MediaTitleID,
		"kind":          string(att.Kind),
	}).Info("Attachment removed")

	return nil
}

func (s *attachmentService) DownloadURL(ctx context.Context, attachmentID string, ttl time.Duration) (string, error) {
	att, err := s.repo.GetByID(ctx, attachmentID)
	if err != nil {
		return "", err
	}

	url, err := s.store.SignedURL(ctx, att.StorageKey, ttl)
	if err != nil {
		if models.IsKind(err, models.ErrNotFound) {
			return "", err
		}
		return "", models.WrapStorageError("failed to sign download URL", err)
	}
	return url, nil
}

func (s *attachmentService) RemoveAllForTitle(ctx context.Context, titleID string) error {
	unlock := s.lockTitle(titleID)
	defer unlock()

	attachments, err := s.repo.ListByTitle(ctx, titleID)
	if err != nil {
		return err
	}

	var blobErrs *multierror.Error
	for _, att := range attachments {
		if err := s.store.Delete(ctx, att.StorageKey); err != nil {
			blobErrs = multierror.Append(blobErrs, err)
			logger.WithFields(map[string]interface{}{
				"attachment_id": att.ID,
				"storage_key":   att.StorageKey,
				"error":         err.Error(),
			}).Warn("Failed to delete blob during title cleanup")
		}
		if err := s.repo.Delete(ctx, att.ID); err != nil && !models.IsKind(err, models.ErrNotFound) {
			return err
		}
	}

	// Blob-delete failures are reported but do not fail the cleanup: the
	// metadata is gone and the sweep reclaims whatever was left behind.
	if blobErrs != nil {
		logger.WithFields(map[string]interface{}{
			"title_id": titleID,
			"errors":   blobErrs.Len(),
		}).Warn("Title cleanup left orphaned blobs for the sweep")
	}
	return nil
}

// titleName loads the title's name, used for storage-key derivation and as
// the existence check before attachment operations.
func (s *attachmentService) titleName(ctx context.Context, titleID string) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx,
		"SELECT title_name FROM media_titles WHERE id = ?", titleID).Scan(&name)
	if err == sql.ErrNoRows {
		return "", models.NewCatalogError(models.ErrNotFound, "title not found: "+titleID)
	}
	if err != nil {
		return "", models.WrapStorageError("failed to load title", err)
	}
	return name, nil
}
