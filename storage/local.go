package storage

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"mediacatalog/logger"
	"mediacatalog/models"
)

// contentTypeSuffix names the sidecar file that records an object's MIME type.
const contentTypeSuffix = ".ctype"

// LocalStore is a filesystem-backed BlobStore for development deployments.
// Download URLs are HMAC-signed with an expiry and served by the media
// handler, mirroring the signed-URL semantics of the cloud backend.
type LocalStore struct {
	baseDir string
	baseURL string
	secret  []byte
}

// NewLocalStore builds a LocalStore rooted at baseDir. baseURL is the public
// address of this server; secret signs download URLs.
func NewLocalStore(baseDir, baseURL, secret string) *LocalStore {
	return &LocalStore{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  []byte(secret),
	}
}

// EnsureContainer creates the storage root directory.
func (s *LocalStore) EnsureContainer(ctx context.Context) error {
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return models.WrapStorageError("failed to create storage directory", err)
	}
	return nil
}

// Put writes data under key. The content type lands in a sidecar file; a
// sidecar write failure is logged but does not fail the upload, matching the
// upload-succeeded-header-failed policy of the blob boundary.
func (s *LocalStore) Put(ctx context.Context, key string, data []byte, contentType string) (PutResult, error) {
	path, err := s.filePath(key)
	if err != nil {
		return PutResult{}, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return PutResult{}, models.WrapStorageError(fmt.Sprintf("failed to create directory for %q", key), err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return PutResult{}, models.WrapStorageError(fmt.Sprintf("failed to write object %q", key), err)
	}

	if err := os.WriteFile(path+contentTypeSuffix, []byte(contentType), 0644); err != nil {
		logger.WithFields(map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		}).Warn("Failed to record content type for stored object")
	}

	sum := sha256.Sum256(data)
	return PutResult{
		URL:          s.objectURL(key),
		IntegrityTag: hex.EncodeToString(sum[:]),
	}, nil
}

// Delete removes the object and its sidecar; missing objects are a no-op.
func (s *LocalStore) Delete(ctx context.Context, key string) error {
	path, err := s.filePath(key)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	if err := os.Remove(path); err != nil {
		return models.WrapStorageError(fmt.Sprintf("failed to delete object %q", key), err)
	}
	os.Remove(path + contentTypeSuffix)
	return nil
}

// Exists reports whether the object is stored.
func (s *LocalStore) Exists(ctx context.Context, key string) (bool, error) {
	path, err := s.filePath(key)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, models.WrapStorageError(fmt.Sprintf("failed to stat object %q", key), err)
	}
	return true, nil
}

// SignedURL returns a media URL with expiry, nonce and signature query
// parameters understood by the media handler.
func (s *LocalStore) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	exists, err := s.Exists(ctx, key)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", models.NewCatalogError(models.ErrNotFound,
			fmt.Sprintf("object %q does not exist in local storage", key))
	}

	expiration := time.Now().Add(ttl).Unix()
	nonceBytes := make([]byte, 12)
	if _, err := rand.Read(nonceBytes); err != nil {
		return "", models.WrapStorageError("failed to generate nonce", err)
	}
	nonce := hex.EncodeToString(nonceBytes)
	sig := s.sign(signaturePayload(key, expiration, nonce))

	return fmt.Sprintf("%s?exp=%d&nonce=%s&sig=%s", s.objectURL(key), expiration, nonce, sig), nil
}

// List returns all object keys under prefix, excluding sidecar files.
func (s *LocalStore) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := filepath.WalkDir(s.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasSuffix(path, contentTypeSuffix) {
			return nil
		}
		rel, err := filepath.Rel(s.baseDir, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, models.WrapStorageError("failed to list local objects", err)
	}
	return keys, nil
}

// ValidateSignedRequest checks the exp/nonce/sig query parameters of a media
// download request. Comparison is constant time.
func (s *LocalStore) ValidateSignedRequest(key, expStr, nonce, sig string) error {
	if key == "" || expStr == "" || nonce == "" || sig == "" {
		return models.NewCatalogError(models.ErrNotFound, "missing download signature parameters")
	}

	expiration, err := strconv.ParseInt(expStr, 10, 64)
	if err != nil {
		return models.NewCatalogError(models.ErrNotFound, "invalid expiration")
	}
	if time.Now().Unix() > expiration {
		return models.NewCatalogError(models.ErrNotFound, "download link has expired")
	}

	expected := s.sign(signaturePayload(key, expiration, nonce))
	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return models.NewCatalogError(models.ErrNotFound, "invalid download signature")
	}
	return nil
}

// Open returns the filesystem path and recorded content type for a stored
// object, for the media handler to serve.
func (s *LocalStore) Open(key string) (string, string, error) {
	path, err := s.filePath(key)
	if err != nil {
		return "", "", err
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", "", models.NewCatalogError(models.ErrNotFound,
				fmt.Sprintf("object %q does not exist in local storage", key))
		}
		return "", "", models.WrapStorageError(fmt.Sprintf("failed to stat object %q", key), err)
	}

	contentType := "application/octet-stream"
	if raw, err := os.ReadFile(path + contentTypeSuffix); err == nil && len(raw) > 0 {
		contentType = string(raw)
	}
	return path, contentType, nil
}

func (s *LocalStore) objectURL(key string) string {
	return fmt.Sprintf("%s/media/%s", s.baseURL, key)
}

// filePath maps a storage key to an absolute path, refusing traversal
// outside the storage root.
func (s *LocalStore) filePath(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", models.NewCatalogError(models.ErrNotFound, fmt.Sprintf("invalid storage key %q", key))
	}
	return filepath.Join(s.baseDir, clean), nil
}

func signaturePayload(key string, expiration int64, nonce string) string {
	return strings.Join([]string{key, strconv.FormatInt(expiration, 10), nonce}, "|")
}

func (s *LocalStore) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
