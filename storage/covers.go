package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	storage_go "github.com/supabase-community/storage-go"

	"github.com/longbourn/pemberley/utils"
)

// AllowedImageTypes defines the content types accepted for cover uploads
var AllowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// AllowedImageType checks if the declared content type is an accepted image type
func AllowedImageType(contentType string) bool {
	return AllowedImageTypes[contentType]
}

// RemoveResult reports the outcome of a stored-file removal. Callers that
// want best-effort semantics discard RemoveFailed explicitly.
type RemoveResult int

const (
	// Removed means the file was deleted from storage
	Removed RemoveResult = iota
	// RemoveSkipped means the URL did not resolve to a storage path
	RemoveSkipped
	// RemoveFailed means the storage call returned an error
	RemoveFailed
)

// CoverStore holds uploaded cover images and resolves their public URLs
type CoverStore interface {
	Upload(ctx context.Context, filename, contentType string, data io.Reader) (string, error)
	Remove(url string) RemoveResult
}

// SupabaseStore is a CoverStore backed by a Supabase Storage bucket
type SupabaseStore struct {
	client *storage_go.Client
	bucket string
}

// NewSupabaseStore creates a storage client for the given project and bucket
func NewSupabaseStore(projectURL, serviceKey, bucket string) *SupabaseStore {
	return &SupabaseStore{
		client: storage_go.NewClient(projectURL+"/storage/v1", serviceKey, nil),
		bucket: bucket,
	}
}

// Upload validates the declared content type, stores the file under a
// collision-resistant key, and returns its public URL.
func (s *SupabaseStore) Upload(ctx context.Context, filename, contentType string, data io.Reader) (string, error) {
	if !AllowedImageType(contentType) {
		return "", utils.BadRequestError("File must be an image (JPEG, PNG, WebP, or GIF)", nil)
	}

	key := ObjectKey(filename)
	if _, err := s.client.UploadFile(s.bucket, key, data, storage_go.FileOptions{
		ContentType: &contentType,
	}); err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return s.client.GetPublicUrl(s.bucket, key).SignedURL, nil
}

// Remove deletes the stored file behind a previously issued public URL. URLs
// that do not match the bucket's public prefix are skipped, not failed.
func (s *SupabaseStore) Remove(url string) RemoveResult {
	path, ok := s.pathFromURL(url)
	if !ok {
		return RemoveSkipped
	}
	if _, err := s.client.RemoveFile(s.bucket, []string{path}); err != nil {
		utils.LogError("Failed to remove stored file %s: %v", path, err)
		return RemoveFailed
	}
	return Removed
}

// pathFromURL recovers the storage object path from a public URL
func (s *SupabaseStore) pathFromURL(url string) (string, bool) {
	marker := fmt.Sprintf("/object/public/%s/", s.bucket)
	_, path, found := strings.Cut(url, marker)
	if !found || path == "" {
		return "", false
	}
	return path, true
}

// ObjectKey derives a unique storage key preserving the original extension,
// defaulting to jpg when the filename has none.
func ObjectKey(filename string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		ext = "jpg"
	}
	return fmt.Sprintf("%s.%s", uuid.New().String(), ext)
}
