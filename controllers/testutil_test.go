package controllers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/longbourn/pemberley/identity"
	"github.com/longbourn/pemberley/middleware"
	"github.com/longbourn/pemberley/models"
	"github.com/longbourn/pemberley/storage"
	"github.com/longbourn/pemberley/utils"
)

const testAdminToken = "admin-token"

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	require.NoError(t, db.AutoMigrate(&models.Book{}, &models.BookImage{}))
	return db
}

// fakeStore satisfies storage.CoverStore without talking to any backend. It
// records the URLs it was asked to remove.
type fakeStore struct {
	uploads int
	removed []string
}

func (f *fakeStore) Upload(ctx context.Context, filename, contentType string, data io.Reader) (string, error) {
	if !storage.AllowedImageType(contentType) {
		return "", utils.BadRequestError("File must be an image (JPEG, PNG, WebP, or GIF)", nil)
	}
	if _, err := io.Copy(io.Discard, data); err != nil {
		return "", err
	}
	f.uploads++
	return "https://test.supabase.co/storage/v1/object/public/covers/" + storage.ObjectKey(filename), nil
}

func (f *fakeStore) Remove(url string) storage.RemoveResult {
	f.removed = append(f.removed, url)
	return storage.Removed
}

// fakeValidator accepts exactly one token
type fakeValidator struct{}

func (fakeValidator) Validate(ctx context.Context, token string) (*identity.User, error) {
	if token != testAdminToken {
		return nil, utils.UnauthorizedError("Invalid or expired token", nil)
	}
	return &identity.User{ID: "admin-1", Email: "admin@example.com"}, nil
}

// setupTestRouter wires the handlers onto the same route table the routes
// package registers.
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, *fakeStore) {
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)
	store := &fakeStore{}
	bookHandler := NewBookHandler(db, store)
	imageHandler := NewImageHandler(db, store)
	adminAuth := middleware.AdminAuthMiddleware(fakeValidator{})

	router := gin.New()
	router.GET("/books", bookHandler.ListBooks)
	router.GET("/books/:id", bookHandler.GetBook)
	router.POST("/books", adminAuth, bookHandler.CreateBook)
	router.PUT("/books/:id", adminAuth, bookHandler.UpdateBook)
	router.DELETE("/books/:id", adminAuth, bookHandler.DeleteBook)
	router.GET("/books/:id/images", imageHandler.ListImages)
	router.POST("/books/:id/images", adminAuth, imageHandler.UploadImage)
	router.PUT("/books/:id/images/:image_id/primary", adminAuth, imageHandler.SetPrimaryImage)
	router.DELETE("/books/:id/images/:image_id", adminAuth, imageHandler.DeleteImage)
	router.GET("/health", Health)

	return router, db, store
}

func doRequest(router *gin.Engine, method, path string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func adminHeaders(extra map[string]string) map[string]string {
	headers := map[string]string{"Authorization": "Bearer " + testAdminToken}
	for key, value := range extra {
		headers[key] = value
	}
	return headers
}

func jsonHeaders() map[string]string {
	return adminHeaders(map[string]string{"Content-Type": "application/json"})
}

// multipartUpload builds a multipart body with a single file part carrying an
// explicit content type, plus an optional caption field.
func multipartUpload(t *testing.T, filename, contentType, caption string, content []byte) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)

	if caption != "" {
		require.NoError(t, writer.WriteField("caption", caption))
	}
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func mustCreateBook(t *testing.T, db *gorm.DB, title string, year *int) models.Book {
	book := models.Book{Title: title, Author: "Jane Austen", YearPublished: year}
	require.NoError(t, db.Create(&book).Error)
	return book
}

func mustCreateImage(t *testing.T, db *gorm.DB, bookID, url string, position int, primary bool) models.BookImage {
	image := models.BookImage{BookID: bookID, URL: url, Position: position, IsPrimary: primary}
	require.NoError(t, db.Create(&image).Error)
	if primary {
		require.NoError(t, db.Model(&models.Book{}).Where("id = ?", bookID).
			Update("cover_image_url", url).Error)
	}
	return image
}

func reloadBook(t *testing.T, db *gorm.DB, id string) models.Book {
	var book models.Book
	require.NoError(t, db.First(&book, "id = ?", id).Error)
	return book
}

func intPtr(v int) *int { return &v }
