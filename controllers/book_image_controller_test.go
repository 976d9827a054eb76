package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longbourn/pemberley/models"
)

func TestUploadFirstImageBecomesPrimary(t *testing.T) {
	router, db, _ := setupTestRouter(t)

	book := mustCreateBook(t, db, "Emma", intPtr(1815))

	body, contentType := multipartUpload(t, "front.jpeg", "image/jpeg", "Front board", []byte("fake image bytes"))
	w := doRequest(router, "POST", "/books/"+book.ID+"/images", body, adminHeaders(map[string]string{
		"Content-Type": contentType,
	}))
	require.Equal(t, http.StatusCreated, w.Code)

	var image models.BookImage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &image))
	assert.True(t, image.IsPrimary)
	assert.Equal(t, 0, image.Position)
	require.NotNil(t, image.Caption)
	assert.Equal(t, "Front board", *image.Caption)

	updated := reloadBook(t, db, book.ID)
	require.NotNil(t, updated.CoverImageURL)
	assert.Equal(t, image.URL, *updated.CoverImageURL)
}

func TestUploadSecondImageAppendsWithoutPrimary(t *testing.T) {
	router, db, _ := setupTestRouter(t)

	book := mustCreateBook(t, db, "Emma", intPtr(1815))

	body, contentType := multipartUpload(t, "front.png", "image/png", "", []byte("first"))
	w := doRequest(router, "POST", "/books/"+book.ID+"/images", body, adminHeaders(map[string]string{
		"Content-Type": contentType,
	}))
	require.Equal(t, http.StatusCreated, w.Code)
	var first models.BookImage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))

	body, contentType = multipartUpload(t, "spine.png", "image/png", "", []byte("second"))
	w = doRequest(router, "POST", "/books/"+book.ID+"/images", body, adminHeaders(map[string]string{
		"Content-Type": contentType,
	}))
	require.Equal(t, http.StatusCreated, w.Code)

	var second models.BookImage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.False(t, second.IsPrimary)
	assert.Equal(t, 1, second.Position)

	updated := reloadBook(t, db, book.ID)
	require.NotNil(t, updated.CoverImageURL)
	assert.Equal(t, first.URL, *updated.CoverImageURL, "cover still points at the first image")
}

func TestUploadRejectsDisallowedContentType(t *testing.T) {
	router, db, _ := setupTestRouter(t)

	book := mustCreateBook(t, db, "Emma", intPtr(1815))

	body, contentType := multipartUpload(t, "notes.txt", "text/plain", "", []byte("not an image"))
	w := doRequest(router, "POST", "/books/"+book.ID+"/images", body, adminHeaders(map[string]string{
		"Content-Type": contentType,
	}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.BookImage{}).Count(&count).Error)
	assert.Zero(t, count, "no image row on rejected upload")
}

func TestUploadRequiresAuth(t *testing.T) {
	router, db, _ := setupTestRouter(t)

	book := mustCreateBook(t, db, "Emma", intPtr(1815))

	body, contentType := multipartUpload(t, "front.jpg", "image/jpeg", "", []byte("fake"))
	w := doRequest(router, "POST", "/books/"+book.ID+"/images", body, map[string]string{
		"Content-Type": contentType,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.BookImage{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUploadToUnknownBookCleansUpStoredFile(t *testing.T) {
	router, _, store := setupTestRouter(t)

	body, contentType := multipartUpload(t, "front.jpg", "image/jpeg", "", []byte("fake"))
	w := doRequest(router, "POST", "/books/89f6ab0e-0000-0000-0000-000000000000/images", body,
		adminHeaders(map[string]string{"Content-Type": contentType}))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Len(t, store.removed, 1, "orphaned upload is removed")
}

func TestListImagesOrdersPrimaryFirst(t *testing.T) {
	router, db, _ := setupTestRouter(t)

	book := mustCreateBook(t, db, "Emma", intPtr(1815))
	mustCreateImage(t, db, book.ID, "https://cdn/pos0.jpg", 0, false)
	primary := mustCreateImage(t, db, book.ID, "https://cdn/pos1.jpg", 1, true)

	w := doRequest(router, "GET", "/books/"+book.ID+"/images", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var images []models.BookImage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &images))
	require.Len(t, images, 2)
	assert.Equal(t, primary.ID, images[0].ID)
	assert.Equal(t, 0, images[1].Position)
}

func TestSetPrimaryImage(t *testing.T) {
	router, db, _ := setupTestRouter(t)

	book := mustCreateBook(t, db, "Emma", intPtr(1815))
	first := mustCreateImage(t, db, book.ID, "https://cdn/a.jpg", 0, true)
	second := mustCreateImage(t, db, book.ID, "https://cdn/b.jpg", 1, false)

	w := doRequest(router, "PUT", "/books/"+book.ID+"/images/"+second.ID+"/primary", nil, adminHeaders(nil))
	require.Equal(t, http.StatusOK, w.Code)

	var promoted models.BookImage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &promoted))
	assert.True(t, promoted.IsPrimary)

	var demoted models.BookImage
	require.NoError(t, db.First(&demoted, "id = ?", first.ID).Error)
	assert.False(t, demoted.IsPrimary, "old primary is cleared")

	var primaries int64
	require.NoError(t, db.Model(&models.BookImage{}).
		Where("book_id = ? AND is_primary = ?", book.ID, true).Count(&primaries).Error)
	assert.Equal(t, int64(1), primaries)

	updated := reloadBook(t, db, book.ID)
	require.NotNil(t, updated.CoverImageURL)
	assert.Equal(t, second.URL, *updated.CoverImageURL)
}

func TestSetPrimaryImageScopedToBook(t *testing.T) {
	router, db, _ := setupTestRouter(t)

	book := mustCreateBook(t, db, "Emma", intPtr(1815))
	other := mustCreateBook(t, db, "Persuasion", intPtr(1817))
	foreign := mustCreateImage(t, db, other.ID, "https://cdn/other.jpg", 0, true)

	w := doRequest(router, "PUT", "/books/"+book.ID+"/images/"+foreign.ID+"/primary", nil, adminHeaders(nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	var untouched models.BookImage
	require.NoError(t, db.First(&untouched, "id = ?", foreign.ID).Error)
	assert.True(t, untouched.IsPrimary, "image of another book is untouched")
}

func TestDeletePrimaryImagePromotesNext(t *testing.T) {
	router, db, store := setupTestRouter(t)

	book := mustCreateBook(t, db, "Emma", intPtr(1815))
	primary := mustCreateImage(t, db, book.ID, "https://cdn/pos0.jpg", 0, true)
	next := mustCreateImage(t, db, book.ID, "https://cdn/pos1.jpg", 1, false)

	w := doRequest(router, "DELETE", "/books/"+book.ID+"/images/"+primary.ID, nil, adminHeaders(nil))
	require.Equal(t, http.StatusNoContent, w.Code)

	var promoted models.BookImage
	require.NoError(t, db.First(&promoted, "id = ?", next.ID).Error)
	assert.True(t, promoted.IsPrimary)

	updated := reloadBook(t, db, book.ID)
	require.NotNil(t, updated.CoverImageURL)
	assert.Equal(t, next.URL, *updated.CoverImageURL)
	assert.Contains(t, store.removed, primary.URL)
}

func TestDeleteLastImageClearsCover(t *testing.T) {
	router, db, _ := setupTestRouter(t)

	book := mustCreateBook(t, db, "Emma", intPtr(1815))
	only := mustCreateImage(t, db, book.ID, "https://cdn/only.jpg", 0, true)

	w := doRequest(router, "DELETE", "/books/"+book.ID+"/images/"+only.ID, nil, adminHeaders(nil))
	require.Equal(t, http.StatusNoContent, w.Code)

	updated := reloadBook(t, db, book.ID)
	assert.Nil(t, updated.CoverImageURL)
}

func TestDeleteImageNotFound(t *testing.T) {
	router, db, store := setupTestRouter(t)

	book := mustCreateBook(t, db, "Emma", intPtr(1815))

	w := doRequest(router, "DELETE", "/books/"+book.ID+"/images/89f6ab0e-0000-0000-0000-000000000000",
		nil, adminHeaders(nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, store.removed)
}
