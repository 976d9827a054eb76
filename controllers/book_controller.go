package controllers

import (
	"github.com/longbourn/pemberley/storage"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookHandler serves the book CRUD endpoints. The database handle and cover
// store are injected by the process entry point.
type BookHandler struct {
	DB    *gorm.DB
	Store storage.CoverStore
}

// NewBookHandler creates a book handler with its collaborators
func NewBookHandler(db *gorm.DB, store storage.CoverStore) *BookHandler {
	return &BookHandler{DB: db, Store: store}
}

// lockForUpdate locks the selected rows for the duration of the transaction.
// Image mutations lock the parent book row first, which serializes concurrent
// primary reassignments per book.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		// sqlite has no FOR UPDATE; its transactions already serialize writers
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
