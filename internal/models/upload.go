package models

import (
	"time"
)

// UploadRecord is the metadata kept about one decoded spreadsheet file.
// The decoded rows themselves are never persisted. Records are append-only.
type UploadRecord struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	FileName   string    `json:"fileName"`
	UploadDate time.Time `json:"uploadDate"`
	RowCount   int       `json:"rowCount"`
}

// UploadEntry is an UploadRecord joined with the uploader's display name
// for the admin upload-monitoring view.
type UploadEntry struct {
	UploadRecord
	UserName string `json:"userName"`
}
