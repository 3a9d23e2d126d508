package models

import (
	"time"

	"pak-index/core/category"
)

// PackageView describes one opened package. The key is only shown as a fingerprint.
type PackageView struct {
	ID             string    `json:"id"`
	KeyFingerprint string    `json:"key_fingerprint"`
	Files          int       `json:"files"`
	OpenedAt       time.Time `json:"opened_at"`
}

// Status summarizes the index.
type Status struct {
	Extracted bool          `json:"extracted"`
	Files     int           `json:"files"`
	Packages  []PackageView `json:"packages"`
}

// FileList is a page of indexed paths.
type FileList struct {
	Prefix string   `json:"prefix"`
	Total  int      `json:"total"`
	Files  []string `json:"files"`
}

// Categories lists the category summaries.
type Categories struct {
	Categories []category.Summary `json:"categories"`
}

// OpenRequest is the body of an open request.
type OpenRequest struct {
	Key string `json:"key"`
}
