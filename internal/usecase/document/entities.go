package document

import (
	"io"
	"time"

	domain "sba-portal/internal/domain/document"
)

type Config struct {
	MaxUploadBytes   int64
	AllowedMIMETypes []string
	SignedURLTTL     time.Duration
}

type UploadInput struct {
	Category    string
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type ReviewResult struct {
	Document *domain.Document `json:"document"`
	Changed  bool             `json:"changed"`
}

type CategoryStatus struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
	Count    int    `json:"count"`
}

type ChecklistDTO struct {
	Categories []CategoryStatus  `json:"categories"`
	Evaluation domain.Evaluation `json:"evaluation"`
}

type ReviewItem struct {
	domain.Document
	// Empty when the link could not be signed.
	URL string `json:"url"`
}
