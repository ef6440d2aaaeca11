package datasets

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultDatasetName = "New Dataset"

var (
	ErrNotFound    = errors.New("not found")
	ErrForbidden   = errors.New("forbidden")
	ErrInvalidName = errors.New("dataset name cannot be empty")
	ErrNoFitFiles  = errors.New("no .fit files uploaded")
	// ErrBlobMissing means a file row exists but its stored bytes are gone.
	ErrBlobMissing = errors.New("stored file data missing")
)

type Dataset struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	UserID     string    `json:"userId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Shared     bool      `json:"shared"`
	ShareViews int64     `json:"shareViews"`
	FitFiles   []FitFile `json:"fitFiles"`
}

func (d *Dataset) File(id uuid.UUID) (FitFile, bool) {
	for _, f := range d.FitFiles {
		if f.ID == id {
			return f, true
		}
	}
	return FitFile{}, false
}

type FitFile struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	DatasetID uuid.UUID `json:"datasetId"`
	FilePath  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// Upload is one file received from a client, before it is stored.
type Upload struct {
	Name string
	Data []byte
}

func IsFitFileName(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".fit")
}

// filterFitUploads keeps only .fit uploads and returns how many were dropped.
func filterFitUploads(uploads []Upload) ([]Upload, int) {
	fitUploads := make([]Upload, 0, len(uploads))
	for _, u := range uploads {
		if IsFitFileName(u.Name) {
			fitUploads = append(fitUploads, u)
		}
	}
	return fitUploads, len(uploads) - len(fitUploads)
}

// datasetName applies the create-time default to a blank name.
func datasetName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultDatasetName
	}
	return name
}
