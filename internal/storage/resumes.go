// Package storage persists uploaded resumes as opaque files on disk,
// referenced by path from the application record.
package storage

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"

	"github.com/jobdeck/jobboard-api/internal/apperrors"
)

// MaxResumeSize is the upload ceiling. Fixed business rule.
const MaxResumeSize = 5 << 20 // 5MB

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

type ResumeStore struct {
	dir string
}

func NewResumeStore(dir string) (*ResumeStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	return &ResumeStore{dir: dir}, nil
}

// Save validates and writes an uploaded resume, returning its stored path.
// Validation is extension allow-list plus the size ceiling; PDFs must also
// open as an actual PDF so a renamed binary doesn't land in the store.
func (s *ResumeStore) Save(fh *multipart.FileHeader) (string, error) {
	if fh.Size > MaxResumeSize {
		return "", apperrors.Validation("resume exceeds the 5MB limit")
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return "", apperrors.Validation("resume must be a .pdf, .doc or .docx file")
	}

	f, err := fh.Open()
	if err != nil {
		return "", apperrors.Internal(err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxResumeSize+1))
	if err != nil {
		return "", apperrors.Internal(err)
	}
	if len(data) > MaxResumeSize {
		return "", apperrors.Validation("resume exceeds the 5MB limit")
	}

	if ext == ".pdf" {
		if _, err := pdf.NewReader(bytes.NewReader(data), int64(len(data))); err != nil {
			return "", apperrors.Validation("file is not a readable PDF")
		}
	}

	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", apperrors.Internal(err)
	}
	return path, nil
}
