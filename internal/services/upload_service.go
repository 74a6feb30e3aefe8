package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

type UploadService struct {
	dir    string
	logger zerolog.Logger
}

func NewUploadService(dir string, logger zerolog.Logger) *UploadService {
	return &UploadService{
		dir:    dir,
		logger: logger,
	}
}

// SaveImage stores an uploaded file under a generated name and returns that
// name. Two uploads sharing an original filename never collide, and a
// crafted filename cannot escape the upload directory.
func (s *UploadService) SaveImage(file multipart.File, header *multipart.FileHeader) (string, error) {
	name, err := GenerateFileName(header.Filename)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	dst, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("write upload file: %w", err)
	}

	s.logger.Info().Str("file", name).Msg("Stored uploaded image")
	return name, nil
}

// Remove deletes a stored image, used to clean up after a failed insert.
func (s *UploadService) Remove(name string) {
	if name == "" {
		return
	}
	if err := os.Remove(filepath.Join(s.dir, filepath.Base(name))); err != nil {
		s.logger.Warn().Err(err).Str("file", name).Msg("Could not remove uploaded image")
	}
}

// GenerateFileName builds a collision-resistant name from the original
// filename plus random bytes.
func GenerateFileName(original string) (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate file name: %w", err)
	}
	return hex.EncodeToString(b) + "_" + sanitizeFileName(original), nil
}

func sanitizeFileName(original string) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	cleaned = strings.Trim(cleaned, ".")
	if cleaned == "" {
		return "upload"
	}
	return cleaned
}
