// Package upload validates uploaded video files and assigns them a content
// identifier, optionally persisting the bytes to object storage.
package upload

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"gebo/config"
	"gebo/types"
)

var (
	// ErrEmptyFile is returned for zero-byte uploads
	ErrEmptyFile = errors.New("file is empty")
	// ErrFileTooLarge is returned when an upload exceeds the size limit
	ErrFileTooLarge = errors.New("file exceeds the size limit")
	// ErrUnsupportedType is returned when neither the content nor the name look like a video
	ErrUnsupportedType = errors.New("unsupported file type")
)

// ObjectStore persists uploaded objects
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// FrameExtractor writes a still frame of a video to outputPath
type FrameExtractor func(videoPath, outputPath string, offsetSeconds float64) error

// Service accepts uploads
type Service struct {
	store    ObjectStore
	frames   FrameExtractor
	maxBytes int64
}

// Option customizes a Service
type Option func(*Service)

// WithMaxBytes overrides the upload size limit
func WithMaxBytes(n int64) Option {
	return func(s *Service) { s.maxBytes = n }
}

// NewService creates an upload Service. store and frames may be nil, in
// which case uploads only receive a content identifier.
func NewService(store ObjectStore, frames FrameExtractor, opts ...Option) *Service {
	s := &Service{store: store, frames: frames, maxBytes: config.MaxUploadBytes}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stores reports whether uploads are persisted
func (s *Service) Stores() bool { return s.store != nil }

// MaxBytes is the largest accepted upload
func (s *Service) MaxBytes() int64 { return s.maxBytes }

// CheckSize rejects declared sizes outside (0, MaxBytes]
func (s *Service) CheckSize(size int64) error {
	if size == 0 {
		return ErrEmptyFile
	}
	if size > s.maxBytes {
		return s.TooLarge()
	}
	return nil
}

// TooLarge is ErrFileTooLarge annotated with the configured limit
func (s *Service) TooLarge() error {
	return fmt.Errorf("%w of %s", ErrFileTooLarge, formatBytes(s.maxBytes))
}

// formatBytes renders n as whole MB when it divides evenly, bytes otherwise
func formatBytes(n int64) string {
	const mb = 1 << 20
	if n >= mb && n%mb == 0 {
		return fmt.Sprintf("%dMB", n/mb)
	}
	return fmt.Sprintf("%d bytes", n)
}

// DetectType picks the accepted MIME type for an upload. The extension must
// be a video extension and either the sniffed or the declared type must be
// an allowed video type.
func DetectType(fileName, declared string, head []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !config.AllowedVideoExtensions[ext] {
		return "", fmt.Errorf("%w: extension %q", ErrUnsupportedType, ext)
	}

	sniffed, _, _ := mime.ParseMediaType(http.DetectContentType(head))
	if config.AllowedVideoTypes[sniffed] {
		return sniffed, nil
	}

	if declared != "" {
		if mt, _, err := mime.ParseMediaType(declared); err == nil && config.AllowedVideoTypes[strings.ToLower(mt)] {
			return strings.ToLower(mt), nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedType, sniffed)
}

// Accept validates r and returns its content identifier. Storage and
// thumbnail failures are logged and do not fail the upload.
func (s *Service) Accept(ctx context.Context, r io.Reader, fileName, declaredType string) (types.UploadResult, error) {
	head := make([]byte, config.SniffBytes)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return types.UploadResult{}, fmt.Errorf("failed to read upload: %w", err)
	}
	head = head[:n]
	if n == 0 {
		return types.UploadResult{}, ErrEmptyFile
	}

	contentType, err := DetectType(fileName, declaredType, head)
	if err != nil {
		return types.UploadResult{}, err
	}

	tmp, err := os.CreateTemp("", "gebo-upload-*"+strings.ToLower(filepath.Ext(fileName)))
	if err != nil {
		return types.UploadResult{}, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	hasher := sha256.New()
	body := io.MultiReader(bytes.NewReader(head), r)
	size, err := io.Copy(io.MultiWriter(tmp, hasher), io.LimitReader(body, s.maxBytes+1))
	if err != nil {
		return types.UploadResult{}, fmt.Errorf("failed to buffer upload: %w", err)
	}
	if size > s.maxBytes {
		return types.UploadResult{}, s.TooLarge()
	}

	result := types.UploadResult{
		CID:         digestCID(hasher),
		FileName:    filepath.Base(fileName),
		Size:        size,
		ContentType: contentType,
	}
	if s.store == nil {
		return result, nil
	}

	key := config.UploadPrefix + result.CID + strings.ToLower(filepath.Ext(fileName))
	if err := s.persist(ctx, tmp, key, size, contentType); err != nil {
		log.Printf("Warning: upload %s not stored: %v", result.CID, err)
		return result, nil
	}
	result.Stored = true
	result.Key = key

	if s.frames != nil {
		thumbKey := config.UploadPrefix + result.CID + ".jpg"
		if err := s.storeFrame(ctx, tmp.Name(), thumbKey); err != nil {
			log.Printf("Warning: no frame thumbnail for %s: %v", result.CID, err)
		} else {
			result.ThumbnailKey = thumbKey
		}
	}
	return result, nil
}

func (s *Service) persist(ctx context.Context, f *os.File, key string, size int64, contentType string) error {
	exists, err := s.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", key, err)
	}
	if exists {
		return nil
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind upload: %w", err)
	}
	return s.store.Put(ctx, key, f, size, contentType)
}

func (s *Service) storeFrame(ctx context.Context, videoPath, key string) error {
	framePath := strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + ".jpg"
	defer os.Remove(framePath)

	if err := s.frames(videoPath, framePath, config.FrameOffsetSeconds); err != nil {
		return err
	}

	frame, err := os.Open(framePath)
	if err != nil {
		return fmt.Errorf("failed to open frame: %w", err)
	}
	defer frame.Close()

	info, err := frame.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat frame: %w", err)
	}
	return s.store.Put(ctx, key, frame, info.Size(), "image/jpeg")
}
