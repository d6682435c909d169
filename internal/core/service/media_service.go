package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
	"github.com/cuenca-resiliencia/erp-api/internal/core/ports"
)

var (
	allowedContentTypes = map[string]struct{}{
		"image/jpeg": {},
		"image/png":  {},
		"image/jpg":  {},
		"video/mp4":  {},
	}
	allowedExtensions = map[string]struct{}{
		".jpg":  {},
		".jpeg": {},
		".png":  {},
		".mp4":  {},
	}
)

// MediaService validates evidence files and stores them under a random
// name. Uploads are bounded by a timeout and never retried.
type MediaService struct {
	store   ports.BlobStore
	timeout time.Duration
	log     zerolog.Logger
}

func NewMediaService(store ports.BlobStore, timeout time.Duration, log zerolog.Logger) *MediaService {
	return &MediaService{store: store, timeout: timeout, log: log}
}

func (s *MediaService) Upload(ctx context.Context, in ports.UploadInput) (string, error) {
	if _, ok := allowedContentTypes[strings.ToLower(in.ContentType)]; !ok {
		return "", fmt.Errorf("upload: %w: content type %q", domain.ErrUnsupportedMedia, in.ContentType)
	}
	ext := strings.ToLower(path.Ext(in.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", fmt.Errorf("upload: %w: extension %q", domain.ErrUnsupportedMedia, ext)
	}

	name := uuid.NewString() + ext
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	url, err := s.store.Put(ctx, name, in.ContentType, in.Body, in.Size)
	if err != nil {
		s.log.Error().Err(err).Str("blob", name).Msg("blob upload failed")
		return "", fmt.Errorf("upload: %w", domain.ErrUpstreamFailure)
	}

	s.log.Info().Str("blob", name).Int64("size", in.Size).Msg("evidence uploaded")
	return url, nil
}

// Open is only supported by backends that serve their own objects.
func (s *MediaService) Open(ctx context.Context, name string) (io.ReadCloser, string, error) {
	reader, ok := s.store.(ports.BlobReader)
	if !ok {
		return nil, "", domain.ErrNotFound
	}
	if name != path.Base(name) || name == "." || name == "/" {
		return nil, "", domain.ErrNotFound
	}
	rc, contentType, err := reader.Open(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", err
		}
		s.log.Error().Err(err).Str("blob", name).Msg("blob read failed")
		return nil, "", fmt.Errorf("open blob: %w", domain.ErrUpstreamFailure)
	}
	return rc, contentType, nil
}
