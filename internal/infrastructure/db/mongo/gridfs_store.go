package mongo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
)

const defaultContentType = "application/octet-stream"

// GridFSStore implements ports.BlobStore and ports.BlobReader on a GridFS
// bucket. Objects are served back by the API under /public/evidence/<name>.
type GridFSStore struct {
	bucket  *gridfs.Bucket
	baseURL string
}

// NewGridFSStore opens the bucket named after the blob container.
func NewGridFSStore(db *mongo.Database, bucketName, publicBaseURL string) (*GridFSStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(bucketName))
	if err != nil {
		return nil, fmt.Errorf("gridfs bucket: %w", err)
	}
	return &GridFSStore{bucket: bucket, baseURL: strings.TrimRight(publicBaseURL, "/")}, nil
}

func (s *GridFSStore) Put(ctx context.Context, name, contentType string, body io.Reader, _ int64) (string, error) {
	opts := options.GridFSUpload().SetMetadata(bson.D{{Key: "contentType", Value: contentType}})
	stream, err := s.bucket.OpenUploadStream(name, opts)
	if err != nil {
		return "", fmt.Errorf("gridfs open upload: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = stream.SetWriteDeadline(deadline)
	}
	if _, err := io.Copy(stream, body); err != nil {
		_ = stream.Abort()
		return "", fmt.Errorf("gridfs write: %w", err)
	}
	if err := stream.Close(); err != nil {
		return "", fmt.Errorf("gridfs close: %w", err)
	}
	return s.baseURL + "/public/evidence/" + name, nil
}

func (s *GridFSStore) Open(ctx context.Context, name string) (io.ReadCloser, string, error) {
	stream, err := s.bucket.OpenDownloadStreamByName(name)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, "", domain.ErrNotFound
		}
		return nil, "", fmt.Errorf("gridfs open download: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = stream.SetReadDeadline(deadline)
	}

	contentType := defaultContentType
	if f := stream.GetFile(); f != nil && f.Metadata != nil {
		if v, ok := f.Metadata.Lookup("contentType").StringValueOK(); ok && v != "" {
			contentType = v
		}
	}
	return stream, contentType, nil
}
