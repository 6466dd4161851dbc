package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTransferTimeout = 30 * time.Second

// Images stores listing photos in GridFS under generated keys.
type Images struct {
	db     *mongo.Database
	bucket string
}

type Image struct {
	Key         string
	ContentType string
	Size        int64
	Body        io.ReadCloser
}

func NewImages(db *mongo.Database, bucket string) *Images {
	if bucket == "" {
		bucket = "images"
	}
	return &Images{db: db, bucket: bucket}
}

func (r *Images) open() (*gridfs.Bucket, error) {
	return gridfs.NewBucket(r.db, options.GridFSBucket().SetName(r.bucket))
}

func deadline(ctx context.Context) time.Time {
	if dl, ok := ctx.Deadline(); ok {
		return dl
	}
	return time.Now().Add(defaultTransferTimeout)
}

// Upload stores the blob and returns its key. ext keeps the original file
// extension so the key stays readable in URLs.
func (r *Images) Upload(ctx context.Context, ownerID, ext, contentType string, src io.Reader) (string, error) {
	bucket, err := r.open()
	if err != nil {
		return "", err
	}
	if err := bucket.SetWriteDeadline(deadline(ctx)); err != nil {
		return "", err
	}

	key := uuid.NewString() + ext
	opts := options.GridFSUpload().SetMetadata(bson.D{
		{Key: "contentType", Value: contentType},
		{Key: "ownerId", Value: ownerID},
	})
	if _, err := bucket.UploadFromStream(key, src, opts); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return key, nil
}

func (r *Images) Open(ctx context.Context, key string) (*Image, error) {
	bucket, err := r.open()
	if err != nil {
		return nil, err
	}
	if err := bucket.SetReadDeadline(deadline(ctx)); err != nil {
		return nil, err
	}

	stream, err := bucket.OpenDownloadStreamByName(key)
	if errors.Is(err, gridfs.ErrFileNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	file := stream.GetFile()
	contentType := "application/octet-stream"
	if ct, ok := file.Metadata.Lookup("contentType").StringValueOK(); ok && ct != "" {
		contentType = ct
	}
	return &Image{Key: key, ContentType: contentType, Size: file.Length, Body: stream}, nil
}
