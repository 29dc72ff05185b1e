package storage

import (
	"bytes"
	"context"
	"errors"
	"path"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/oksasatya/portfolio-api/internal/domain/repository"
	"github.com/oksasatya/portfolio-api/pkg/helpers"
)

// GCSStore writes uploads to uploads/<kind>/<owner>/<uuid><ext> in a bucket.
type GCSStore struct {
	Client *gcs.Client
	Bucket string
	newID  func() string
}

func NewGCSStore(client *gcs.Client, bucket string) *GCSStore {
	return &GCSStore{Client: client, Bucket: bucket, newID: uuid.NewString}
}

func (s *GCSStore) ObjectPath(obj repository.Object) string {
	return path.Join("uploads", obj.Kind, obj.OwnerID, s.newID()+obj.Ext)
}

func (s *GCSStore) Save(ctx context.Context, obj repository.Object) (string, error) {
	if s.Client == nil || s.Bucket == "" {
		return "", errors.New("gcs not configured")
	}
	return helpers.UploadObject(ctx, s.Client, s.Bucket, s.ObjectPath(obj), obj.ContentType, bytes.NewReader(obj.Data))
}

var _ repository.ObjectStore = (*GCSStore)(nil)
