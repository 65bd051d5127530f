// internal/adapters/out/gcs/offerImage_repository_gcs.go
package gcs

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	gcscommon "stocklot/internal/adapters/out/gcs/common"
	imgdom "stocklot/internal/domain/offerImage"
)

// OfferImageRepositoryGCS implements offerImage.RepositoryPort backed by
// Google Cloud Storage. Objects live under "offers/{offerId}/images/".
type OfferImageRepositoryGCS struct {
	Client *storage.Client
	Bucket string
}

func NewOfferImageRepositoryGCS(client *storage.Client, bucket string) *OfferImageRepositoryGCS {
	return &OfferImageRepositoryGCS{
		Client: client,
		Bucket: strings.TrimSpace(bucket),
	}
}

// Compile-time check
var _ imgdom.RepositoryPort = (*OfferImageRepositoryGCS)(nil)

// ensureImageID assigns a generated id when the caller left it blank.
// The object path is keyed by the id, so repeated uploads for one offer
// must never share it.
func ensureImageID(img imgdom.OfferImage) imgdom.OfferImage {
	img.ID = strings.TrimSpace(img.ID)
	if img.ID == "" {
		img.ID = uuid.NewString()
	}
	return img
}

func (r *OfferImageRepositoryGCS) effectiveBucket() (string, error) {
	b := strings.TrimSpace(r.Bucket)
	if b == "" {
		return "", errors.New("OfferImageRepositoryGCS: bucket is empty")
	}
	return b, nil
}

// Upload validates, writes the blob, and returns the image with its
// public URL resolved.
func (r *OfferImageRepositoryGCS) Upload(ctx context.Context, img imgdom.OfferImage, data []byte) (imgdom.OfferImage, error) {
	if r.Client == nil {
		return imgdom.OfferImage{}, errors.New("OfferImageRepositoryGCS: nil storage client")
	}
	bucketName, err := r.effectiveBucket()
	if err != nil {
		return imgdom.OfferImage{}, err
	}

	if err := imgdom.ValidateUpload(img.ContentType, int64(len(data))); err != nil {
		return imgdom.OfferImage{}, err
	}

	img = ensureImageID(img)
	objectPath, err := imgdom.BuildObjectPath(img.OfferID, img.ID, img.ContentType)
	if err != nil {
		return imgdom.OfferImage{}, err
	}

	w := r.Client.Bucket(bucketName).Object(objectPath).NewWriter(ctx)
	w.ContentType = strings.TrimSpace(img.ContentType)
	w.CacheControl = "public, max-age=86400"
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return imgdom.OfferImage{}, err
	}
	if err := w.Close(); err != nil {
		return imgdom.OfferImage{}, err
	}

	img.ObjectPath = objectPath
	img.Size = int64(len(data))
	img.URL = gcscommon.GCSPublicURL(bucketName, objectPath, "")
	return img, nil
}

// Delete removes the blob. A missing object is not an error: the caller
// uses Delete for best-effort cleanup. Accepts either the stored object
// path or the public URL.
func (r *OfferImageRepositoryGCS) Delete(ctx context.Context, objectPath string) error {
	if r.Client == nil {
		return errors.New("OfferImageRepositoryGCS: nil storage client")
	}
	bucketName, err := r.effectiveBucket()
	if err != nil {
		return err
	}

	if b, obj, ok := gcscommon.ParseGCSURL(objectPath); ok {
		bucketName = b
		objectPath = obj
	}

	objectPath = strings.TrimLeft(strings.TrimSpace(objectPath), "/")
	if objectPath == "" {
		return nil
	}

	if err := r.Client.Bucket(bucketName).Object(objectPath).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil
		}
		return err
	}
	return nil
}
