package offerImage

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// DefaultObjectPathPrefix is the canonical prefix for offer images in a
// single bucket.
//
// Expected layout:
//
//	gs://{bucket}/offers/{offerId}/images/{imageId}
const DefaultObjectPathPrefix = "offers"

// MaxFileSize caps one uploaded image.
const MaxFileSize = 8 << 20

var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// OfferImage describes one stored offer image object.
type OfferImage struct {
	ID          string
	OfferID     string
	URL         string
	ObjectPath  string // canonical: offers/{offerId}/images/{imageId}{ext}
	FileName    string
	ContentType string
	Size        int64
}

var (
	ErrInvalidOfferID     = errors.New("offerImage: invalid offerId")
	ErrInvalidContentType = errors.New("offerImage: unsupported content type")
	ErrFileTooLarge       = errors.New("offerImage: file too large")
	ErrEmptyFile          = errors.New("offerImage: empty file")
)

// ValidateUpload checks content type and size before any bytes move.
func ValidateUpload(contentType string, size int64) error {
	if _, ok := allowedContentTypes[strings.TrimSpace(contentType)]; !ok {
		return ErrInvalidContentType
	}
	if size <= 0 {
		return ErrEmptyFile
	}
	if size > MaxFileSize {
		return ErrFileTooLarge
	}
	return nil
}

// BuildObjectPath renders the canonical object path for an image id.
func BuildObjectPath(offerID, imageID, contentType string) (string, error) {
	oid := strings.TrimSpace(offerID)
	if oid == "" {
		return "", ErrInvalidOfferID
	}
	ext, ok := allowedContentTypes[strings.TrimSpace(contentType)]
	if !ok {
		return "", ErrInvalidContentType
	}
	return path.Join(DefaultObjectPathPrefix, oid, "images", fmt.Sprintf("%s%s", strings.TrimSpace(imageID), ext)), nil
}
