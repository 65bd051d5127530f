package offerImage

import "context"

// RepositoryPort is the outbound port for offer image blobs (object
// storage). Upload returns the stored image with its public URL resolved.
type RepositoryPort interface {
	Upload(ctx context.Context, img OfferImage, data []byte) (OfferImage, error)
	Delete(ctx context.Context, objectPath string) error
}
