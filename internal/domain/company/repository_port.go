package company

import "context"

// RepositoryPort is the outbound port for the companies collection.
type RepositoryPort interface {
	Create(ctx context.Context, c Company) (Company, error)
	GetByID(ctx context.Context, id string) (Company, error)
	Update(ctx context.Context, id string, patch CompanyPatch) (Company, error)
	List(ctx context.Context) ([]Company, error)
}
