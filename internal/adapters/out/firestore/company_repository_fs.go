package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	companydom "stocklot/internal/domain/company"
)

const companiesCollection = "companies"

// CompanyRepositoryFS implements company.RepositoryPort with Firestore.
type CompanyRepositoryFS struct {
	Client *firestore.Client
}

func NewCompanyRepositoryFS(client *firestore.Client) *CompanyRepositoryFS {
	return &CompanyRepositoryFS{Client: client}
}

func (r *CompanyRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(companiesCollection)
}

// Compile-time check
var _ companydom.RepositoryPort = (*CompanyRepositoryFS)(nil)

// =======================
// Mutations
// =======================

func (r *CompanyRepositoryFS) Create(ctx context.Context, c companydom.Company) (companydom.Company, error) {
	if r.Client == nil {
		return companydom.Company{}, errors.New("firestore client is nil")
	}

	docRef := r.col().NewDoc()
	c.ID = docRef.ID

	if _, err := docRef.Create(ctx, companyToDocData(c)); err != nil {
		return companydom.Company{}, err
	}
	return c, nil
}

func (r *CompanyRepositoryFS) Update(ctx context.Context, id string, patch companydom.CompanyPatch) (companydom.Company, error) {
	if r.Client == nil {
		return companydom.Company{}, errors.New("firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return companydom.Company{}, companydom.ErrNotFound
	}

	var updates []firestore.Update
	if patch.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: strings.TrimSpace(*patch.Name)})
	}
	if patch.Address != nil {
		updates = append(updates, firestore.Update{Path: "address", Value: strings.TrimSpace(*patch.Address)})
	}
	if patch.ContactEmail != nil {
		updates = append(updates, firestore.Update{Path: "contactEmail", Value: strings.TrimSpace(*patch.ContactEmail)})
	}
	if patch.LogoURL != nil {
		updates = append(updates, firestore.Update{Path: "logoUrl", Value: strings.TrimSpace(*patch.LogoURL)})
	}
	if patch.Verified != nil {
		updates = append(updates, firestore.Update{Path: "verified", Value: *patch.Verified})
	}

	if len(updates) == 0 {
		return r.GetByID(ctx, id)
	}

	ts := time.Now().UTC()
	if patch.UpdatedAt != nil {
		ts = patch.UpdatedAt.UTC()
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: ts})

	if _, err := r.col().Doc(id).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return companydom.Company{}, companydom.ErrNotFound
		}
		return companydom.Company{}, err
	}

	return r.GetByID(ctx, id)
}

// =======================
// Queries
// =======================

func (r *CompanyRepositoryFS) GetByID(ctx context.Context, id string) (companydom.Company, error) {
	if r.Client == nil {
		return companydom.Company{}, errors.New("firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return companydom.Company{}, companydom.ErrNotFound
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return companydom.Company{}, companydom.ErrNotFound
		}
		return companydom.Company{}, err
	}
	return docToCompany(snap)
}

func (r *CompanyRepositoryFS) List(ctx context.Context) ([]companydom.Company, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	it := r.col().OrderBy("name", firestore.Asc).Documents(ctx)
	defer it.Stop()

	var out []companydom.Company
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		c, err := docToCompany(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// =======================
// Codecs
// =======================

func companyToDocData(c companydom.Company) map[string]any {
	return map[string]any{
		"name":         c.Name,
		"address":      c.Address,
		"contactEmail": c.ContactEmail,
		"logoUrl":      c.LogoURL,
		"verified":     c.Verified,
		"createdAt":    c.CreatedAt,
		"updatedAt":    c.UpdatedAt,
	}
}

func docToCompany(doc *firestore.DocumentSnapshot) (companydom.Company, error) {
	data := doc.Data()
	if data == nil {
		return companydom.Company{}, fmt.Errorf("empty company document: %s", doc.Ref.ID)
	}

	getStr := func(key string) string {
		if v, ok := data[key].(string); ok {
			return strings.TrimSpace(v)
		}
		return ""
	}
	getBool := func(key string) bool {
		if v, ok := data[key].(bool); ok {
			return v
		}
		return false
	}
	getTime := func(key string) time.Time {
		if v, ok := data[key].(time.Time); ok {
			return v.UTC()
		}
		return time.Time{}
	}

	return companydom.Company{
		ID:           doc.Ref.ID,
		Name:         getStr("name"),
		Address:      getStr("address"),
		ContactEmail: getStr("contactEmail"),
		LogoURL:      getStr("logoUrl"),
		Verified:     getBool("verified"),
		CreatedAt:    getTime("createdAt"),
		UpdatedAt:    getTime("updatedAt"),
	}, nil
}
