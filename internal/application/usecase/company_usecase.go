package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	companydom "stocklot/internal/domain/company"
)

var ErrCompanyRepoMissing = errors.New("company: repository is not configured")

// CompanyUsecase owns seller company profiles. Verification is admin-only
// moderation; everything else is plain CRUD.
type CompanyUsecase struct {
	repo companydom.RepositoryPort
	now  func() time.Time
}

func NewCompanyUsecase(repo companydom.RepositoryPort) *CompanyUsecase {
	return &CompanyUsecase{repo: repo, now: time.Now}
}

type CreateCompanyInput struct {
	Name         string
	Address      string
	ContactEmail string
	LogoURL      string
}

func (u *CompanyUsecase) Create(ctx context.Context, in CreateCompanyInput) (companydom.Company, error) {
	if u == nil || u.repo == nil {
		return companydom.Company{}, ErrCompanyRepoMissing
	}

	c, err := companydom.New(in.Name, in.Address, in.ContactEmail, in.LogoURL, u.now().UTC())
	if err != nil {
		return companydom.Company{}, err
	}

	created, err := u.repo.Create(ctx, c)
	if err != nil {
		return companydom.Company{}, err
	}

	log.Printf("[company_uc] created companyId=%s name=%q", created.ID, created.Name)
	return created, nil
}

type UpdateCompanyInput struct {
	Name         *string
	Address      *string
	ContactEmail *string
	LogoURL      *string
}

func (u *CompanyUsecase) Update(ctx context.Context, id string, in UpdateCompanyInput) (companydom.Company, error) {
	if u == nil || u.repo == nil {
		return companydom.Company{}, ErrCompanyRepoMissing
	}

	if in.ContactEmail != nil {
		e := strings.TrimSpace(*in.ContactEmail)
		if e != "" && !strings.Contains(e, "@") {
			return companydom.Company{}, companydom.ErrInvalidContactEmail
		}
	}

	return u.repo.Update(ctx, strings.TrimSpace(id), companydom.CompanyPatch{
		Name:         trimPtr(in.Name),
		Address:      trimPtr(in.Address),
		ContactEmail: trimPtr(in.ContactEmail),
		LogoURL:      trimPtr(in.LogoURL),
	})
}

// SetVerified is the admin moderation toggle.
func (u *CompanyUsecase) SetVerified(ctx context.Context, id string, verified bool) (companydom.Company, error) {
	if u == nil || u.repo == nil {
		return companydom.Company{}, ErrCompanyRepoMissing
	}
	return u.repo.Update(ctx, strings.TrimSpace(id), companydom.CompanyPatch{Verified: &verified})
}

func (u *CompanyUsecase) GetByID(ctx context.Context, id string) (companydom.Company, error) {
	if u == nil || u.repo == nil {
		return companydom.Company{}, ErrCompanyRepoMissing
	}
	return u.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (u *CompanyUsecase) List(ctx context.Context) ([]companydom.Company, error) {
	if u == nil || u.repo == nil {
		return nil, ErrCompanyRepoMissing
	}
	return u.repo.List(ctx)
}
