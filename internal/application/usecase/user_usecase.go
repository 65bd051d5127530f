package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	userdom "stocklot/internal/domain/user"
)

var ErrUserRepoMissing = errors.New("user: repository is not configured")

// UserUsecase maintains the profile document keyed by the Firebase uid.
// Identity itself lives in the auth provider; this document only carries
// marketplace state (company link, watchlist).
type UserUsecase struct {
	repo userdom.RepositoryPort
	now  func() time.Time
}

func NewUserUsecase(repo userdom.RepositoryPort) *UserUsecase {
	return &UserUsecase{repo: repo, now: time.Now}
}

type UpsertUserInput struct {
	UID         string
	Email       string
	DisplayName string
	CompanyID   string
}

// Upsert creates or refreshes the profile on sign-in.
func (u *UserUsecase) Upsert(ctx context.Context, in UpsertUserInput) (userdom.User, error) {
	if u == nil || u.repo == nil {
		return userdom.User{}, ErrUserRepoMissing
	}

	uid := strings.TrimSpace(in.UID)
	if uid == "" {
		return userdom.User{}, userdom.ErrInvalidUID
	}

	now := u.now().UTC()
	return u.repo.Upsert(ctx, userdom.User{
		UID:         uid,
		Email:       strings.TrimSpace(in.Email),
		DisplayName: strings.TrimSpace(in.DisplayName),
		CompanyID:   strings.TrimSpace(in.CompanyID),
		UpdatedAt:   now,
	})
}

func (u *UserUsecase) GetByUID(ctx context.Context, uid string) (userdom.User, error) {
	if u == nil || u.repo == nil {
		return userdom.User{}, ErrUserRepoMissing
	}
	return u.repo.GetByUID(ctx, strings.TrimSpace(uid))
}
