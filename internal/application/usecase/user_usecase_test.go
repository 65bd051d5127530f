package usecase_test

import (
	"context"
	"errors"
	"testing"

	"stocklot/internal/application/usecase"
	userdom "stocklot/internal/domain/user"
)

func TestUserUpsertPreservesWatchlist(t *testing.T) {
	e := newTestEnv()
	uc := usecase.NewUserUsecase(e.users)
	ctx := context.Background()

	if _, err := uc.Upsert(ctx, usecase.UpsertUserInput{UID: "  "}); !errors.Is(err, userdom.ErrInvalidUID) {
		t.Fatalf("blank uid err = %v, want %v", err, userdom.ErrInvalidUID)
	}

	u, err := uc.Upsert(ctx, usecase.UpsertUserInput{
		UID:         "uid-1",
		Email:       "buyer@example.com",
		DisplayName: "Buyer One",
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if u.Watchlist == nil {
		t.Fatalf("first upsert must initialize the watchlist")
	}

	o := e.seedOffer(t, "seller-1", 5, 1000)
	e.watch(t, "uid-1", o.ID)

	// Sign-in refresh must not wipe the subscription set.
	u, err = uc.Upsert(ctx, usecase.UpsertUserInput{
		UID:       "uid-1",
		Email:     "buyer@example.com",
		CompanyID: "co-1",
	})
	if err != nil {
		t.Fatalf("second Upsert: %v", err)
	}
	if !u.OnWatchlist(o.ID) {
		t.Fatalf("upsert dropped the watchlist")
	}
	if u.CompanyID != "co-1" {
		t.Fatalf("company link = %q, want co-1", u.CompanyID)
	}

	got, err := uc.GetByUID(ctx, " uid-1 ")
	if err != nil {
		t.Fatalf("GetByUID: %v", err)
	}
	if got.Email != "buyer@example.com" {
		t.Fatalf("email = %q", got.Email)
	}

	if _, err := uc.GetByUID(ctx, "uid-zzz"); !errors.Is(err, userdom.ErrNotFound) {
		t.Fatalf("missing user err = %v, want %v", err, userdom.ErrNotFound)
	}
}
