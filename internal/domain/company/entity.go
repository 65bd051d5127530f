package company

import (
	"errors"
	"strings"
	"time"
)

// ---------------------------
// Domain errors
// ---------------------------

var (
	ErrNotFound            = errors.New("company: not found")
	ErrInvalidName         = errors.New("company: invalid name")
	ErrInvalidContactEmail = errors.New("company: invalid contactEmail")
)

// ----------------------------------------
// Company entity
// ----------------------------------------

// Company is a seller's company profile document.
type Company struct {
	ID           string
	Name         string
	Address      string
	ContactEmail string
	LogoURL      string

	// Verified is set by admin moderation only.
	Verified bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CompanyPatch represents partial updates. A nil field means "no change".
type CompanyPatch struct {
	Name         *string
	Address      *string
	ContactEmail *string
	LogoURL      *string
	Verified     *bool
	UpdatedAt    *time.Time
}

// ----------------------------------------
// Constructor
// ----------------------------------------

func New(name, address, contactEmail, logoURL string, now time.Time) (Company, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return Company{}, ErrInvalidName
	}

	email := strings.TrimSpace(contactEmail)
	if email != "" && !strings.Contains(email, "@") {
		return Company{}, ErrInvalidContactEmail
	}

	if now.IsZero() {
		now = time.Now().UTC()
	}

	return Company{
		Name:         n,
		Address:      strings.TrimSpace(address),
		ContactEmail: email,
		LogoURL:      strings.TrimSpace(logoURL),
		Verified:     false,
		CreatedAt:    now.UTC(),
		UpdatedAt:    now.UTC(),
	}, nil
}
