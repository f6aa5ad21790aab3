// internal/membership/service.go
package membership

import (
	"context"

	"github.com/google/uuid"
)

// MemberStore is the persistence port the membership service depends on.
// Lookups return (nil, nil) when the member does not exist.
type MemberStore interface {
	Get(ctx context.Context, id uuid.UUID) (*Member, error)
	GetByEmail(ctx context.Context, email string) (*Member, error)
	GetByMembershipID(ctx context.Context, membershipID string) (*Member, error)
	Create(ctx context.Context, member *Member) error
	Update(ctx context.Context, member *Member) error
	List(ctx context.Context) ([]Member, error)
	ListActiveNonLibrarians(ctx context.Context) ([]Member, error)
}

// Service defines the interface for the membership service.
type Service interface {
	Register(ctx context.Context, name, email, membershipID, password string) (*Member, error)
	Authenticate(ctx context.Context, email, password string) (*Member, error)
	Get(ctx context.Context, id uuid.UUID) (*Member, error)
	GetByMembershipID(ctx context.Context, membershipID string) (*Member, error)
	List(ctx context.Context) ([]Member, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}
