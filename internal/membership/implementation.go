// internal/membership/implementation.go
package membership

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"libralend/internal/liberr"
)

// service implements the Service interface.
type service struct {
	members     MemberStore
	rateLimiter *rate.Limiter
	now         func() time.Time
}

// NewService creates a new membership service instance. Registrations are
// rate limited to slow down scripted signups.
func NewService(members MemberStore) Service {
	return &service{
		members:     members,
		rateLimiter: rate.NewLimiter(rate.Every(time.Minute), 5),
		now:         time.Now,
	}
}

// Register creates a new active member with role MEMBER.
func (s *service) Register(ctx context.Context, name, email, membershipID, password string) (*Member, error) {
	if !s.rateLimiter.Allow() {
		return nil, fmt.Errorf("rate limit exceeded")
	}

	if strings.TrimSpace(name) == "" {
		return nil, liberr.Validation("name", "must not be empty")
	}
	if !strings.Contains(email, "@") {
		return nil, liberr.Validation("email", "must be a valid address")
	}
	if strings.TrimSpace(membershipID) == "" {
		return nil, liberr.Validation("membership_id", "must not be empty")
	}
	if len(password) < 8 {
		return nil, liberr.Validation("password", "must be at least 8 characters")
	}

	existing, err := s.members.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, liberr.Validation("email", "already registered")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	member := &Member{
		ID:               uuid.New(),
		Name:             name,
		Email:            email,
		MembershipID:     membershipID,
		PasswordHash:     hash,
		RegistrationDate: s.now(),
		Status:           StatusActive,
		Role:             RoleMember,
	}

	if err := s.members.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}
	return member, nil
}

// Authenticate verifies the email/password pair. It never distinguishes an
// unknown email from a wrong password.
func (s *service) Authenticate(ctx context.Context, email, password string) (*Member, error) {
	member, err := s.members.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to load member: %w", err)
	}
	if member == nil {
		return nil, liberr.Validation("credentials", "invalid email or password")
	}

	ok, err := verifyPassword(password, member.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, liberr.Validation("credentials", "invalid email or password")
	}
	if !member.IsActive() {
		return nil, liberr.Conflict(liberr.ReasonMemberInactive, "member account is not active")
	}
	return member, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Member, error) {
	member, err := s.members.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	if member == nil {
		return nil, liberr.NotFound("member", id.String())
	}
	return member, nil
}

func (s *service) GetByMembershipID(ctx context.Context, membershipID string) (*Member, error) {
	member, err := s.members.GetByMembershipID(ctx, membershipID)
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	if member == nil {
		return nil, liberr.NotFound("member", membershipID)
	}
	return member, nil
}

func (s *service) List(ctx context.Context) ([]Member, error) {
	return s.members.List(ctx)
}

func (s *service) Deactivate(ctx context.Context, id uuid.UUID) error {
	member, err := s.members.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get member: %w", err)
	}
	if member == nil {
		return liberr.NotFound("member", id.String())
	}
	member.Status = StatusInactive
	if err := s.members.Update(ctx, member); err != nil {
		return fmt.Errorf("failed to deactivate member: %w", err)
	}
	return nil
}
