// internal/membership/implementation_test.go
package membership_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libralend/internal/liberr"
	"libralend/internal/membership"
	"libralend/internal/store/memory"
)

func register(t *testing.T, svc membership.Service) *membership.Member {
	t.Helper()
	m, err := svc.Register(context.Background(),
		"Ada Lovelace", uuid.NewString()+"@example.com", uuid.NewString(), "analytical-engine")
	require.NoError(t, err)
	return m
}

func Test_Register_CreatesActiveMember(t *testing.T) {
	store := memory.New()
	svc := membership.NewService(store.Members)

	m, err := svc.Register(context.Background(),
		"Ada Lovelace", "ada@example.com", "LIB-0001", "analytical-engine")

	require.NoError(t, err)
	assert.Equal(t, membership.StatusActive, m.Status)
	assert.Equal(t, membership.RoleMember, m.Role)
	assert.NotEmpty(t, m.PasswordHash)
	assert.NotContains(t, m.PasswordHash, "analytical-engine")
	assert.False(t, m.RegistrationDate.IsZero())
}

func Test_Register_ValidatesInput(t *testing.T) {
	store := memory.New()
	svc := membership.NewService(store.Members)

	tests := []struct {
		name                                  string
		memberName, email, membershipID, pass string
	}{
		{"blank name", " ", "a@example.com", "LIB-1", "long-enough"},
		{"bad email", "Ada", "not-an-email", "LIB-1", "long-enough"},
		{"blank membership id", "Ada", "a@example.com", "", "long-enough"},
		{"short password", "Ada", "a@example.com", "LIB-1", "short"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.memberName, tc.email, tc.membershipID, tc.pass)
			assert.True(t, liberr.IsValidation(err))
		})
	}
}

func Test_Register_RejectsDuplicateEmail(t *testing.T) {
	store := memory.New()
	svc := membership.NewService(store.Members)
	_, err := svc.Register(context.Background(), "Ada", "ada@example.com", "LIB-1", "long-enough")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "Impostor", "ada@example.com", "LIB-2", "long-enough")

	assert.True(t, liberr.IsValidation(err))
}

func Test_Authenticate_AcceptsCorrectPassword(t *testing.T) {
	store := memory.New()
	svc := membership.NewService(store.Members)
	_, err := svc.Register(context.Background(), "Ada", "ada@example.com", "LIB-1", "analytical-engine")
	require.NoError(t, err)

	m, err := svc.Authenticate(context.Background(), "ada@example.com", "analytical-engine")

	require.NoError(t, err)
	assert.Equal(t, "Ada", m.Name)
}

func Test_Authenticate_RejectsWrongPasswordAndUnknownEmailAlike(t *testing.T) {
	store := memory.New()
	svc := membership.NewService(store.Members)
	_, err := svc.Register(context.Background(), "Ada", "ada@example.com", "LIB-1", "analytical-engine")
	require.NoError(t, err)

	_, wrongPass := svc.Authenticate(context.Background(), "ada@example.com", "difference-engine")
	_, unknown := svc.Authenticate(context.Background(), "nobody@example.com", "analytical-engine")

	// Both failures must be indistinguishable to the caller.
	assert.True(t, liberr.IsValidation(wrongPass))
	assert.True(t, liberr.IsValidation(unknown))
	assert.Equal(t, wrongPass.Error(), unknown.Error())
}

func Test_Authenticate_RejectsDeactivatedMember(t *testing.T) {
	store := memory.New()
	svc := membership.NewService(store.Members)
	m, err := svc.Register(context.Background(), "Ada", "ada@example.com", "LIB-1", "analytical-engine")
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(context.Background(), m.ID))

	_, err = svc.Authenticate(context.Background(), "ada@example.com", "analytical-engine")

	assert.True(t, liberr.IsConflict(err, liberr.ReasonMemberInactive))
}

func Test_Register_IsRateLimited(t *testing.T) {
	store := memory.New()
	svc := membership.NewService(store.Members)

	// The limiter admits a burst of five registrations per minute.
	for i := 0; i < 5; i++ {
		register(t, svc)
	}

	_, err := svc.Register(context.Background(),
		"One Too Many", "many@example.com", "LIB-X", "long-enough")
	assert.Error(t, err)
}

func Test_Deactivate_UnknownMember_ReturnsNotFound(t *testing.T) {
	store := memory.New()
	svc := membership.NewService(store.Members)

	err := svc.Deactivate(context.Background(), uuid.New())

	assert.True(t, liberr.IsNotFound(err))
}

func Test_GetByMembershipID_FindsMember(t *testing.T) {
	store := memory.New()
	svc := membership.NewService(store.Members)
	m, err := svc.Register(context.Background(), "Ada", "ada@example.com", "LIB-42", "analytical-engine")
	require.NoError(t, err)

	got, err := svc.GetByMembershipID(context.Background(), "LIB-42")
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)

	_, err = svc.GetByMembershipID(context.Background(), "LIB-404")
	assert.True(t, liberr.IsNotFound(err))
}
