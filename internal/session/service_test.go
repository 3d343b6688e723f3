package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) LoadPrincipal(ctx context.Context, id string) (*Principal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Principal), args.Error(1)
}

func (m *mockStore) RevokeSessions(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		role  string
		state State
	}{
		{RoleAdmin, StateAuthenticated},
		{RoleUser, StateAuthenticated},
		{RolePending, StatePending},
		{RoleBlocked, StateBlocked},
		{"superuser", StateUnauthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			d := Resolve(&Principal{ID: "u1", Role: tt.role})
			assert.Equal(t, tt.state, d.State)
		})
	}
	assert.Equal(t, StateUnauthenticated, Resolve(nil).State)
	assert.Equal(t, MessagePending, Resolve(&Principal{Role: RolePending}).Message)
}

func TestCheck_Authenticated(t *testing.T) {
	store := new(mockStore)
	store.On("LoadPrincipal", mock.Anything, "u1").Return(&Principal{ID: "u1", Role: RoleUser, TokenVersion: 2}, nil)

	d, p, err := NewService(store).Check(context.Background(), "u1", 2)
	require.NoError(t, err)
	assert.True(t, d.Allowed())
	assert.Equal(t, "u1", p.ID)
	store.AssertNotCalled(t, "RevokeSessions", mock.Anything, mock.Anything)
}

func TestCheck_PendingIsNotAllowed(t *testing.T) {
	store := new(mockStore)
	store.On("LoadPrincipal", mock.Anything, "u1").Return(&Principal{ID: "u1", Role: RolePending, TokenVersion: 1}, nil)

	d, _, err := NewService(store).Check(context.Background(), "u1", 1)
	require.NoError(t, err)
	assert.Equal(t, StatePending, d.State)
	assert.False(t, d.Allowed())
}

func TestCheck_BlockedSignsOut(t *testing.T) {
	store := new(mockStore)
	store.On("LoadPrincipal", mock.Anything, "u1").Return(&Principal{ID: "u1", Role: RoleBlocked, TokenVersion: 1}, nil)
	store.On("RevokeSessions", mock.Anything, "u1").Return(nil).Once()

	d, _, err := NewService(store).Check(context.Background(), "u1", 1)
	require.NoError(t, err)
	assert.Equal(t, StateUnauthenticated, d.State)
	assert.Equal(t, ReasonBlocked, d.Reason)
	store.AssertExpectations(t)
}

func TestCheck_BlockedWithRevokedTokenDoesNotRevokeAgain(t *testing.T) {
	store := new(mockStore)
	store.On("LoadPrincipal", mock.Anything, "u1").Return(&Principal{ID: "u1", Role: RoleBlocked, TokenVersion: 5}, nil)

	d, _, err := NewService(store).Check(context.Background(), "u1", 4)
	require.NoError(t, err)
	assert.Equal(t, ReasonBlocked, d.Reason)
	store.AssertNotCalled(t, "RevokeSessions", mock.Anything, mock.Anything)
}

func TestCheck_StaleTokenVersion(t *testing.T) {
	store := new(mockStore)
	store.On("LoadPrincipal", mock.Anything, "u1").Return(&Principal{ID: "u1", Role: RoleUser, TokenVersion: 3}, nil)

	d, _, err := NewService(store).Check(context.Background(), "u1", 2)
	require.NoError(t, err)
	assert.Equal(t, StateUnauthenticated, d.State)
	assert.Equal(t, ReasonSessionExpired, d.Reason)
}

func TestCheck_UnknownPrincipal(t *testing.T) {
	store := new(mockStore)
	store.On("LoadPrincipal", mock.Anything, "ghost").Return(nil, ErrUnknownPrincipal)

	d, _, err := NewService(store).Check(context.Background(), "ghost", 1)
	require.NoError(t, err)
	assert.Equal(t, StateUnauthenticated, d.State)
}

func TestCheck_StoreFailureIsAnError(t *testing.T) {
	store := new(mockStore)
	store.On("LoadPrincipal", mock.Anything, "u1").Return(nil, errors.New("connection refused"))

	_, _, err := NewService(store).Check(context.Background(), "u1", 1)
	assert.Error(t, err)
}
