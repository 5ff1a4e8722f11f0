package auth

import (
    "context"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "github.com/warungkita/pos-service/internal/domain"
    "github.com/warungkita/pos-service/internal/store"
    "go.uber.org/zap"
)

func newTestService(t *testing.T) *Service {
    t.Helper()

    svc, err := NewService(context.Background(), store.NewMemoryStore(), true, zap.NewNop())
    require.NoError(t, err)
    return svc
}

func TestService_LoginLogout(t *testing.T) {
    svc := newTestService(t)
    ctx := context.Background()

    token, user, err := svc.Login(ctx, "admin@pos.com", "admin123")
    require.NoError(t, err)
    require.NotEmpty(t, token)
    assert.Equal(t, domain.RoleAdmin, user.Role)

    current, err := svc.Current(token)
    require.NoError(t, err)
    assert.Equal(t, user.UserID, current.UserID)

    svc.Logout(ctx, token)
    _, err = svc.Current(token)
    assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestService_LoginRejectsBadCredentials(t *testing.T) {
    svc := newTestService(t)
    ctx := context.Background()

    tests := []struct {
        name     string
        email    string
        password string
    }{
        {name: "wrong password", email: "admin@pos.com", password: "salah"},
        {name: "unknown email", email: "nobody@pos.com", password: "admin123"},
        {name: "empty", email: "", password: ""},
    }

    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            _, _, err := svc.Login(ctx, tt.email, tt.password)
            assert.ErrorIs(t, err, ErrInvalidCredentials)
        })
    }
}

func TestService_SeedUsers(t *testing.T) {
    svc := newTestService(t)

    users := svc.ListUsers()
    require.Len(t, users, 4)
    assert.Equal(t, "admin@pos.com", users[0].Email)
    assert.Equal(t, domain.RoleAdmin, users[0].Role)
}

func TestService_DeleteLastAdminRefused(t *testing.T) {
    svc := newTestService(t)

    // Seed has one admin (user 1) and three cashiers.
    err := svc.DeleteUser(context.Background(), "1")
    assert.ErrorIs(t, err, ErrLastAdmin)
    assert.Len(t, svc.ListUsers(), 4)
}

func TestService_DeleteAdminWithAnotherPresent(t *testing.T) {
    svc := newTestService(t)
    ctx := context.Background()

    _, err := svc.AddUser(ctx, domain.CreateUserRequest{
        Name: "Second Admin", Email: "admin2@pos.com", Role: "admin",
    })
    require.NoError(t, err)

    require.NoError(t, svc.DeleteUser(ctx, "1"))
    assert.Len(t, svc.ListUsers(), 4)
}

func TestService_DeleteCashier(t *testing.T) {
    svc := newTestService(t)

    require.NoError(t, svc.DeleteUser(context.Background(), "3"))
    assert.Len(t, svc.ListUsers(), 3)
}

func TestService_DemoteLastAdminRefused(t *testing.T) {
    svc := newTestService(t)

    role := "cashier"
    _, err := svc.UpdateUser(context.Background(), "1", domain.UpdateUserRequest{Role: &role})
    assert.ErrorIs(t, err, ErrLastAdmin)
}

func TestService_AddUserDuplicateEmail(t *testing.T) {
    svc := newTestService(t)

    _, err := svc.AddUser(context.Background(), domain.CreateUserRequest{
        Name: "Clone", Email: "kasir@pos.com", Role: "cashier",
    })
    assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestService_UpdateUser(t *testing.T) {
    svc := newTestService(t)

    name := "Budi Baru"
    updated, err := svc.UpdateUser(context.Background(), "3", domain.UpdateUserRequest{Name: &name})
    require.NoError(t, err)
    assert.Equal(t, "Budi Baru", updated.Name)
    assert.Equal(t, "budi@pos.com", updated.Email)
}

func TestService_SessionsSurviveRestart(t *testing.T) {
    ctx := context.Background()
    st := store.NewMemoryStore()

    svc, err := NewService(ctx, st, true, zap.NewNop())
    require.NoError(t, err)

    token, _, err := svc.Login(ctx, "kasir@pos.com", "kasir123")
    require.NoError(t, err)

    reloaded, err := NewService(ctx, st, true, zap.NewNop())
    require.NoError(t, err)

    user, err := reloaded.Current(token)
    require.NoError(t, err)
    assert.Equal(t, "kasir@pos.com", user.Email)
}
