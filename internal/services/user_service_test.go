package services

import (
	"context"
	"testing"
	"time"

	"lyhu_portal/internal/logger"
	"lyhu_portal/internal/models"
	"lyhu_portal/internal/redis"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService(t *testing.T, opts UserOptions) (UserService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { client.Close() })

	if opts.DemoPassword == "" {
		opts.DemoPassword = "admin123"
	}
	if opts.SessionTTL == 0 {
		opts.SessionTTL = time.Hour
	}
	svc, err := NewUserService(client, opts, logger.Discard())
	require.NoError(t, err)
	return svc, mr
}

func TestAuthenticate_PasswordlessDemo(t *testing.T) {
	svc, _ := newTestUserService(t, UserOptions{})

	user, err := svc.Authenticate("sales@lyhu.vn", "anything")
	require.NoError(t, err)
	assert.Equal(t, models.RoleSales, user.Role)

	_, err = svc.Authenticate("nobody@lyhu.vn", "admin123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate("Sales@lyhu.vn", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "email match is exact")
}

func TestAuthenticate_RequirePassword(t *testing.T) {
	svc, _ := newTestUserService(t, UserOptions{RequirePassword: true})

	_, err := svc.Authenticate("admin@lyhu.vn", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	user, err := svc.Authenticate("admin@lyhu.vn", "admin123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
}

func TestLoginSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, mr := newTestUserService(t, UserOptions{})

	token, user, err := svc.Login(ctx, "ctv@lyhu.vn", "")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, models.RoleCTV, user.Role)

	current, err := svc.GetCurrentUser(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, user.ID, current.ID)

	require.NoError(t, svc.Logout(ctx, token))
	current, err = svc.GetCurrentUser(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, current)

	// unreadable and unknown-role records read as signed out
	require.NoError(t, mr.Set(models.SlotSession+":broken", "not json"))
	current, err = svc.GetCurrentUser(ctx, "broken")
	assert.NoError(t, err)
	assert.Nil(t, current)

	require.NoError(t, mr.Set(models.SlotSession+":odd", `{"id":"9","role":"guest"}`))
	current, err = svc.GetCurrentUser(ctx, "odd")
	assert.NoError(t, err)
	assert.Nil(t, current)
}

func TestSetCurrentUserNilClears(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestUserService(t, UserOptions{})

	admin, err := svc.GetUserByID("1")
	require.NoError(t, err)
	require.NoError(t, svc.SetCurrentUser(ctx, "tok", admin))
	require.NoError(t, svc.SetCurrentUser(ctx, "tok", nil))

	current, err := svc.GetCurrentUser(ctx, "tok")
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestGetAllUsers(t *testing.T) {
	svc, _ := newTestUserService(t, UserOptions{})
	users := svc.GetAllUsers()
	assert.Len(t, users, 4)

	_, err := svc.GetUserByID("42")
	assert.Error(t, err)
}

func TestDashboardPath(t *testing.T) {
	assert.Equal(t, "/admin", DashboardPath(models.RoleAdmin))
	assert.Equal(t, "/sales", DashboardPath(models.RoleSales))
	assert.Equal(t, "/ctv", DashboardPath(models.RoleCTV))
	assert.Equal(t, "/customer", DashboardPath(models.RoleCustomer))
	assert.Equal(t, "/login", DashboardPath("guest"))
}
