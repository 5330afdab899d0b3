package service

import (
	"context"
	"testing"

	"github.com/OshimPathan/ShareSathi/internal/config"
	"github.com/OshimPathan/ShareSathi/internal/repo"
	"github.com/OshimPathan/ShareSathi/internal/xe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestAuth(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	conf := testConfig()
	conf.JWT = config.JwtConf{Secret: "test-secret"}
	return NewAuthService(db, conf, zap.NewNop()), db
}

func TestRegisterCreatesWalletWithOpeningBalance(t *testing.T) {
	ctx := context.Background()
	auth, db := newTestAuth(t)

	user, err := auth.Register(ctx, RegisterRequest{
		Email:    "ram@example.com",
		Password: "password123",
		Nickname: "Ram",
	})
	require.NoError(t, err)

	wallet, err := repo.NewWalletRepo(db).FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, wallet.Balance.Equal(dec("100000")), wallet.Balance.String())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	auth, _ := newTestAuth(t)

	req := RegisterRequest{Email: "ram@example.com", Password: "password123"}
	_, err := auth.Register(ctx, req)
	require.NoError(t, err)

	_, err = auth.Register(ctx, req)
	assert.ErrorIs(t, err, xe.ErrAccountAlreadyUsed)
}

func TestRegisterRejectsMalformedEmail(t *testing.T) {
	ctx := context.Background()
	auth, _ := newTestAuth(t)

	_, err := auth.Register(ctx, RegisterRequest{Email: "not-an-email", Password: "password123"})
	assert.ErrorIs(t, err, xe.ErrInvalidParams)
}

func TestLoginAndValidateToken(t *testing.T) {
	ctx := context.Background()
	auth, _ := newTestAuth(t)

	registered, err := auth.Register(ctx, RegisterRequest{
		Email:    "sita@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	resp, err := auth.Login(ctx, LoginRequest{
		Email:    "sita@example.com",
		Password: "password123",
	}, "127.0.0.1")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	claims, err := auth.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, "sita@example.com", claims.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	auth, _ := newTestAuth(t)

	_, err := auth.Register(ctx, RegisterRequest{Email: "sita@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = auth.Login(ctx, LoginRequest{Email: "sita@example.com", Password: "wrong"}, "127.0.0.1")
	assert.ErrorIs(t, err, xe.ErrIncorrectPassword)

	_, err = auth.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "password123"}, "127.0.0.1")
	assert.ErrorIs(t, err, xe.ErrIncorrectPassword)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	auth, _ := newTestAuth(t)

	_, err := auth.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, xe.ErrInvalidToken)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	auth, _ := newTestAuth(t)

	user, err := auth.Register(ctx, RegisterRequest{Email: "ram@example.com", Password: "password123"})
	require.NoError(t, err)

	err = auth.ChangePassword(ctx, user.ID, "wrong", "newpassword1")
	assert.ErrorIs(t, err, xe.ErrIncorrectPassword)

	require.NoError(t, auth.ChangePassword(ctx, user.ID, "password123", "newpassword1"))

	_, err = auth.Login(ctx, LoginRequest{Email: "ram@example.com", Password: "newpassword1"}, "127.0.0.1")
	require.NoError(t, err)
}
