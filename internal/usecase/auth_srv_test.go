package usecase

import (
	"context"
	"testing"

	"wedding-marketplace/internal/data/entity"
	"wedding-marketplace/internal/dto/request"
	"wedding-marketplace/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()

	clientReq := func() *request.RegisterRequest {
		return &request.RegisterRequest{
			FirstName: "Abebe",
			LastName:  "Kebede",
			Email:     "new@example.com",
			Password:  "secret123",
			Role:      "client",
		}
	}

	t.Run("registers a client with a session", func(t *testing.T) {
		env := newTestEnv()
		svc := env.authService()

		resp, err := svc.Register(ctx, clientReq())
		require.NoError(t, err)

		assert.Equal(t, entity.RoleClient, resp.Role)
		assert.NotEmpty(t, resp.Token)

		user, _ := env.users.FindByEmail(ctx, "new@example.com")
		require.NotNil(t, user)
		assert.NotEqual(t, "secret123", user.PasswordHash)
	})

	t.Run("registers a vendor with a pending profile", func(t *testing.T) {
		env := newTestEnv()
		svc := env.authService()

		req := clientReq()
		req.Role = "vendor"
		req.BusinessName = "Addis Catering"
		req.AccountNumber = "1000123456789"

		resp, err := svc.Register(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, entity.RoleVendor, resp.Role)

		user, _ := env.users.FindByEmail(ctx, "new@example.com")
		vendor, _ := env.vendors.FindByUserID(ctx, user.ID)
		require.NotNil(t, vendor)
		assert.Equal(t, entity.VendorStatusPending, vendor.Status)
		assert.Equal(t, "Addis Catering", vendor.BusinessName)
	})

	t.Run("vendor registration requires business fields", func(t *testing.T) {
		env := newTestEnv()
		svc := env.authService()

		req := clientReq()
		req.Role = "vendor"

		_, err := svc.Register(ctx, req)
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		env := newTestEnv()
		svc := env.authService()

		_, err := svc.Register(ctx, clientReq())
		require.NoError(t, err)

		_, err = svc.Register(ctx, clientReq())
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("logs in with valid credentials", func(t *testing.T) {
		env := newTestEnv()
		svc := env.authService()

		_, err := svc.Register(ctx, &request.RegisterRequest{
			FirstName: "Abebe",
			LastName:  "Kebede",
			Email:     "abebe@example.com",
			Password:  "secret123",
			Role:      "client",
		})
		require.NoError(t, err)

		resp, err := svc.Login(ctx, &request.LoginRequest{
			Email:    "abebe@example.com",
			Password: "secret123",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		env := newTestEnv()
		svc := env.authService()

		_, err := svc.Register(ctx, &request.RegisterRequest{
			FirstName: "Abebe",
			LastName:  "Kebede",
			Email:     "abebe@example.com",
			Password:  "secret123",
			Role:      "client",
		})
		require.NoError(t, err)

		_, err = svc.Login(ctx, &request.LoginRequest{
			Email:    "abebe@example.com",
			Password: "wrong-pass",
		})
		require.Error(t, err)
		assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(err))
	})

	t.Run("rejects unknown email", func(t *testing.T) {
		env := newTestEnv()
		svc := env.authService()

		_, err := svc.Login(ctx, &request.LoginRequest{
			Email:    "nobody@example.com",
			Password: "secret123",
		})
		require.Error(t, err)
		assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(err))
	})
}
