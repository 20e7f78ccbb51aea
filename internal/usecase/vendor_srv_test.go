package usecase

import (
	"context"
	"errors"
	"testing"

	"wedding-marketplace/internal/data/entity"
	"wedding-marketplace/internal/dto/request"
	"wedding-marketplace/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApproveVendor(t *testing.T) {
	ctx := context.Background()

	t.Run("provisions subaccount then approves", func(t *testing.T) {
		env := newTestEnv()
		vendor := env.seedVendor(entity.VendorStatusPending, "")
		svc := env.vendorService()

		resp, err := svc.ApproveVendor(ctx, vendor.ID.String())
		require.NoError(t, err)

		assert.Equal(t, entity.VendorStatusApproved, resp.Status)
		assert.True(t, resp.Provisioned)
		assert.Equal(t, 1, env.gateway.createCalls)

		reloaded, _ := env.vendors.FindByID(ctx, vendor.ID)
		require.NotNil(t, reloaded.ChapaSubaccountID)
		assert.Equal(t, "SUB-test", *reloaded.ChapaSubaccountID)
	})

	t.Run("re-approving a provisioned vendor is a no-op", func(t *testing.T) {
		env := newTestEnv()
		vendor := env.seedVendor(entity.VendorStatusApproved, "SUB-existing")
		svc := env.vendorService()

		resp, err := svc.ApproveVendor(ctx, vendor.ID.String())
		require.NoError(t, err)

		assert.Equal(t, entity.VendorStatusApproved, resp.Status)
		assert.Zero(t, env.gateway.createCalls)
	})

	t.Run("rejects malformed settlement account", func(t *testing.T) {
		env := newTestEnv()
		vendor := env.seedVendor(entity.VendorStatusPending, "")
		vendor.AccountNumber = "12345"
		svc := env.vendorService()

		_, err := svc.ApproveVendor(ctx, vendor.ID.String())
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		assert.Zero(t, env.gateway.createCalls)
	})

	t.Run("rejects account with non-numeric characters", func(t *testing.T) {
		env := newTestEnv()
		vendor := env.seedVendor(entity.VendorStatusPending, "")
		vendor.AccountNumber = "10001234567ab"
		svc := env.vendorService()

		_, err := svc.ApproveVendor(ctx, vendor.ID.String())
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("provider failure leaves vendor pending", func(t *testing.T) {
		env := newTestEnv()
		vendor := env.seedVendor(entity.VendorStatusPending, "")
		env.gateway.subaccountErr = errors.New("bank rejected")
		svc := env.vendorService()

		_, err := svc.ApproveVendor(ctx, vendor.ID.String())
		require.Error(t, err)
		assert.Equal(t, apperr.KindExternal, apperr.KindOf(err))

		reloaded, _ := env.vendors.FindByID(ctx, vendor.ID)
		assert.Equal(t, entity.VendorStatusPending, reloaded.Status)
		assert.Nil(t, reloaded.ChapaSubaccountID)
	})

	t.Run("unknown vendor returns not found", func(t *testing.T) {
		env := newTestEnv()
		svc := env.vendorService()

		_, err := svc.ApproveVendor(ctx, "7d02bd2c-7e2a-4dde-8778-1bd8de32a3a4")
		require.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}

func TestRejectVendor(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects a pending vendor", func(t *testing.T) {
		env := newTestEnv()
		vendor := env.seedVendor(entity.VendorStatusPending, "")
		svc := env.vendorService()

		resp, err := svc.RejectVendor(ctx, vendor.ID.String())
		require.NoError(t, err)
		assert.Equal(t, entity.VendorStatusRejected, resp.Status)
	})

	t.Run("cannot reject an approved vendor", func(t *testing.T) {
		env := newTestEnv()
		vendor := env.seedVendor(entity.VendorStatusApproved, "SUB-x")
		svc := env.vendorService()

		_, err := svc.RejectVendor(ctx, vendor.ID.String())
		require.Error(t, err)
		assert.Equal(t, apperr.KindInvalidTransition, apperr.KindOf(err))
	})

	t.Run("re-rejecting is a no-op", func(t *testing.T) {
		env := newTestEnv()
		vendor := env.seedVendor(entity.VendorStatusRejected, "")
		svc := env.vendorService()

		resp, err := svc.RejectVendor(ctx, vendor.ID.String())
		require.NoError(t, err)
		assert.Equal(t, entity.VendorStatusRejected, resp.Status)
	})
}

func TestAddService(t *testing.T) {
	ctx := context.Background()

	req := &request.CreateServiceRequest{
		Name:      "Wedding Photography",
		Category:  "photography",
		BasePrice: 25000,
	}

	t.Run("approved vendor can add a service", func(t *testing.T) {
		env := newTestEnv()
		vendor := env.seedVendor(entity.VendorStatusApproved, "SUB-x")
		svc := env.vendorService()

		resp, err := svc.AddService(ctx, vendor.UserID.String(), req)
		require.NoError(t, err)

		assert.Equal(t, "Wedding Photography", resp.Name)
		assert.Equal(t, vendor.ID.String(), resp.VendorID)
		assert.True(t, resp.IsActive)
	})

	t.Run("pending vendor cannot add a service", func(t *testing.T) {
		env := newTestEnv()
		vendor := env.seedVendor(entity.VendorStatusPending, "")
		svc := env.vendorService()

		_, err := svc.AddService(ctx, vendor.UserID.String(), req)
		require.Error(t, err)
		assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
	})

	t.Run("user without vendor profile gets not found", func(t *testing.T) {
		env := newTestEnv()
		client := env.seedClient()
		svc := env.vendorService()

		_, err := svc.AddService(ctx, client.ID.String(), req)
		require.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}

func TestGetVendorEarnings(t *testing.T) {
	ctx := context.Background()

	t.Run("sums vendor shares by status", func(t *testing.T) {
		env := newTestEnv()
		client := env.seedClient()
		vendor := env.seedVendor(entity.VendorStatusApproved, "SUB-x")
		service := env.seedService(vendor.ID, 50000)

		b1 := env.seedBooking(client.ID, service.ID, vendor.ID, entity.BookingStatusConfirmed)
		b2 := env.seedBooking(client.ID, service.ID, vendor.ID, entity.BookingStatusPending)
		b3 := env.seedBooking(client.ID, service.ID, vendor.ID, entity.BookingStatusPending)
		env.seedPayment(b1, entity.PaymentStatusCompleted, "payment-ref-1")
		env.seedPayment(b2, entity.PaymentStatusPending, "payment-ref-2")
		env.seedPayment(b3, entity.PaymentStatusFailed, "payment-ref-3")

		svc := env.vendorService()
		resp, err := svc.GetVendorEarnings(ctx, vendor.UserID.String(), nil, nil)
		require.NoError(t, err)

		assert.Equal(t, 45000.0, resp.Received)
		assert.Equal(t, 45000.0, resp.Pending)
		assert.Len(t, resp.Payments, 3)
	})
}

func TestValidSettlementAccount(t *testing.T) {
	assert.True(t, validSettlementAccount("1000123456789"))
	assert.False(t, validSettlementAccount("100012345678"))   // 12 digits
	assert.False(t, validSettlementAccount("10001234567890")) // 14 digits
	assert.False(t, validSettlementAccount("10001234567a9"))
	assert.False(t, validSettlementAccount(""))
}
