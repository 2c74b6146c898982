package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karanxgill/AllHoursCafe/entity"
)

func fillCart(t *testing.T, env *testEnv, sessionID string) {
	t.Helper()
	m := seedMenuItem(t, env.db, "Paneer Tikka Bowl", "240.00")
	_, err := env.cart.SetItem(context.Background(), sessionID, m.ID, 2)
	require.NoError(t, err)
}

func placeOrder(t *testing.T, env *testEnv, sessionID string, userID uint) *entity.Order {
	t.Helper()
	o, err := env.checkout.Submit(context.Background(), sessionID, userID, SubmitRequest{
		OrderType: entity.OrderTypeDelivery,
	})
	require.NoError(t, err)
	return o
}

func countOrders(t *testing.T, env *testEnv) int64 {
	t.Helper()
	var n int64
	require.NoError(t, env.db.Model(&entity.Order{}).Count(&n).Error)
	return n
}

func TestSummaryEmptyCart(t *testing.T) {
	env := newTestEnv(t)
	u := seedUser(t, env.db, "a@b.com", "Asha Rao")

	_, err := env.checkout.Summary(context.Background(), "sid", u.ID, entity.OrderTypeDelivery)

	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestSummaryDeliveryWithoutAddress(t *testing.T) {
	env := newTestEnv(t)
	u := seedUser(t, env.db, "a@b.com", "Asha Rao")
	fillCart(t, env, "sid")

	_, err := env.checkout.Summary(context.Background(), "sid", u.ID, entity.OrderTypeDelivery)

	assert.ErrorIs(t, err, ErrNoAddress, "delivery checkout must not render without an address")
}

func TestSummaryPickupWithoutAddress(t *testing.T) {
	env := newTestEnv(t)
	u := seedUser(t, env.db, "a@b.com", "Asha Rao")
	fillCart(t, env, "sid")

	sum, err := env.checkout.Summary(context.Background(), "sid", u.ID, entity.OrderTypePickup)
	require.NoError(t, err)

	assert.Empty(t, sum.Addresses)
	assert.True(t, sum.Quote.DeliveryFee.IsZero())
	assert.Equal(t, "Asha Rao", sum.CustomerName, "contact prefills from the profile")
}

func TestSummaryPreselectsDefaultAddress(t *testing.T) {
	env := newTestEnv(t)
	u := seedUser(t, env.db, "a@b.com", "Asha Rao")
	first := addr("Home", "A. Rao", "9999999999")
	require.NoError(t, env.addresses.Create(u.ID, first))
	second := addr("Work", "Asha Rao", "8888888888")
	require.NoError(t, env.addresses.Create(u.ID, second))
	fillCart(t, env, "sid")

	sum, err := env.checkout.Summary(context.Background(), "sid", u.ID, entity.OrderTypeDelivery)
	require.NoError(t, err)

	require.Len(t, sum.Addresses, 2)
	assert.Equal(t, first.ID, sum.SelectedAddressID, "default address is preselected")
	assert.Equal(t, "A. Rao", sum.CustomerName)
	assert.Equal(t, "9999999999", sum.CustomerPhone)
}

func TestSubmitEmptyCart(t *testing.T) {
	env := newTestEnv(t)
	u := seedUser(t, env.db, "a@b.com", "Asha Rao")

	_, err := env.checkout.Submit(context.Background(), "sid", u.ID, SubmitRequest{
		OrderType: entity.OrderTypeDelivery,
	})

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, countOrders(t, env))
}

func TestSubmitDeliveryWithoutAddress(t *testing.T) {
	env := newTestEnv(t)
	u := seedUser(t, env.db, "a@b.com", "Asha Rao")
	fillCart(t, env, "sid")

	_, err := env.checkout.Submit(context.Background(), "sid", u.ID, SubmitRequest{
		OrderType: entity.OrderTypeDelivery,
	})

	assert.ErrorIs(t, err, ErrNoAddress)
	assert.Zero(t, countOrders(t, env))
}

func TestSubmitRejectsUnknownOrderType(t *testing.T) {
	env := newTestEnv(t)
	u := seedUser(t, env.db, "a@b.com", "Asha Rao")
	fillCart(t, env, "sid")

	_, err := env.checkout.Submit(context.Background(), "sid", u.ID, SubmitRequest{
		OrderType: "Teleport",
	})

	assert.Error(t, err)
	assert.Zero(t, countOrders(t, env))
}

func TestSubmitDeliveryFromSavedAddress(t *testing.T) {
	env := newTestEnv(t)
	u := seedUser(t, env.db, "a@b.com", "Asha Rao")
	require.NoError(t, env.addresses.Create(u.ID, addr("Home", "Asha Rao", "9999999999")))
	fillCart(t, env, "sid")

	o := placeOrder(t, env, "sid", u.ID)

	assert.Equal(t, "12 MG Road", o.DeliveryAddress)
	assert.Equal(t, "Asha Rao", o.CustomerName)
	assert.Equal(t, u.Email, o.CustomerEmail)
	assert.Equal(t, entity.PaymentStatusPending, o.PaymentStatus)
	assert.Equal(t, entity.OrderStatusPending, o.OrderStatus)

	// 240 * 2 = 480, tax 24, fee 30
	assert.True(t, o.SubTotal.Equal(dec("480.00")), "subtotal %s", o.SubTotal)
	assert.True(t, o.Tax.Equal(dec("24.00")), "tax %s", o.Tax)
	assert.True(t, o.DeliveryFee.Equal(dec("30.00")))
	assert.True(t, o.Total.Equal(dec("534.00")), "total %s", o.Total)
	require.Len(t, o.Items, 1)
	assert.True(t, o.Items[0].Total.Equal(dec("480.00")))
}

func TestSubmitKeepsCartUntilPayment(t *testing.T) {
	env := newTestEnv(t)
	u := seedUser(t, env.db, "a@b.com", "Asha Rao")
	require.NoError(t, env.addresses.Create(u.ID, addr("Home", "Asha Rao", "9999999999")))
	fillCart(t, env, "sid")

	placeOrder(t, env, "sid", u.ID)

	assert.NotEmpty(t, env.cart.Get(context.Background(), "sid"))
}

func TestSubmitManualAddressIsSideSaved(t *testing.T) {
	env := newTestEnv(t)
	u := seedUser(t, env.db, "a@b.com", "Asha Rao")
	fillCart(t, env, "sid")

	o, err := env.checkout.Submit(context.Background(), "sid", u.ID, SubmitRequest{
		OrderType:       entity.OrderTypeDelivery,
		CustomerName:    "Asha Rao",
		CustomerPhone:   "9999999999",
		DeliveryAddress: "7 Lake View",
		City:            "Pune",
		State:           "MH",
		PostalCode:      "411002",
	})
	require.NoError(t, err)
	assert.Equal(t, "7 Lake View", o.DeliveryAddress)

	rows, err := env.addresses.List(u.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "7 Lake View", rows[0].DeliveryAddress)
}

func TestSubmitManualAddressRequiresCityAndPostalCode(t *testing.T) {
	env := newTestEnv(t)
	u := seedUser(t, env.db, "a@b.com", "Asha Rao")
	fillCart(t, env, "sid")

	_, err := env.checkout.Submit(context.Background(), "sid", u.ID, SubmitRequest{
		OrderType:       entity.OrderTypeDelivery,
		DeliveryAddress: "7 Lake View",
		City:            "Pune",
	})
	assert.Error(t, err)

	_, err = env.checkout.Submit(context.Background(), "sid", u.ID, SubmitRequest{
		OrderType:       entity.OrderTypeDelivery,
		DeliveryAddress: "7 Lake View",
		PostalCode:      "411002",
	})
	assert.Error(t, err)

	assert.Zero(t, countOrders(t, env))
}

func TestPaymentFormMintsFreshTxnIDs(t *testing.T) {
	env := newTestEnv(t)
	u := seedUser(t, env.db, "a@b.com", "Asha Rao")
	require.NoError(t, env.addresses.Create(u.ID, addr("Home", "Asha Rao", "9999999999")))
	fillCart(t, env, "sid")
	o := placeOrder(t, env, "sid", u.ID)

	first, err := env.checkout.PaymentForm(o.ID)
	require.NoError(t, err)
	second, err := env.checkout.PaymentForm(o.ID)
	require.NoError(t, err)

	assert.Contains(t, first, fmt.Sprintf("Order_%d", o.ID))
	assert.NotEqual(t, first, second, "each attempt must get its own txnid")
}

func TestPaymentSuccessConfirmsAndClearsCart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := seedUser(t, env.db, "a@b.com", "Asha Rao")
	require.NoError(t, env.addresses.Create(u.ID, addr("Home", "Asha Rao", "9999999999")))
	fillCart(t, env, "sid")
	o := placeOrder(t, env, "sid", u.ID)

	cb := signedCallback(env.payu, "success", o.CustomerEmail, o.CustomerName,
		fmt.Sprintf("Order_%d", o.ID), o.Total.StringFixed(2), "txn123")

	got, err := env.checkout.HandlePaymentSuccess(ctx, "sid", o.ID, cb)
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusCompleted, got.PaymentStatus)
	assert.Equal(t, entity.OrderStatusConfirmed, got.OrderStatus)
	assert.Contains(t, got.PaymentDetails, "txn123")
	assert.Empty(t, env.cart.Get(ctx, "sid"), "paid orders clear the cart")
}

func TestPaymentSuccessBackfillsBlankProfileFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := seedUser(t, env.db, "a@b.com", "Asha Rao")
	require.NoError(t, env.addresses.Create(u.ID, addr("Home", "Asha Rao", "9999999999")))
	fillCart(t, env, "sid")
	o := placeOrder(t, env, "sid", u.ID)

	cb := signedCallback(env.payu, "success", o.CustomerEmail, o.CustomerName,
		fmt.Sprintf("Order_%d", o.ID), o.Total.StringFixed(2), "txn123")
	_, err := env.checkout.HandlePaymentSuccess(ctx, "sid", o.ID, cb)
	require.NoError(t, err)

	var fresh entity.User
	require.NoError(t, env.db.First(&fresh, u.ID).Error)
	assert.Equal(t, "12 MG Road", fresh.Address)
	assert.Equal(t, "9999999999", fresh.PhoneNumber)
}

func TestPaymentSuccessIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := seedUser(t, env.db, "a@b.com", "Asha Rao")
	require.NoError(t, env.addresses.Create(u.ID, addr("Home", "Asha Rao", "9999999999")))
	fillCart(t, env, "sid")
	o := placeOrder(t, env, "sid", u.ID)

	cb := signedCallback(env.payu, "success", o.CustomerEmail, o.CustomerName,
		fmt.Sprintf("Order_%d", o.ID), o.Total.StringFixed(2), "txn123")

	_, err := env.checkout.HandlePaymentSuccess(ctx, "sid", o.ID, cb)
	require.NoError(t, err)
	got, err := env.checkout.HandlePaymentSuccess(ctx, "sid", o.ID, cb)
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusCompleted, got.PaymentStatus)
	assert.Contains(t, got.PaymentDetails, "txn123", "replay must not rewrite the outcome")
}

func TestPaymentSuccessRejectsTamperedCallback(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := seedUser(t, env.db, "a@b.com", "Asha Rao")
	require.NoError(t, env.addresses.Create(u.ID, addr("Home", "Asha Rao", "9999999999")))
	fillCart(t, env, "sid")
	o := placeOrder(t, env, "sid", u.ID)

	cb := signedCallback(env.payu, "success", o.CustomerEmail, o.CustomerName,
		fmt.Sprintf("Order_%d", o.ID), o.Total.StringFixed(2), "txn123")
	cb.Amount = "1.00"

	_, err := env.checkout.HandlePaymentSuccess(ctx, "sid", o.ID, cb)
	assert.ErrorIs(t, err, ErrUntrustedCallback)

	fresh, err := env.checkout.GetOrder(o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPending, fresh.PaymentStatus, "tampered callback must not move the order")
	assert.NotEmpty(t, env.cart.Get(ctx, "sid"))
}

func TestPaymentSuccessRejectsCallbackForAnotherOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := seedUser(t, env.db, "a@b.com", "Asha Rao")
	require.NoError(t, env.addresses.Create(u.ID, addr("Home", "Asha Rao", "9999999999")))
	fillCart(t, env, "sid")
	o := placeOrder(t, env, "sid", u.ID)

	// validly signed, but for a different order
	cb := signedCallback(env.payu, "success", o.CustomerEmail, o.CustomerName,
		fmt.Sprintf("Order_%d", o.ID+1), o.Total.StringFixed(2), "txn123")

	_, err := env.checkout.HandlePaymentSuccess(ctx, "sid", o.ID, cb)
	assert.ErrorIs(t, err, ErrUntrustedCallback)
}

func TestPaymentSuccessRejectsNonSuccessStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := seedUser(t, env.db, "a@b.com", "Asha Rao")
	require.NoError(t, env.addresses.Create(u.ID, addr("Home", "Asha Rao", "9999999999")))
	fillCart(t, env, "sid")
	o := placeOrder(t, env, "sid", u.ID)

	// a signed failure posted at the success endpoint must not confirm
	cb := signedCallback(env.payu, "failure", o.CustomerEmail, o.CustomerName,
		fmt.Sprintf("Order_%d", o.ID), o.Total.StringFixed(2), "txn123")

	_, err := env.checkout.HandlePaymentSuccess(ctx, "sid", o.ID, cb)
	assert.ErrorIs(t, err, ErrUntrustedCallback)
}

func TestPaymentFailureKeepsCart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := seedUser(t, env.db, "a@b.com", "Asha Rao")
	require.NoError(t, env.addresses.Create(u.ID, addr("Home", "Asha Rao", "9999999999")))
	fillCart(t, env, "sid")
	o := placeOrder(t, env, "sid", u.ID)

	cb := signedCallback(env.payu, "failure", o.CustomerEmail, o.CustomerName,
		fmt.Sprintf("Order_%d", o.ID), o.Total.StringFixed(2), "txn123")

	got, err := env.checkout.HandlePaymentFailure(o.ID, cb)
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusFailed, got.PaymentStatus)
	assert.Equal(t, entity.OrderStatusPending, got.OrderStatus)
	assert.NotEmpty(t, env.cart.Get(ctx, "sid"), "failed payments keep the cart for retry")
}

func TestFailureCannotOverturnSuccess(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := seedUser(t, env.db, "a@b.com", "Asha Rao")
	require.NoError(t, env.addresses.Create(u.ID, addr("Home", "Asha Rao", "9999999999")))
	fillCart(t, env, "sid")
	o := placeOrder(t, env, "sid", u.ID)

	success := signedCallback(env.payu, "success", o.CustomerEmail, o.CustomerName,
		fmt.Sprintf("Order_%d", o.ID), o.Total.StringFixed(2), "txn123")
	_, err := env.checkout.HandlePaymentSuccess(ctx, "sid", o.ID, success)
	require.NoError(t, err)

	failure := signedCallback(env.payu, "failure", o.CustomerEmail, o.CustomerName,
		fmt.Sprintf("Order_%d", o.ID), o.Total.StringFixed(2), "txn456")
	got, err := env.checkout.HandlePaymentFailure(o.ID, failure)
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusCompleted, got.PaymentStatus)
}

func TestSubmitPickupNeedsNoAddress(t *testing.T) {
	env := newTestEnv(t)
	u := seedUser(t, env.db, "a@b.com", "Asha Rao")
	fillCart(t, env, "sid")

	o, err := env.checkout.Submit(context.Background(), "sid", u.ID, SubmitRequest{
		OrderType: entity.OrderTypePickup,
	})
	require.NoError(t, err)

	assert.True(t, o.DeliveryFee.IsZero())
	assert.Empty(t, o.DeliveryAddress)
	assert.Equal(t, "Asha Rao", o.CustomerName, "contact falls back to the profile")
}
