package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karanxgill/AllHoursCafe/entity"
)

func reservationReq() ReservationRequest {
	return ReservationRequest{
		Name:            "Asha Rao",
		Email:           "a@b.com",
		PhoneNumber:     "9999999999",
		NumberOfGuests:  4,
		ReservationDate: time.Now().AddDate(0, 0, 3),
		ReservationTime: time.Date(0, 1, 1, 19, 30, 0, 0, time.UTC),
	}
}

func TestCreateReservation(t *testing.T) {
	env := newTestEnv(t)

	rv, err := env.reservations.Create(reservationReq())
	require.NoError(t, err)

	assert.False(t, rv.IsConfirmed)
	assert.Equal(t, entity.PaymentStatusPending, rv.PaymentStatus)
	assert.True(t, rv.PaymentAmount.Equal(dec("500.00")))
}

func TestCreateReservationValidation(t *testing.T) {
	env := newTestEnv(t)

	req := reservationReq()
	req.NumberOfGuests = 0
	_, err := env.reservations.Create(req)
	assert.ErrorIs(t, err, ErrBadReservation)

	req = reservationReq()
	req.NumberOfGuests = 21
	_, err = env.reservations.Create(req)
	assert.ErrorIs(t, err, ErrBadReservation)

	req = reservationReq()
	req.ReservationDate = time.Now().AddDate(0, 0, -1)
	_, err = env.reservations.Create(req)
	assert.ErrorIs(t, err, ErrBadReservation)

	req = reservationReq()
	req.Name = "  "
	_, err = env.reservations.Create(req)
	assert.ErrorIs(t, err, ErrBadReservation)
}

func TestReservationDepositFlow(t *testing.T) {
	env := newTestEnv(t)
	rv, err := env.reservations.Create(reservationReq())
	require.NoError(t, err)

	html, err := env.reservations.PaymentForm(rv.ID)
	require.NoError(t, err)
	assert.Contains(t, html, fmt.Sprintf("Reservation_%d", rv.ID))
	assert.Contains(t, html, `name="amount" value="500.00"`)

	// the minted txnid is pinned on the reservation
	rv, err = env.reservations.Get(rv.ID)
	require.NoError(t, err)
	require.NotEmpty(t, rv.PaymentTxnID)

	cb := signedCallback(env.payu, "success", rv.Email, rv.Name,
		fmt.Sprintf("Reservation_%d", rv.ID), "500.00", rv.PaymentTxnID)

	got, err := env.reservations.HandlePaymentSuccess(rv.ID, cb)
	require.NoError(t, err)
	assert.True(t, got.IsConfirmed)
	assert.Equal(t, entity.PaymentStatusCompleted, got.PaymentStatus)
}

func TestReservationSuccessRejectsForeignTxnID(t *testing.T) {
	env := newTestEnv(t)
	rv, err := env.reservations.Create(reservationReq())
	require.NoError(t, err)
	_, err = env.reservations.PaymentForm(rv.ID)
	require.NoError(t, err)

	// validly signed but carrying a txnid never minted for this reservation
	cb := signedCallback(env.payu, "success", "a@b.com", "Asha Rao",
		fmt.Sprintf("Reservation_%d", rv.ID), "500.00", "foreign-txn")

	_, err = env.reservations.HandlePaymentSuccess(rv.ID, cb)
	assert.ErrorIs(t, err, ErrUntrustedCallback)

	got, err := env.reservations.Get(rv.ID)
	require.NoError(t, err)
	assert.False(t, got.IsConfirmed)
}

func TestReservationFailureIsRecorded(t *testing.T) {
	env := newTestEnv(t)
	rv, err := env.reservations.Create(reservationReq())
	require.NoError(t, err)
	_, err = env.reservations.PaymentForm(rv.ID)
	require.NoError(t, err)

	rv, err = env.reservations.Get(rv.ID)
	require.NoError(t, err)

	cb := signedCallback(env.payu, "failure", rv.Email, rv.Name,
		fmt.Sprintf("Reservation_%d", rv.ID), "500.00", rv.PaymentTxnID)

	got, err := env.reservations.HandlePaymentFailure(rv.ID, cb)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusFailed, got.PaymentStatus)
	assert.False(t, got.IsConfirmed)
}

func TestReservationPaymentFormAfterCompletion(t *testing.T) {
	env := newTestEnv(t)
	rv, err := env.reservations.Create(reservationReq())
	require.NoError(t, err)
	_, err = env.reservations.PaymentForm(rv.ID)
	require.NoError(t, err)

	rv, err = env.reservations.Get(rv.ID)
	require.NoError(t, err)
	cb := signedCallback(env.payu, "success", rv.Email, rv.Name,
		fmt.Sprintf("Reservation_%d", rv.ID), "500.00", rv.PaymentTxnID)
	_, err = env.reservations.HandlePaymentSuccess(rv.ID, cb)
	require.NoError(t, err)

	_, err = env.reservations.PaymentForm(rv.ID)
	assert.ErrorIs(t, err, ErrAlreadyPaid)
}
