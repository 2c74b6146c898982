package services

import (
	"context"
	"errors"
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/karanxgill/AllHoursCafe/entity"
)

// completeOrder flips a pending order to paid and runs the success side
// effects. The status update is guarded on payment_status = Pending, so a
// replayed callback hits zero rows and the side effects run at most once.
func (s *CheckoutService) completeOrder(ctx context.Context, sessionID string, o *entity.Order, txnID string) (*entity.Order, error) {
	var rows int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		rows, err = s.orders.MarkPaymentOutcome(tx, o.ID,
			entity.PaymentStatusCompleted, entity.OrderStatusConfirmed,
			"PayU", "TxnID: "+txnID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// Already decided; re-read and report the settled state.
		return s.orders.GetOrder(o.ID)
	}

	o, err = s.orders.GetOrder(o.ID)
	if err != nil {
		return nil, err
	}

	if sessionID != "" {
		if err := s.cart.Clear(ctx, sessionID); err != nil {
			logSideEffect("cart clear", o.ID, err)
		}
	}

	if s.mailer != nil {
		if err := s.mailer.Send(o.CustomerEmail, "Your order is confirmed", OrderConfirmationBody(o)); err != nil {
			logSideEffect("confirmation mail", o.ID, err)
		}
	}

	if u, err := s.users.FindByEmail(o.CustomerEmail); err == nil {
		if err := s.users.BackfillContact(u.ID, o); err != nil {
			logSideEffect("profile backfill", o.ID, err)
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logSideEffect("profile lookup", o.ID, err)
	}

	if s.notifier != nil {
		s.notifier.NotifyOrder(o.ID, o.OrderStatus)
	}

	return o, nil
}

// failOrder records a failed payment. Failed is terminal for the attempt; a
// retry goes through a new payment form, not a resurrected order.
func (s *CheckoutService) failOrder(o *entity.Order, txnID string) (*entity.Order, error) {
	var rows int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		rows, err = s.orders.MarkPaymentOutcome(tx, o.ID,
			entity.PaymentStatusFailed, entity.OrderStatusPending,
			"PayU", "TxnID: "+txnID)
		return err
	})
	if err != nil {
		return nil, err
	}

	o, err = s.orders.GetOrder(o.ID)
	if err != nil {
		return nil, err
	}
	if rows > 0 && s.notifier != nil {
		s.notifier.NotifyOrder(o.ID, "PaymentFailed")
	}
	return o, nil
}

func logSideEffect(what string, orderID uint, err error) {
	log.Printf("order %d: %s failed: %v", orderID, what, err)
}

func decimalFromInt(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }
