package repository

import (
	"github.com/karanxgill/AllHoursCafe/entity"
	"gorm.io/gorm"
)

type ReservationRepository struct{ DB *gorm.DB }

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{DB: db}
}

func (r *ReservationRepository) Create(res *entity.Reservation) error {
	return r.DB.Create(res).Error
}

func (r *ReservationRepository) Get(id uint) (*entity.Reservation, error) {
	var rv entity.Reservation
	if err := r.DB.First(&rv, id).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReservationRepository) SetTxnID(id uint, txnID string) error {
	return r.DB.Model(&entity.Reservation{}).Where("id = ?", id).
		Update("payment_txn_id", txnID).Error
}

// MarkPaymentOutcome mirrors the order guard: only a Pending reservation can
// be decided, and only once.
func (r *ReservationRepository) MarkPaymentOutcome(tx *gorm.DB, id uint, paymentStatus string, confirmed bool) (int64, error) {
	res := tx.Model(&entity.Reservation{}).
		Where("id = ? AND payment_status = ?", id, entity.PaymentStatusPending).
		Updates(map[string]any{
			"payment_status": paymentStatus,
			"is_confirmed":   confirmed,
		})
	return res.RowsAffected, res.Error
}
