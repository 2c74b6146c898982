package repository

import (
	"github.com/karanxgill/AllHoursCafe/entity"
	"gorm.io/gorm"
)

type OrderRepository struct{ DB *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{DB: db} }

// CreateOrder persists the order together with its item snapshots.
func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) GetOrder(id uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.Preload("Items").First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) ListByEmail(email string, limit int) ([]entity.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var rows []entity.Order
	err := r.DB.Where("customer_email = ?", email).
		Order("id DESC").Limit(limit).
		Find(&rows).Error
	return rows, err
}

// MarkPaymentOutcome flips payment/order status only while the payment is
// still Pending. Zero rows affected means the outcome was already decided —
// transitions are one-way.
func (r *OrderRepository) MarkPaymentOutcome(tx *gorm.DB, orderID uint, paymentStatus, orderStatus, method, details string) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND payment_status = ?", orderID, entity.PaymentStatusPending).
		Updates(map[string]any{
			"payment_status":  paymentStatus,
			"order_status":    orderStatus,
			"payment_method":  method,
			"payment_details": details,
		})
	return res.RowsAffected, res.Error
}
