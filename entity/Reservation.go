package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Reservation holds a table booking plus the fixed-deposit payment state that
// confirms it.
type Reservation struct {
	gorm.Model
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	PhoneNumber     string    `json:"phoneNumber"`
	NumberOfGuests  int       `json:"numberOfGuests"`
	ReservationDate time.Time `json:"reservationDate"`
	ReservationTime time.Time `json:"reservationTime"`
	SpecialRequests string    `json:"specialRequests"`

	IsConfirmed   bool            `json:"isConfirmed"`
	PaymentStatus string          `gorm:"default:Pending" json:"paymentStatus"`
	PaymentMethod string          `gorm:"default:PayU" json:"paymentMethod"`
	PaymentTxnID  string          `json:"paymentTxnId"`
	PaymentAmount decimal.Decimal `gorm:"type:decimal(10,2)" json:"paymentAmount"`
}
