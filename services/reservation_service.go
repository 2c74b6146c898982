package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/karanxgill/AllHoursCafe/entity"
	"github.com/karanxgill/AllHoursCafe/repository"
)

var ErrBadReservation = errors.New("invalid reservation request")

// ReservationService books tables. A reservation only counts once its fixed
// deposit clears through the gateway.
type ReservationService struct {
	db      *gorm.DB
	repo    *repository.ReservationRepository
	payu    *PayUService
	mailer  Mailer
	deposit decimal.Decimal
	baseURL string
}

func NewReservationService(db *gorm.DB, repo *repository.ReservationRepository, payu *PayUService, mailer Mailer, deposit decimal.Decimal, baseURL string) *ReservationService {
	return &ReservationService{
		db:      db,
		repo:    repo,
		payu:    payu,
		mailer:  mailer,
		deposit: deposit,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type ReservationRequest struct {
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	PhoneNumber     string    `json:"phoneNumber"`
	NumberOfGuests  int       `json:"numberOfGuests"`
	ReservationDate time.Time `json:"reservationDate"`
	ReservationTime time.Time `json:"reservationTime"`
	SpecialRequests string    `json:"specialRequests"`
}

// Create validates and stores a pending reservation. Guests are capped at 20;
// larger parties go through the phone, not the form.
func (s *ReservationService) Create(req ReservationRequest) (*entity.Reservation, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrBadReservation)
	}
	if req.NumberOfGuests < 1 || req.NumberOfGuests > 20 {
		return nil, fmt.Errorf("%w: guests must be between 1 and 20", ErrBadReservation)
	}
	today := time.Now().Truncate(24 * time.Hour)
	if req.ReservationDate.Before(today) {
		return nil, fmt.Errorf("%w: reservation date is in the past", ErrBadReservation)
	}

	rv := &entity.Reservation{
		Name:            strings.TrimSpace(req.Name),
		Email:           strings.TrimSpace(req.Email),
		PhoneNumber:     strings.TrimSpace(req.PhoneNumber),
		NumberOfGuests:  req.NumberOfGuests,
		ReservationDate: req.ReservationDate,
		ReservationTime: req.ReservationTime,
		SpecialRequests: req.SpecialRequests,
		PaymentAmount:   s.deposit,
	}
	if err := s.repo.Create(rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *ReservationService) Get(id uint) (*entity.Reservation, error) {
	return s.repo.Get(id)
}

// PaymentForm renders the deposit payment form. The minted transaction id is
// stored on the reservation so the callback can be pinned to this attempt.
func (s *ReservationService) PaymentForm(id uint) (string, error) {
	rv, err := s.repo.Get(id)
	if err != nil {
		return "", err
	}
	if rv.PaymentStatus == entity.PaymentStatusCompleted {
		return "", ErrAlreadyPaid
	}

	txnID := s.payu.NewTxnID()
	if err := s.repo.SetTxnID(rv.ID, txnID); err != nil {
		return "", err
	}

	return s.payu.PaymentForm(PaymentFormParams{
		TxnID:       txnID,
		Amount:      s.deposit.StringFixed(2),
		ProductInfo: fmt.Sprintf("Reservation_%d", rv.ID),
		FirstName:   rv.Name,
		Email:       rv.Email,
		Phone:       rv.PhoneNumber,
		SuccessURL:  fmt.Sprintf("%s/api/reservations/%d/payment/success", s.baseURL, rv.ID),
		FailureURL:  fmt.Sprintf("%s/api/reservations/%d/payment/failure", s.baseURL, rv.ID),
	})
}

// HandlePaymentSuccess confirms the reservation once the deposit callback
// verifies. The transaction id must match the one minted for this
// reservation; a signature alone is not enough.
func (s *ReservationService) HandlePaymentSuccess(id uint, cb CallbackParams) (*entity.Reservation, error) {
	rv, err := s.repo.Get(id)
	if err != nil {
		return nil, err
	}

	if !s.payu.VerifyCallback(cb) ||
		cb.ProductInfo != fmt.Sprintf("Reservation_%d", id) ||
		cb.TxnID != rv.PaymentTxnID ||
		!strings.EqualFold(cb.Status, "success") {
		return nil, ErrUntrustedCallback
	}

	var rows int64
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		rows, err = s.repo.MarkPaymentOutcome(tx, id, entity.PaymentStatusCompleted, true)
		return err
	})
	if err != nil {
		return nil, err
	}

	rv, err = s.repo.Get(id)
	if err != nil {
		return nil, err
	}
	if rows > 0 && s.mailer != nil {
		if err := s.mailer.Send(rv.Email, "Your reservation is confirmed", ReservationConfirmationBody(rv)); err != nil {
			logSideEffect("reservation mail", rv.ID, err)
		}
	}
	return rv, nil
}

func (s *ReservationService) HandlePaymentFailure(id uint, cb CallbackParams) (*entity.Reservation, error) {
	rv, err := s.repo.Get(id)
	if err != nil {
		return nil, err
	}

	if !s.payu.VerifyCallback(cb) ||
		cb.ProductInfo != fmt.Sprintf("Reservation_%d", id) ||
		cb.TxnID != rv.PaymentTxnID {
		return nil, ErrUntrustedCallback
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		_, err := s.repo.MarkPaymentOutcome(tx, id, entity.PaymentStatusFailed, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.repo.Get(id)
}
