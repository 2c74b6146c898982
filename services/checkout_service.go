package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/karanxgill/AllHoursCafe/entity"
	"github.com/karanxgill/AllHoursCafe/repository"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrUntrustedCallback = errors.New("payment callback failed verification")
	ErrAlreadyPaid       = errors.New("order payment already completed")
)

// OrderNotifier pushes order status changes to connected clients. Checkout
// calls it fire-and-forget.
type OrderNotifier interface {
	NotifyOrder(orderID uint, status string)
}

// CheckoutService drives the cart-to-paid-order flow: validating the cart,
// resolving the delivery address, pricing, persisting the order, handing the
// browser to the gateway and absorbing the gateway's verdict.
type CheckoutService struct {
	db        *gorm.DB
	cart      *CartService
	pricing   *PricingEngine
	addresses *AddressService
	orders    *repository.OrderRepository
	users     *repository.UserRepository
	payu      *PayUService
	mailer    Mailer
	notifier  OrderNotifier
	baseURL   string
}

func NewCheckoutService(
	db *gorm.DB,
	cart *CartService,
	pricing *PricingEngine,
	addresses *AddressService,
	orders *repository.OrderRepository,
	users *repository.UserRepository,
	payu *PayUService,
	mailer Mailer,
	notifier OrderNotifier,
	baseURL string,
) *CheckoutService {
	return &CheckoutService{
		db:        db,
		cart:      cart,
		pricing:   pricing,
		addresses: addresses,
		orders:    orders,
		users:     users,
		payu:      payu,
		mailer:    mailer,
		notifier:  notifier,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

// CheckoutSummary is what the checkout page renders: the validated cart, the
// server-side quote, the user's address book with the preselected entry, and
// prefilled contact details.
type CheckoutSummary struct {
	Lines             []CartLine            `json:"lines"`
	Quote             Quote                 `json:"quote"`
	Addresses         []entity.SavedAddress `json:"addresses"`
	SelectedAddressID uint                  `json:"selectedAddressId"`
	CustomerName      string                `json:"customerName"`
	CustomerPhone     string                `json:"customerPhone"`
}

// Summary prepares the checkout page. The cart is revalidated against the
// catalog first so the quote reflects current prices. A delivery checkout
// with no resolvable address fails with ErrNoAddress; the user has to add one
// before the page can render.
func (s *CheckoutService) Summary(ctx context.Context, sessionID string, userID uint, orderType string) (*CheckoutSummary, error) {
	lines, err := s.cart.Revalidate(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	if orderType != entity.OrderTypePickup {
		orderType = entity.OrderTypeDelivery
	}

	addrs, err := s.addresses.ResolveForUser(userID)
	if errors.Is(err, ErrNoAddress) {
		if orderType == entity.OrderTypeDelivery {
			return nil, err
		}
		addrs = nil
	} else if err != nil {
		return nil, err
	}

	u, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}

	sum := &CheckoutSummary{
		Lines:         lines,
		Quote:         s.pricing.Price(lines, orderType),
		Addresses:     addrs,
		CustomerName:  u.FullName,
		CustomerPhone: u.PhoneNumber,
	}
	if len(addrs) > 0 {
		// ResolveForUser orders default-first
		sum.SelectedAddressID = addrs[0].ID
		if addrs[0].CustomerName != "" {
			sum.CustomerName = addrs[0].CustomerName
		}
		if addrs[0].CustomerPhone != "" {
			sum.CustomerPhone = addrs[0].CustomerPhone
		}
	}
	return sum, nil
}

// SubmitRequest is the checkout form. Either AddressID points at a saved
// address or the address fields are filled in directly.
type SubmitRequest struct {
	OrderType           string     `json:"orderType"`
	AddressID           uint       `json:"addressId"`
	CustomerName        string     `json:"customerName"`
	CustomerPhone       string     `json:"customerPhone"`
	DeliveryAddress     string     `json:"deliveryAddress"`
	City                string     `json:"city"`
	State               string     `json:"state"`
	PostalCode          string     `json:"postalCode"`
	SpecialInstructions string     `json:"specialInstructions"`
	DeliveryTime        *time.Time `json:"deliveryTime"`
}

// Submit turns the session cart into a pending order. Prices come from the
// catalog, never the request; the cart stays intact until the payment
// actually succeeds.
func (s *CheckoutService) Submit(ctx context.Context, sessionID string, userID uint, req SubmitRequest) (*entity.Order, error) {
	if req.OrderType != entity.OrderTypeDelivery && req.OrderType != entity.OrderTypePickup {
		return nil, fmt.Errorf("unknown order type %q", req.OrderType)
	}

	lines, err := s.cart.Revalidate(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	u, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}

	o := &entity.Order{
		CustomerName:        strings.TrimSpace(req.CustomerName),
		CustomerEmail:       u.Email,
		CustomerPhone:       strings.TrimSpace(req.CustomerPhone),
		SpecialInstructions: req.SpecialInstructions,
		OrderType:           req.OrderType,
		DeliveryTime:        req.DeliveryTime,
		OrderDate:           time.Now(),
	}

	if req.OrderType == entity.OrderTypeDelivery {
		if strings.TrimSpace(req.DeliveryAddress) != "" {
			o.DeliveryAddress = strings.TrimSpace(req.DeliveryAddress)
			o.City = strings.TrimSpace(req.City)
			o.State = strings.TrimSpace(req.State)
			o.PostalCode = strings.TrimSpace(req.PostalCode)
			if o.City == "" || o.PostalCode == "" {
				return nil, fmt.Errorf("city and postal code are required for delivery")
			}
		} else {
			addr, err := s.addresses.SelectForCheckout(userID, req.AddressID)
			if err != nil {
				return nil, err
			}
			o.DeliveryAddress = addr.DeliveryAddress
			o.City = addr.City
			o.State = addr.State
			o.PostalCode = addr.PostalCode
			if o.CustomerName == "" {
				o.CustomerName = addr.CustomerName
			}
			if o.CustomerPhone == "" {
				o.CustomerPhone = addr.CustomerPhone
			}
		}
	}
	if o.CustomerName == "" {
		o.CustomerName = u.FullName
	}
	if o.CustomerPhone == "" {
		o.CustomerPhone = u.PhoneNumber
	}

	quote := s.pricing.Price(lines, req.OrderType)
	o.SubTotal = quote.SubTotal
	o.Tax = quote.Tax
	o.DeliveryFee = quote.DeliveryFee
	o.Total = quote.Total

	for _, l := range lines {
		o.Items = append(o.Items, entity.OrderItem{
			MenuItemID: l.ItemID,
			Name:       l.Name,
			Price:      l.UnitPrice,
			Quantity:   l.Quantity,
			Total:      l.UnitPrice.Mul(decimalFromInt(l.Quantity)).Round(2),
		})
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.orders.CreateOrder(tx, o)
	}); err != nil {
		return nil, err
	}

	// Side-save a manually typed address for next time. Best-effort.
	if req.OrderType == entity.OrderTypeDelivery && req.DeliveryAddress != "" {
		if err := s.addresses.CreateFromOrder(userID, o); err != nil {
			logSideEffect("address side-save", o.ID, err)
		}
	}

	return o, nil
}

// PaymentForm renders the hosted-checkout form for an order. Every call mints
// a fresh transaction id, so abandoning a payment page and coming back simply
// starts a new attempt.
func (s *CheckoutService) PaymentForm(orderID uint) (string, error) {
	o, err := s.orders.GetOrder(orderID)
	if err != nil {
		return "", err
	}
	if o.PaymentStatus == entity.PaymentStatusCompleted {
		return "", ErrAlreadyPaid
	}

	return s.payu.PaymentForm(PaymentFormParams{
		TxnID:       s.payu.NewTxnID(),
		Amount:      o.Total.StringFixed(2),
		ProductInfo: fmt.Sprintf("Order_%d", o.ID),
		FirstName:   o.CustomerName,
		Email:       o.CustomerEmail,
		Phone:       o.CustomerPhone,
		SuccessURL:  fmt.Sprintf("%s/api/payment/success/%d", s.baseURL, o.ID),
		FailureURL:  fmt.Sprintf("%s/api/payment/failure/%d", s.baseURL, o.ID),
	})
}

// HandlePaymentSuccess absorbs the gateway's success callback. The posted
// parameters must carry a valid signature bound to this exact order before
// any state changes; an unverifiable callback leaves the order untouched.
func (s *CheckoutService) HandlePaymentSuccess(ctx context.Context, sessionID string, orderID uint, cb CallbackParams) (*entity.Order, error) {
	o, err := s.orders.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	if !s.payu.VerifyCallback(cb) ||
		cb.ProductInfo != fmt.Sprintf("Order_%d", orderID) ||
		!strings.EqualFold(cb.Status, "success") {
		return nil, ErrUntrustedCallback
	}

	return s.completeOrder(ctx, sessionID, o, cb.TxnID)
}

// HandlePaymentFailure records a failed attempt. The cart survives so the
// user can retry.
func (s *CheckoutService) HandlePaymentFailure(orderID uint, cb CallbackParams) (*entity.Order, error) {
	o, err := s.orders.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	if !s.payu.VerifyCallback(cb) ||
		cb.ProductInfo != fmt.Sprintf("Order_%d", orderID) {
		return nil, ErrUntrustedCallback
	}

	return s.failOrder(o, cb.TxnID)
}

func (s *CheckoutService) GetOrder(id uint) (*entity.Order, error) {
	return s.orders.GetOrder(id)
}

func (s *CheckoutService) ListOrders(email string, limit int) ([]entity.Order, error) {
	return s.orders.ListByEmail(email, limit)
}
