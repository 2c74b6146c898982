package services

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/karanxgill/AllHoursCafe/entity"
	"github.com/karanxgill/AllHoursCafe/pkg/kv"
	"github.com/karanxgill/AllHoursCafe/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Category{}, &entity.MenuItem{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.SavedAddress{},
		&entity.Reservation{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, name string) *entity.User {
	t.Helper()
	u := &entity.User{Email: email, Password: "x", FullName: name, Role: "customer"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedMenuItem(t *testing.T, db *gorm.DB, name, price string) *entity.MenuItem {
	t.Helper()
	cat := &entity.Category{Name: "Mains", IsActive: true}
	require.NoError(t, db.FirstOrCreate(cat, entity.Category{Name: "Mains"}).Error)
	m := &entity.MenuItem{
		Name:       name,
		Price:      decimal.RequireFromString(price),
		IsActive:   true,
		CategoryID: cat.ID,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

type testEnv struct {
	db           *gorm.DB
	store        *kv.MemoryStore
	cart         *CartService
	pricing      *PricingEngine
	addresses    *AddressService
	checkout     *CheckoutService
	reservations *ReservationService
	payu         *PayUService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	store := kv.NewMemoryStore()

	userRepo := repository.NewUserRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	menuRepo := repository.NewMenuRepository(db)

	payu := NewPayUService("testkey", "testsalt", "https://test.payu.in/_payment")
	pricing := NewPricingEngine(decimal.RequireFromString("0.05"), decimal.RequireFromString("30.00"))
	cart := NewCartService(store, menuRepo, 0)
	addresses := NewAddressService(db, addressRepo, userRepo, true)
	checkout := NewCheckoutService(db, cart, pricing, addresses, orderRepo, userRepo, payu, nil, nil, "http://localhost:8000")
	reservations := NewReservationService(db, reservationRepo, payu, nil, decimal.RequireFromString("500.00"), "http://localhost:8000")

	return &testEnv{
		db:           db,
		store:        store,
		cart:         cart,
		pricing:      pricing,
		addresses:    addresses,
		checkout:     checkout,
		reservations: reservations,
		payu:         payu,
	}
}

// signedCallback produces callback params carrying a valid response hash, the
// way the gateway would sign them.
func signedCallback(p *PayUService, status, email, firstName, productInfo, amount, txnID string) CallbackParams {
	payload := fmt.Sprintf("%s|%s|||||||||||%s|%s|%s|%s|%s|%s",
		p.Salt, status, email, firstName, productInfo, amount, txnID, p.Key)
	sum := sha512.Sum512([]byte(payload))
	return CallbackParams{
		Status:      status,
		Email:       email,
		FirstName:   firstName,
		ProductInfo: productInfo,
		Amount:      amount,
		TxnID:       txnID,
		Hash:        hex.EncodeToString(sum[:]),
	}
}
