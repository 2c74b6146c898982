package configs

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Port      string
	DBDriver  string
	DBSource  string
	JWTSecret string
	JWTTTL    time.Duration

	RedisAddr string
	CartTTL   time.Duration

	AppBaseURL string

	PayUMerchantKey  string
	PayUMerchantSalt string
	PayUBaseURL      string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	TaxRate            decimal.Decimal
	DeliveryFee        decimal.Decimal
	ReservationDeposit decimal.Decimal

	// Fuzzy address recovery reassigns orphaned address rows to the current
	// user by name/phone match. It rewrites ownership, so it can be switched
	// off entirely.
	FuzzyAddressRecovery bool
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, reading environment directly")
	}

	return &Config{
		Port:      getEnv("PORT", "8000"),
		DBDriver:  getEnv("DB_DRIVER", "sqlite"),
		DBSource:  getEnv("DB_SOURCE", "cafe.db"),
		JWTSecret: getEnv("JWT_SECRET", "changeme"),
		JWTTTL:    24 * time.Hour,

		RedisAddr: getEnv("REDIS_ADDR", ""),
		CartTTL:   30 * 24 * time.Hour,

		AppBaseURL: getEnv("APP_BASE_URL", "http://localhost:8000"),

		PayUMerchantKey:  os.Getenv("PAYU_MERCHANT_KEY"),
		PayUMerchantSalt: os.Getenv("PAYU_MERCHANT_SALT"),
		PayUBaseURL:      getEnv("PAYU_BASE_URL", "https://test.payu.in/_payment"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     getEnv("SMTP_FROM", "no-reply@allhourscafe.local"),

		TaxRate:            getDecimalEnv("TAX_RATE", "0.05"),
		DeliveryFee:        getDecimalEnv("DELIVERY_FEE", "30.00"),
		ReservationDeposit: getDecimalEnv("RESERVATION_DEPOSIT", "500.00"),

		FuzzyAddressRecovery: getEnv("ADDRESS_FUZZY_RECOVERY", "true") == "true",
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getDecimalEnv(key, fallback string) decimal.Decimal {
	raw := getEnv(key, fallback)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		log.Printf("bad decimal for %s=%q, using %s", key, raw, fallback)
		return decimal.RequireFromString(fallback)
	}
	return d
}
