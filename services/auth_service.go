package services

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/karanxgill/AllHoursCafe/entity"
	"github.com/karanxgill/AllHoursCafe/repository"
	"github.com/karanxgill/AllHoursCafe/utils"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type AuthService struct {
	users     *repository.UserRepository
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(users *repository.UserRepository, jwtSecret string, jwtTTL time.Duration) *AuthService {
	return &AuthService{users: users, jwtSecret: jwtSecret, jwtTTL: jwtTTL}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName" binding:"required"`
}

func (s *AuthService) Register(req RegisterRequest) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	count, err := s.users.CountByEmail(email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Email:    email,
		Password: string(hashed),
		FullName: strings.TrimSpace(req.FullName),
		Role:     "customer",
	}
	if err := s.users.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login checks the credentials and issues a token. Lookup failure and a bad
// password produce the same error so the endpoint cannot be used to probe
// for accounts.
func (s *AuthService) Login(email, password string) (string, *entity.User, error) {
	u, err := s.users.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(u.ID, u.Email, u.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *AuthService) Profile(userID uint) (*entity.User, error) {
	return s.users.FindByID(userID)
}

type ProfileUpdate struct {
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postalCode"`
}

func (s *AuthService) UpdateProfile(userID uint, upd ProfileUpdate) (*entity.User, error) {
	updates := map[string]any{
		"full_name":    strings.TrimSpace(upd.FullName),
		"phone_number": strings.TrimSpace(upd.PhoneNumber),
		"address":      strings.TrimSpace(upd.Address),
		"city":         strings.TrimSpace(upd.City),
		"state":        strings.TrimSpace(upd.State),
		"postal_code":  strings.TrimSpace(upd.PostalCode),
	}
	if err := s.users.Update(userID, updates); err != nil {
		return nil, err
	}
	return s.users.FindByID(userID)
}
