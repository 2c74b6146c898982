package services

import (
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/karanxgill/AllHoursCafe/entity"
	"github.com/karanxgill/AllHoursCafe/repository"
)

var (
	// ErrNoAddress means the user genuinely has no saved address and must add
	// one before checkout can proceed.
	ErrNoAddress = errors.New("no saved address for user")
	// ErrAddressLookup means the address book could not be read at all;
	// callers must not treat it as "add an address".
	ErrAddressLookup = errors.New("address lookup failed")
)

type AddressService struct {
	db    *gorm.DB
	repo  *repository.AddressRepository
	users *repository.UserRepository
	fuzzy bool
}

func NewAddressService(db *gorm.DB, repo *repository.AddressRepository, users *repository.UserRepository, fuzzyRecovery bool) *AddressService {
	return &AddressService{db: db, repo: repo, users: users, fuzzy: fuzzyRecovery}
}

// ResolveForUser loads the user's address book, falling back to fuzzy
// ownership recovery when it is empty. Recovery looks for address rows whose
// contact name or phone matches the account and re-homes them onto the
// account; historical imports left rows attached to defunct user ids.
func (s *AddressService) ResolveForUser(userID uint) ([]entity.SavedAddress, error) {
	rows, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, errors.Join(ErrAddressLookup, err)
	}
	if len(rows) > 0 {
		return rows, nil
	}

	if s.fuzzy {
		adopted, err := s.recoverOrphaned(userID)
		if err != nil {
			return nil, errors.Join(ErrAddressLookup, err)
		}
		if adopted > 0 {
			rows, err = s.repo.ListByUser(userID)
			if err != nil {
				return nil, errors.Join(ErrAddressLookup, err)
			}
			if len(rows) > 0 {
				return rows, nil
			}
		}
	}

	return nil, ErrNoAddress
}

func (s *AddressService) recoverOrphaned(userID uint) (int, error) {
	u, err := s.users.FindByID(userID)
	if err != nil {
		return 0, err
	}

	all, err := s.repo.ListAll()
	if err != nil {
		return 0, err
	}

	name := strings.ToLower(strings.TrimSpace(u.FullName))
	phone := strings.TrimSpace(u.PhoneNumber)

	var ids []uint
	for _, a := range all {
		if a.UserID == userID {
			continue
		}
		candidate := strings.ToLower(strings.TrimSpace(a.CustomerName))
		nameHit := name != "" && candidate != "" &&
			(strings.Contains(candidate, name) || strings.Contains(name, candidate))
		phoneHit := phone != "" && a.CustomerPhone == phone
		if nameHit || phoneHit {
			ids = append(ids, a.ID)
		}
	}
	if len(ids) == 0 {
		return 0, nil
	}

	if err := s.repo.AdoptOwnership(s.db, ids, userID); err != nil {
		return 0, err
	}
	log.Printf("adopted %d orphaned address rows for user %d", len(ids), userID)
	return len(ids), nil
}

// SelectForCheckout picks the address to ship to: the explicitly selected one
// if given, otherwise the default, otherwise the first saved address.
func (s *AddressService) SelectForCheckout(userID, selectedID uint) (*entity.SavedAddress, error) {
	if selectedID != 0 {
		a, err := s.repo.GetForUser(selectedID, userID)
		if err == nil {
			return a, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Join(ErrAddressLookup, err)
		}
		// fall through: a stale selection degrades to the default
	}

	rows, err := s.ResolveForUser(userID)
	if err != nil {
		return nil, err
	}
	return &rows[0], nil
}

func (s *AddressService) List(userID uint) ([]entity.SavedAddress, error) {
	return s.repo.ListByUser(userID)
}

func (s *AddressService) Get(id, userID uint) (*entity.SavedAddress, error) {
	return s.repo.GetForUser(id, userID)
}

// Create saves a new address. The first address a user saves becomes the
// default automatically; an explicit default demotes any existing one.
func (s *AddressService) Create(userID uint, a *entity.SavedAddress) error {
	a.UserID = userID

	count, err := s.repo.CountByUser(userID)
	if err != nil {
		return err
	}
	if count == 0 {
		a.IsDefault = true
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Create(tx, a); err != nil {
			return err
		}
		if a.IsDefault {
			return s.repo.ClearDefaults(tx, userID, a.ID)
		}
		return nil
	})
}

func (s *AddressService) Update(userID uint, a *entity.SavedAddress) error {
	existing, err := s.repo.GetForUser(a.ID, userID)
	if err != nil {
		return err
	}
	a.UserID = userID
	a.CreatedAt = existing.CreatedAt

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Save(tx, a); err != nil {
			return err
		}
		if a.IsDefault {
			return s.repo.ClearDefaults(tx, userID, a.ID)
		}
		return nil
	})
}

func (s *AddressService) SetDefault(id, userID uint) error {
	a, err := s.repo.GetForUser(id, userID)
	if err != nil {
		return err
	}
	a.IsDefault = true

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Save(tx, a); err != nil {
			return err
		}
		return s.repo.ClearDefaults(tx, userID, a.ID)
	})
}

// Delete removes an address. If the default was deleted, the most recently
// touched remaining address is promoted so the user always has a default
// while any addresses exist.
func (s *AddressService) Delete(id, userID uint) error {
	a, err := s.repo.GetForUser(id, userID)
	if err != nil {
		return err
	}
	wasDefault := a.IsDefault

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Delete(tx, id, userID); err != nil {
			return err
		}
		if !wasDefault {
			return nil
		}
		var next entity.SavedAddress
		err := tx.Where("user_id = ?", userID).
			Order("updated_at DESC").First(&next).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		next.IsDefault = true
		return s.repo.Save(tx, &next)
	})
}

// CreateFromOrder copies the delivery address of a placed order into the
// address book, skipping silently when an identical entry already exists.
// Best-effort: checkout never fails because of this.
func (s *AddressService) CreateFromOrder(userID uint, o *entity.Order) error {
	if o.OrderType != entity.OrderTypeDelivery || o.DeliveryAddress == "" {
		return nil
	}
	_, err := s.repo.FindMatching(userID, o.DeliveryAddress, o.City, o.PostalCode)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return s.Create(userID, &entity.SavedAddress{
		Name:            "Recent order",
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		DeliveryAddress: o.DeliveryAddress,
		City:            o.City,
		State:           o.State,
		PostalCode:      o.PostalCode,
	})
}
