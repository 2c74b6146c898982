package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/karanxgill/AllHoursCafe/pkg/kv"
	"github.com/karanxgill/AllHoursCafe/repository"
)

var ErrUnknownMenuItem = errors.New("cart references an unknown or inactive menu item")

// CartLine is one entry in the session cart. Name, price and image are
// snapshots taken from the catalog when the line is written; they are
// re-snapshotted on every write so a stale client cannot set its own prices.
type CartLine struct {
	ItemID    uint            `json:"itemId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	ImageUrl  string          `json:"imageUrl"`
}

// CartService keeps one cart per anonymous session in the key-value store.
// Carts live outside the database: they are scratch state until checkout.
type CartService struct {
	store kv.Store
	menu  *repository.MenuRepository
	ttl   time.Duration
}

func NewCartService(store kv.Store, menu *repository.MenuRepository, ttl time.Duration) *CartService {
	return &CartService{store: store, menu: menu, ttl: ttl}
}

func cartKey(sessionID string) string { return "cart:" + sessionID }

// Get returns the cart for the session. A missing or unreadable blob is an
// empty cart, never an error; a broken cart must not block browsing.
func (s *CartService) Get(ctx context.Context, sessionID string) []CartLine {
	raw, err := s.store.Get(ctx, cartKey(sessionID))
	if err != nil || raw == "" {
		if err != nil {
			log.Printf("cart read failed for session %s: %v", sessionID, err)
		}
		return []CartLine{}
	}

	var lines []CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		log.Printf("discarding corrupt cart for session %s: %v", sessionID, err)
		return []CartLine{}
	}
	return lines
}

// Set replaces the whole cart with the posted lines. Every line is validated
// against the catalog and re-snapshotted; client-sent names and prices are
// ignored. Duplicate item ids collapse, last one wins.
func (s *CartService) Set(ctx context.Context, sessionID string, lines []CartLine) ([]CartLine, error) {
	if len(lines) == 0 {
		return []CartLine{}, s.store.Del(ctx, cartKey(sessionID))
	}

	ids := make([]uint, 0, len(lines))
	for _, l := range lines {
		if l.Quantity < 1 || l.Quantity > 99 {
			return nil, fmt.Errorf("quantity %d out of range", l.Quantity)
		}
		ids = append(ids, l.ItemID)
	}
	items, err := s.menu.GetByIDs(ids)
	if err != nil {
		return nil, err
	}

	out := make([]CartLine, 0, len(lines))
	seen := make(map[uint]int, len(lines))
	for _, l := range lines {
		m, ok := items[l.ItemID]
		if !ok {
			return nil, ErrUnknownMenuItem
		}
		fresh := CartLine{
			ItemID:    l.ItemID,
			Name:      m.Name,
			UnitPrice: m.Price,
			Quantity:  l.Quantity,
			ImageUrl:  m.ImageUrl,
		}
		if i, dup := seen[l.ItemID]; dup {
			out[i] = fresh
			continue
		}
		seen[l.ItemID] = len(out)
		out = append(out, fresh)
	}
	return out, s.write(ctx, sessionID, out)
}

// SetItem writes one line. Quantity 0 removes the line; quantities are capped
// to keep a single cart from holding absurd amounts.
func (s *CartService) SetItem(ctx context.Context, sessionID string, itemID uint, quantity int) ([]CartLine, error) {
	if quantity < 0 || quantity > 99 {
		return nil, fmt.Errorf("quantity %d out of range", quantity)
	}

	lines := s.Get(ctx, sessionID)

	if quantity == 0 {
		kept := lines[:0]
		for _, l := range lines {
			if l.ItemID != itemID {
				kept = append(kept, l)
			}
		}
		return kept, s.write(ctx, sessionID, kept)
	}

	items, err := s.menu.GetByIDs([]uint{itemID})
	if err != nil {
		return nil, err
	}
	m, ok := items[itemID]
	if !ok {
		return nil, ErrUnknownMenuItem
	}

	updated := false
	for i := range lines {
		if lines[i].ItemID == itemID {
			lines[i].Quantity = quantity
			lines[i].Name = m.Name
			lines[i].UnitPrice = m.Price
			lines[i].ImageUrl = m.ImageUrl
			updated = true
			break
		}
	}
	if !updated {
		lines = append(lines, CartLine{
			ItemID:    itemID,
			Name:      m.Name,
			UnitPrice: m.Price,
			Quantity:  quantity,
			ImageUrl:  m.ImageUrl,
		})
	}
	return lines, s.write(ctx, sessionID, lines)
}

// Revalidate re-snapshots every line against the live catalog and drops lines
// whose item has vanished or gone inactive. Used right before pricing.
func (s *CartService) Revalidate(ctx context.Context, sessionID string) ([]CartLine, error) {
	lines := s.Get(ctx, sessionID)
	if len(lines) == 0 {
		return lines, nil
	}

	ids := make([]uint, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ItemID)
	}
	items, err := s.menu.GetByIDs(ids)
	if err != nil {
		return nil, err
	}

	kept := lines[:0]
	for _, l := range lines {
		m, ok := items[l.ItemID]
		if !ok {
			log.Printf("dropping cart line for missing item %d", l.ItemID)
			continue
		}
		l.Name = m.Name
		l.UnitPrice = m.Price
		l.ImageUrl = m.ImageUrl
		kept = append(kept, l)
	}
	if err := s.write(ctx, sessionID, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	return s.store.Del(ctx, cartKey(sessionID))
}

func (s *CartService) write(ctx context.Context, sessionID string, lines []CartLine) error {
	if len(lines) == 0 {
		return s.store.Del(ctx, cartKey(sessionID))
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, cartKey(sessionID), string(raw), s.ttl)
}
