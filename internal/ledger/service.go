package ledger

import (
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/xtding233/gem-gacha/internal/gacha"
	"github.com/xtding233/gem-gacha/internal/game"
)

// Equip actions.
const (
	ActionEquip   = "equip"
	ActionUnequip = "unequip"
)

// DefaultMaxDrawCount bounds count on a single draw request.
const DefaultMaxDrawCount = 100

// MaxDrawCountLimit is the highest per-request cap WithMaxDrawCount accepts.
// It keeps unit cost times count far from int64 overflow.
const MaxDrawCountLimit = 10000

// CatalogSource yields the game catalog in effect.
type CatalogSource interface {
	Catalog() *game.Catalog
}

// Service applies gameplay operations to accounts. Every mutating call goes
// through Store.Update, so preconditions are checked on the same snapshot
// that gets committed.
type Service struct {
	store        Store
	catalog      CatalogSource
	rng          gacha.RandomSource
	newID        func() string
	maxDrawCount int
	stats        counters
}

type Option func(*Service)

// WithRNG injects the random source used for draws and earnings.
func WithRNG(rng gacha.RandomSource) Option {
	return func(s *Service) { s.rng = rng }
}

// WithIDGenerator replaces uuid-based user id minting.
func WithIDGenerator(f func() string) Option {
	return func(s *Service) { s.newID = f }
}

// WithMaxDrawCount bounds count on DrawGacha; n <= 0 keeps the default and
// n is clamped to MaxDrawCountLimit.
func WithMaxDrawCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxDrawCount = min(n, MaxDrawCountLimit)
		}
	}
}

func NewService(store Store, catalog CatalogSource, opts ...Option) *Service {
	s := &Service{
		store:        store,
		catalog:      catalog,
		rng:          gacha.DefaultRNG(),
		newID:        func() string { return uuid.New().String() },
		maxDrawCount: DefaultMaxDrawCount,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Login returns userID when it names a known account; otherwise it mints a
// fresh id and creates an account with starting balances. It never fails.
func (s *Service) Login(userID string) (id string, created bool) {
	s.stats.logins.Add(1)
	if userID != "" && s.store.Exists(userID) {
		return userID, false
	}
	cat := s.catalog.Catalog()
	for {
		id = s.newID()
		if err := s.store.Create(newAccount(id, cat.Start, cat.Shop.Names())); err == nil {
			break
		}
	}
	s.stats.accountsCreated.Add(1)
	log.WithFields(log.Fields{"user_id": id, "requested": userID}).Info("account created")
	return id, true
}

// GameData returns a snapshot of the account.
func (s *Service) GameData(userID string) (Account, error) {
	return s.store.Get(userID)
}

// EarnResult is the outcome of EarnPoints.
type EarnResult struct {
	EarnedPoints int64 `json:"earnedPoints"`
	PrismsEarned int64 `json:"prismsEarned"`
	NewPoints    int64 `json:"newPoints"`
	NewPrisms    int64 `json:"newPrisms"`
}

// EarnPoints credits a random amount of points and, sometimes, a prism.
func (s *Service) EarnPoints(userID string) (EarnResult, error) {
	rule := s.catalog.Catalog().Earn
	var res EarnResult
	acct, err := s.store.Update(userID, func(a *Account) error {
		res.EarnedPoints = rule.Min + int64(s.rng.IntN(int(rule.Max-rule.Min+1)))
		res.PrismsEarned = 0
		if s.rng.Float64() < rule.PrismChance {
			res.PrismsEarned = rule.PrismAmount
		}
		a.Points += res.EarnedPoints
		a.Prisms += res.PrismsEarned
		return nil
	})
	if err != nil {
		return EarnResult{}, err
	}
	res.NewPoints, res.NewPrisms = acct.Points, acct.Prisms
	s.stats.pointsEarned.Add(res.EarnedPoints)
	s.stats.prismsEarned.Add(res.PrismsEarned)
	return res, nil
}

// DrawnGem is one draw outcome as reported to the player.
type DrawnGem struct {
	GemID     int         `json:"gemId"`
	Grade     gacha.Grade `json:"grade"`
	GradeName string      `json:"gradeName"`
	Name      string      `json:"name,omitempty"`
	Glyph     string      `json:"glyph,omitempty"`
}

// DrawResult is the outcome of DrawGacha.
type DrawResult struct {
	Results      []DrawnGem  `json:"results"`
	NewPoints    int64       `json:"newPoints"`
	NewPrisms    int64       `json:"newPrisms"`
	NewInventory map[int]int `json:"newInventory"`
}

// DrawGacha charges count draws of drawType once, then draws count gems.
func (s *Service) DrawGacha(userID, drawType string, count int) (DrawResult, error) {
	cat := s.catalog.Catalog()
	unit, ok := cat.DrawCost(drawType)
	if !ok {
		return DrawResult{}, fmt.Errorf("%w: unknown draw type %q", ErrInvalidArgument, drawType)
	}
	if count < 1 || count > s.maxDrawCount {
		return DrawResult{}, fmt.Errorf("%w: count must be between 1 and %d", ErrInvalidArgument, s.maxDrawCount)
	}
	total := unit.ForDraws(count)

	var results []DrawnGem
	acct, err := s.store.Update(userID, func(a *Account) error {
		if !total.CoveredBy(a.Balance()) {
			return fmt.Errorf("%w: %s needed, short by %s", ErrInsufficientFunds, total, total.Shortfall(a.Balance()))
		}
		a.debit(total)
		results = make([]DrawnGem, 0, count)
		for i := 0; i < count; i++ {
			r, err := cat.Engine.Draw(drawType, s.rng)
			if err != nil {
				return err
			}
			a.addGem(r.GemID)
			dg := DrawnGem{GemID: r.GemID, Grade: r.Grade, GradeName: r.Grade.DisplayName()}
			if gem, ok := cat.Gem(r.GemID); ok {
				dg.Name, dg.Glyph = gem.Name, gem.Glyph
			}
			results = append(results, dg)
		}
		return nil
	})
	if err != nil {
		return DrawResult{}, err
	}

	s.stats.draws.Add(int64(count))
	s.stats.pointsSpent.Add(total.Points)
	s.stats.prismsSpent.Add(total.Prisms)
	log.WithFields(log.Fields{"user_id": userID, "type": drawType, "count": count}).Debug("gacha draw")

	return DrawResult{
		Results:      results,
		NewPoints:    acct.Points,
		NewPrisms:    acct.Prisms,
		NewInventory: acct.Inventory,
	}, nil
}

// VolumeResult is the outcome of BuyVolume.
type VolumeResult struct {
	Volumes map[string]bool `json:"volumes"`
	Points  int64           `json:"points"`
	Prisms  int64           `json:"prisms"`
}

// BuyVolume purchases a one-time volume upgrade.
func (s *Service) BuyVolume(userID, volume string) (VolumeResult, error) {
	offer, ok := s.catalog.Catalog().Shop.Lookup(volume)
	if !ok {
		return VolumeResult{}, fmt.Errorf("%w: unknown volume %q", ErrInvalidArgument, volume)
	}
	acct, err := s.store.Update(userID, func(a *Account) error {
		if a.Volumes[volume] {
			return fmt.Errorf("%w: %s", ErrAlreadyOwned, volume)
		}
		if !offer.Price.CoveredBy(a.Balance()) {
			return fmt.Errorf("%w: %s costs %s, short by %s", ErrInsufficientFunds, volume, offer.Price, offer.Price.Shortfall(a.Balance()))
		}
		a.debit(offer.Price)
		a.Volumes[volume] = true
		return nil
	})
	if err != nil {
		return VolumeResult{}, err
	}
	s.stats.volumesSold.Add(1)
	s.stats.pointsSpent.Add(offer.Price.Points)
	s.stats.prismsSpent.Add(offer.Price.Prisms)
	log.WithFields(log.Fields{"user_id": userID, "volume": volume}).Info("volume purchased")
	return VolumeResult{Volumes: acct.Volumes, Points: acct.Points, Prisms: acct.Prisms}, nil
}

// EquipGem equips or unequips an owned gem and returns the equipped list.
func (s *Service) EquipGem(userID string, gemID int, action string) ([]int, error) {
	if action != ActionEquip && action != ActionUnequip {
		return nil, fmt.Errorf("%w: action must be %q or %q", ErrInvalidArgument, ActionEquip, ActionUnequip)
	}
	slots := s.catalog.Catalog().EquipSlots
	acct, err := s.store.Update(userID, func(a *Account) error {
		if !a.Owns(gemID) {
			return fmt.Errorf("%w: gem %d", ErrNotOwned, gemID)
		}
		if action == ActionEquip {
			if len(a.EquippedGems) >= slots {
				return ErrSlotFull
			}
			if a.equippedCount(gemID) >= a.Inventory[gemID] {
				return fmt.Errorf("%w: every copy of gem %d is already equipped", ErrNotOwned, gemID)
			}
			a.EquippedGems = append(a.EquippedGems, gemID)
			return nil
		}
		i := a.equippedIndex(gemID)
		if i < 0 {
			return fmt.Errorf("%w: gem %d", ErrNotEquipped, gemID)
		}
		a.EquippedGems = append(a.EquippedGems[:i], a.EquippedGems[i+1:]...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return acct.EquippedGems, nil
}

// ExtractResult is the outcome of ExtractGem.
type ExtractResult struct {
	PrismReward  int64       `json:"prismReward"`
	NewPrisms    int64       `json:"newPrisms"`
	NewInventory map[int]int `json:"newInventory"`
}

// ExtractGem destroys one copy of a gem for prisms. Equipped entries beyond
// the copies left are unequipped.
func (s *Service) ExtractGem(userID string, gemID int) (ExtractResult, error) {
	reward := s.catalog.Catalog().ExtractReward(gemID)
	acct, err := s.store.Update(userID, func(a *Account) error {
		if !a.Owns(gemID) {
			return fmt.Errorf("%w: gem %d", ErrNotOwned, gemID)
		}
		a.removeGem(gemID)
		for a.equippedCount(gemID) > a.Inventory[gemID] {
			i := a.equippedIndex(gemID)
			a.EquippedGems = append(a.EquippedGems[:i], a.EquippedGems[i+1:]...)
		}
		a.Prisms += reward
		return nil
	})
	if err != nil {
		return ExtractResult{}, err
	}
	s.stats.extractions.Add(1)
	s.stats.prismsEarned.Add(reward)
	log.WithFields(log.Fields{"user_id": userID, "gem_id": gemID, "reward": reward}).Debug("gem extracted")
	return ExtractResult{PrismReward: reward, NewPrisms: acct.Prisms, NewInventory: acct.Inventory}, nil
}
