package ledger

import (
	"github.com/xtding233/gem-gacha/internal/token"
)

// Account is one player's mutable state.
//
// Invariants: Points, Prisms >= 0; Inventory never stores a count <= 0;
// every equipped id is owned. Equipping does not consume the gem.
type Account struct {
	UserID       string          `json:"userId"`
	Points       int64           `json:"points"`
	Prisms       int64           `json:"prisms"`
	Inventory    map[int]int     `json:"inventory"`
	Volumes      map[string]bool `json:"volumes"`
	EquippedGems []int           `json:"equippedGems"`
}

func newAccount(userID string, start token.Price, volumes []string) Account {
	a := Account{
		UserID:       userID,
		Points:       start.Points,
		Prisms:       start.Prisms,
		Inventory:    map[int]int{},
		Volumes:      make(map[string]bool, len(volumes)),
		EquippedGems: []int{},
	}
	for _, v := range volumes {
		a.Volumes[v] = false
	}
	return a
}

// Clone returns a deep copy.
func (a Account) Clone() Account {
	out := a
	out.Inventory = cloneInventory(a.Inventory)
	out.Volumes = make(map[string]bool, len(a.Volumes))
	for k, v := range a.Volumes {
		out.Volumes[k] = v
	}
	out.EquippedGems = append([]int{}, a.EquippedGems...)
	return out
}

// Balance returns both currencies as a price.
func (a *Account) Balance() token.Price {
	return token.Price{Points: a.Points, Prisms: a.Prisms}
}

func (a *Account) debit(p token.Price) {
	a.Points -= p.Points
	a.Prisms -= p.Prisms
}

// Owns reports whether at least one gemID is held.
func (a *Account) Owns(gemID int) bool {
	return a.Inventory[gemID] >= 1
}

func (a *Account) addGem(gemID int) {
	a.Inventory[gemID]++
}

// removeGem drops one copy, deleting the key at zero. It reports whether the last copy went.
func (a *Account) removeGem(gemID int) bool {
	n := a.Inventory[gemID] - 1
	if n <= 0 {
		delete(a.Inventory, gemID)
		return true
	}
	a.Inventory[gemID] = n
	return false
}

func (a *Account) equippedIndex(gemID int) int {
	for i, id := range a.EquippedGems {
		if id == gemID {
			return i
		}
	}
	return -1
}

func (a *Account) equippedCount(gemID int) int {
	n := 0
	for _, id := range a.EquippedGems {
		if id == gemID {
			n++
		}
	}
	return n
}

func cloneInventory(in map[int]int) map[int]int {
	out := make(map[int]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
