// Package api holds the request and response shapes shared by the HTTP and
// gRPC surfaces, and the Handler that turns one into the other.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/xtding233/gem-gacha/internal/gacha"
	"github.com/xtding233/gem-gacha/internal/game"
	"github.com/xtding233/gem-gacha/internal/ledger"
	"github.com/xtding233/gem-gacha/internal/token"
)

// FlexInt decodes from a JSON number or a numeric string.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("not an integer: %q", s)
		}
		*f = FlexInt(n)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if v != float64(int(v)) {
		return fmt.Errorf("not an integer: %v", v)
	}
	*f = FlexInt(int(v))
	return nil
}

// --- Requests ---

type LoginRequest struct {
	UserID string `json:"userId"`
}

type UserRequest struct {
	UserID string `json:"userId"`
}

type DrawRequest struct {
	UserID string   `json:"userId"`
	Type   string   `json:"type"`
	Count  *FlexInt `json:"count"` // defaults to 1
}

type VolumeRequest struct {
	UserID string `json:"userId"`
	Type   string `json:"type"`
}

type EquipRequest struct {
	UserID string   `json:"userId"`
	GemID  *FlexInt `json:"gemId"`
	Action string   `json:"action"`
}

type ExtractRequest struct {
	UserID string   `json:"userId"`
	GemID  *FlexInt `json:"gemId"`
}

// --- Responses ---

// ErrorResponse is the failure envelope for every route.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type LoginResponse struct {
	Success bool   `json:"success"`
	UserID  string `json:"userId"`
	IsNew   bool   `json:"isNew"`
}

type GameDataResponse struct {
	Success bool `json:"success"`
	ledger.Account
}

type EarnResponse struct {
	Success bool `json:"success"`
	ledger.EarnResult
}

type DrawResponse struct {
	Success bool `json:"success"`
	ledger.DrawResult
}

type VolumeResponse struct {
	Success bool `json:"success"`
	ledger.VolumeResult
}

type EquipResponse struct {
	Success      bool  `json:"success"`
	EquippedGems []int `json:"equippedGems"`
}

type ExtractResponse struct {
	Success bool `json:"success"`
	ledger.ExtractResult
}

// DrawRate describes one draw type on offer.
type DrawRate struct {
	Type    string        `json:"type"`
	Cost    token.Price   `json:"cost"`
	Weights gacha.Weights `json:"weights"`
}

type RatesResponse struct {
	Success bool       `json:"success"`
	Version string     `json:"version,omitempty"`
	Rates   []DrawRate `json:"rates"`
}

type GemsResponse struct {
	Success bool       `json:"success"`
	Gems    []game.Gem `json:"gems"`
}

// ShopEntry is one volume priced against a player's balance.
type ShopEntry struct {
	Volume    string      `json:"volume"`
	Price     token.Price `json:"price"`
	Owned     bool        `json:"owned"`
	CanAfford bool        `json:"canAfford"`
	Shortfall token.Price `json:"shortfall"`
}

type ShopResponse struct {
	Success bool        `json:"success"`
	Entries []ShopEntry `json:"entries"`
}
