package api

import (
	"fmt"

	"github.com/xtding233/gem-gacha/internal/ledger"
)

// Handler validates decoded requests and runs them against the ledger.
// Both transports call it so they share one set of rules.
type Handler struct {
	ledger  *ledger.Service
	catalog ledger.CatalogSource
}

func NewHandler(svc *ledger.Service, catalog ledger.CatalogSource) *Handler {
	return &Handler{ledger: svc, catalog: catalog}
}

// Stats exposes ledger activity for health reporting.
func (h *Handler) Stats() ledger.Stats { return h.ledger.Stats() }

// Version returns the catalog version in effect.
func (h *Handler) Version() string { return h.catalog.Catalog().Version }

func (h *Handler) Login(req LoginRequest) LoginResponse {
	id, created := h.ledger.Login(req.UserID)
	return LoginResponse{Success: true, UserID: id, IsNew: created}
}

func (h *Handler) GameData(userID string) (GameDataResponse, error) {
	acct, err := h.ledger.GameData(userID)
	if err != nil {
		return GameDataResponse{}, err
	}
	return GameDataResponse{Success: true, Account: acct}, nil
}

func (h *Handler) EarnPoints(req UserRequest) (EarnResponse, error) {
	res, err := h.ledger.EarnPoints(req.UserID)
	if err != nil {
		return EarnResponse{}, err
	}
	return EarnResponse{Success: true, EarnResult: res}, nil
}

func (h *Handler) Draw(req DrawRequest) (DrawResponse, error) {
	count := 1
	if req.Count != nil {
		count = int(*req.Count)
	}
	res, err := h.ledger.DrawGacha(req.UserID, req.Type, count)
	if err != nil {
		return DrawResponse{}, err
	}
	return DrawResponse{Success: true, DrawResult: res}, nil
}

func (h *Handler) BuyVolume(req VolumeRequest) (VolumeResponse, error) {
	res, err := h.ledger.BuyVolume(req.UserID, req.Type)
	if err != nil {
		return VolumeResponse{}, err
	}
	return VolumeResponse{Success: true, VolumeResult: res}, nil
}

func (h *Handler) EquipGem(req EquipRequest) (EquipResponse, error) {
	if req.GemID == nil {
		return EquipResponse{}, fmt.Errorf("%w: gemId is required", ledger.ErrInvalidArgument)
	}
	eq, err := h.ledger.EquipGem(req.UserID, int(*req.GemID), req.Action)
	if err != nil {
		return EquipResponse{}, err
	}
	return EquipResponse{Success: true, EquippedGems: eq}, nil
}

func (h *Handler) ExtractGem(req ExtractRequest) (ExtractResponse, error) {
	if req.GemID == nil {
		return ExtractResponse{}, fmt.Errorf("%w: gemId is required", ledger.ErrInvalidArgument)
	}
	res, err := h.ledger.ExtractGem(req.UserID, int(*req.GemID))
	if err != nil {
		return ExtractResponse{}, err
	}
	return ExtractResponse{Success: true, ExtractResult: res}, nil
}

// Rates lists every draw type with its unit cost and weight table.
func (h *Handler) Rates() RatesResponse {
	cat := h.catalog.Catalog()
	out := RatesResponse{Success: true, Version: cat.Version}
	for _, t := range cat.DrawTypes() {
		cost, _ := cat.DrawCost(t)
		w, _ := cat.Engine.Weights(t)
		out.Rates = append(out.Rates, DrawRate{Type: t, Cost: cost, Weights: w})
	}
	return out
}

func (h *Handler) Gems() GemsResponse {
	return GemsResponse{Success: true, Gems: h.catalog.Catalog().Gems()}
}

// Shop prices every volume against the player's current balance.
func (h *Handler) Shop(userID string) (ShopResponse, error) {
	acct, err := h.ledger.GameData(userID)
	if err != nil {
		return ShopResponse{}, err
	}
	shop := h.catalog.Catalog().Shop
	out := ShopResponse{Success: true, Entries: []ShopEntry{}}
	for _, name := range shop.Names() {
		q, _ := shop.Quote(name, acct.Balance())
		out.Entries = append(out.Entries, ShopEntry{
			Volume:    name,
			Price:     q.Offer.Price,
			Owned:     acct.Volumes[name],
			CanAfford: q.CanAfford && !acct.Volumes[name],
			Shortfall: q.Shortfall,
		})
	}
	return out, nil
}
