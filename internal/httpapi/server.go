// Package httpapi serves the game over JSON HTTP.
package httpapi

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/xtding233/gem-gacha/internal/api"
)

type server struct {
	h *api.Handler
}

// NewHandler returns the full route tree wrapped in CORS, panic recovery
// and request logging.
func NewHandler(h *api.Handler, corsOrigin string) http.Handler {
	s := &server{h: h}
	mux := http.NewServeMux()
	s.registerRoutes(mux)
	return logRequests(recoverPanics(cors(corsOrigin, mux)))
}

func (s *server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", s.health)

	mux.HandleFunc("POST /api/user/login", s.login)
	mux.HandleFunc("GET /api/user/gamedata/{userId}", s.gameData)
	mux.HandleFunc("GET /api/user/shop/{userId}", s.shop)
	mux.HandleFunc("POST /api/user/earn-points", s.earnPoints)
	mux.HandleFunc("POST /api/user/buy-volume", s.buyVolume)
	mux.HandleFunc("POST /api/user/equip-gem", s.equipGem)
	mux.HandleFunc("POST /api/user/extract-gem", s.extractGem)

	mux.HandleFunc("POST /api/gacha/draw", s.draw)
	mux.HandleFunc("GET /api/gacha/rates", s.rates)
	mux.HandleFunc("GET /api/gems", s.gems)
}

func (s *server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.h.Version(),
		"stats":   s.h.Stats(),
	})
}

// login never fails: an unreadable body is treated as a request without userId.
func (s *server) login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := decode(w, r, &req); err != nil {
		log.WithError(err).Debug("login body ignored")
		req = api.LoginRequest{}
	}
	writeJSON(w, http.StatusOK, s.h.Login(req))
}

func (s *server) gameData(w http.ResponseWriter, r *http.Request) {
	res, err := s.h.GameData(r.PathValue("userId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) shop(w http.ResponseWriter, r *http.Request) {
	res, err := s.h.Shop(r.PathValue("userId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) earnPoints(w http.ResponseWriter, r *http.Request) {
	var req api.UserRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.h.EarnPoints(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) draw(w http.ResponseWriter, r *http.Request) {
	var req api.DrawRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.h.Draw(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) buyVolume(w http.ResponseWriter, r *http.Request) {
	var req api.VolumeRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.h.BuyVolume(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) equipGem(w http.ResponseWriter, r *http.Request) {
	var req api.EquipRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.h.EquipGem(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) extractGem(w http.ResponseWriter, r *http.Request) {
	var req api.ExtractRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.h.ExtractGem(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) rates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.h.Rates())
}

func (s *server) gems(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.h.Gems())
}
