package api

import (
	"github.com/evrtek/geobeastProdV1-sub000/internal/realtime"
	"github.com/evrtek/geobeastProdV1-sub000/internal/service"
	"github.com/evrtek/geobeastProdV1-sub000/internal/storage"
)

// BattleHandler groups all battle-related HTTP handlers.
type BattleHandler struct {
	repo storage.Repository
	svc  *service.BattleService
	hub  *realtime.Hub
}

// NewBattleHandler creates a new BattleHandler with the given repository,
// battle service and realtime hub.
func NewBattleHandler(repo storage.Repository, svc *service.BattleService, hub *realtime.Hub) *BattleHandler {
	return &BattleHandler{repo: repo, svc: svc, hub: hub}
}
