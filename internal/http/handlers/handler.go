package handlers

import (
	"rps_arena/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB        *pgxpool.Pool
	RoomRepo  *repository.RoomRepository
	MatchRepo *repository.MatchRepository
}

func NewHandler(db *pgxpool.Pool) *Handler {
	return &Handler{
		DB:        db,
		RoomRepo:  repository.NewRoomRepository(db),
		MatchRepo: repository.NewMatchRepository(db),
	}
}
