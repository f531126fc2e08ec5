package game

import "rps_arena/internal/domain"

// Symbol is a player's choice for one round.
type Symbol string

const (
	Rock     Symbol = "rock"
	Paper    Symbol = "paper"
	Scissors Symbol = "scissors"
)

// ParseSymbol validates a raw choice payload.
func ParseSymbol(s string) (Symbol, error) {
	switch Symbol(s) {
	case Rock, Paper, Scissors:
		return Symbol(s), nil
	}
	return "", domain.ErrSymbolInvalid
}
