package game

import "errors"

var (
	ErrTacticNotAllowed      = errors.New("tactic not allowed")
	ErrIncompatiblePositions = errors.New("incompatible positions")
	ErrPlayerInjured         = errors.New("player injured")
	ErrSameStatus            = errors.New("players have the same playing status")
	ErrSubstitutionLimit     = errors.New("no substitutions left")
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrSquadFull             = errors.New("squad is full")
	ErrSquadTooSmall         = errors.New("squad too small to sell")
	ErrLastGoalkeeper        = errors.New("cannot sell the last goalkeeper")
	ErrNotSellable           = errors.New("player cannot be sold")
	ErrContractNotExpired    = errors.New("contract has not expired")
	ErrPlayerNotFound        = errors.New("player not found")
	ErrNotListed             = errors.New("player is not on the transfer list")
	ErrGameOver              = errors.New("game over")
	ErrNoHumanTeam           = errors.New("no human team")
)
