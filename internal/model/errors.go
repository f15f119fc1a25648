package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrDuplicateName  = errors.New("player name already exists in this town")

	// Town errors
	ErrTownNotFound  = errors.New("town not found")
	ErrTownCodeTaken = errors.New("town code is already in use")

	// Session errors
	ErrQuorumNotMet       = errors.New("the game requires between 5 and 10 players")
	ErrGameAlreadyStarted = errors.New("game has already started")
	ErrRoleAssignment     = errors.New("roles not assigned correctly")
)
