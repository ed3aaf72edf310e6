package models

import "errors"

// Sentinel errors for the handicapping core. Degraded-data outcomes are not
// errors here: missing provider data flows through as zero-signal adjustments
// with the Edge flagged incomplete.
var (
	// ErrUnknownGame indicates a lookup for a game the caller never supplied.
	ErrUnknownGame = errors.New("unknown game")

	// ErrUnknownBet indicates a CLV operation against an unrecorded bet.
	ErrUnknownBet = errors.New("unknown bet")

	// ErrUnknownLeague indicates a league with no configured parameters.
	ErrUnknownLeague = errors.New("unknown league")

	// ErrMissingMarket indicates an edge evaluation with no market snapshot.
	ErrMissingMarket = errors.New("missing market line")

	// ErrBetAlreadySettled indicates a second settlement attempt.
	ErrBetAlreadySettled = errors.New("bet already settled")
)
