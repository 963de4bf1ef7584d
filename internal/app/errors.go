package service

import "errors"

// Sentinel errors for report runs.
var (
	ErrNoShots    = errors.New("no shots in input")
	ErrTeamCount  = errors.New("unexpected number of teams")
	ErrNilSource  = errors.New("nil shot source")
	ErrNilOutput  = errors.New("nil report output")
	ErrRenderFail = errors.New("render report failed")
)
