package model

import "errors"

var (
	ErrEmptyName  = errors.New("name must not be empty")
	ErrTimeRange  = errors.New("start_time must be before end_time")
	ErrStatus     = errors.New("unknown status")
	ErrRole       = errors.New("unknown role")
	ErrCriteria   = errors.New("criteria weight must be >= 0 and max_score > 0")
	ErrEmptyEmail = errors.New("email must not be empty")
	ErrMissingRef = errors.New("missing reference id")

	ErrTransition   = errors.New("event status can only move forward")
	ErrTeamPerEvent = errors.New("user already belongs to a team in this event")
)
