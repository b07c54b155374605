package models

import "errors"

var (
	ErrNotFound            = errors.New("record not found")
	ErrInvestmentFinalized = errors.New("investment already finalized")
	ErrInvalidInput        = errors.New("invalid input")
	ErrMissingUser         = errors.New("no current user")
)
