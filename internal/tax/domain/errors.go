package domain

import "errors"

var (
	ErrInvalidGSTRate  = errors.New("invalid_gst_rate")
	ErrInvalidCessRate = errors.New("invalid_cess_rate")
)
