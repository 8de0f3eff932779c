package billing

import "errors"

var (
	ErrChargeNotFound  = errors.New("charge not found")
	ErrChargeProcessed = errors.New("charge already reached a terminal status")
	ErrProvider        = errors.New("payment provider request failed")
)
