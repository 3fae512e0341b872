package errors

import "errors"

var (
	ErrInvalidInput       = errors.New("ledger input is invalid")
	ErrInvalidDeposit     = errors.New("attached deposit does not match the required amount")
	ErrNotRegistered      = errors.New("account is not registered")
	ErrInsufficientShares = errors.New("sender does not own sufficient shares")
	ErrSupplyExceeded     = errors.New("recorded balances would exceed total supply")
)
