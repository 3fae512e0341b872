package errors

import "errors"

var (
	ErrInvalidInput        = errors.New("governance input is invalid")
	ErrInvalidDeposit      = errors.New("attached deposit does not match the required amount")
	ErrInsufficientDeposit = errors.New("attached deposit must exceed the sale price")
	ErrDuplicateMotionID   = errors.New("motion id is already in use")
	ErrMotionNotFound      = errors.New("no motion with that id")
	ErrNotSaleMotion       = errors.New("motion does not refer to a sale")
	ErrNotAuthorized       = errors.New("caller is not authorized for this action")
	ErrSaleInProgress      = errors.New("another sale is currently in progress")
	ErrAlreadySold         = errors.New("the asset has already been sold")
	ErrSettlementPending   = errors.New("motion is locked by a pending settlement")
	ErrNoSalePending       = errors.New("no sale settlement is pending")
	ErrNotSold             = errors.New("cannot cash out of an unsold asset")
)
