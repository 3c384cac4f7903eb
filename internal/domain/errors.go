package domain

import "errors"

var (
	ErrRecordNotFound        = errors.New("record not found")
	ErrDuplicateEmail        = errors.New("admin already exists with this email")
	ErrInvalidSeatMap        = errors.New("invalid seat map")
	ErrSeatNotSellable       = errors.New("seat is not sellable")
	ErrSessionNotOpen        = errors.New("session is not open for booking")
	ErrSessionHasSoldTickets = errors.New("session has sold tickets")
	ErrHallHasSoldTickets    = errors.New("hall has sold tickets")
	ErrHallHasOpenSessions   = errors.New("hall has open sessions")
)
