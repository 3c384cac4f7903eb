// Package api defines the request and response types of the HTTP surface.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Env     string `json:"env"`
	Version string `json:"version"`
}

// Auth

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

type AdminResponse struct {
	Id        int       `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Movies

type Movie struct {
	Id       int    `json:"id"`
	Title    string `json:"title"`
	Synopsis string `json:"synopsis"`
	Duration string `json:"duration"`
	Origin   string `json:"origin"`
	Poster   string `json:"poster"`
}

type CreateMovieRequest struct {
	Title    string `json:"title" validate:"required,max=255"`
	Synopsis string `json:"synopsis" validate:"required"`
	Duration string `json:"duration" validate:"required,max=50"`
	Origin   string `json:"origin" validate:"required,max=50"`
	Poster   string `json:"poster" validate:"required,max=255"`
}

// MovieShowtimes is one entry of the movies-by-date catalog view: a movie
// with its open sessions on the requested date.
type MovieShowtimes struct {
	Movie
	Sessions []ShowtimeSummary `json:"sessions"`
}

type ShowtimeSummary struct {
	SessionId    int             `json:"sessionId"`
	Hall         string          `json:"hall"`
	Time         string          `json:"time"`
	RegularPrice decimal.Decimal `json:"regularPrice"`
	VipPrice     decimal.Decimal `json:"vipPrice"`
}

// Sessions

type Session struct {
	Id      int    `json:"id"`
	MovieId int    `json:"movieId"`
	HallId  int    `json:"hallId"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Status  string `json:"status"`
}

type SessionWithMovie struct {
	Session
	MovieTitle    string `json:"title"`
	MovieDuration string `json:"duration"`
	MoviePoster   string `json:"poster"`
}

type SessionDetailResponse struct {
	Movie   Movie      `json:"movie"`
	Hall    string     `json:"hall"`
	Date    string     `json:"date"`
	Time    string     `json:"time"`
	Status  string     `json:"status"`
	Seats   [][]string `json:"seats"`
	Prices  Prices     `json:"prices"`
	Tickets []Ticket   `json:"soldTickets"`
}

type Prices struct {
	Regular decimal.Decimal `json:"regular"`
	Vip     decimal.Decimal `json:"vip"`
}

type NewSession struct {
	HallId  int    `json:"hallId" validate:"required,min=1"`
	MovieId int    `json:"movieId" validate:"required,min=1"`
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	Time    string `json:"time" validate:"required,datetime=15:04"`
}

type CreateSessionsRequest struct {
	Sessions []NewSession `json:"sessions" validate:"required,min=1,dive"`
}

type SessionTimeUpdate struct {
	Id   int    `json:"id" validate:"required,min=1"`
	Time string `json:"time" validate:"required,datetime=15:04"`
}

type UpdateSessionTimesRequest struct {
	Sessions []SessionTimeUpdate `json:"sessions" validate:"required,min=1,dive"`
}

type UpdateSessionsStatusRequest struct {
	HallId int    `json:"hallId" validate:"required,min=1"`
	Status string `json:"status" validate:"required,session_status"`
}

type SessionsStatusResponse struct {
	Updated int    `json:"updated"`
	Skipped int    `json:"skipped"`
	Message string `json:"message"`
}

type UpdateSessionStatusRequest struct {
	Status string `json:"status" validate:"required,session_status"`
}

// Seats

type SeatRef struct {
	Row    int `json:"row" validate:"min=0"`
	Column int `json:"column" validate:"min=0"`
}

type ClaimSeatsRequest struct {
	SessionId int       `json:"sessionId" validate:"required,min=1"`
	Seats     []SeatRef `json:"seats" validate:"required,min=1,dive"`
}

type Ticket struct {
	Row    int    `json:"row"`
	Column int    `json:"column"`
	Status string `json:"status"`
}

type ClaimSeatsResponse struct {
	SessionId int      `json:"sessionId"`
	Tickets   []Ticket `json:"tickets"`
}

// Halls

type Hall struct {
	Id           int             `json:"id"`
	Name         string          `json:"name"`
	Seats        [][]string      `json:"seats"`
	RegularPrice decimal.Decimal `json:"regularPrice"`
	VipPrice     decimal.Decimal `json:"vipPrice"`
}

type CreateHallRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

type SeatMapResponse struct {
	Seats [][]string `json:"seats"`
}

type UpdateSeatMapRequest struct {
	Seats [][]string `json:"seats" validate:"required"`
}

type UpdatePricesRequest struct {
	RegularPrice decimal.Decimal `json:"regularPrice" validate:"required"`
	VipPrice     decimal.Decimal `json:"vipPrice" validate:"required"`
}
