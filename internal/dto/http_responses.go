package dto

import (
	"time"

	"github.com/wb-go/wbf/ginext"

	"urevents/internal/model"
)

const (
	FieldBadFormat     = "FIELD_BADFORMAT"
	FieldIncorrect     = "FIELD_INCORRECT"
	ServiceUnavailable = "SERVICE_UNAVAILABLE"
	InternalError      = "Service is currently unavailable. Please try again later."

	EventNotFound = "EVENT_NOT_FOUND"

	// InvalidCredentialsMessage is surfaced as plain text on a failed
	// admin login, not wrapped in the error envelope.
	InvalidCredentialsMessage = "Invalid Login Credentials"
)

type LoginRequest struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

type RegisterRequest struct {
	Name    string `form:"name" json:"name" validate:"required,min=2,max=255"`
	Phone   string `form:"phone" json:"phone" validate:"required,phone"`
	Email   string `form:"email" json:"email" validate:"required,email"`
	Message string `form:"message" json:"message"`
}

type ContactRequest struct {
	FirstName string `form:"first_name" json:"first_name" validate:"required,max=255"`
	LastName  string `form:"last_name" json:"last_name" validate:"required,max=255"`
	Email     string `form:"email" json:"email" validate:"required,email"`
	Phone     string `form:"phone" json:"phone" validate:"required,phone"`
	Subject   string `form:"subject" json:"subject"`
	Message   string `form:"message" json:"message"`
}

// EventForm carries the admin add/update event fields. The image arrives
// as a separate multipart file and is not part of the validated struct.
type EventForm struct {
	Title       string `validate:"required,max=255"`
	College     string
	Date        string `validate:"omitempty,isodate"`
	Time        string
	Venue       string
	Description string
	Category    string
	Featured    bool
}

type HomeResponse struct {
	Featured []model.Event `json:"featured"`
	Upcoming []model.Event `json:"upcoming"`
}

type RegistrationCreatedResponse struct {
	ID       int64  `json:"id"`
	EventID  int64  `json:"event_id"`
	Redirect string `json:"redirect"`
}

type ContactPageResponse struct {
	Flashes []string `json:"flashes,omitempty"`
}

// NotificationMessage is published to the notification exchange whenever a
// visitor submits a registration or a contact message.
type NotificationMessage struct {
	Kind      string    `json:"kind"` // "registration" or "contact"
	ID        int64     `json:"id"`
	EventID   int64     `json:"event_id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type Response struct {
	Status string `json:"status"`
	Error  *Error `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

type Error struct {
	Code string `json:"code"`
	Desc string `json:"desc"`
}

func BadResponseError(c *ginext.Context, code, desc string) {
	c.JSON(400, Response{
		Status: "error",
		Error: &Error{
			Code: code,
			Desc: desc,
		},
	})
}

func InternalServerError(c *ginext.Context) {
	c.JSON(500, Response{
		Status: "error",
		Error: &Error{
			Code: ServiceUnavailable,
			Desc: InternalError,
		},
	})
}

func EventNotFoundError(c *ginext.Context) {
	c.JSON(404, Response{
		Status: "error",
		Error: &Error{
			Code: EventNotFound,
			Desc: "Event not found",
		},
	})
}

func SuccessResponse(c *ginext.Context, data any) {
	c.JSON(200, Response{
		Status: "ok",
		Data:   data,
	})
}

func SuccessCreatedResponse(c *ginext.Context, data any) {
	c.JSON(201, Response{
		Status: "ok",
		Data:   data,
	})
}
