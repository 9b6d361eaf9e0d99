package service

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/ginext"

	"urevents/cmd/middleware"
	"urevents/internal/dto"
	"urevents/internal/model"
	"urevents/internal/repo"
	"urevents/internal/storage"
	"urevents/pkg/validator"
)

const (
	featuredLimit  = 5
	upcomingLimit  = 6
	dashboardLimit = 10
)

// Publisher pushes notification messages onto the broker. Satisfied by
// *rabbit.Client.
type Publisher interface {
	Publish(message []byte) error
}

type Service interface {
	Home(ctx *ginext.Context)
	About(ctx *ginext.Context)
	AllEvents(ctx *ginext.Context)
	EventDetail(ctx *ginext.Context)
	RegisterPage(ctx *ginext.Context)
	Register(ctx *ginext.Context)
	ThankYou(ctx *ginext.Context)
	ContactPage(ctx *ginext.Context)
	Contact(ctx *ginext.Context)

	LoginPage(ctx *ginext.Context)
	Login(ctx *ginext.Context)
	Logout(ctx *ginext.Context)
	Dashboard(ctx *ginext.Context)
	AddEvent(ctx *ginext.Context)
	UpdateEvent(ctx *ginext.Context)
	DeleteEvent(ctx *ginext.Context)
	Registrations(ctx *ginext.Context)
	Messages(ctx *ginext.Context)
}

type service struct {
	repo  repo.Repository
	log   *zerolog.Logger
	rbt   Publisher
	store *storage.Store
}

func NewService(repo repo.Repository, logger *zerolog.Logger, rbt Publisher, store *storage.Store) Service {
	return &service{
		repo:  repo,
		log:   logger,
		rbt:   rbt,
		store: store,
	}
}

func (s *service) Home(ctx *ginext.Context) {
	featured, err := s.repo.GetFeaturedEvents(ctx.Request.Context(), featuredLimit)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load featured events")
		dto.InternalServerError(ctx)
		return
	}

	upcoming, err := s.repo.GetUpcomingEvents(ctx.Request.Context(), upcomingLimit)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load upcoming events")
		dto.InternalServerError(ctx)
		return
	}

	dto.SuccessResponse(ctx, dto.HomeResponse{
		Featured: featured,
		Upcoming: upcoming,
	})
}

// About backs a static page; the payload exists so the route-per-page
// mapping stays complete.
func (s *service) About(ctx *ginext.Context) {
	dto.SuccessResponse(ctx, map[string]string{
		"title": "About UR Events",
	})
}

func (s *service) AllEvents(ctx *ginext.Context) {
	events, err := s.repo.GetAllEvents(ctx.Request.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load events")
		dto.InternalServerError(ctx)
		return
	}
	dto.SuccessResponse(ctx, events)
}

// EventDetail degrades to a null payload for an unknown id; the detail
// page renders a placeholder instead of failing.
func (s *service) EventDetail(ctx *ginext.Context) {
	event := s.lookupEvent(ctx)
	dto.SuccessResponse(ctx, event)
}

func (s *service) RegisterPage(ctx *ginext.Context) {
	event := s.lookupEvent(ctx)
	dto.SuccessResponse(ctx, event)
}

// lookupEvent resolves the :id param to an event or nil. A malformed or
// unknown id is the caller's missing-event case, not an error.
func (s *service) lookupEvent(ctx *ginext.Context) *model.Event {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return nil
	}
	event, err := s.repo.GetEventByID(ctx.Request.Context(), id)
	if err != nil {
		if err != repo.ErrEventNotFound {
			s.log.Error().Err(err).Int64("event_id", id).Msg("failed to load event")
		}
		return nil
	}
	return event
}

func (s *service) Register(ctx *ginext.Context) {
	eventID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid event ID")
		return
	}

	var req dto.RegisterRequest
	if err := ctx.ShouldBind(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldBadFormat, "Invalid form data")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	// The event is deliberately not checked for existence; submissions
	// against a deleted event are stored and simply never joined into
	// the admin listing.
	registration := &model.Registration{
		EventID: eventID,
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Message: req.Message,
	}

	id, err := s.repo.CreateRegistration(ctx.Request.Context(), registration)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create registration")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().Int64("registration_id", id).Int64("event_id", eventID).Msg("registration created")

	s.publishNotification(dto.NotificationMessage{
		Kind:      "registration",
		ID:        id,
		EventID:   eventID,
		Name:      registration.Name,
		Email:     registration.Email,
		CreatedAt: registration.CreatedAt,
	})

	dto.SuccessCreatedResponse(ctx, dto.RegistrationCreatedResponse{
		ID:       id,
		EventID:  eventID,
		Redirect: "/thank-you",
	})
}

func (s *service) ThankYou(ctx *ginext.Context) {
	dto.SuccessResponse(ctx, map[string]string{
		"message": "Thank you for registering! We will contact you soon.",
	})
}

func (s *service) ContactPage(ctx *ginext.Context) {
	dto.SuccessResponse(ctx, dto.ContactPageResponse{
		Flashes: middleware.Flashes(ctx),
	})
}

func (s *service) Contact(ctx *ginext.Context) {
	var req dto.ContactRequest
	if err := ctx.ShouldBind(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldBadFormat, "Invalid form data")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	msg := &model.ContactMessage{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Subject:   req.Subject,
		Message:   req.Message,
	}

	id, err := s.repo.CreateContactMessage(ctx.Request.Context(), msg)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create contact message")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().Int64("message_id", id).Msg("contact message created")

	if err := middleware.AddFlash(ctx, "Message sent successfully!"); err != nil {
		s.log.Warn().Err(err).Msg("failed to store flash message")
	}

	s.publishNotification(dto.NotificationMessage{
		Kind:      "contact",
		ID:        id,
		Name:      req.FirstName + " " + req.LastName,
		Email:     req.Email,
		CreatedAt: msg.CreatedAt,
	})

	dto.SuccessCreatedResponse(ctx, map[string]any{
		"id":       id,
		"redirect": "/contact",
	})
}

// publishNotification is best effort: the submission is already stored,
// a broker hiccup must not fail the request.
func (s *service) publishNotification(msg dto.NotificationMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to marshal notification message")
		return
	}
	if err := s.rbt.Publish(payload); err != nil {
		s.log.Error().Err(err).Str("kind", msg.Kind).Msg("failed to publish notification")
	}
}
