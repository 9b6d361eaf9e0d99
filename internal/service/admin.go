package service

import (
	"fmt"
	"strconv"

	"github.com/wb-go/wbf/ginext"

	"urevents/cmd/middleware"
	"urevents/internal/dto"
	"urevents/internal/model"
	"urevents/internal/repo"
	"urevents/pkg/hash"
	"urevents/pkg/validator"
)

func (s *service) LoginPage(ctx *ginext.Context) {
	dto.SuccessResponse(ctx, map[string]bool{
		"authenticated": middleware.IsAdmin(ctx),
	})
}

// Login checks the submitted credentials against the stored admin. The
// failure reply is a bare text string, matching the login page contract.
func (s *service) Login(ctx *ginext.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.String(401, dto.InvalidCredentialsMessage)
		return
	}

	admin, err := s.repo.GetAdminByUsername(ctx.Request.Context(), req.Username)
	if err != nil {
		if err != repo.ErrAdminNotFound {
			s.log.Error().Err(err).Msg("failed to look up admin")
			dto.InternalServerError(ctx)
			return
		}
		ctx.String(401, dto.InvalidCredentialsMessage)
		return
	}

	if !hash.Verify(admin.PasswordHash, req.Password) {
		ctx.String(401, dto.InvalidCredentialsMessage)
		return
	}

	if err := middleware.SetAdmin(ctx); err != nil {
		s.log.Error().Err(err).Msg("failed to save session")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().Str("username", admin.Username).Msg("admin logged in")
	ctx.Redirect(302, "/admin/dashboard")
}

func (s *service) Logout(ctx *ginext.Context) {
	if err := middleware.ClearSession(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear session")
	}
	ctx.Redirect(302, "/admin/login")
}

func (s *service) Dashboard(ctx *ginext.Context) {
	events, err := s.repo.GetRecentEvents(ctx.Request.Context(), dashboardLimit)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load dashboard events")
		dto.InternalServerError(ctx)
		return
	}
	dto.SuccessResponse(ctx, events)
}

func (s *service) AddEvent(ctx *ginext.Context) {
	form := eventFormFromRequest(ctx)
	if verr := validator.Validate(ctx, form); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	image, ok := s.saveImageUpload(ctx)
	if !ok {
		return
	}

	event := &model.Event{
		Title:       form.Title,
		College:     form.College,
		Date:        form.Date,
		Time:        form.Time,
		Venue:       form.Venue,
		Description: form.Description,
		Category:    form.Category,
		Image:       image,
		Featured:    form.Featured,
	}

	id, err := s.repo.CreateEvent(ctx.Request.Context(), event)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create event")
		dto.InternalServerError(ctx)
		return
	}

	event.ID = id
	s.log.Info().Int64("event_id", id).Str("title", event.Title).Msg("event created")
	dto.SuccessCreatedResponse(ctx, event)
}

// UpdateEvent overwrites every field from the submitted form. Only the
// image filename is carried forward when no new upload arrives.
func (s *service) UpdateEvent(ctx *ginext.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid event ID")
		return
	}

	existing, err := s.repo.GetEventByID(ctx.Request.Context(), id)
	if err != nil {
		if err == repo.ErrEventNotFound {
			dto.EventNotFoundError(ctx)
			return
		}
		s.log.Error().Err(err).Int64("event_id", id).Msg("failed to load event for update")
		dto.InternalServerError(ctx)
		return
	}

	form := eventFormFromRequest(ctx)
	if verr := validator.Validate(ctx, form); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	image, ok := s.saveImageUpload(ctx)
	if !ok {
		return
	}
	if image == "" {
		// No new upload: keep the stored filename. The old blob is left
		// behind when a replacement does arrive.
		image = existing.Image
	}

	event := &model.Event{
		ID:          id,
		Title:       form.Title,
		College:     form.College,
		Date:        form.Date,
		Time:        form.Time,
		Venue:       form.Venue,
		Description: form.Description,
		Category:    form.Category,
		Image:       image,
		Featured:    form.Featured,
	}

	if err := s.repo.UpdateEvent(ctx.Request.Context(), event); err != nil {
		s.log.Error().Err(err).Int64("event_id", id).Msg("failed to update event")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().Int64("event_id", id).Msg("event updated")
	dto.SuccessResponse(ctx, event)
}

// DeleteEvent is idempotent: deleting an id that is already gone is a
// silent no-op. Dependent registrations stay in the table.
func (s *service) DeleteEvent(ctx *ginext.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid event ID")
		return
	}

	if err := s.repo.DeleteEvent(ctx.Request.Context(), id); err != nil {
		s.log.Error().Err(err).Int64("event_id", id).Msg("failed to delete event")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().Int64("event_id", id).Msg("event deleted")
	dto.SuccessResponse(ctx, nil)
}

func (s *service) Registrations(ctx *ginext.Context) {
	regs, err := s.repo.GetRegistrationsWithEventTitle(ctx.Request.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load registrations")
		dto.InternalServerError(ctx)
		return
	}
	dto.SuccessResponse(ctx, regs)
}

func (s *service) Messages(ctx *ginext.Context) {
	msgs, err := s.repo.GetContactMessages(ctx.Request.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load contact messages")
		dto.InternalServerError(ctx)
		return
	}
	dto.SuccessResponse(ctx, msgs)
}

func eventFormFromRequest(ctx *ginext.Context) dto.EventForm {
	return dto.EventForm{
		Title:       ctx.PostForm("title"),
		College:     ctx.PostForm("college"),
		Date:        ctx.PostForm("date"),
		Time:        ctx.PostForm("time"),
		Venue:       ctx.PostForm("venue"),
		Description: ctx.PostForm("description"),
		Category:    ctx.PostForm("category"),
		Featured:    ctx.PostForm("featured") != "",
	}
}

// saveImageUpload stores an attached image and returns its sanitized
// filename, or "" when the form carried no usable upload. A write failure
// answers the request itself and reports ok=false.
func (s *service) saveImageUpload(ctx *ginext.Context) (string, bool) {
	fh, err := ctx.FormFile("image")
	if err != nil || fh == nil || fh.Size == 0 || fh.Filename == "" {
		return "", true
	}

	name, err := s.store.Save(fh)
	if err != nil {
		s.log.Error().Err(err).Str("filename", fh.Filename).Msg("failed to store image upload")
		dto.InternalServerError(ctx)
		return "", false
	}
	return name, true
}
