package handlers

import (
	"context"
	"errors"
	"time"

	"praxiszeit/internal/core/services"
	"praxiszeit/internal/core/timeclock"
	"praxiszeit/internal/pkg/response"
	"praxiszeit/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// TimeClockHandler handles the punch-clock endpoints
type TimeClockHandler struct {
	timeClockService *services.TimeClockService
}

// NewTimeClockHandler creates a new time clock handler
func NewTimeClockHandler(timeClockService *services.TimeClockService) *TimeClockHandler {
	return &TimeClockHandler{timeClockService: timeClockService}
}

// GetStatus returns the live punch-clock state
// @Summary Get clock status
// @Description Get the current punch-clock state, open block and elapsed time
// @Tags TimeTracking
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /time-tracking/status [get]
func (h *TimeClockHandler) GetStatus(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	result, err := h.timeClockService.GetStatus(c.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to get status")
	}

	return response.Success(c, "Status retrieved successfully", result)
}

// ClockIn opens a new work session
// @Summary Clock in
// @Description Start a new time block, optionally from homeoffice
// @Tags TimeTracking
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.StampInput false "Location and comment"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /time-tracking/clock-in [post]
func (h *TimeClockHandler) ClockIn(c *fiber.Ctx) error {
	return h.stampAction(c, h.timeClockService.ClockIn, true)
}

// ClockOut closes the open work session
// @Summary Clock out
// @Description End the open time block; overtime requires a comment
// @Tags TimeTracking
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.StampInput false "Comment"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /time-tracking/clock-out [post]
func (h *TimeClockHandler) ClockOut(c *fiber.Ctx) error {
	return h.stampAction(c, h.timeClockService.ClockOut, false)
}

// BreakStart starts a break
// @Summary Start break
// @Tags TimeTracking
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /time-tracking/break-start [post]
func (h *TimeClockHandler) BreakStart(c *fiber.Ctx) error {
	return h.stampAction(c, h.timeClockService.StartBreak, false)
}

// BreakEnd ends the running break
// @Summary End break
// @Tags TimeTracking
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /time-tracking/break-end [post]
func (h *TimeClockHandler) BreakEnd(c *fiber.Ctx) error {
	return h.stampAction(c, h.timeClockService.EndBreak, false)
}

// GetBlocks lists the user's time blocks of a date range
// @Summary List time blocks
// @Description List own time blocks, defaulting to the current month
// @Tags TimeTracking
// @Produce json
// @Security BearerAuth
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Router /time-tracking/blocks [get]
func (h *TimeClockHandler) GetBlocks(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	from, to, err := parseRange(c)
	if err != nil {
		return response.BadRequest(c, "Invalid date range, expected YYYY-MM-DD")
	}

	blocks, err := h.timeClockService.GetBlocks(c.Context(), userID, from, to)
	if err != nil {
		return response.InternalServerError(c, "Failed to load time blocks")
	}

	return response.Success(c, "Time blocks retrieved successfully", fiber.Map{
		"blocks": blocks,
		"from":   from.Format("2006-01-02"),
		"to":     to.Format("2006-01-02"),
	})
}

// GetBlockStamps returns the punch journal of one block
// @Summary Get block stamps
// @Tags TimeTracking
// @Produce json
// @Security BearerAuth
// @Param id path int true "Block ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /time-tracking/blocks/{id}/stamps [get]
func (h *TimeClockHandler) GetBlockStamps(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	blockID, err := c.ParamsInt("id")
	if err != nil || blockID < 1 {
		return response.BadRequest(c, "Invalid block ID")
	}

	stamps, err := h.timeClockService.GetBlockStamps(c.Context(), userID, uint(blockID))
	if err != nil {
		if errors.Is(err, services.ErrBlockNotFound) {
			return response.NotFound(c, "Time block not found")
		}
		return response.InternalServerError(c, "Failed to load stamps")
	}

	return response.Success(c, "Stamps retrieved successfully", fiber.Map{
		"stamps": stamps,
	})
}

type stampFunc func(ctx context.Context, userID uint, input *services.StampInput) (*services.ClockStatusResult, error)

// stampAction parses the shared stamp payload and maps the state machine
// errors onto HTTP statuses
func (h *TimeClockHandler) stampAction(c *fiber.Ctx, action stampFunc, created bool) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	input := &services.StampInput{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(input); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}
	if err := validation.Struct(input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	result, err := action(c.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyClockedIn),
			errors.Is(err, services.ErrNotClockedIn),
			errors.Is(err, services.ErrAlreadyOnBreak),
			errors.Is(err, services.ErrNotOnBreak),
			errors.Is(err, services.ErrStillOnBreak):
			return response.Conflict(c, err.Error())
		case errors.Is(err, services.ErrInvalidLocation),
			errors.Is(err, services.ErrCommentRequired):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrHomeofficeNotAllowed):
			return response.Forbidden(c, err.Error())
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Stamp failed")
		}
	}

	if created {
		return response.Created(c, "Stamped successfully", result)
	}
	return response.Success(c, "Stamped successfully", result)
}

// parseRange reads the from/to query params, defaulting to the current month
func parseRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	now := time.Now()
	from, to := timeclock.MonthRange(now)

	if v := c.Query("from"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = timeclock.EndOfDay(parsed)
	}
	return from, to, nil
}
