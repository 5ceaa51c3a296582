package handlers

import (
	"errors"

	"praxiszeit/internal/core/services"
	"praxiszeit/internal/pkg/pagination"
	"praxiszeit/internal/pkg/response"
	"praxiszeit/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// CorrectionHandler handles time correction request endpoints
type CorrectionHandler struct {
	correctionService *services.CorrectionService
}

// NewCorrectionHandler creates a new correction handler
func NewCorrectionHandler(correctionService *services.CorrectionService) *CorrectionHandler {
	return &CorrectionHandler{correctionService: correctionService}
}

// Submit files a correction request
// @Summary Submit correction request
// @Description Request a change of a recorded block's start/end time
// @Tags Corrections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.SubmitCorrectionInput true "Correction data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /time-correction-requests [post]
func (h *CorrectionHandler) Submit(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.SubmitCorrectionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	req, err := h.correctionService.Submit(c.Context(), userID, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBlockNotFound):
			return response.NotFound(c, "Time block not found")
		case errors.Is(err, services.ErrReasonRequired),
			errors.Is(err, services.ErrNothingToCorrect),
			errors.Is(err, services.ErrInvalidCorrection):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to submit correction request")
		}
	}

	return response.Created(c, "Correction request submitted", req)
}

// ListMine lists the caller's correction requests
// @Summary List own correction requests
// @Tags Corrections
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10)"
// @Success 200 {object} response.Response
// @Router /time-correction-requests [get]
func (h *CorrectionHandler) ListMine(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	reqs, total, err := h.correctionService.ListForUser(c.Context(), userID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to load correction requests")
	}

	return response.Success(c, "Correction requests retrieved successfully",
		pagination.NewResponse(reqs, params, total))
}

// ListForReview lists a practice's requests for managers
// @Summary List correction requests for review
// @Tags Corrections
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (pending/approved/rejected)"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10)"
// @Success 200 {object} response.Response
// @Router /time-correction-requests/review [get]
func (h *CorrectionHandler) ListForReview(c *fiber.Ctx) error {
	practiceID, ok := c.Locals("practiceID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	reqs, total, err := h.correctionService.ListForPractice(c.Context(), practiceID, c.Query("status"), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to load correction requests")
	}

	return response.Success(c, "Correction requests retrieved successfully",
		pagination.NewResponse(reqs, params, total))
}

// Review approves or rejects a pending request
// @Summary Review correction request
// @Description Approve (applies the new times) or reject a pending request
// @Tags Corrections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param body body services.ReviewCorrectionInput true "Verdict"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /time-correction-requests/{id}/review [put]
func (h *CorrectionHandler) Review(c *fiber.Ctx) error {
	reviewerID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	requestID, err := c.ParamsInt("id")
	if err != nil || requestID < 1 {
		return response.BadRequest(c, "Invalid request ID")
	}

	var input services.ReviewCorrectionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	req, err := h.correctionService.Review(c.Context(), reviewerID, uint(requestID), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCorrectionNotFound):
			return response.NotFound(c, "Correction request not found")
		case errors.Is(err, services.ErrCorrectionForbidden):
			return response.Forbidden(c, "Not allowed to review this request")
		case errors.Is(err, services.ErrCorrectionClosed):
			return response.Conflict(c, "Correction request already reviewed")
		default:
			return response.InternalServerError(c, "Failed to review correction request")
		}
	}

	return response.Success(c, "Correction request reviewed", req)
}
