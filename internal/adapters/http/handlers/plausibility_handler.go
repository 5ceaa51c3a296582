package handlers

import (
	"praxiszeit/internal/core/services"
	"praxiszeit/internal/pkg/pagination"
	"praxiszeit/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PlausibilityHandler handles plausibility issue endpoints
type PlausibilityHandler struct {
	plausService *services.PlausibilityService
}

// NewPlausibilityHandler creates a new plausibility handler
func NewPlausibilityHandler(plausService *services.PlausibilityService) *PlausibilityHandler {
	return &PlausibilityHandler{plausService: plausService}
}

// ListMine lists the caller's open issues
// @Summary List own plausibility issues
// @Tags Plausibility
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /plausibility-issues [get]
func (h *PlausibilityHandler) ListMine(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	issues, err := h.plausService.ListForUser(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to load issues")
	}

	return response.Success(c, "Issues retrieved successfully", fiber.Map{
		"issues": issues,
	})
}

// ListForPractice lists a practice's open issues (manager)
// @Summary List practice plausibility issues
// @Tags Plausibility
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 20)"
// @Success 200 {object} response.Response
// @Router /plausibility-issues/practice [get]
func (h *PlausibilityHandler) ListForPractice(c *fiber.Ctx) error {
	practiceID, ok := c.Locals("practiceID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	issues, total, err := h.plausService.ListForPractice(c.Context(), practiceID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to load issues")
	}

	return response.Success(c, "Issues retrieved successfully",
		pagination.NewResponse(issues, params, total))
}

// Resolve marks an issue as handled (manager)
// @Summary Resolve plausibility issue
// @Tags Plausibility
// @Produce json
// @Security BearerAuth
// @Param id path int true "Issue ID"
// @Success 200 {object} response.Response
// @Router /plausibility-issues/{id}/resolve [post]
func (h *PlausibilityHandler) Resolve(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid issue ID")
	}

	if err := h.plausService.Resolve(c.Context(), uint(id)); err != nil {
		return response.InternalServerError(c, "Failed to resolve issue")
	}

	return response.Success(c, "Issue resolved", nil)
}

// Scan triggers the plausibility scan for the practice (admin)
// @Summary Run plausibility scan
// @Description Run the plausibility rules over the practice's recent blocks
// @Tags Plausibility
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/plausibility-scan [post]
func (h *PlausibilityHandler) Scan(c *fiber.Ctx) error {
	practiceID, ok := c.Locals("practiceID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	found, err := h.plausService.ScanPractice(c.Context(), practiceID)
	if err != nil {
		return response.InternalServerError(c, "Scan failed")
	}

	return response.Success(c, "Scan completed", fiber.Map{
		"new_issues": found,
	})
}
