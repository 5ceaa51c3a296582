package handlers

import (
	"errors"

	"praxiszeit/internal/core/services"
	"praxiszeit/internal/pkg/response"
	"praxiszeit/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// PolicyHandler handles homeoffice policy endpoints
type PolicyHandler struct {
	policyService *services.PolicyService
}

// NewPolicyHandler creates a new policy handler
func NewPolicyHandler(policyService *services.PolicyService) *PolicyHandler {
	return &PolicyHandler{policyService: policyService}
}

// GetOwn returns the caller's homeoffice policy
// @Summary Get own homeoffice policy
// @Tags HomeofficePolicy
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /homeoffice-policy [get]
func (h *PolicyHandler) GetOwn(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	policy, err := h.policyService.GetForUser(c.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrPolicyNotFound) {
			return response.NotFound(c, "No homeoffice policy configured")
		}
		return response.InternalServerError(c, "Failed to load policy")
	}

	return response.Success(c, "Policy retrieved successfully", policy)
}

// CheckOwn answers whether the caller may clock in from homeoffice now
// @Summary Check homeoffice permission
// @Description Evaluate the policy for a homeoffice clock-in right now
// @Tags HomeofficePolicy
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /homeoffice-policy/check [get]
func (h *PolicyHandler) CheckOwn(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	result, err := h.policyService.Check(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to check policy")
	}

	return response.Success(c, "Policy check completed", result)
}

// List lists all policies of the practice (admin)
// @Summary List homeoffice policies
// @Tags HomeofficePolicy
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/homeoffice-policies [get]
func (h *PolicyHandler) List(c *fiber.Ctx) error {
	practiceID, ok := c.Locals("practiceID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	policies, err := h.policyService.ListForPractice(c.Context(), practiceID)
	if err != nil {
		return response.InternalServerError(c, "Failed to load policies")
	}

	return response.Success(c, "Policies retrieved successfully", fiber.Map{
		"policies": policies,
	})
}

// Upsert creates or replaces a user's policy (admin)
// @Summary Save homeoffice policy
// @Description Create or replace the homeoffice policy of a user
// @Tags HomeofficePolicy
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.UpsertPolicyInput true "Policy"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/homeoffice-policies [put]
func (h *PolicyHandler) Upsert(c *fiber.Ctx) error {
	practiceID, ok := c.Locals("practiceID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.UpsertPolicyInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	policy, err := h.policyService.Upsert(c.Context(), practiceID, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found in this practice")
		case errors.Is(err, services.ErrInvalidWeekday),
			errors.Is(err, services.ErrInvalidTimeRange):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to save policy")
		}
	}

	return response.Success(c, "Policy saved successfully", policy)
}

// Delete removes a user's policy (admin)
// @Summary Delete homeoffice policy
// @Tags HomeofficePolicy
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/homeoffice-policies/{userId} [delete]
func (h *PolicyHandler) Delete(c *fiber.Ctx) error {
	practiceID, ok := c.Locals("practiceID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	userID, err := c.ParamsInt("userId")
	if err != nil || userID < 1 {
		return response.BadRequest(c, "Invalid user ID")
	}

	if err := h.policyService.Delete(c.Context(), practiceID, uint(userID)); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return response.NotFound(c, "User not found in this practice")
		}
		return response.InternalServerError(c, "Failed to delete policy")
	}

	return response.Success(c, "Policy deleted successfully", nil)
}
