package controllers

import (
	"errors"

	"Backend-GeoAttend/src/models"
	"Backend-GeoAttend/src/services/checkin"
	"Backend-GeoAttend/src/services/sessions"
	"Backend-GeoAttend/src/utils"

	"github.com/gofiber/fiber/v2"
)

// StudentCheckIn godoc
// @Summary      Check in to a live session
// @Description  Verify a session code plus an optional location sample and record attendance. A repeat submission for the same session is an idempotent success.
// @Tags         checkin
// @Accept       json
// @Produce      json
// @Param        body body models.CheckInRequest true "Session code, student id, optional location"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  models.ErrorResponse
// @Failure      401  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      503  {object}  models.ErrorResponse
// @Router       /checkin [post]
// StudentCheckIn - นิสิตเช็คชื่อด้วย session code
func StudentCheckIn(c *fiber.Ctx) error {
	var req models.CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := verifier.CheckIn(c.Context(), req)
	if err != nil {
		return checkInError(c, result, err)
	}

	message := "Checked in successfully"
	if result.AlreadyCheckedIn {
		message = "Already checked in for this session"
	}
	return c.JSON(fiber.Map{
		"message": message,
		"result":  result,
	})
}

// checkInError maps the verifier's error taxonomy onto HTTP statuses. Tests
// and clients key off the reason code, not the message text.
func checkInError(c *fiber.Ctx, result *checkin.Result, err error) error {
	switch {
	case errors.Is(err, checkin.ErrIncompleteCode):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Session code must be 8 characters (A-Z without O/I, digits 2-9)",
			"code":  "INCOMPLETE_CODE",
		})
	case errors.Is(err, sessions.ErrInvalidOrExpiredCode):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired session code",
			"code":  "INVALID_OR_EXPIRED_CODE",
		})
	case errors.Is(err, checkin.ErrNotRegisteredForCourse):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You are not registered for this course",
			"code":  "NOT_REGISTERED",
		})
	case errors.Is(err, checkin.ErrLocationUnavailable):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "A location sample is required to check in",
			"code":  "LOCATION_UNAVAILABLE",
		})
	case errors.Is(err, checkin.ErrOutsideVenue):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":  "Your location is outside the venue",
			"code":   "OUTSIDE_VENUE",
			"result": result,
		})
	default:
		// infra fault: retryable, distinct from the domain rejections
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Verification temporarily unavailable, please retry",
			"code":  "VERIFICATION_UNAVAILABLE",
		})
	}
}
