package controllers

import (
	"strconv"

	"Backend-GeoAttend/src/models"
	"Backend-GeoAttend/src/qrcode"
	"Backend-GeoAttend/src/services"
	"Backend-GeoAttend/src/services/sessions"
	"Backend-GeoAttend/src/utils"

	"github.com/gofiber/fiber/v2"
)

// sessionView แนบสถานะที่คำนวณจากเวลาปัจจุบันไปกับ session
// The stored active flag is never reported alone; expiry always wins.
type sessionView struct {
	models.Session
	Expired bool `json:"expired"`
	Usable  bool `json:"usable"`
}

func newSessionView(s *models.Session) sessionView {
	now := sessionService.Now()
	return sessionView{
		Session: *s,
		Expired: sessions.IsExpired(s, now),
		Usable:  sessions.IsUsable(s, now),
	}
}

// CreateSession godoc
// @Summary      Open a new attendance session
// @Description  Start a time-boxed session for a course; returns the session with its 8-character code and a check-in deep link
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        body body models.CreateSessionRequest true "Course, venue and duration"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /sessions [post]
// CreateSession - เปิด session เช็คชื่อใหม่
func CreateSession(c *fiber.Ctx) error {
	var req models.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	createdBy, _ := c.Locals("userId").(string)
	session, err := sessionService.CreateSession(c.Context(), req, createdBy)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}

	// best-effort: QR สำหรับฉายขึ้นจอ เสิร์ฟผ่าน /public
	qrPath, err := services.CreateSessionQRCode(session.ID.Hex(), session.Code)
	if err != nil {
		qrPath = ""
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Session created successfully",
		"data":        newSessionView(session),
		"checkInLink": services.BuildCheckInLink(session.Code),
		"qrImage":     qrPath,
	})
}

// GetSessions godoc
// @Summary      List sessions with pagination, search, and sorting
// @Tags         sessions
// @Produce      json
// @Param        page   query  int     false  "Page number" default(1)
// @Param        limit  query  int     false  "Number of items per page" default(10)
// @Param        search query  string  false  "Search by course code or name"
// @Param        sortBy query  string  false  "Field to sort by" default(startTime)
// @Param        order  query  string  false  "Sort order (asc or desc)" default(desc)
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  models.ErrorResponse
// @Router       /sessions [get]
func GetSessions(c *fiber.Ctx) error {
	params := models.DefaultPagination()
	params.Page, _ = strconv.Atoi(c.Query("page", strconv.Itoa(params.Page)))
	params.Limit, _ = strconv.Atoi(c.Query("limit", strconv.Itoa(params.Limit)))
	params.Search = c.Query("search", params.Search)
	params.SortBy = c.Query("sortBy", "startTime")
	params.Order = c.Query("order", "desc")

	sessionList, total, err := sessionService.GetSessions(c.Context(), params)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch sessions")
	}

	views := make([]sessionView, 0, len(sessionList))
	for i := range sessionList {
		views = append(views, newSessionView(&sessionList[i]))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": views,
		"meta": fiber.Map{
			"page":  params.Page,
			"limit": params.Limit,
			"total": total,
		},
	})
}

// GetSessionByID godoc
// @Summary      Get a session by ID
// @Tags         sessions
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  models.ErrorResponse
// @Router       /sessions/{id} [get]
func GetSessionByID(c *fiber.Ctx) error {
	session, err := sessionService.GetSessionByID(c.Context(), c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, "Session not found")
	}
	return c.JSON(fiber.Map{"data": newSessionView(session)})
}

// GetSessionQRCode godoc
// @Summary      Render the session's check-in deep link as a QR PNG
// @Tags         sessions
// @Produce      png
// @Param        id   path  string true  "Session ID"
// @Param        size query int    false "Image size in pixels" default(256)
// @Success      200  {string}  binary
// @Failure      404  {object}  models.ErrorResponse
// @Router       /sessions/{id}/qrcode [get]
func GetSessionQRCode(c *fiber.Ctx) error {
	session, err := sessionService.GetSessionByID(c.Context(), c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, "Session not found")
	}

	size, _ := strconv.Atoi(c.Query("size", "256"))
	png, err := qrcode.GeneratePNG(services.BuildCheckInLink(session.Code), size)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to render QR code")
	}
	c.Set("Content-Type", "image/png")
	return c.Send(png)
}

// GetSessionAttendance godoc
// @Summary      List attendance records for a session
// @Tags         sessions
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  models.ErrorResponse
// @Router       /sessions/{id}/attendance [get]
func GetSessionAttendance(c *fiber.Ctx) error {
	records, err := sessionService.GetAttendance(c.Context(), c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, "Session not found")
	}
	return c.JSON(fiber.Map{"data": records, "total": len(records)})
}

// DeactivateSession godoc
// @Summary      Close a session early
// @Description  Flips the manual active flag off; the code stops resolving immediately
// @Tags         sessions
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  models.ErrorResponse
// @Router       /sessions/{id}/deactivate [put]
func DeactivateSession(c *fiber.Ctx) error {
	if err := sessionService.DeactivateSession(c.Context(), c.Params("id")); err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, "Session not found")
	}
	return c.JSON(fiber.Map{"message": "Session deactivated"})
}

// DeleteSession godoc
// @Summary      Delete a session and its attendance records
// @Tags         sessions
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  models.ErrorResponse
// @Router       /sessions/{id} [delete]
func DeleteSession(c *fiber.Ctx) error {
	if err := sessionService.DeleteSession(c.Context(), c.Params("id")); err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, "Session not found")
	}
	return c.JSON(fiber.Map{"message": "Session and attendance records deleted"})
}
