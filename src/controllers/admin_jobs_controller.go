package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	DB "Backend-GeoAttend/src/database"
	"Backend-GeoAttend/src/jobs"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
)

// TriggerCloseSession godoc
// @Summary      Enqueue session close job (test)
// @Description  Enqueue a close-session task to run after delaySec seconds. Requires Asynq (Redis) configured. Use for testing scheduling behavior.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id        path   string  true  "Session ID"
// @Param        delaySec  query  int     false "Delay in seconds"  default(5)
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  models.ErrorResponse
// @Failure      503  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /sessions/{id}/trigger-close [post]
func TriggerCloseSession(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "session id required"})
	}
	if _, err := sessionService.GetSessionByID(c.Context(), id); err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}

	delaySec := 5
	if q := c.Query("delaySec"); q != "" {
		if v, err := strconv.Atoi(q); err == nil && v >= 0 {
			delaySec = v
		}
	}

	task, err := jobs.NewCloseSessionTask(id)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if DB.AsynqClient == nil {
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"error": "asynq client not initialized"})
	}

	// Enqueue to run after delaySec seconds
	_, err = DB.AsynqClient.Enqueue(task, asynq.ProcessIn(time.Duration(delaySec)*time.Second), asynq.TaskID("trigger-close-"+id+"-"+time.Now().Format("20060102150405")))
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"status": "enqueued", "delaySec": delaySec})
}

// RunCloseSessionNow godoc
// @Summary      Execute session close now (in-process)
// @Description  Run the close-session handler synchronously in-process for quick testing. Does not require Redis/Asynq.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /sessions/{id}/run-close-now [post]
func RunCloseSessionNow(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "session id required"})
	}

	payload := jobs.SessionPayload{SessionID: id}
	b, _ := json.Marshal(payload)
	t := asynq.NewTask(jobs.TypeCloseSession, b)

	if err := jobs.HandleCloseSessionTask(context.TODO(), t); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "executed"})
}
