package controllers

import (
	"strconv"

	"Backend-GeoAttend/src/models"
	"Backend-GeoAttend/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GetVenues godoc
// @Summary      List venues with pagination and search
// @Tags         venues
// @Produce      json
// @Param        page   query  int     false  "Page number" default(1)
// @Param        limit  query  int     false  "Number of items per page" default(10)
// @Param        search query  string  false  "Search by venue name"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  models.ErrorResponse
// @Router       /venues [get]
func GetVenues(c *fiber.Ctx) error {
	params := models.DefaultPagination()
	params.Page, _ = strconv.Atoi(c.Query("page", strconv.Itoa(params.Page)))
	params.Limit, _ = strconv.Atoi(c.Query("limit", strconv.Itoa(params.Limit)))
	params.Search = c.Query("search", params.Search)
	params.SortBy = c.Query("sortBy", "name")
	params.Order = c.Query("order", params.Order)

	venueList, total, err := venueService.GetVenues(c.Context(), params)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch venues")
	}

	return c.JSON(fiber.Map{
		"data": venueList,
		"meta": fiber.Map{
			"page":  params.Page,
			"limit": params.Limit,
			"total": total,
		},
	})
}

// GetVenueByID godoc
// @Summary      Get a venue by ID
// @Tags         venues
// @Produce      json
// @Param        id path string true "Venue ID"
// @Success      200  {object}  models.Venue
// @Failure      404  {object}  models.ErrorResponse
// @Router       /venues/{id} [get]
func GetVenueByID(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid venue id")
	}
	venue, err := venueService.FindByID(c.Context(), id)
	if err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, "Venue not found")
	}
	return c.JSON(fiber.Map{"data": venue})
}

// GetVenueBoundaries godoc
// @Summary      Boundary rings for all active venues
// @Description  Closed lat/lng rings for map rendering; venues with malformed geometry are skipped
// @Tags         venues
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  models.ErrorResponse
// @Router       /venues/boundaries [get]
func GetVenueBoundaries(c *fiber.Ctx) error {
	boundaries, err := venueService.GetBoundaries(c.Context())
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to compute venue boundaries")
	}
	return c.JSON(fiber.Map{"data": boundaries, "total": len(boundaries)})
}
