package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/praxio/fundledger/internal/apperrors"
	portssvc "github.com/praxio/fundledger/internal/core/ports/services"
	"github.com/praxio/fundledger/internal/core/services"
	"github.com/praxio/fundledger/internal/dto"
	"github.com/praxio/fundledger/internal/middleware"
)

// mappingHandler handles HTTP requests related to GL account mappings.
type mappingHandler struct {
	mappingService portssvc.MappingSvcFacade
}

// newMappingHandler creates a new mappingHandler.
func newMappingHandler(mappingService portssvc.MappingSvcFacade) *mappingHandler {
	return &mappingHandler{
		mappingService: mappingService,
	}
}

// registerMappingRoutes registers routes related to mapping rules.
func registerMappingRoutes(rg *gin.RouterGroup, mappingService portssvc.MappingSvcFacade) {
	h := newMappingHandler(mappingService)

	mappings := rg.Group("/mappings")
	{
		mappings.POST("", h.createMapping)
		mappings.GET("", h.listMappings)
		mappings.GET("/:mappingID", h.getMapping)
		mappings.DELETE("/:mappingID", h.deactivateMapping)
	}
}

// createMapping godoc
// @Summary Create a mapping rule
// @Description Registers a rule translating source events into ledger postings
// @Tags mappings
// @Accept json
// @Produce json
// @Param mapping body dto.CreateMappingRequest true "Mapping details"
// @Success 201 {object} dto.MappingResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /mappings [post]
func (h *mappingHandler) createMapping(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createMapping", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	mapping, err := h.mappingService.CreateMapping(c.Request.Context(), creatorUserID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMappingAccountsInvalid),
			errors.Is(err, services.ErrMappingAccountNotFound),
			errors.Is(err, services.ErrAccountNotPostable),
			errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create mapping", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create mapping"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToMappingResponse(&mapping))
}

// listMappings godoc
// @Summary List mapping rules
// @Description Retrieves mapping rules, optionally filtered by source system and type
// @Tags mappings
// @Produce json
// @Param sourceSystem query string false "Source system filter"
// @Param sourceType query string false "Source type filter"
// @Success 200 {array} dto.MappingResponse
// @Security BearerAuth
// @Router /mappings [get]
func (h *mappingHandler) listMappings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ListMappingsParams{
		SourceSystem: c.Query("sourceSystem"),
		SourceType:   c.Query("sourceType"),
	}
	mappings, err := h.mappingService.ListMappings(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list mappings", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list mappings"})
		return
	}

	c.JSON(http.StatusOK, dto.ToMappingResponses(mappings))
}

// getMapping godoc
// @Summary Get a mapping rule
// @Description Retrieves a mapping rule by its ID
// @Tags mappings
// @Produce json
// @Param mappingID path string true "Mapping ID"
// @Success 200 {object} dto.MappingResponse
// @Failure 404 {object} map[string]string "Mapping not found"
// @Security BearerAuth
// @Router /mappings/{mappingID} [get]
func (h *mappingHandler) getMapping(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	mappingID := c.Param("mappingID")

	mapping, err := h.mappingService.GetMappingByID(c.Request.Context(), mappingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Mapping not found"})
			return
		}
		logger.Error("Failed to get mapping", slog.String("error", err.Error()), slog.String("mapping_id", mappingID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve mapping"})
		return
	}

	c.JSON(http.StatusOK, dto.ToMappingResponse(&mapping))
}

// deactivateMapping godoc
// @Summary Deactivate a mapping rule
// @Description Soft-deletes a mapping rule so it no longer matches events
// @Tags mappings
// @Produce json
// @Param mappingID path string true "Mapping ID"
// @Success 204 "Mapping deactivated"
// @Failure 404 {object} map[string]string "Mapping not found"
// @Security BearerAuth
// @Router /mappings/{mappingID} [delete]
func (h *mappingHandler) deactivateMapping(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	mappingID := c.Param("mappingID")

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.mappingService.DeactivateMapping(c.Request.Context(), updaterUserID, mappingID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Mapping not found"})
			return
		}
		logger.Error("Failed to deactivate mapping", slog.String("error", err.Error()), slog.String("mapping_id", mappingID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate mapping"})
		return
	}

	c.Status(http.StatusNoContent)
}
