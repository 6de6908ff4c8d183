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
	"github.com/praxio/fundledger/internal/utils/rules"
)

// eventHandler handles source event ingestion from collaborator services.
type eventHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newEventHandler creates a new eventHandler.
func newEventHandler(journalService portssvc.JournalSvcFacade) *eventHandler {
	return &eventHandler{
		journalService: journalService,
	}
}

// registerEventRoutes registers the event ingestion route.
func registerEventRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newEventHandler(journalService)
	rg.POST("", h.ingestEvent)
}

// ingestEvent godoc
// @Summary Ingest a source event
// @Description Translates a business event into a journal entry via the mapping rules. Events covered by an auto-post rule are posted immediately; others wait in draft for review.
// @Tags events
// @Accept json
// @Produce json
// @Param event body dto.SourceEventRequest true "Source event"
// @Success 201 {object} dto.EntryResponse
// @Success 200 {object} map[string]string "Event matched mappings but produced no ledger activity"
// @Failure 400 {object} map[string]string "Invalid or unbalanced event"
// @Failure 409 {object} map[string]string "Source document already recorded"
// @Failure 422 {object} map[string]string "No applicable mapping"
// @Security ApiKeyAuth
// @Router /events [post]
func (h *eventHandler) ingestEvent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SourceEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ingestEvent", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.journalService.CreateAutomatedEntry(c.Request.Context(), req.ToDomainSourceEvent())
	if err != nil {
		var unbalanced *services.UnbalancedEntryError
		switch {
		case errors.Is(err, services.ErrNoLedgerActivity):
			// Zero-amount events are routine, not a mapping failure.
			logger.Info("Source event produced no ledger activity",
				slog.String("source_system", req.SourceSystem),
				slog.String("source_id", req.SourceID))
			c.JSON(http.StatusOK, gin.H{"status": "no_activity", "message": err.Error()})
		case errors.Is(err, services.ErrNoApplicableMapping):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrDuplicateSourceEvent):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.As(err, &unbalanced):
			c.JSON(http.StatusBadRequest, gin.H{"error": unbalanced.Error()})
		case errors.Is(err, rules.ErrUnsupportedOperator),
			errors.Is(err, services.ErrAmountNotNumeric),
			errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to ingest source event",
				slog.String("error", err.Error()),
				slog.String("source_system", req.SourceSystem),
				slog.String("source_id", req.SourceID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process source event"})
		}
		return
	}

	logger.Info("Source event recorded",
		slog.String("source_system", req.SourceSystem),
		slog.String("source_id", req.SourceID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("status", string(entry.Status)))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(&entry))
}
