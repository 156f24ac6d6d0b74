package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/entities"
)

type AuditController struct {
	reader AuditReader
}

func NewAuditController(reader AuditReader) *AuditController {
	return &AuditController{
		reader: reader,
	}
}

// GetAuditEvents returns paginated audit events as JSON
// GET /api/audit
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 25
	}

	eventType := entities.AuditEventType(c.Query("type"))
	if eventType != "" && !validEventType(eventType) {
		respondBadRequest(c, "Unknown event type")
		return
	}
	offset := (page - 1) * limit

	events, total, err := ac.reader.GetEvents(c.Request.Context(), eventType, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load audit events"})
		return
	}

	totalPages := (int(total) + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:       events,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	})
}

// GetHistory returns the audit trail of one catalog record.
// GET /api/audit/:kind/:id
func (ac *AuditController) GetHistory(c *gin.Context) {
	kind := c.Param("kind")
	switch kind {
	case "author", "genre", "book":
	default:
		respondBadRequest(c, "Unknown record kind")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		respondBadRequest(c, "Invalid id")
		return
	}

	events, err := ac.reader.History(c.Request.Context(), kind, uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load audit events"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func validEventType(t entities.AuditEventType) bool {
	switch t {
	case entities.AuditEventCreate, entities.AuditEventUpdate, entities.AuditEventDelete,
		entities.AuditEventDeleteBlocked, entities.AuditEventMaintenance:
		return true
	}
	return false
}
