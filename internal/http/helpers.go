package http

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/readonly"
	"github.com/mrlokans/library/internal/security"
	"github.com/mrlokans/library/internal/sessions"
)

// ErrorResponse is the standard error response format for API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// PaginatedResponse wraps paginated data with metadata.
type PaginatedResponse struct {
	Data       any   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// pageRenderer fills the data every page template expects: the flash
// message, the CSRF field and the read-only flag.
type pageRenderer struct {
	sessions *sessions.Manager
}

func (p pageRenderer) render(c *gin.Context, status int, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	data["CSRFField"] = security.CSRFTokenField(c)
	data["ReadOnly"] = readonly.Enabled(c)
	data["RequestID"] = requestID(c)
	if p.sessions != nil {
		data["Flash"] = p.sessions.PopFlash(c.Request.Context())
	}
	c.HTML(status, name, data)
}

func (p pageRenderer) flash(c *gin.Context, kind, message string) {
	if p.sessions != nil {
		p.sessions.PutFlash(c.Request.Context(), kind, message)
	}
}

// errorPage renders the shared error template.
func (p pageRenderer) errorPage(c *gin.Context, status int, message string) {
	p.render(c, status, "error", http.StatusText(status), gin.H{
		"Status":  status,
		"Message": message,
	})
}

// respondInternalError logs the error and renders a generic 500 page.
// The actual error is logged but never exposed to the client.
func (p pageRenderer) respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s) [request %s]: %v", context, requestID(c), err)
	p.errorPage(c, http.StatusInternalServerError, "Something went wrong. Please try again later.")
}

// parseIDParam extracts a positive id from the URL, trimming whitespace.
// Responds with 400 and returns false when it is not a valid id.
func (p pageRenderer) parseIDParam(c *gin.Context, kind string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 32)
	if err != nil || id == 0 {
		p.errorPage(c, http.StatusBadRequest, "Invalid "+kind+" id.")
		return 0, false
	}
	return uint(id), true
}

// respondBadRequest sends a 400 Bad Request JSON response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}
