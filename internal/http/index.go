package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// IndexController serves the catalog home page.
type IndexController struct {
	pageRenderer
	counter Counter
}

func NewIndexController(pages pageRenderer, counter Counter) *IndexController {
	return &IndexController{pageRenderer: pages, counter: counter}
}

// Home shows how many authors, genres and books the catalog holds.
// GET /catalog
func (ic *IndexController) Home(c *gin.Context) {
	counts, err := ic.counter.Counts(c.Request.Context())
	if err != nil {
		ic.respondInternalError(c, err, "count records")
		return
	}
	ic.render(c, http.StatusOK, "index", "Local Library Home", gin.H{
		"Counts": counts,
	})
}

// Root redirects to the catalog.
// GET /
func (ic *IndexController) Root(c *gin.Context) {
	c.Redirect(http.StatusFound, "/catalog")
}
