package http

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTemplateContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, engine := gin.CreateTestContext(w)
	tmpl, err := LoadTemplates("../../templates")
	require.NoError(t, err)
	engine.SetHTMLTemplate(tmpl)
	c.Request = httptest.NewRequest("GET", "/", nil)
	return c, w
}

func TestParseIDParam_Valid(t *testing.T) {
	c, w := newTemplateContext(t)
	c.Params = gin.Params{{Key: "id", Value: " 123 "}}

	id, ok := pageRenderer{}.parseIDParam(c, "author")

	assert.True(t, ok)
	assert.Equal(t, uint(123), id)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestParseIDParam_Invalid(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-1", "99999999999"} {
		t.Run(raw, func(t *testing.T) {
			c, w := newTemplateContext(t)
			c.Params = gin.Params{{Key: "id", Value: raw}}

			id, ok := pageRenderer{}.parseIDParam(c, "genre")

			assert.False(t, ok)
			assert.Equal(t, uint(0), id)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "Invalid genre id.")
		})
	}
}

func TestRespondInternalError_HidesDetails(t *testing.T) {
	c, w := newTemplateContext(t)

	pageRenderer{}.respondInternalError(c, assert.AnError, "load author")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Something went wrong")
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}

func TestRespondBadRequest(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondBadRequest(c, "bad input")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"bad input"}`, w.Body.String())
}

func TestLoadTemplates_DefinesEveryPage(t *testing.T) {
	tmpl, err := LoadTemplates("../../templates")
	require.NoError(t, err)

	pages := []string{"index", "error"}
	for _, kind := range []string{"author", "genre", "book"} {
		for _, page := range []string{"list", "detail", "form", "delete"} {
			pages = append(pages, kind+"_"+page)
		}
	}
	for _, name := range pages {
		assert.NotNil(t, tmpl.Lookup(name), "missing template %q", name)
	}
}

func TestTemplateFuncs_Unescape(t *testing.T) {
	tmpl := template.Must(template.New("t").Funcs(TemplateFuncs()).Parse(`{{unescape .}}`))
	w := httptest.NewRecorder()

	require.NoError(t, tmpl.Execute(w, "Tom &amp; Jerry"))
	assert.Equal(t, "Tom &amp; Jerry", w.Body.String())
}

func TestTimeoutMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(TimeoutMiddleware(time.Minute))
	router.GET("/", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		c.JSON(http.StatusOK, gin.H{"deadline": ok})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	assert.JSONEq(t, `{"deadline":true}`, w.Body.String())
}
