package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/catalog"
	"github.com/mrlokans/library/internal/forms"
)

// resource describes how one catalog entity is exposed over HTTP. F is the
// entity's raw form type.
type resource[T any, P catalog.Record[T], F any] struct {
	label   string // "Author", used in titles and messages
	plural  string // "authors", used in the listing route
	service *catalog.Service[T, P]

	emptyForm  func() F
	fromRecord func(record T) F
	// check validates the bound form; lookups against other entities may fail.
	check func(ctx context.Context, in F) (forms.Errors, error)
	build func(in F) *T

	// formData adds entity-specific values to the create/update form page.
	formData func(ctx context.Context) (gin.H, error)

	// duplicateField names the form field blamed when an update collides
	// with another record's natural key.
	duplicateField string
}

// ResourceController serves list, detail, create, update and delete pages
// for one catalog entity.
type ResourceController[T any, P catalog.Record[T], F any] struct {
	pageRenderer
	res resource[T, P, F]
}

func newResourceController[T any, P catalog.Record[T], F any](pages pageRenderer, res resource[T, P, F]) *ResourceController[T, P, F] {
	return &ResourceController[T, P, F]{pageRenderer: pages, res: res}
}

func (rc *ResourceController[T, P, F]) kind() string {
	return rc.res.service.Kind()
}

func (rc *ResourceController[T, P, F]) template(page string) string {
	return rc.kind() + "_" + page
}

// Register mounts the entity's routes under /catalog.
func (rc *ResourceController[T, P, F]) Register(group *gin.RouterGroup) {
	kind := rc.kind()
	group.GET("/"+rc.res.plural, rc.List)
	group.GET("/"+kind+"/create", rc.CreateForm)
	group.POST("/"+kind+"/create", rc.Create)
	group.GET("/"+kind+"/:id", rc.Detail)
	group.GET("/"+kind+"/:id/delete", rc.DeleteForm)
	group.POST("/"+kind+"/:id/delete", rc.Delete)
	group.GET("/"+kind+"/:id/update", rc.UpdateForm)
	group.POST("/"+kind+"/:id/update", rc.Update)
}

// List renders every record.
// GET /catalog/{plural}
func (rc *ResourceController[T, P, F]) List(c *gin.Context) {
	records, err := rc.res.service.List(c.Request.Context())
	if err != nil {
		rc.respondInternalError(c, err, "list "+rc.res.plural)
		return
	}
	rc.render(c, http.StatusOK, rc.template("list"), rc.res.label+" List", gin.H{
		"Records": records,
	})
}

// Detail renders one record and the books that reference it.
// GET /catalog/{kind}/:id
func (rc *ResourceController[T, P, F]) Detail(c *gin.Context) {
	detail, ok := rc.loadDetail(c)
	if !ok {
		return
	}
	rc.render(c, http.StatusOK, rc.template("detail"), rc.res.label+" Detail", gin.H{
		"Record": detail.Record,
		"Books":  detail.Books,
	})
}

// CreateForm renders an empty form.
// GET /catalog/{kind}/create
func (rc *ResourceController[T, P, F]) CreateForm(c *gin.Context) {
	rc.renderForm(c, http.StatusOK, "Create "+rc.res.label, rc.res.emptyForm(), nil)
}

// Create validates the form and stores a new record. When the entity has a
// natural key and a matching record exists, the visitor is sent to it.
// POST /catalog/{kind}/create
func (rc *ResourceController[T, P, F]) Create(c *gin.Context) {
	title := "Create " + rc.res.label
	in, ok := rc.bindForm(c, title)
	if !ok {
		return
	}

	result, err := rc.res.service.Create(c.Request.Context(), rc.res.build(in))
	if err != nil {
		rc.respondInternalError(c, err, "create "+rc.kind())
		return
	}

	record := P(result.Record)
	if result.Existed {
		rc.flash(c, "warning", fmt.Sprintf("%s %q already exists.", rc.res.label, forms.Unsanitize(record.DisplayName())))
	} else {
		rc.flash(c, "success", rc.res.label+" created.")
	}
	c.Redirect(http.StatusSeeOther, record.URL())
}

// DeleteForm renders the confirmation page, listing the books that would
// block the deletion.
// GET /catalog/{kind}/:id/delete
func (rc *ResourceController[T, P, F]) DeleteForm(c *gin.Context) {
	detail, ok := rc.loadDetail(c)
	if !ok {
		return
	}
	rc.renderDelete(c, http.StatusOK, detail.Record, detail.Books, "")
}

// Delete removes the record unless books still reference it.
// POST /catalog/{kind}/:id/delete
func (rc *ResourceController[T, P, F]) Delete(c *gin.Context) {
	id, ok := rc.parseIDParam(c, rc.kind())
	if !ok {
		return
	}

	field := rc.kind() + "id"
	bodyID, err := forms.ParseID(c.PostForm(field))
	if err != nil || bodyID != id {
		message := fmt.Sprintf("The %s to delete was not identified.", strings.ToLower(rc.res.label))
		if err == nil {
			message = fmt.Sprintf("The %s id in the form does not match the page.", strings.ToLower(rc.res.label))
		}
		detail, ok := rc.loadDetail(c)
		if !ok {
			return
		}
		rc.renderDelete(c, http.StatusBadRequest, detail.Record, detail.Books, message)
		return
	}

	result, err := rc.res.service.Delete(c.Request.Context(), id)
	if err != nil {
		rc.respondInternalError(c, err, "delete "+rc.kind())
		return
	}

	switch result.Outcome {
	case catalog.NotFound:
		rc.errorPage(c, http.StatusNotFound, rc.res.label+" not found.")
	case catalog.BlockedByDependents:
		rc.renderDelete(c, http.StatusConflict, result.Record, result.Dependents, "")
	default:
		rc.flash(c, "success", fmt.Sprintf("%s %q deleted.", rc.res.label, forms.Unsanitize(P(result.Record).DisplayName())))
		c.Redirect(http.StatusSeeOther, "/catalog/"+rc.res.plural)
	}
}

// UpdateForm renders the form filled with the stored values.
// GET /catalog/{kind}/:id/update
func (rc *ResourceController[T, P, F]) UpdateForm(c *gin.Context) {
	id, ok := rc.parseIDParam(c, rc.kind())
	if !ok {
		return
	}

	record, err := rc.res.service.Get(c.Request.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		rc.errorPage(c, http.StatusNotFound, rc.res.label+" not found.")
		return
	}
	if err != nil {
		rc.respondInternalError(c, err, "load "+rc.kind())
		return
	}

	rc.renderForm(c, http.StatusOK, "Update "+rc.res.label, rc.res.fromRecord(*record), nil)
}

// Update validates the form and replaces the stored record.
// POST /catalog/{kind}/:id/update
func (rc *ResourceController[T, P, F]) Update(c *gin.Context) {
	id, ok := rc.parseIDParam(c, rc.kind())
	if !ok {
		return
	}

	title := "Update " + rc.res.label
	in, ok := rc.bindForm(c, title)
	if !ok {
		return
	}

	updated, err := rc.res.service.Update(c.Request.Context(), id, rc.res.build(in))
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		rc.errorPage(c, http.StatusNotFound, rc.res.label+" not found.")
		return
	case errors.Is(err, catalog.ErrDuplicate):
		errs := forms.Errors{}.Add(rc.res.duplicateField,
			fmt.Sprintf("Another %s already uses this name.", strings.ToLower(rc.res.label)))
		rc.renderForm(c, http.StatusUnprocessableEntity, title, in, errs)
		return
	case err != nil:
		rc.respondInternalError(c, err, "update "+rc.kind())
		return
	}

	rc.flash(c, "success", rc.res.label+" updated.")
	c.Redirect(http.StatusSeeOther, P(updated).URL())
}

// bindForm binds and checks the submitted form. On failure it has already
// responded: 422 with the form re-rendered, or an error page.
func (rc *ResourceController[T, P, F]) bindForm(c *gin.Context, title string) (F, bool) {
	in := rc.res.emptyForm()
	if err := c.ShouldBind(&in); err != nil {
		rc.renderForm(c, http.StatusUnprocessableEntity, title, in, forms.Errors{}.Add("", "The form could not be read."))
		return in, false
	}

	errs, err := rc.res.check(c.Request.Context(), in)
	if err != nil {
		rc.respondInternalError(c, err, "validate "+rc.kind())
		return in, false
	}
	if errs.Any() {
		rc.renderForm(c, http.StatusUnprocessableEntity, title, in, errs)
		return in, false
	}
	return in, true
}

func (rc *ResourceController[T, P, F]) renderForm(c *gin.Context, status int, title string, in F, errs forms.Errors) {
	data := gin.H{
		"Form":   in,
		"Errors": errs,
	}
	if rc.res.formData != nil {
		extra, err := rc.res.formData(c.Request.Context())
		if err != nil {
			rc.respondInternalError(c, err, "load "+rc.kind()+" form")
			return
		}
		for k, v := range extra {
			data[k] = v
		}
	}
	rc.render(c, status, rc.template("form"), title, data)
}

func (rc *ResourceController[T, P, F]) renderDelete(c *gin.Context, status int, record *T, books any, message string) {
	rc.render(c, status, rc.template("delete"), "Delete "+rc.res.label, gin.H{
		"Record":  record,
		"Books":   books,
		"Blocked": status == http.StatusConflict,
		"Error":   message,
	})
}

// loadDetail parses the id and loads the record with its dependents. On
// failure it has already responded.
func (rc *ResourceController[T, P, F]) loadDetail(c *gin.Context) (*catalog.Detail[T], bool) {
	id, ok := rc.parseIDParam(c, rc.kind())
	if !ok {
		return nil, false
	}

	detail, err := rc.res.service.Detail(c.Request.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		rc.errorPage(c, http.StatusNotFound, rc.res.label+" not found.")
		return nil, false
	}
	if err != nil {
		rc.respondInternalError(c, err, "load "+rc.kind())
		return nil, false
	}
	return detail, true
}
