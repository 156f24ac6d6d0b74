package http

import (
	"context"

	"github.com/mrlokans/library/internal/catalog"
	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/forms"
)

type AuthorsController = ResourceController[entities.Author, *entities.Author, forms.AuthorInput]

func NewAuthorsController(pages pageRenderer, service *catalog.Service[entities.Author, *entities.Author]) *AuthorsController {
	return newResourceController(pages, resource[entities.Author, *entities.Author, forms.AuthorInput]{
		label:      "Author",
		plural:     "authors",
		service:    service,
		emptyForm:  func() forms.AuthorInput { return forms.AuthorInput{} },
		fromRecord: forms.AuthorInputFrom,
		check: func(_ context.Context, in forms.AuthorInput) (forms.Errors, error) {
			return in.Check(), nil
		},
		build: forms.AuthorInput.Author,
	})
}
