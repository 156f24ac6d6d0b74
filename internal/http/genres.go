package http

import (
	"context"

	"github.com/mrlokans/library/internal/catalog"
	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/forms"
)

type GenresController = ResourceController[entities.Genre, *entities.Genre, forms.GenreInput]

// NewGenresController serves genre pages. Creating a genre whose name is
// already taken redirects to the existing genre.
func NewGenresController(pages pageRenderer, service *catalog.Service[entities.Genre, *entities.Genre]) *GenresController {
	return newResourceController(pages, resource[entities.Genre, *entities.Genre, forms.GenreInput]{
		label:      "Genre",
		plural:     "genres",
		service:    service,
		emptyForm:  func() forms.GenreInput { return forms.GenreInput{} },
		fromRecord: forms.GenreInputFrom,
		check: func(_ context.Context, in forms.GenreInput) (forms.Errors, error) {
			return in.Check(), nil
		},
		build:          forms.GenreInput.Genre,
		duplicateField: "name",
	})
}
