package http

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/catalog"
	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/forms"
)

type BooksController = ResourceController[entities.Book, *entities.Book, forms.BookInput]

// NewBooksController serves book pages. The form offers every author and
// genre; submitted references must point at existing records.
func NewBooksController(
	pages pageRenderer,
	service *catalog.Service[entities.Book, *entities.Book],
	authors *catalog.Service[entities.Author, *entities.Author],
	genres *catalog.Service[entities.Genre, *entities.Genre],
	finder GenreFinder,
) *BooksController {
	return newResourceController(pages, resource[entities.Book, *entities.Book, forms.BookInput]{
		label:      "Book",
		plural:     "books",
		service:    service,
		emptyForm:  func() forms.BookInput { return forms.BookInput{} },
		fromRecord: forms.BookInputFrom,
		check: func(ctx context.Context, in forms.BookInput) (forms.Errors, error) {
			return checkBook(ctx, in, authors, finder)
		},
		build: forms.BookInput.Book,
		formData: func(ctx context.Context) (gin.H, error) {
			authorList, err := authors.List(ctx)
			if err != nil {
				return nil, err
			}
			genreList, err := genres.List(ctx)
			if err != nil {
				return nil, err
			}
			return gin.H{"Authors": authorList, "Genres": genreList}, nil
		},
	})
}

// checkBook validates the form fields, then that the chosen author and
// genres exist.
func checkBook(ctx context.Context, in forms.BookInput, authors *catalog.Service[entities.Author, *entities.Author], finder GenreFinder) (forms.Errors, error) {
	errs := in.Check()
	if errs.Any() {
		return errs, nil
	}

	book := in.Book()
	if _, err := authors.Get(ctx, book.AuthorID); err != nil {
		if !errors.Is(err, catalog.ErrNotFound) {
			return nil, err
		}
		errs = errs.Add("author", "Author not found.")
	}

	if len(book.Genres) > 0 && finder != nil {
		ids := make([]uint, 0, len(book.Genres))
		for _, g := range book.Genres {
			ids = append(ids, g.ID)
		}
		found, err := finder.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		known := make(map[uint]bool, len(found))
		for _, g := range found {
			known[g.ID] = true
		}
		for _, id := range ids {
			if !known[id] {
				errs = errs.Add("genre", "Genre not found.")
				break
			}
		}
	}
	return errs, nil
}
