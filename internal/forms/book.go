package forms

import (
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/mrlokans/library/internal/entities"
)

var bookFieldOrder = []string{"title", "author", "summary", "isbn", "genre"}

// BookInput is the raw book form. Genre holds the ids of every checked genre.
type BookInput struct {
	Title   string   `form:"title" json:"title"`
	Author  string   `form:"author" json:"author"`
	Summary string   `form:"summary" json:"summary"`
	ISBN    string   `form:"isbn" json:"isbn"`
	Genre   []string `form:"genre" json:"genre"`
}

func BookInputFrom(b entities.Book) BookInput {
	in := BookInput{
		Title:   Unsanitize(b.Title),
		Author:  strconv.FormatUint(uint64(b.AuthorID), 10),
		Summary: Unsanitize(b.Summary),
		ISBN:    Unsanitize(b.ISBN),
	}
	for _, g := range b.Genres {
		in.Genre = append(in.Genre, strconv.FormatUint(uint64(g.ID), 10))
	}
	return in
}

func (in BookInput) Validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	in.Summary = strings.TrimSpace(in.Summary)
	in.ISBN = strings.TrimSpace(in.ISBN)

	return validation.ValidateStruct(&in,
		validation.Field(&in.Title,
			validation.Required.Error("Title must not be empty."),
			validation.RuneLength(1, 512).Error("Title must be at most 512 characters."),
			validation.By(storedLength(entities.BookTitleSize, "Title is too long once special characters are escaped.")),
		),
		validation.Field(&in.Author,
			validation.Required.Error("Author must not be empty."),
			is.Digit.Error("Author must be chosen from the list."),
		),
		validation.Field(&in.Summary,
			validation.Required.Error("Summary must not be empty."),
		),
		validation.Field(&in.ISBN,
			validation.Required.Error("ISBN must not be empty."),
			validation.RuneLength(1, 20).Error("ISBN must be at most 20 characters."),
			validation.By(storedLength(entities.BookISBNSize, "ISBN is too long once special characters are escaped.")),
		),
		validation.Field(&in.Genre,
			validation.Required.Error("Choose at least one genre."),
			validation.Each(is.Digit.Error("Genre must be chosen from the list.")),
		),
	)
}

func (in BookInput) Check() Errors {
	return FromValidation(in.Validate(), bookFieldOrder...)
}

// Book returns the sanitised entity with author and genre references set by id.
func (in BookInput) Book() *entities.Book {
	authorID, _ := ParseID(in.Author)
	book := &entities.Book{
		Title:    Sanitize(in.Title),
		Summary:  Sanitize(in.Summary),
		ISBN:     Sanitize(in.ISBN),
		AuthorID: authorID,
	}
	for _, raw := range in.Genre {
		if id, err := ParseID(raw); err == nil {
			book.Genres = append(book.Genres, entities.Genre{ID: id})
		}
	}
	return book
}

// Checked reports whether the genre id was selected, for re-rendering checkboxes.
func (in BookInput) Checked(id uint) bool {
	want := strconv.FormatUint(uint64(id), 10)
	for _, raw := range in.Genre {
		if strings.TrimSpace(raw) == want {
			return true
		}
	}
	return false
}
