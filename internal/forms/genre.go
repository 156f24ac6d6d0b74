package forms

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mrlokans/library/internal/entities"
)

// GenreInput is the raw genre form.
type GenreInput struct {
	Name string `form:"name" json:"name"`
}

func GenreInputFrom(g entities.Genre) GenreInput {
	return GenreInput{Name: Unsanitize(g.Name)}
}

func (in GenreInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)

	return validation.ValidateStruct(&in,
		validation.Field(&in.Name,
			validation.Required.Error("Genre name required."),
			validation.RuneLength(3, 100).Error("Genre name must be between 3 and 100 characters."),
			validation.By(storedLength(entities.GenreNameSize, "Genre name is too long once special characters are escaped.")),
		),
	)
}

func (in GenreInput) Check() Errors {
	return FromValidation(in.Validate(), "name")
}

func (in GenreInput) Genre() *entities.Genre {
	return &entities.Genre{Name: Sanitize(in.Name)}
}
