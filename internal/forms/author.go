package forms

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/mrlokans/library/internal/entities"
)

var authorFieldOrder = []string{"first_name", "family_name", "date_of_birth", "date_of_death"}

// AuthorInput is the raw author form.
type AuthorInput struct {
	FirstName   string `form:"first_name" json:"first_name"`
	FamilyName  string `form:"family_name" json:"family_name"`
	DateOfBirth string `form:"date_of_birth" json:"date_of_birth"`
	DateOfDeath string `form:"date_of_death" json:"date_of_death"`
}

// AuthorInputFrom pre-fills the form from a stored author.
func AuthorInputFrom(a entities.Author) AuthorInput {
	return AuthorInput{
		FirstName:   Unsanitize(a.FirstName),
		FamilyName:  Unsanitize(a.FamilyName),
		DateOfBirth: FormatDate(a.DateOfBirth),
		DateOfDeath: FormatDate(a.DateOfDeath),
	}
}

func (in AuthorInput) Validate() error {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.FamilyName = strings.TrimSpace(in.FamilyName)
	in.DateOfBirth = strings.TrimSpace(in.DateOfBirth)
	in.DateOfDeath = strings.TrimSpace(in.DateOfDeath)

	return validation.ValidateStruct(&in,
		validation.Field(&in.FirstName,
			validation.Required.Error("First name must be specified."),
			validation.RuneLength(1, 100).Error("First name must be at most 100 characters."),
			validation.By(storedLength(entities.AuthorNameSize, "First name is too long once special characters are escaped.")),
		),
		validation.Field(&in.FamilyName,
			validation.Required.Error("Family name must be specified."),
			is.Alpha.Error("Family name must be alphabet text."),
			validation.RuneLength(1, 100).Error("Family name must be at most 100 characters."),
			validation.By(storedLength(entities.AuthorNameSize, "Family name is too long once special characters are escaped.")),
		),
		validation.Field(&in.DateOfBirth,
			validation.Date(entities.DateLayout).Error("Invalid date of birth."),
		),
		validation.Field(&in.DateOfDeath,
			validation.Date(entities.DateLayout).Error("Invalid date of death."),
			validation.By(notBefore(in.DateOfBirth, "Date of death must not be before date of birth.")),
		),
	)
}

// Check validates the input and returns ordered field errors.
func (in AuthorInput) Check() Errors {
	return FromValidation(in.Validate(), authorFieldOrder...)
}

// Author returns the sanitised entity. Call Check first.
func (in AuthorInput) Author() *entities.Author {
	born, _ := ParseDate(in.DateOfBirth)
	died, _ := ParseDate(in.DateOfDeath)
	return &entities.Author{
		FirstName:   Sanitize(in.FirstName),
		FamilyName:  Sanitize(in.FamilyName),
		DateOfBirth: born,
		DateOfDeath: died,
	}
}
