package forms

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/library/internal/entities"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Tolkien", "Tolkien"},
		{"trims", "  Tolkien \t", "Tolkien"},
		{"escapes markup", "<b>Bold</b>", "&lt;b&gt;Bold&lt;/b&gt;"},
		{"escapes quotes and ampersand", ` Tom & "Jerry" `, "Tom &amp; &#34;Jerry&#34;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestUnsanitize_RoundTrip(t *testing.T) {
	raw := `Science & "Fiction"`
	assert.Equal(t, raw, Unsanitize(Sanitize(raw)))
}

func TestAuthorInput_Check(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		in := AuthorInput{FirstName: " Ursula ", FamilyName: "LeGuin", DateOfBirth: "1929-10-21", DateOfDeath: "2018-01-22"}
		assert.False(t, in.Check().Any())
	})

	t.Run("empty family name", func(t *testing.T) {
		in := AuthorInput{FirstName: "Ursula"}
		errs := in.Check()
		require.True(t, errs.Any())
		assert.Equal(t, "Family name must be specified.", errs.For("family_name"))
		assert.Empty(t, errs.For("first_name"))
	})

	t.Run("whitespace only first name", func(t *testing.T) {
		in := AuthorInput{FirstName: "   ", FamilyName: "Austen"}
		assert.Equal(t, "First name must be specified.", in.Check().For("first_name"))
	})

	t.Run("non alphabetic family name", func(t *testing.T) {
		in := AuthorInput{FirstName: "Ursula", FamilyName: "Le Guin2"}
		assert.Equal(t, "Family name must be alphabet text.", in.Check().For("family_name"))
	})

	t.Run("invalid date", func(t *testing.T) {
		in := AuthorInput{FirstName: "Ursula", FamilyName: "LeGuin", DateOfBirth: "21/10/1929"}
		assert.Equal(t, "Invalid date of birth.", in.Check().For("date_of_birth"))
	})

	t.Run("escaped first name must fit the column", func(t *testing.T) {
		in := AuthorInput{FirstName: strings.Repeat("<", 30), FamilyName: "Austen"}
		assert.Equal(t, "First name is too long once special characters are escaped.", in.Check().For("first_name"))
	})

	t.Run("death before birth", func(t *testing.T) {
		in := AuthorInput{FirstName: "Ursula", FamilyName: "LeGuin", DateOfBirth: "1929-10-21", DateOfDeath: "1900-01-01"}
		assert.Equal(t, "Date of death must not be before date of birth.", in.Check().For("date_of_death"))
	})

	t.Run("errors follow form order", func(t *testing.T) {
		errs := AuthorInput{DateOfBirth: "bad"}.Check()
		require.Len(t, errs, 3)
		assert.Equal(t, "first_name", errs[0].Field)
		assert.Equal(t, "family_name", errs[1].Field)
		assert.Equal(t, "date_of_birth", errs[2].Field)
	})
}

func TestAuthorInput_Author(t *testing.T) {
	in := AuthorInput{FirstName: "  <i>Mary</i> ", FamilyName: " Shelley ", DateOfBirth: "1797-08-30"}
	author := in.Author()

	assert.Equal(t, "&lt;i&gt;Mary&lt;/i&gt;", author.FirstName)
	assert.Equal(t, "Shelley", author.FamilyName)
	require.NotNil(t, author.DateOfBirth)
	assert.Equal(t, "1797-08-30", author.DateOfBirth.Format(entities.DateLayout))
	assert.Nil(t, author.DateOfDeath)
}

func TestAuthorInputFrom(t *testing.T) {
	stored := AuthorInput{FirstName: "Anne & Co", FamilyName: "Bronte", DateOfDeath: "1849-05-28"}.Author()
	in := AuthorInputFrom(*stored)

	assert.Equal(t, "Anne & Co", in.FirstName)
	assert.Equal(t, "Bronte", in.FamilyName)
	assert.Equal(t, "", in.DateOfBirth)
	assert.Equal(t, "1849-05-28", in.DateOfDeath)
}

func TestGenreInput_Check(t *testing.T) {
	assert.False(t, GenreInput{Name: "Fantasy"}.Check().Any())
	assert.Equal(t, "Genre name required.", GenreInput{Name: "  "}.Check().For("name"))
	assert.Equal(t, "Genre name must be between 3 and 100 characters.", GenreInput{Name: "Sf"}.Check().For("name"))

	t.Run("length is measured after escaping", func(t *testing.T) {
		assert.False(t, GenreInput{Name: strings.Repeat("&", 20)}.Check().Any(), "20 ampersands store as 100 characters")

		errs := GenreInput{Name: strings.Repeat("&", 100)}.Check()
		assert.Equal(t, "Genre name is too long once special characters are escaped.", errs.For("name"))
		assert.NotEmpty(t, GenreInput{Name: strings.Repeat("&", 21)}.Check().For("name"))
	})
}

func TestBookInput(t *testing.T) {
	t.Run("requires fields", func(t *testing.T) {
		errs := BookInput{}.Check()
		assert.NotEmpty(t, errs.For("title"))
		assert.NotEmpty(t, errs.For("author"))
		assert.NotEmpty(t, errs.For("summary"))
		assert.NotEmpty(t, errs.For("isbn"))
		assert.Equal(t, "Choose at least one genre.", errs.For("genre"))
	})

	t.Run("escaped isbn must fit the column", func(t *testing.T) {
		in := BookInput{Title: "Dune", Author: "3", Summary: "Spice", ISBN: "978&&&&&&&&&&&&&&&&&", Genre: []string{"1"}}
		assert.Equal(t, "ISBN is too long once special characters are escaped.", in.Check().For("isbn"))

		in.ISBN = "978&1"
		assert.False(t, in.Check().Any())
		assert.Equal(t, "978&amp;1", in.Book().ISBN)
	})

	t.Run("escaped title must fit the column", func(t *testing.T) {
		in := BookInput{Title: strings.Repeat("'", 200), Author: "3", Summary: "Spice", ISBN: "1", Genre: []string{"1"}}
		assert.NotEmpty(t, in.Check().For("title"))
	})

	t.Run("rejects non numeric references", func(t *testing.T) {
		in := BookInput{Title: "Dune", Author: "frank", Summary: "Spice", ISBN: "123", Genre: []string{"x"}}
		errs := in.Check()
		assert.Equal(t, "Author must be chosen from the list.", errs.For("author"))
		assert.NotEmpty(t, errs.For("genre"))
	})

	t.Run("builds entity with references", func(t *testing.T) {
		in := BookInput{Title: " Dune ", Author: "3", Summary: "Spice", ISBN: "9780441013593", Genre: []string{"1", "4"}}
		require.False(t, in.Check().Any())

		book := in.Book()
		assert.Equal(t, "Dune", book.Title)
		assert.Equal(t, uint(3), book.AuthorID)
		require.Len(t, book.Genres, 2)
		assert.Equal(t, uint(4), book.Genres[1].ID)
		assert.True(t, in.Checked(4))
		assert.False(t, in.Checked(2))
	})
}

func TestParseID(t *testing.T) {
	id, err := ParseID(" 12 ")
	require.NoError(t, err)
	assert.Equal(t, uint(12), id)

	_, err = ParseID("0")
	assert.Error(t, err)
	_, err = ParseID("abc")
	assert.Error(t, err)
}
