package entities

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the format used for dates in forms and on catalog pages.
const DateLayout = "2006-01-02"

// Column sizes of the bounded text fields, in characters of stored
// (escaped) text.
const (
	AuthorNameSize = 100
	GenreNameSize  = 100
	BookTitleSize  = 512
	BookISBNSize   = 20
)

type Author struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	FirstName   string     `gorm:"size:100;not null" json:"first_name"`
	FamilyName  string     `gorm:"index;size:100;not null" json:"family_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	DateOfDeath *time.Time `json:"date_of_death,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Genre struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"index;size:100;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Book struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"index;size:512;not null" json:"title"`
	Summary   string    `gorm:"type:text" json:"summary"`
	ISBN      string    `gorm:"size:20" json:"isbn"`
	AuthorID  uint      `gorm:"index" json:"author_id"`
	Author    Author    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Genres    []Genre   `gorm:"many2many:book_genres;" json:"genres,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Author) TableName() string {
	return "authors"
}

func (Genre) TableName() string {
	return "genres"
}

func (Book) TableName() string {
	return "books"
}

func (a Author) GetID() uint {
	return a.ID
}

func (a *Author) SetID(id uint) {
	a.ID = id
}

func (a Author) URL() string {
	return fmt.Sprintf("/catalog/author/%d", a.ID)
}

func (a Author) DisplayName() string {
	return a.Name()
}

// Name returns "Family, First"; empty when either part is missing.
func (a Author) Name() string {
	if a.FirstName == "" || a.FamilyName == "" {
		return ""
	}
	return a.FamilyName + ", " + a.FirstName
}

// Lifespan renders the birth and death dates, e.g. "1920-01-02 - 1992-04-06".
func (a Author) Lifespan() string {
	if a.DateOfBirth == nil && a.DateOfDeath == nil {
		return ""
	}
	var birth, death string
	if a.DateOfBirth != nil {
		birth = a.DateOfBirth.Format(DateLayout)
	}
	if a.DateOfDeath != nil {
		death = a.DateOfDeath.Format(DateLayout)
	}
	return strings.TrimSpace(birth + " - " + death)
}

func (g Genre) GetID() uint {
	return g.ID
}

func (g *Genre) SetID(id uint) {
	g.ID = id
}

func (g Genre) URL() string {
	return fmt.Sprintf("/catalog/genre/%d", g.ID)
}

func (g Genre) DisplayName() string {
	return g.Name
}

func (b Book) GetID() uint {
	return b.ID
}

func (b *Book) SetID(id uint) {
	b.ID = id
}

func (b Book) URL() string {
	return fmt.Sprintf("/catalog/book/%d", b.ID)
}

func (b Book) DisplayName() string {
	return b.Title
}

// HasGenre reports whether the book is tagged with the given genre id.
func (b Book) HasGenre(id uint) bool {
	for _, g := range b.Genres {
		if g.ID == id {
			return true
		}
	}
	return false
}
