package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/forms"
	"github.com/mrlokans/library/internal/services"
)

// SeedCommand fills an empty catalog with sample authors, genres and books.
type SeedCommand struct {
	DatabasePath string
	Force        bool
	Verbose      bool
}

func NewSeedCommand() *SeedCommand {
	return &SeedCommand{}
}

func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the SQLite catalog database")
	fs.BoolVar(&cmd.Force, "force", false, "Seed even when the catalog already has records")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Print every record as it is created")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Populate the catalog with sample authors, genres and books.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

type seedBook struct {
	title   string
	summary string
	isbn    string
	author  int
	genres  []string
}

var seedAuthors = []forms.AuthorInput{
	{FirstName: "Patrick", FamilyName: "Rothfuss", DateOfBirth: "1973-06-06"},
	{FirstName: "Ben", FamilyName: "Bova", DateOfBirth: "1932-11-08"},
	{FirstName: "Isaac", FamilyName: "Asimov", DateOfBirth: "1920-01-02", DateOfDeath: "1992-04-06"},
	{FirstName: "Bob", FamilyName: "Billings"},
	{FirstName: "Jim", FamilyName: "Jones", DateOfBirth: "1971-12-16"},
}

var seedGenres = []string{"Fantasy", "Science Fiction", "French Poetry"}

var seedBooks = []seedBook{
	{"The Name of the Wind (The Kingkiller Chronicle, #1)", "A young man grows into the most notorious wizard his world has ever seen.", "9781473211896", 0, []string{"Fantasy"}},
	{"The Wise Man's Fear (The Kingkiller Chronicle, #2)", "Kvothe searches for answers about the Chandrian.", "9788401352836", 0, []string{"Fantasy"}},
	{"The Slow Regard of Silent Things (Kingkiller Chronicle)", "Deep below the University there is a dark place.", "9780756411336", 0, []string{"Fantasy"}},
	{"Apes and Angels", "Humankind's first tentative steps into interstellar space.", "9780765379528", 1, []string{"Science Fiction"}},
	{"Death Wave", "Ben Bova's previous novel New Earth told of a wave of deadly radiation.", "9780765379504", 1, []string{"Science Fiction"}},
	{"Test Book 1", "Summary of test book 1", "ISBN111111", 4, []string{"Fantasy", "Science Fiction"}},
	{"Test Book 2", "Summary of test book 2", "ISBN222222", 4, []string{"French Poetry"}},
}

func (cmd *SeedCommand) Run() error {
	fmt.Println("Catalog Seed")
	fmt.Println("============")

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	counts, err := db.Counts(ctx)
	if err != nil {
		return err
	}
	if counts.Authors+counts.Genres+counts.Books > 0 && !cmd.Force {
		fmt.Printf("Catalog already has %d authors, %d genres and %d books; use -force to seed anyway\n",
			counts.Authors, counts.Genres, counts.Books)
		return nil
	}

	cat := services.NewCatalog(db.DB, nil)
	stats, err := seed(ctx, cat, cmd.Verbose)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Authors: %d\n", stats.authors)
	fmt.Printf("Genres:  %d (%d already present)\n", stats.genres, stats.existingGenres)
	fmt.Printf("Books:   %d\n", stats.books)
	return nil
}

type seedStats struct {
	authors        int
	genres         int
	existingGenres int
	books          int
}

// seed goes through the catalog services so the form rules apply: input is
// validated and sanitised, and genres are found by name before being created.
func seed(ctx context.Context, cat *services.Catalog, verbose bool) (seedStats, error) {
	var stats seedStats

	authors := make([]*entities.Author, 0, len(seedAuthors))
	for _, in := range seedAuthors {
		if errs := in.Check(); errs.Any() {
			return stats, fmt.Errorf("invalid seed author %s %s: %s", in.FirstName, in.FamilyName, errs[0].Message)
		}
		res, err := cat.Authors.Create(ctx, in.Author())
		if err != nil {
			return stats, err
		}
		authors = append(authors, res.Record)
		stats.authors++
		if verbose {
			fmt.Printf("  author %d: %s\n", res.Record.ID, res.Record.Name())
		}
	}

	genres := make(map[string]entities.Genre, len(seedGenres))
	for _, name := range seedGenres {
		in := forms.GenreInput{Name: name}
		res, err := cat.Genres.Create(ctx, in.Genre())
		if err != nil {
			return stats, err
		}
		genres[name] = *res.Record
		if res.Existed {
			stats.existingGenres++
		} else {
			stats.genres++
		}
		if verbose {
			fmt.Printf("  genre %d: %s\n", res.Record.ID, res.Record.Name)
		}
	}

	for _, sb := range seedBooks {
		in := forms.BookInput{
			Title:   sb.title,
			Author:  fmt.Sprint(authors[sb.author].ID),
			Summary: sb.summary,
			ISBN:    sb.isbn,
		}
		for _, name := range sb.genres {
			in.Genre = append(in.Genre, fmt.Sprint(genres[name].ID))
		}
		if errs := in.Check(); errs.Any() {
			return stats, fmt.Errorf("invalid seed book %q: %s", sb.title, errs[0].Message)
		}
		res, err := cat.Books.Create(ctx, in.Book())
		if err != nil {
			return stats, err
		}
		stats.books++
		if verbose {
			fmt.Printf("  book %d: %s\n", res.Record.ID, res.Record.Title)
		}
	}

	return stats, nil
}
