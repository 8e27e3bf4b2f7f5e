// pkg/analysis/report.go
package analysis

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

// DirectorKindCounts is one director with titles of both kinds, counted per kind.
type DirectorKindCounts struct {
	Director   string `db:"director" json:"director"`
	MovieCount int    `db:"movie_count" json:"movie_count"`
	ShowCount  int    `db:"show_count" json:"show_count"`
}

// CountryComedyCount is a country with its count of comedy movies.
type CountryComedyCount struct {
	Country    string `db:"country" json:"country"`
	MovieCount int    `db:"movie_count" json:"movie_count"`
}

// YearTopDirector is the director with the most movies added in one year.
type YearTopDirector struct {
	Year       int    `db:"year" json:"year"`
	Director   string `db:"director" json:"director"`
	MovieCount int    `db:"movie_count" json:"movie_count"`
}

// GenreAverageDuration is a genre with its average movie running time.
type GenreAverageDuration struct {
	Genre      string  `db:"genre" json:"genre"`
	AvgMinutes float64 `db:"avg_minutes" json:"avg_minutes"`
}

// CrossGenreDirector is a director with both horror and comedy movies.
type CrossGenreDirector struct {
	Director    string `db:"director" json:"director"`
	HorrorCount int    `db:"horror_count" json:"horror_count"`
	ComedyCount int    `db:"comedy_count" json:"comedy_count"`
}

// Report bundles the analyses run against the transformed tables.
type Report struct {
	GeneratedAt         time.Time              `json:"generated_at"`
	VersatileDirectors  []DirectorKindCounts   `json:"directors_with_movies_and_shows"`
	TopComedyCountry    *CountryComedyCount    `json:"top_comedy_country,omitempty"`
	YearlyTopDirectors  []YearTopDirector      `json:"yearly_top_directors"`
	GenreDurations      []GenreAverageDuration `json:"genre_average_durations"`
	CrossGenreDirectors []CrossGenreDirector   `json:"horror_and_comedy_directors"`
}

// Render writes the report in a readable form.
func (r *Report) Render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Catalog analysis (generated %s)\n", r.GeneratedAt.Format(time.RFC3339))

	fmt.Fprintf(tw, "\nDirectors with both movies and TV shows (%d):\n", len(r.VersatileDirectors))
	fmt.Fprintln(tw, "\tDIRECTOR\tMOVIES\tTV SHOWS")
	for _, d := range r.VersatileDirectors {
		fmt.Fprintf(tw, "\t%s\t%d\t%d\n", d.Director, d.MovieCount, d.ShowCount)
	}

	fmt.Fprintf(tw, "\nCountry with the most comedy movies:\n")
	if r.TopComedyCountry != nil {
		fmt.Fprintf(tw, "\t%s\t%d\n", r.TopComedyCountry.Country, r.TopComedyCountry.MovieCount)
	} else {
		fmt.Fprintln(tw, "\t(no data)")
	}

	fmt.Fprintf(tw, "\nTop director by movies added, per year:\n")
	fmt.Fprintln(tw, "\tYEAR\tDIRECTOR\tMOVIES")
	for _, y := range r.YearlyTopDirectors {
		fmt.Fprintf(tw, "\t%d\t%s\t%d\n", y.Year, y.Director, y.MovieCount)
	}

	fmt.Fprintf(tw, "\nAverage movie duration by genre:\n")
	fmt.Fprintln(tw, "\tGENRE\tAVG MINUTES")
	for _, g := range r.GenreDurations {
		fmt.Fprintf(tw, "\t%s\t%.1f\n", g.Genre, g.AvgMinutes)
	}

	fmt.Fprintf(tw, "\nDirectors with both horror and comedy movies (%d):\n", len(r.CrossGenreDirectors))
	fmt.Fprintln(tw, "\tDIRECTOR\tHORROR\tCOMEDY")
	for _, d := range r.CrossGenreDirectors {
		fmt.Fprintf(tw, "\t%s\t%d\t%d\n", d.Director, d.HorrorCount, d.ComedyCount)
	}

	return tw.Flush()
}
