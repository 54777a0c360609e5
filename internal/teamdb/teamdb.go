// Package teamdb holds the built-in club and surname database.
package teamdb

import (
	_ "embed"
	"fmt"
	"math"
	"strings"

	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"

	"github.com/derekprior/sfm/internal/rng"
)

//go:embed teams.yaml
var teamsYAML []byte

type Country struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type Club struct {
	Name    string `yaml:"name"`
	Country string `yaml:"country"`
	Color   string `yaml:"color"`
}

type DB struct {
	Countries []Country           `yaml:"countries"`
	Surnames  map[string][]string `yaml:"surnames"`
	Clubs     []Club              `yaml:"teams"`
}

// Load parses the embedded database.
func Load() (*DB, error) {
	return LoadFromBytes(teamsYAML)
}

// LoadFromBytes parses a database from YAML and checks that every club's
// country has surnames to draw from.
func LoadFromBytes(data []byte) (*DB, error) {
	var db DB
	if err := yaml.Unmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("parsing team database: %w", err)
	}
	if len(db.Countries) == 0 {
		return nil, fmt.Errorf("team database has no countries")
	}
	for _, c := range db.Countries {
		if len(db.Surnames[c.ID]) == 0 {
			return nil, fmt.Errorf("country %s has no surnames", c.ID)
		}
	}
	known := make(map[string]bool, len(db.Countries))
	for _, c := range db.Countries {
		known[c.ID] = true
	}
	for _, club := range db.Clubs {
		if !known[club.Country] {
			return nil, fmt.Errorf("club %q has unknown country %q", club.Name, club.Country)
		}
	}
	return &db, nil
}

// MustLoad is Load for callers that treat a broken embedded file as a bug.
func MustLoad() *DB {
	db, err := Load()
	if err != nil {
		panic(err)
	}
	return db
}

// Club looks up a club by exact, case-insensitive name.
func (db *DB) Club(name string) (Club, bool) {
	for _, c := range db.Clubs {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Club{}, false
}

type clubSource []Club

func (s clubSource) String(i int) string { return s[i].Name }
func (s clubSource) Len() int            { return len(s) }

// Search returns clubs whose names fuzzy-match query, best match first.
func (db *DB) Search(query string) []Club {
	matches := fuzzy.FindFrom(query, clubSource(db.Clubs))
	out := make([]Club, 0, len(matches))
	for _, m := range matches {
		out = append(out, db.Clubs[m.Index])
	}
	return out
}

// RandomCountry picks a country, earlier entries in the file being more
// likely.
func (db *DB) RandomCountry(r rng.Source) string {
	n := len(db.Countries)
	choices := make([]rng.Choice[string], n)
	for i, c := range db.Countries {
		choices[i] = rng.Choice[string]{Item: c.ID, Weight: math.Pow(float64(n-i), 1.3)}
	}
	id, _ := rng.WeightedChoice(r, choices)
	return id
}

// RandomName returns an "X. Surname" name for a player from country. An
// empty or unknown country picks one at random.
func (db *DB) RandomName(r rng.Source, country string) (name, countryID string) {
	if len(db.Surnames[country]) == 0 {
		country = db.RandomCountry(r)
	}
	initial := string(rune('A' + r.Intn(26)))
	return initial + ". " + rng.Pick(r, db.Surnames[country]), country
}
