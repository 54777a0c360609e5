package game

import (
	"log/slog"

	"github.com/derekprior/sfm/internal/config"
	"github.com/derekprior/sfm/internal/rng"
	"github.com/derekprior/sfm/internal/teamdb"
)

// Env is everything the simulation reads but does not own: tuning, the
// random source, the logger and the name database. One Env is shared by a
// whole Game graph and is reattached after a snapshot is decoded.
type Env struct {
	Config *config.Config
	Rand   rng.Source
	Log    *slog.Logger
	Names  *teamdb.DB
}

// NewEnv fills in defaults for any nil argument.
func NewEnv(cfg *config.Config, r rng.Source, log *slog.Logger, names *teamdb.DB) *Env {
	if cfg == nil {
		cfg = config.Default()
	}
	if r == nil {
		r = rng.New(0)
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if names == nil {
		names = teamdb.MustLoad()
	}
	return &Env{Config: cfg, Rand: r, Log: log, Names: names}
}
