package game

import (
	"encoding/json"
	"fmt"
)

// snapshotVersion is bumped whenever the encoded layout changes.
const snapshotVersion = 1

type snapshot struct {
	Version int   `json:"version"`
	Game    *Game `json:"game"`
}

// Encode serializes the whole game graph. Cross references between
// entities are stored as IDs.
func Encode(g *Game) ([]byte, error) {
	data, err := json.Marshal(snapshot{Version: snapshotVersion, Game: g})
	if err != nil {
		return nil, fmt.Errorf("encoding game: %w", err)
	}
	return data, nil
}

// Decode rebuilds a game from Encode output and attaches it to env.
func Decode(data []byte, env *Env) (*Game, error) {
	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding game: %w", err)
	}
	if s.Version != snapshotVersion {
		return nil, fmt.Errorf("decoding game: unsupported snapshot version %d", s.Version)
	}
	if s.Game == nil {
		return nil, fmt.Errorf("decoding game: snapshot has no game")
	}
	if err := s.Game.attach(env); err != nil {
		return nil, fmt.Errorf("decoding game: %w", err)
	}
	return s.Game, nil
}

// attach restores the environment and every back reference after decoding.
func (g *Game) attach(env *Env) error {
	g.env = env
	teams := make(map[string]*Team)
	for _, d := range g.Divisions {
		d.env = env
		for _, t := range d.Teams {
			t.env = env
			t.division = d
			for _, p := range t.Players {
				p.env = env
				p.team = t
			}
			for _, p := range t.PlayersToBuy {
				p.env = env
			}
			teams[t.ID] = t
		}
	}

	lookup := func(id string) (*Team, error) {
		if id == "" {
			return nil, nil
		}
		t, ok := teams[id]
		if !ok {
			return nil, fmt.Errorf("unknown team %s", id)
		}
		return t, nil
	}

	for _, d := range g.Divisions {
		for _, week := range d.Weeks {
			for _, m := range week {
				home, err := lookup(m.HomeID)
				if err != nil {
					return err
				}
				away, err := lookup(m.AwayID)
				if err != nil {
					return err
				}
				m.env = env
				m.teams = [2]*Team{home, away}
			}
		}
	}

	g.humans = nil
	for _, id := range g.HumanTeamIDs {
		t, err := lookup(id)
		if err != nil {
			return err
		}
		g.humans = append(g.humans, t)
	}
	for _, m := range g.Managers {
		t, err := lookup(m.TeamID)
		if err != nil {
			return err
		}
		m.env = env
		m.team = t
		if t != nil {
			t.manager = m
		}
	}
	return nil
}
