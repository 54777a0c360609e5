package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/derekprior/sfm/internal/config"
	"github.com/derekprior/sfm/internal/game"
	"github.com/derekprior/sfm/internal/rng"
	"github.com/derekprior/sfm/internal/store"
	"github.com/derekprior/sfm/internal/teamdb"
	"github.com/derekprior/sfm/internal/view"
)

const defaultConfigFile = "config.yaml"

// app carries the settings shared by every command. Flags win over the
// SFM_* environment variables.
type app struct {
	configPath string
	dbPath     string
	slot       string
	seed       int64
	logLevel   string
	locale     string

	log     *slog.Logger
	printer view.Printer
}

func main() {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "sfm",
		Short: "Football manager career simulator",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Path to config file (default: config.yaml in current directory, if present)")
	pf.StringVar(&a.dbPath, "db", "", "Path to the save database (env SFM_DB)")
	pf.StringVar(&a.slot, "save", "career", "Save slot name")
	pf.Int64Var(&a.seed, "seed", 0, "Random seed; 0 picks one from the clock (env SFM_SEED)")
	pf.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (env SFM_LOG_LEVEL)")
	pf.StringVar(&a.locale, "locale", "en", "Locale used to format amounts")

	rootCmd.AddCommand(
		initCmd(),
		newCmd(a),
		weekCmd(a),
		seasonCmd(a),
		tableCmd(a),
		squadCmd(a),
		financesCmd(a),
		transfersCmd(a),
		buyCmd(a),
		sellCmd(a),
		renewCmd(a),
		tacticCmd(a),
		savesCmd(a),
		exportCmd(a),
		validateCmd(a),
	)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command) error {
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if !flags.Changed("config") && env.ConfigPath != "" {
		a.configPath = env.ConfigPath
	}
	if !flags.Changed("db") {
		a.dbPath = env.Database
	}
	if !flags.Changed("seed") {
		a.seed = env.Seed
	}
	if !flags.Changed("log-level") {
		a.logLevel = env.LogLevel
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(a.logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q", a.logLevel)
	}
	a.log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	tag, err := language.Parse(a.locale)
	if err != nil {
		return fmt.Errorf("invalid locale %q: %w", a.locale, err)
	}
	a.printer = view.NewPrinter(tag)
	return nil
}

// loadConfig reads --config, falling back to config.yaml in the current
// directory and then to the built-in tuning.
func (a *app) loadConfig() (*config.Config, error) {
	path := a.configPath
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err != nil {
			return config.Default(), nil
		}
		path = defaultConfigFile
	}
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func (a *app) newEnv() (*game.Env, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	names, err := teamdb.Load()
	if err != nil {
		return nil, fmt.Errorf("loading club database: %w", err)
	}
	return game.NewEnv(cfg, rng.New(a.seed), a.log, names), nil
}

// withSession loads the current save slot, runs fn and, when fn reports a
// change, writes the game back.
func (a *app) withSession(ctx context.Context, fn func(s *game.Session) (bool, error)) error {
	st, err := store.Open(a.dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	save, err := st.Get(ctx, a.slot)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no career in slot %q; start one with `sfm new`", a.slot)
		}
		return err
	}
	env, err := a.newEnv()
	if err != nil {
		return err
	}
	s, err := game.LoadSession(env, save.Snapshot)
	if err != nil {
		return fmt.Errorf("loading %s: %w", a.slot, err)
	}

	changed, err := fn(s)
	if err != nil || !changed {
		return err
	}
	return a.put(ctx, st, s)
}

func (a *app) put(ctx context.Context, st *store.Store, s *game.Session) error {
	data, err := s.Snapshot()
	if err != nil {
		return err
	}
	save := store.Save{Name: a.slot, Season: s.Game.Season, Week: s.Game.Week, Snapshot: data}
	if t, err := s.HumanTeam(); err == nil {
		save.Team = t.Name
	}
	if err := st.Put(ctx, save); err != nil {
		return fmt.Errorf("saving: %w", err)
	}
	a.log.Debug("saved", "slot", a.slot, "bytes", len(data))
	return nil
}

func initCmd() *cobra.Command {
	var outputPath string
	cmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter config.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(outputPath); err == nil {
				return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
			}
			if err := os.WriteFile(outputPath, []byte(config.DefaultYAML), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}
			fmt.Printf("✓ Created %s\n", outputPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", defaultConfigFile, "Output path for the config file")
	return cmd
}

func newCmd(a *app) *cobra.Command {
	var (
		teamName    string
		managerName string
		country     string
		newClub     bool
		overwrite   bool
		prevDiv     int
		prevPos     int
	)
	cmd := &cobra.Command{
		Use:          "new",
		Short:        "Start a new career",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, err := a.newEnv()
			if err != nil {
				return err
			}
			name, err := resolveClub(env.Names, teamName, newClub)
			if err != nil {
				return err
			}

			st, err := store.Open(a.dbPath)
			if err != nil {
				return err
			}
			defer st.Close()
			if !overwrite {
				if _, err := st.Get(ctx, a.slot); err == nil {
					return fmt.Errorf("slot %q already holds a career; use --force or --save", a.slot)
				}
			}

			human := &game.HumanTeam{Name: name, Country: country, PrevDivision: prevDiv, PrevPosition: prevPos}
			s, err := game.NewSession(env, a.slot, human, managerName)
			if err != nil {
				return err
			}
			if err := a.put(ctx, st, s); err != nil {
				return err
			}

			t, _ := s.HumanTeam()
			sum := view.Team(s.Game, t)
			fmt.Printf("✓ %s takes charge of %s in %s\n", managerName, sum.Name, sum.Division)
			fmt.Printf("  Board target: finish %d or better\n", sum.Objective)
			fmt.Printf("  Money: %s\n", a.printer.Money(sum.Money))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&teamName, "team", "", "Club to manage")
	f.StringVar(&managerName, "manager", "Manager", "Your name")
	f.StringVar(&country, "country", "", "Country code for a new club")
	f.BoolVar(&newClub, "new-club", false, "Create a new club even if the name resembles one in the database")
	f.BoolVar(&overwrite, "force", false, "Replace an existing career in the save slot")
	f.IntVar(&prevDiv, "prev-division", 0, "Division the club finished in last season (1 is the top)")
	f.IntVar(&prevPos, "prev-position", 0, "Position the club finished in last season")
	_ = cmd.MarkFlagRequired("team")
	return cmd
}

// resolveClub returns the database spelling of name. A name that only
// resembles database clubs is refused unless newClub is set.
func resolveClub(db *teamdb.DB, name string, newClub bool) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("club name is required")
	}
	if c, ok := db.Club(name); ok {
		return c.Name, nil
	}
	if newClub {
		return name, nil
	}
	matches := db.Search(name)
	if len(matches) == 0 {
		return name, nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "no club named %q. Did you mean:\n", name)
	for i, c := range matches {
		if i == 5 {
			break
		}
		fmt.Fprintf(&b, "  %s (%s)\n", c.Name, c.Country)
	}
	b.WriteString("Pass --new-club to found a new club with this name")
	return "", errors.New(b.String())
}
