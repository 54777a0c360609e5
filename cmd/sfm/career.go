package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/derekprior/sfm/internal/excel"
	"github.com/derekprior/sfm/internal/game"
	"github.com/derekprior/sfm/internal/store"
	"github.com/derekprior/sfm/internal/validator"
	"github.com/derekprior/sfm/internal/view"
)

func weekCmd(a *app) *cobra.Command {
	var weeks int
	cmd := &cobra.Command{
		Use:          "week",
		Short:        "Play the next matchday",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd.Context(), func(s *game.Session) (bool, error) {
				played := false
				for range max(weeks, 1) {
					rep, err := s.PlayWeek()
					if err != nil {
						return played, err
					}
					played = true
					a.printReport(s, rep)
					if rep.SeasonEnded || rep.GameOver {
						break
					}
				}
				return played, nil
			})
		},
	}
	cmd.Flags().IntVarP(&weeks, "count", "n", 1, "Number of weeks to play")
	return cmd
}

func seasonCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:          "season",
		Short:        "Play to the end of the season",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd.Context(), func(s *game.Session) (bool, error) {
				reports, err := s.PlaySeason()
				for _, rep := range reports {
					a.printReport(s, rep)
				}
				return len(reports) > 0, err
			})
		},
	}
}

func (a *app) printReport(s *game.Session, rep game.WeekReport) {
	fmt.Printf("Season %d, week %d (%s)\n", rep.Season, rep.Week, rep.Date.Format("Mon 02 Jan 2006"))
	for _, m := range rep.Matches {
		ctx := view.Match(m)
		if ctx.Home == "bye" || ctx.Away == "bye" {
			continue
		}
		fmt.Printf("  %-24s %2d - %-2d %s\n", ctx.Home, ctx.Score[0], ctx.Score[1], ctx.Away)
	}
	for _, line := range rep.News {
		fmt.Printf("  • %s\n", line)
	}
	if rep.SeasonEnded {
		fmt.Println("\n✓ Season over")
		if t, err := s.HumanTeam(); err == nil && !rep.GameOver {
			sum := view.Team(s.Game, t)
			fmt.Printf("  %s start season %d in %s\n", sum.Name, s.Game.Season, sum.Division)
		}
	}
	if rep.GameOver {
		fmt.Println("\n✗ " + gameOverMessage(rep.EndReason))
	}
}

func gameOverMessage(reason game.EndReason) string {
	switch reason {
	case game.EndRelegated:
		return "Relegated out of the league. Game over."
	case game.EndFired:
		return "You have been sacked. Game over."
	default:
		return "Game over."
	}
}

func tableCmd(a *app) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:          "table",
		Short:        "Show the league table",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd.Context(), func(s *game.Session) (bool, error) {
				divisions := s.Game.Divisions
				if !all {
					t, err := s.HumanTeam()
					if err != nil {
						return false, err
					}
					divisions = []*game.Division{t.Division()}
				}
				for _, d := range divisions {
					printTable(d)
				}
				return false, nil
			})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Show every division")
	return cmd
}

func printTable(d *game.Division) {
	fmt.Printf("\n%s\n", d.Name)
	fmt.Printf("  %3s %-24s %3s %3s %3s %3s %4s %4s %4s %4s\n", "Pos", "Team", "P", "W", "D", "L", "GF", "GA", "GD", "Pts")
	for _, r := range view.Table(d) {
		marker := " "
		switch {
		case r.Human:
			marker = "*"
		case r.Zone == "promotion":
			marker = "↑"
		case r.Zone == "relegation":
			marker = "↓"
		}
		fmt.Printf("%s %3d %-24s %3d %3d %3d %3d %4d %4d %+4d %4d\n", marker, r.Position, r.Team,
			r.Played, r.Wins, r.Draws, r.Losses, r.GoalsFor, r.GoalsAgainst, r.GoalDifference, r.Points)
	}
}

func squadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:          "squad",
		Short:        "Show your squad",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd.Context(), func(s *game.Session) (bool, error) {
				t, err := s.HumanTeam()
				if err != nil {
					return false, err
				}
				sum := view.Team(s.Game, t)
				fmt.Printf("%s (%s, %d of %d, target %d)  tactic %s  fans %.0f%%\n",
					sum.Name, sum.Division, sum.Position, len(t.Division().Teams), sum.Objective, sum.Tactic, sum.FanHappiness)
				if sum.NextOpponent != "" {
					fmt.Printf("Next: %s\n", sum.NextOpponent)
				}
				a.printPlayers(view.Squad(t.Players))
				return false, nil
			})
		},
	}
}

func (a *app) printPlayers(players []view.PlayerSummary) {
	fmt.Printf("  %3s %-24s %3s %3s %5s %-8s %3s %3s %12s %12s\n", "#", "Name", "Pos", "Age", "Skill", "Status", "Inj", "Ctr", "Salary", "Value")
	for i, p := range players {
		salary := p.Salary
		if p.WantsNewContract {
			salary = p.WantedSalary
		}
		flag := ""
		if p.WantsNewContract {
			flag = " (wants new contract)"
		}
		fmt.Printf("  %3d %-24s %3s %3d %5.0f %-8s %3d %3d %12s %12s%s\n", i+1, p.Name, p.Position, p.Age, p.Skill,
			p.Status, p.Injury, p.Contract, a.printer.Money(salary), a.printer.Money(p.Value), flag)
	}
}

func financesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:          "finances",
		Short:        "Show this week's and this season's finances",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd.Context(), func(s *game.Session) (bool, error) {
				t, err := s.HumanTeam()
				if err != nil {
					return false, err
				}
				f := view.Finances(t)
				fmt.Printf("  %-16s %14s %14s\n", "", "Week", "Season")
				for _, l := range f.Lines {
					fmt.Printf("  %-16s %14s %14s\n", l.Category, a.printer.Money(l.Weekly), a.printer.Money(l.Yearly))
				}
				fmt.Printf("  %-16s %14s %14s\n", "Income", a.printer.Money(f.WeeklyIncome), a.printer.Money(f.YearlyIncome))
				fmt.Printf("  %-16s %14s %14s\n", "Expense", a.printer.Money(f.WeeklyExpense), a.printer.Money(f.YearlyExpense))
				fmt.Printf("\n  Balance %s, squad value %s, wage bill %s\n",
					a.printer.Money(f.Money), a.printer.Money(f.SquadValue), a.printer.Money(f.SalarySum))
				return false, nil
			})
		},
	}
}

func transfersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:          "transfers",
		Short:        "List players available to buy this week",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd.Context(), func(s *game.Session) (bool, error) {
				t, err := s.HumanTeam()
				if err != nil {
					return false, err
				}
				if len(t.PlayersToBuy) == 0 {
					fmt.Println("No players on the transfer list this week")
					return false, nil
				}
				a.printPlayers(view.Squad(t.PlayersToBuy))
				fmt.Printf("\nMoney: %s\n", a.printer.Money(t.Money))
				return false, nil
			})
		},
	}
}

func buyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:          "buy <player>",
		Short:        "Buy a player from the transfer list (by number, ID or name)",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd.Context(), func(s *game.Session) (bool, error) {
				t, err := s.HumanTeam()
				if err != nil {
					return false, err
				}
				p, err := findPlayer(t.PlayersToBuy, args[0])
				if err != nil {
					return false, err
				}
				value := p.CurrentValue()
				if err := t.BuyPlayer(p); err != nil {
					return false, err
				}
				fmt.Printf("✓ Signed %s for %s\n", p.Name, a.printer.Money(value))
				return true, nil
			})
		},
	}
}

func sellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:          "sell <player>",
		Short:        "Sell a player from your squad (by number, ID or name)",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd.Context(), func(s *game.Session) (bool, error) {
				t, err := s.HumanTeam()
				if err != nil {
					return false, err
				}
				p, err := findPlayer(t.Players, args[0])
				if err != nil {
					return false, err
				}
				value := p.CurrentValue()
				if err := t.SellPlayer(p); err != nil {
					return false, err
				}
				fmt.Printf("✓ Sold %s for %s\n", p.Name, a.printer.Money(value))
				return true, nil
			})
		},
	}
}

func renewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:          "renew <player>",
		Short:        "Renew the contract of a player who asked for one",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd.Context(), func(s *game.Session) (bool, error) {
				t, err := s.HumanTeam()
				if err != nil {
					return false, err
				}
				p, err := findPlayer(t.Players, args[0])
				if err != nil {
					return false, err
				}
				if err := t.RenewContract(p); err != nil {
					return false, err
				}
				fmt.Printf("✓ %s signed for %d weeks at %s\n", p.Name, p.Contract, a.printer.Money(p.Salary))
				return true, nil
			})
		},
	}
}

func tacticCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:          "tactic [D-M-A|auto]",
		Short:        "Show or set your formation",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd.Context(), func(s *game.Session) (bool, error) {
				t, err := s.HumanTeam()
				if err != nil {
					return false, err
				}
				if len(args) == 0 {
					fmt.Printf("Playing %s\n", t.CurrentTactic())
					var allowed []string
					for _, tac := range t.AllowedTactics() {
						allowed = append(allowed, tac.String())
					}
					fmt.Printf("Available: %s\n", strings.Join(allowed, ", "))
					return false, nil
				}

				var tac *game.Tactic
				if args[0] != "auto" {
					parsed, err := game.ParseTactic(args[0])
					if err != nil {
						return false, err
					}
					tac = &parsed
				}
				if err := t.ChooseFormation(tac); err != nil {
					return false, err
				}
				fmt.Printf("✓ Playing %s\n", t.CurrentTactic())
				return true, nil
			})
		},
	}
}

func savesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saves",
		Short: "Manage save slots",
	}
	listCmd := &cobra.Command{
		Use:          "list",
		Short:        "List save slots",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Open(a.dbPath)
			if err != nil {
				return err
			}
			defer st.Close()
			saves, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(saves) == 0 {
				fmt.Println("No saved careers")
				return nil
			}
			for _, s := range saves {
				fmt.Printf("  %-16s %-24s season %2d week %2d  %s\n", s.Name, s.Team, s.Season, s.Week, s.SavedAt.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
	deleteCmd := &cobra.Command{
		Use:          "delete <slot>",
		Short:        "Delete a save slot",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Open(a.dbPath)
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("✓ Deleted %s\n", args[0])
			return nil
		},
	}
	cmd.AddCommand(listCmd, deleteCmd)
	return cmd
}

func exportCmd(a *app) *cobra.Command {
	var outputFile string
	cmd := &cobra.Command{
		Use:          "export",
		Short:        "Export tables, fixtures, squad and finances to Excel",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd.Context(), func(s *game.Session) (bool, error) {
				f, err := excel.Generate(s.Game)
				if err != nil {
					return false, fmt.Errorf("generating Excel: %w", err)
				}
				if err := f.SaveAs(outputFile); err != nil {
					return false, fmt.Errorf("saving file: %w", err)
				}
				fmt.Printf("✓ Season %d saved to %s\n", s.Game.Season, outputFile)
				return false, nil
			})
		},
	}
	cmd.Flags().StringVarP(&outputFile, "output", "o", "career.xlsx", "Output Excel file path")
	return cmd
}

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:          "validate <career.xlsx>",
		Short:        "Check an exported or hand-edited fixtures sheet",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if _, err := os.Stat(args[0]); err != nil {
				return err
			}
			violations, err := validator.Validate(cfg, args[0])
			if err != nil {
				return fmt.Errorf("validating: %w", err)
			}

			errs, warnings := 0, 0
			for _, v := range violations {
				where := ""
				if v.Row > 0 {
					where = fmt.Sprintf(" (row %d)", v.Row)
				}
				switch v.Type {
				case "error":
					errs++
					fmt.Printf("✗ %s%s\n", v.Message, where)
				case "warning":
					warnings++
					fmt.Printf("⚠ %s%s\n", v.Message, where)
				}
			}
			fmt.Printf("\nValidation complete: %d errors, %d warnings\n", errs, warnings)
			if errs > 0 {
				return fmt.Errorf("%d fixture errors found", errs)
			}
			return nil
		},
	}
}

// findPlayer resolves key as a 1-based list number, a player ID or a
// case-insensitive name.
func findPlayer(players []*game.Player, key string) (*game.Player, error) {
	if n, err := strconv.Atoi(key); err == nil {
		if n < 1 || n > len(players) {
			return nil, fmt.Errorf("no player number %d: %w", n, game.ErrPlayerNotFound)
		}
		return players[n-1], nil
	}
	var byName []*game.Player
	for _, p := range players {
		if p.ID == key {
			return p, nil
		}
		if strings.EqualFold(p.Name, key) {
			byName = append(byName, p)
		}
	}
	switch len(byName) {
	case 0:
		return nil, fmt.Errorf("%q: %w", key, game.ErrPlayerNotFound)
	case 1:
		return byName[0], nil
	}
	return nil, errors.New("several players share that name; use the list number")
}
