package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jose-valero/ow-fantasy-report/internal/app/leaderboard"
	"github.com/jose-valero/ow-fantasy-report/internal/app/report"
	"github.com/jose-valero/ow-fantasy-report/internal/app/service"
	"github.com/jose-valero/ow-fantasy-report/internal/infra/storage"
)

const defaultOut = "./output/match_report.txt"

type reportGenerator interface {
	Generate(ctx context.Context, matchURL string, layout report.Layout) (string, error)
}

type leaderboardProvider interface {
	Summary(ctx context.Context) (leaderboard.Summary, error)
}

type rosterWriter interface {
	UpsertGameweek(ctx context.Context, gameweek string, rosters []leaderboard.Roster) error
	Load(ctx context.Context, names []string) (map[string][]leaderboard.Roster, error)
}

type runtime struct {
	Reports     reportGenerator
	Leaderboard leaderboardProvider
	// nil sin DATABASE_URL
	Rosters rosterWriter
	close   func() error
}

func (r *runtime) Close() {
	if r.close != nil {
		_ = r.close()
	}
}

type loader func(ctx context.Context, needAPI bool) (*runtime, error)

func newRootCmd(load loader) *cobra.Command {
	root := &cobra.Command{
		Use:           "owfantasy",
		Short:         "Overwatch 2 fantasy reports from FACEIT match stats",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMatchCmd(load), newLeaderboardCmd(load), newImportCmd(load))
	return root
}

func newMatchCmd(load loader) *cobra.Command {
	var (
		sideBySide bool
		out        string
	)
	cmd := &cobra.Command{
		Use:   "match [url]",
		Short: "Build the fantasy report for a finished match",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			matchURL := ""
			if len(args) == 1 {
				matchURL = args[0]
			} else {
				var err error
				if matchURL, err = prompt(cmd.InOrStdin(), cmd.OutOrStdout(), "Enter FACEIT match URL: "); err != nil {
					return err
				}
			}

			rt, err := load(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer rt.Close()

			text, err := rt.Reports.Generate(cmd.Context(), matchURL, report.LayoutFrom(sideBySide))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			if out != "" {
				if err := storage.WriteReportFile(out, text); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "report saved to %s\n", out)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&sideBySide, "side-by-side", false, "render both teams on the same lines")
	cmd.Flags().StringVar(&out, "out", defaultOut, "file to save the report to (empty to skip)")
	return cmd
}

func newLeaderboardCmd(load loader) *cobra.Command {
	var dir, gameweek string
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the processed leaderboard as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var boards leaderboardProvider
			if dir != "" {
				boards = service.NewLeaderboardService(storage.NewDirSource(dir, nil), nil)
			} else {
				rt, err := load(cmd.Context(), false)
				if err != nil {
					return err
				}
				defer rt.Close()
				boards = rt.Leaderboard
			}

			sum, err := boards.Summary(cmd.Context())
			if err != nil {
				return err
			}
			var payload any = sum
			if gameweek != "" {
				week, ok := sum.Leaderboards[gameweek]
				if !ok {
					return fmt.Errorf("unknown gameweek %q", gameweek)
				}
				payload = week
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(payload)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "read gameweek JSON files from this directory")
	cmd.Flags().StringVar(&gameweek, "gameweek", "", "print only this gameweek")
	return cmd
}

func newImportCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "import-rosters <dir>",
		Short: "Load gameweek JSON files into Postgres",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			weeks, err := storage.NewDirSource(args[0], nil).Gameweeks(cmd.Context())
			if err != nil {
				return err
			}
			rt, err := load(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer rt.Close()
			if rt.Rosters == nil {
				return errors.New("DATABASE_URL is required to import rosters")
			}

			names := make([]string, 0, len(weeks))
			for n := range weeks {
				names = append(names, n)
			}
			names = leaderboard.SortGameweeks(names)
			for _, gw := range names {
				if err := rt.Rosters.UpsertGameweek(cmd.Context(), gw, weeks[gw]); err != nil {
					return err
				}
			}

			// releer lo importado: el conteo sale de la DB, no de los archivos
			stored, err := rt.Rosters.Load(cmd.Context(), names)
			if err != nil {
				return fmt.Errorf("reload gameweeks: %w", err)
			}
			for _, gw := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rosters\n", gw, len(stored[gw]))
			}
			return nil
		},
	}
}

func prompt(in io.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", errors.New("no match URL provided")
	}
	return line, nil
}
