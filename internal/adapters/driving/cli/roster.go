package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

var (
	flagWaivers   bool
	flagStandings bool
)

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Show live data from your Yahoo league",
	Long: `Shows your current roster. With --waivers it lists available players
instead; with --standings the league table and current week.`,
	RunE: runRoster,
}

func init() {
	rosterCmd.Flags().BoolVar(&flagWaivers, "waivers", false, "show the waiver wire instead of the roster")
	rosterCmd.Flags().BoolVar(&flagStandings, "standings", false, "show league standings instead of the roster")
	rootCmd.AddCommand(rosterCmd)
}

func runRoster(cmd *cobra.Command, _ []string) error {
	if err := bootstrap(); err != nil {
		return err
	}
	if leagueClient == nil {
		return errors.New("no league configured: set YAHOO_CLIENT_ID, YAHOO_CLIENT_SECRET, YAHOO_REFRESH_TOKEN and the league/team keys")
	}
	ctx := cmd.Context()

	switch {
	case flagStandings:
		info, err := leagueClient.LeagueInfo(ctx)
		if err != nil {
			return err
		}
		cmd.Printf("week %d\n", info.CurrentWeek)
		for _, s := range info.Standings {
			cmd.Printf("%2d. %-25s %d-%d-%d\n", s.Rank, s.TeamName, s.Wins, s.Losses, s.Ties)
		}
	case flagWaivers:
		waivers, err := leagueClient.WaiverPlayers(ctx)
		if err != nil {
			return err
		}
		if len(waivers) == 0 {
			cmd.Println("nobody on the waiver wire")
			return nil
		}
		for _, entry := range waivers {
			cmd.Printf("%-25s %s\n", entry.Name, strings.Join(entry.Positions, "/"))
		}
	default:
		roster, err := leagueClient.Roster(ctx)
		if err != nil {
			return err
		}
		if len(roster) == 0 {
			cmd.Println("roster is empty")
			return nil
		}
		for _, entry := range roster {
			cmd.Printf("%-25s %s\n", entry.Name, strings.Join(entry.Positions, "/"))
		}
	}
	return nil
}
