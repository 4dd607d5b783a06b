package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/geirtris/internal/platform/tui"
	"github.com/vovakirdan/geirtris/internal/registry"
	"github.com/vovakirdan/geirtris/internal/storage"
)

var (
	flagBest    bool
	flagLimit   int
	flagClear   bool
	flagMatchID string
	flagBrowse  bool
)

var historyCmd = &cobra.Command{
	Use:   "history [game]",
	Short: "Show recorded matches",
	Long: `Display recorded matches for a game variant, newest first.
Without a game, prints a summary for every variant that has matches.

Examples:
  geirtris history
  geirtris history blocks
  geirtris history blocks --best --limit 5
  geirtris history --match 6f1c...
  geirtris history blocks --browse
  geirtris history blocks --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagBest, "best", false, "Order by blocks locked instead of date")
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of matches to show")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded matches of the game")
	historyCmd.Flags().StringVar(&flagMatchID, "match", "", "Show a single match by id")
	historyCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Open the interactive history screen")
}

func runHistory(_ *cobra.Command, args []string) error {
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			return unknownGame(gameID)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening match database: %w", err)
	}
	defer store.Close()

	switch {
	case flagBrowse:
		cfg := runtimeConfig()
		_, err = tui.RunHistory(store, gameID, cfg.ScreenW, cfg.ScreenH)
	case flagMatchID != "":
		err = printMatch(store, flagMatchID)
	case gameID == "":
		err = printSummary(store)
	case flagClear:
		if err = store.ClearMatches(gameID); err == nil {
			fmt.Printf("Cleared match history for %s.\n", gameID)
		}
	default:
		err = printMatches(store, gameID)
	}
	return err
}

func printMatches(store *storage.Store, gameID string) error {
	var (
		recs []storage.MatchRecord
		err  error
	)
	if flagBest {
		recs, err = store.BestMatches(gameID, flagLimit)
	} else {
		recs, err = store.RecentMatches(gameID, flagLimit)
	}
	if err != nil {
		return err
	}

	info, _ := registry.Lookup(gameID)
	fmt.Printf("Match History - %s\n", info.Title)
	fmt.Println()

	if len(recs) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'geirtris play %s' to record one!\n", gameID)
		return nil
	}

	fmt.Printf("  %-3s  %-6s  %-6s  %-10s  %-8s  %s\n", "#", "Locked", "Ticks", "Reason", "Time", "Date")
	fmt.Printf("  %-3s  %-6s  %-6s  %-10s  %-8s  %s\n", "-", "------", "-----", "------", "----", "----")
	for i, rec := range recs {
		fmt.Printf("  %-3d  %-6d  %-6d  %-10s  %-8s  %s\n",
			i+1, rec.Locked, rec.Ticks, rec.EndReason,
			rec.Duration.Round(time.Second), rec.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err == nil && stats.Matches > 0 {
		fmt.Println()
		fmt.Printf("Best: %d  Average: %.1f  Matches: %d\n", stats.BestLocked, stats.AvgLocked, stats.Matches)
	}
	return nil
}

func printMatch(store *storage.Store, matchID string) error {
	rec, err := store.MatchByID(matchID)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("no match with id %q", matchID)
	}

	fmt.Printf("Match   %s\n", rec.MatchID)
	fmt.Printf("Game    %s\n", rec.GameID)
	fmt.Printf("Locked  %d\n", rec.Locked)
	fmt.Printf("Ticks   %d\n", rec.Ticks)
	fmt.Printf("Reason  %s\n", rec.EndReason)
	fmt.Printf("Time    %s\n", rec.Duration.Round(time.Second))
	fmt.Printf("Date    %s\n", rec.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	return nil
}

func printSummary(store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No matches recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-12s  %-7s  %-4s  %-7s  %-10s  %s\n", "Game", "Matches", "Best", "Average", "Played", "Last")
	fmt.Printf("  %-12s  %-7s  %-4s  %-7s  %-10s  %s\n", "----", "-------", "----", "-------", "------", "----")
	for _, id := range ids {
		s := all[id]
		fmt.Printf("  %-12s  %-7d  %-4d  %-7.1f  %-10s  %s\n",
			id, s.Matches, s.BestLocked, s.AvgLocked,
			s.TotalPlayed.Round(time.Second), s.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
