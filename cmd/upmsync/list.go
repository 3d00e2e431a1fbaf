package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/briandowns/spinner"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/UnityEssentials/go-upmtools/internal/progress"
)

func newListCmd() *cobra.Command {
	var (
		search  string
		showAll bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the authenticated user's repositories",
		Long: `Fetches the repository catalog from GitHub and prints it as a table.
Repositories whose folder already exists under the target directory are
excluded unless --all is given. Only the first 100 repositories are listed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := context.Background()
			sess, err := newSession(ctx, cfg, progress.NopTracker{})
			if err != nil {
				return err
			}
			sess.SetShowAll(showAll)

			sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
			sp.Suffix = " fetching repositories..."
			sp.Start()
			err = sess.Fetch(ctx)
			sp.Stop()
			if err != nil {
				return fmt.Errorf("fetch failed: %w", err)
			}

			sess.Search(search)

			entries := sess.Displayed()
			if len(entries) == 0 {
				fmt.Println("No repositories to show.")
				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"#", "Repository", "Local"})
			table.SetBorder(false)
			for i, entry := range entries {
				local := ""
				if sess.IsLocal(entry) {
					local = "yes"
				}
				table.Append([]string{strconv.Itoa(i + 1), entry.String(), local})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive substring filter on owner/name")
	cmd.Flags().BoolVar(&showAll, "all", false, "Include repositories that already exist locally")

	return cmd
}
