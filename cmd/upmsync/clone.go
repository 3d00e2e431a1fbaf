package main

import (
	"context"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/UnityEssentials/go-upmtools/internal/catalog"
	"github.com/UnityEssentials/go-upmtools/internal/progress"
	"github.com/UnityEssentials/go-upmtools/internal/session"
)

func newCloneCmd() *cobra.Command {
	var (
		search   string
		cloneAll bool
	)

	cmd := &cobra.Command{
		Use:   "clone [owner/name ...]",
		Short: "Clone repositories into the target directory",
		Long: `Clones the given repositories (or those matching --search, or the whole
displayed catalog with --all) into the target directory, one at a time.
After each successful clone the repository is scaffolded according to the
configuration: license rename, assembly definition, package manifest and
template files. A failing repository never aborts the batch.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && search == "" && !cloneAll {
				return fmt.Errorf("nothing selected: pass repositories, --search or --all")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := context.Background()
			tracker := progress.NewBatchTracker()
			sess, err := newSession(ctx, cfg, tracker)
			if err != nil {
				return err
			}

			var ids []catalog.Identifier
			if len(args) > 0 {
				// Explicit identifiers skip the catalog fetch entirely.
				for _, arg := range args {
					id, err := catalog.ParseIdentifier(arg)
					if err != nil {
						return err
					}
					ids = append(ids, id)
				}
			} else {
				sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
				sp.Suffix = " fetching repositories..."
				sp.Start()
				err = sess.Fetch(ctx)
				sp.Stop()
				if err != nil {
					return fmt.Errorf("fetch failed: %w", err)
				}

				sess.Search(search)
				sess.SelectAll()
				ids = sess.Selected()
			}

			if len(ids) == 0 {
				fmt.Println("No repositories selected.")
				return nil
			}

			opts := session.Options{
				OrganizationName:         cfg.OrganizationName,
				AuthorName:               cfg.AuthorName,
				UnityVersion:             cfg.UnityVersion,
				Description:              cfg.Description,
				DependencyName:           cfg.DependencyName,
				DependencyVersion:        cfg.DependencyVersion,
				ExcludeSubstring:         cfg.Scaffolding.ExcludeSubstring,
				TemplateDir:              cfg.Scaffolding.TemplateDir,
				CreateAssemblyDefinition: cfg.Scaffolding.CreateAssemblyDefinition,
				CreatePackageManifest:    cfg.Scaffolding.CreatePackageManifest,
				CopyTemplateFiles:        cfg.Scaffolding.CopyTemplateFiles,
			}

			results, err := sess.CloneSelected(ctx, ids, opts)
			if err != nil {
				return err
			}

			// Per-item failures are reported in the results, not as a
			// command error: the batch completing is the success signal.
			for _, r := range results {
				fmt.Printf("%-50s %s\n", r.Identifier.String(), r.Outcome)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Select repositories matching this substring")
	cmd.Flags().BoolVar(&cloneAll, "all", false, "Select every repository not already present locally")

	return cmd
}
