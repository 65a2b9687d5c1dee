package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/chrisdamba/foodorder/internal/models"
	"github.com/chrisdamba/foodorder/internal/repositories/postgres"
	"github.com/spf13/cobra"
)

func newMenuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Inspects or stores the menu",
	}
	cmd.AddCommand(newMenuShowCmd(), newMenuSeedCmd())
	return cmd
}

func newMenuShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Prints the menu the parser would use",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TIME\tINDEX\tSLOT\tDISH\tRULE")
			for _, entry := range app.menu.Entries() {
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", entry.TimeOfDay, int(entry.Slot), entry.Slot, entry.Name, entry.Rule)
			}
			return w.Flush()
		},
	}
}

func newMenuSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Writes the configured menu into the menu_dishes table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := models.LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("error loading config: %w", err)
			}
			menuData, err := cfg.MenuData()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			pool, err := postgres.NewPool(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer pool.Close()

			repo := postgres.NewMenuRepository(pool)
			if err := repo.EnsureSchema(ctx); err != nil {
				return err
			}

			replace, _ := cmd.Flags().GetBool("replace")
			if replace {
				if err := repo.DeleteAll(ctx); err != nil {
					return fmt.Errorf("failed to clear menu_dishes: %w", err)
				}
			}
			if err := repo.BulkCreate(ctx, menuData.Entries()); err != nil {
				return fmt.Errorf("failed to seed menu: %w", err)
			}

			count, err := repo.Count(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "menu_dishes holds %d dishes\n", count)
			return nil
		},
	}
	cmd.Flags().Bool("replace", false, "Truncate menu_dishes before seeding")
	return cmd
}
