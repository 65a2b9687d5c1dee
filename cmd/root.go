package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/chrisdamba/foodorder/internal/models"
	"github.com/chrisdamba/foodorder/internal/processor"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// NewRootCmd builds the command tree. Flags are bound to viper when a command
// runs so that each invocation starts from a clean configuration.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "foodorder [order line]",
		Short: "Parses restaurant order lines against a time-of-day menu",
		Long: `foodorder reads an order line such as "night, 1, 2, 2, 4", resolves each
selection against the menu served at that time of day and prints the
normalized order, for example "steak, potato(x2), cake".`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			for key, flag := range map[string]string{
				"output_destination": "output-destination",
				"log_level":          "log-level",
				"log_format":         "log-format",
				"menu_source":        "menu-source",
				"metrics_file":       "metrics-file",
			} {
				if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
					return err
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			line := strings.Join(args, " ")
			result := processor.NewManager(app.log, app.managerOptions()...).Process(app.menu, &line)
			result.Match(
				func(error) {
					fmt.Fprintln(cmd.OutOrStdout(), "error")
				},
				func(rendered string) {
					fmt.Fprintln(cmd.OutOrStdout(), rendered)
				},
			)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.foodorder.yaml)")
	rootCmd.PersistentFlags().String("output-destination", models.OutputNone, "Where parsed order events go: none, console, kafka, parquet, postgres or redis")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "console", "Log format: console or json")
	rootCmd.PersistentFlags().String("menu-source", models.MenuSourceConfig, "Menu source: config or postgres")
	rootCmd.PersistentFlags().String("metrics-file", "", "Write Prometheus metrics in text format to this file on exit")

	rootCmd.AddCommand(newGenerateCmd(), newMenuCmd())
	return rootCmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
