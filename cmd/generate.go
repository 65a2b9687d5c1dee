package cmd

import (
	"fmt"

	"github.com/chrisdamba/foodorder/internal/factories"
	"github.com/chrisdamba/foodorder/internal/processor"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generates random order lines and parses each of them",
		RunE: func(cmd *cobra.Command, args []string) error {
			for key, flag := range map[string]string{"generate_count": "count", "seed": "seed"} {
				if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
					return err
				}
			}

			app, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			if app.cfg.GenerateCount < 0 {
				return fmt.Errorf("count must not be negative: %d", app.cfg.GenerateCount)
			}

			factory := factories.NewOrderLineFactory(app.cfg.Seed)
			manager := processor.NewManager(app.log, app.managerOptions()...)

			bar := progressbar.NewOptions(app.cfg.GenerateCount,
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionSetDescription("parsing order lines"),
			)
			for i := 0; i < app.cfg.GenerateCount; i++ {
				line := factory.CreateOrderLine()
				rendered, err := manager.Process(app.menu, &line).Unwrap()
				if err != nil {
					rendered = "error"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", line, rendered)
				_ = bar.Add(1)
			}
			_ = bar.Finish()
			return nil
		},
	}

	cmd.Flags().Int("count", 10, "Number of order lines to generate")
	cmd.Flags().Int64("seed", 42, "Random seed for the order line generator")
	return cmd
}
