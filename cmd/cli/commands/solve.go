package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/shiftrota/pkg/core/engine"
	"github.com/jakechorley/shiftrota/pkg/core/objective"
	"github.com/jakechorley/shiftrota/pkg/core/rundata"
	"github.com/jakechorley/shiftrota/pkg/inputs"
)

// SolveCmd creates the solve command
func SolveCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Assign people to shifts under the configured constraints",
		Long:  "Run the constraint solver to produce a fair, feasible rota from a config and history document",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			historyPath, _ := cmd.Flags().GetString("history")
			outputPath, _ := cmd.Flags().GetString("output")

			app.Logger.Debug("solve command",
				zap.String("config", configPath),
				zap.String("history", historyPath),
				zap.String("output", outputPath))

			cfg, err := inputs.LoadConfig(configPath)
			if err != nil {
				return err
			}
			history, err := inputs.LoadHistory(historyPath)
			if err != nil {
				return err
			}
			obj, err := objective.FromName(cfg.Objective, app.Cfg.Weights())
			if err != nil {
				return err
			}

			data := rundata.Build(cfg.People, cfg.MaxShiftsPerPerson, cfg.ShiftsByDay, history, time.Time{})

			result, err := engine.New(nil, app.Logger).Solve(data, obj, cfg.Constraints)
			if errors.Is(err, engine.ErrInfeasible) {
				return fmt.Errorf("unable to solve for the given constraints: %w", err)
			}
			if err != nil {
				return err
			}

			fmt.Printf("\nRota (%d shifts, objective %d, %d attempt(s)):\n\n",
				len(result.Shifts), result.ObjectiveValue, result.Attempts)
			for _, shift := range result.Shifts {
				fmt.Printf("  %s\n", shift)
			}
			if len(result.DroppedPriorities) > 0 {
				fmt.Printf("\nRelaxed constraint tiers (by priority): %v\n", result.DroppedPriorities)
			}
			if len(result.Violations) > 0 {
				fmt.Printf("\nConstraint violations (%d):\n", len(result.Violations))
				for _, v := range result.Violations {
					fmt.Printf("  - %s %s\n", v.Constraint, v.Impact)
				}
			}
			fmt.Println()

			if outputPath != "" {
				if err := inputs.WriteOutput(outputPath, result.Shifts); err != nil {
					return err
				}
				fmt.Printf("Solution written to %s\n", outputPath)
			}

			return nil
		},
	}

	cmd.Flags().String("config", "", "Path to the JSON config document")
	cmd.Flags().String("history", "", "Path to the JSON history document")
	cmd.Flags().String("output", "", "Path to write the solution document to")
	_ = cmd.MarkFlagRequired("config")
	_ = cmd.MarkFlagRequired("history")

	return cmd
}
