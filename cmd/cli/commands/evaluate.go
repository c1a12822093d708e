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

// EvaluateCmd creates the evaluate command
func EvaluateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Audit an existing rota against the configured rules",
		Long:  "Pin the solver to a previously produced solution and report constraint violations and the achieved objective score, without re-optimizing",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			historyPath, _ := cmd.Flags().GetString("history")
			solutionPath, _ := cmd.Flags().GetString("solution")

			app.Logger.Debug("evaluate command",
				zap.String("config", configPath),
				zap.String("history", historyPath),
				zap.String("solution", solutionPath))

			cfg, err := inputs.LoadConfig(configPath)
			if err != nil {
				return err
			}
			history, err := inputs.LoadHistory(historyPath)
			if err != nil {
				return err
			}
			solution, err := inputs.LoadSolution(solutionPath)
			if err != nil {
				return err
			}
			obj, err := objective.FromName(cfg.Objective, app.Cfg.Weights())
			if err != nil {
				return err
			}

			data := rundata.Build(cfg.People, cfg.MaxShiftsPerPerson, cfg.ShiftsByDay, history, time.Time{})

			result, err := engine.New(nil, app.Logger).Evaluate(data, obj, cfg.Constraints, solution)
			var invalid *engine.InvalidInputsError
			if errors.As(err, &invalid) {
				return fmt.Errorf("invalid inputs: %w", invalid)
			}
			if errors.Is(err, engine.ErrInfeasible) {
				return fmt.Errorf("the provided solution is infeasible for the solver: %w", err)
			}
			if err != nil {
				return err
			}

			fmt.Printf("\nEvaluation of %d shifts:\n\n", len(result.Shifts))
			fmt.Printf("Objective score: %d\n", result.ObjectiveValue)
			if len(result.Violations) == 0 {
				fmt.Println("No constraint violations.")
			} else {
				fmt.Printf("Constraint violations (%d):\n", len(result.Violations))
				for _, v := range result.Violations {
					fmt.Printf("  - %s %s\n", v.Constraint, v.Impact)
				}
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("config", "", "Path to the JSON config document")
	cmd.Flags().String("history", "", "Path to the JSON history document")
	cmd.Flags().String("solution", "", "Path to the solution document to audit")
	_ = cmd.MarkFlagRequired("config")
	_ = cmd.MarkFlagRequired("history")
	_ = cmd.MarkFlagRequired("solution")

	return cmd
}
