package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/teambition/rrule-go"

	"github.com/jakechorley/shiftrota/pkg/core/model"
	"github.com/jakechorley/shiftrota/pkg/inputs"
)

// GenerateConfigCmd creates the generate-config command
func GenerateConfigCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate-config",
		Short: "Generate a config document skeleton from a recurrence rule",
		Long:  "Expand an RFC 5545 recurrence rule (e.g. FREQ=DAILY;DTSTART=20260901T000000Z;COUNT=14) into dated shift entries and print a config document skeleton",
		RunE: func(cmd *cobra.Command, args []string) error {
			ruleStr, _ := cmd.Flags().GetString("rrule")
			shiftName, _ := cmd.Flags().GetString("shift-name")
			shiftTypeStr, _ := cmd.Flags().GetString("shift-type")
			people, _ := cmd.Flags().GetStringSlice("people")
			maxShifts, _ := cmd.Flags().GetInt("max-shifts")
			outputPath, _ := cmd.Flags().GetString("output")

			rule, err := rrule.StrToRRule(ruleStr)
			if err != nil {
				return fmt.Errorf("invalid rrule: %w", err)
			}
			shiftType, err := model.ParseShiftType(shiftTypeStr)
			if err != nil {
				return err
			}

			var shifts []model.Shift
			for _, occurrence := range rule.All() {
				day, err := model.ParseDay(model.FormatDay(occurrence))
				if err != nil {
					return err
				}
				shifts = append(shifts, model.Shift{Name: shiftName, Type: shiftType, Day: day})
			}
			if len(shifts) == 0 {
				return fmt.Errorf("rrule %q produced no occurrences", ruleStr)
			}

			doc, err := inputs.ConfigTemplate(people, maxShifts, shifts)
			if err != nil {
				return err
			}

			if outputPath == "" {
				fmt.Print(string(doc))
				return nil
			}
			if err := os.WriteFile(outputPath, doc, 0644); err != nil {
				return fmt.Errorf("failed to write config template: %w", err)
			}
			fmt.Printf("Config template written to %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().String("rrule", "", "Recurrence rule describing the shift days")
	cmd.Flags().String("shift-name", "ops", "Name for each generated shift")
	cmd.Flags().String("shift-type", "standard", "Type for each generated shift")
	cmd.Flags().StringSlice("people", nil, "People to include in the template")
	cmd.Flags().Int("max-shifts", 1, "Max shifts per person per period")
	cmd.Flags().String("output", "", "Path to write the template to (default stdout)")
	_ = cmd.MarkFlagRequired("rrule")

	return cmd
}
