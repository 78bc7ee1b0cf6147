package main

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/dialectlab/retain/internal/dataset"
)

func newStimuliCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stimuli",
		Short: "Inspect and export the stimulus catalog",
	}
	cmd.AddCommand(newStimuliListCommand())
	cmd.AddCommand(newStimuliExportCommand())
	return cmd
}

func newStimuliListCommand() *cobra.Command {
	var catPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the stimuli in a catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadScoreCatalog(catPath)
			if err != nil {
				return err
			}

			idWidth := runewidth.StringWidth("ID")
			varWidth := runewidth.StringWidth("Variety")
			for _, stim := range cat.All() {
				if w := runewidth.StringWidth(stim.ID); w > idWidth {
					idWidth = w
				}
				if w := runewidth.StringWidth(stim.Variety); w > varWidth {
					varWidth = w
				}
			}

			fmt.Printf("%s  %s  %-10s  %s\n", padRight("ID", idWidth), padRight("Variety", varWidth), "Task", "Markers")
			for _, stim := range cat.All() {
				fmt.Printf("%s  %s  %-10s  %s\n",
					padRight(stim.ID, idWidth),
					padRight(stim.Variety, varWidth),
					string(stim.Task),
					strings.Join(stim.ExpectedMarkers, ", "))
			}
			fmt.Printf("\n%d stimuli, %d varieties\n", cat.Len(), len(cat.Varieties()))
			return nil
		},
	}

	cmd.Flags().StringVar(&catPath, "catalog", "", "Stimulus catalog file (.yaml or .csv, default: builtin)")
	return cmd
}

func newStimuliExportCommand() *cobra.Command {
	var (
		catPath string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a catalog to CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			if outPath == "" {
				return fmt.Errorf("--output is required")
			}
			cat, err := loadScoreCatalog(catPath)
			if err != nil {
				return err
			}
			if err := dataset.SaveStimuli(outPath, cat); err != nil {
				return fmt.Errorf("failed to export stimuli: %w", err)
			}
			fmt.Printf("Exported %d stimuli to %s\n", cat.Len(), outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&catPath, "catalog", "", "Stimulus catalog file (.yaml or .csv, default: builtin)")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Destination CSV path (required)")
	return cmd
}
