package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dialectlab/retain/internal/wizard"
)

func newKeysCommand() *cobra.Command {
	var envPath string

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Set up vendor API keys interactively",
		Long: `Collect API keys for each supported vendor and write them to a
dotenv file. Source the file (or export the variables) before running
a benchmark.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := wizard.RunKeysWizard(os.Stdin, os.Stdout)
			if err != nil {
				return err
			}
			if len(spec.Keys) == 0 {
				fmt.Println("No keys entered, nothing written.")
				return nil
			}
			if err := os.WriteFile(envPath, []byte(spec.RenderEnv()), 0o600); err != nil {
				return fmt.Errorf("failed to write %s: %w", envPath, err)
			}
			fmt.Printf("Wrote %d key(s) to %s\n", len(spec.Keys), envPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&envPath, "output", "o", ".env", "Dotenv file to write")
	return cmd
}
