package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dialectlab/retain/internal/validation"
)

func newCheckCommand() *cobra.Command {
	var catalogFile bool

	cmd := &cobra.Command{
		Use:   "check <config.yaml | catalog.yaml>",
		Short: "Validate a config or catalog file against its schema",
		Long: `Validate a run configuration file against the config schema.

With --catalog, the file is validated as a stimulus catalog instead.
Exit code is non-zero when the file has schema violations.`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			var errs []string
			var err error
			if catalogFile {
				errs, err = validation.ValidateCatalogFile(path)
			} else {
				errs, err = validation.ValidateConfigFile(path)
			}
			if err != nil {
				return err
			}

			if len(errs) == 0 {
				fmt.Printf("%s: OK\n", path)
				return nil
			}

			fmt.Printf("%s: %d problem(s)\n", path, len(errs))
			for _, e := range errs {
				fmt.Printf("  - %s\n", e)
			}
			return fmt.Errorf("%s failed validation", path)
		},
	}

	cmd.Flags().BoolVar(&catalogFile, "catalog", false, "Validate the file as a stimulus catalog")
	return cmd
}
