package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formcheck/pkg/conformance"
)

func newSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the canonical form JSON Schema",
		Long: `Print the JSON Schema (draft 2020-12) that repaired documents are checked
against. Editors can use it for completion and inline validation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := a.out.Write(conformance.Schema())
			return err
		},
	}
}
