package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"alfredoptarigan/prepio/internal/services"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Print the plain text extracted from a résumé",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadDocument(args[0])
		if err != nil {
			return err
		}

		text, err := services.NewDocumentExtractor().Extract(doc)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}
