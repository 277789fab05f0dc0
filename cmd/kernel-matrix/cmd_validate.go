package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"kernel-matrix/internal/report"
)

var validateCmd = &cobra.Command{
	Use:   "validate <document>",
	Short: "Validate a result document and print its digest",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	doc, data, err := loadDocument(args[0])
	if err != nil {
		return err
	}
	digest, err := report.Digest(data)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "valid: %d kernels, generated %s\n", len(doc.Reports), doc.GeneratedAt)
	if doc.Revision != "" {
		fmt.Fprintf(out, "revision: %s\n", doc.Revision)
	}
	fmt.Fprintf(out, "digest: %s\n", digest)
	return nil
}
