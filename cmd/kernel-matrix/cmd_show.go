package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"kernel-matrix/internal/render"
)

var showKernel string

var showCmd = &cobra.Command{
	Use:   "show <document>",
	Short: "Print a result document to the terminal",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVarP(&showKernel, "kernel", "k", "", "Show one kernel in full detail")
}

func runShow(cmd *cobra.Command, args []string) error {
	doc, _, err := loadDocument(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if showKernel != "" {
		rep, ok := doc.Find(showKernel)
		if !ok {
			return fmt.Errorf("no report for kernel %q", showKernel)
		}
		fmt.Fprintln(out, render.Terminal(rep))
		return nil
	}
	fmt.Fprintln(out, render.TerminalSummary(doc))
	return nil
}
