package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"kernel-matrix/internal/render"
	"kernel-matrix/internal/report"
)

var exportOutDir string

var exportCmd = &cobra.Command{
	Use:   "export <document>",
	Short: "Export markdown reports, feeds, and preview images",
	Long: "Reads a result document from a file or URL and writes the full static\n" +
		"export: index.md, matrix.md, one markdown file per kernel, llms.txt,\n" +
		"llms-full.txt, and SVG preview images.",
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutDir, "out", "o", "site", "Output directory")
}

func runExport(cmd *cobra.Command, args []string) error {
	doc, _, err := loadDocument(args[0])
	if err != nil {
		return err
	}
	previewDir := filepath.Join(exportOutDir, "preview")
	if err := os.MkdirAll(previewDir, 0o755); err != nil {
		return err
	}

	files := map[string]string{
		"index.md":      render.Index(doc),
		"matrix.md":     render.Matrix(doc),
		"llms.txt":      render.LinkIndex(doc),
		"llms-full.txt": render.FullExport(doc),
		"preview.svg":   render.DocumentImage(doc),
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(exportOutDir, name), []byte(body), 0o644); err != nil {
			return err
		}
	}

	var g errgroup.Group
	for i := range doc.Reports {
		rep := &doc.Reports[i]
		g.Go(func() error {
			detail := filepath.Join(exportOutDir, render.KernelFileName(rep.KernelName))
			if err := os.WriteFile(detail, []byte(render.KernelDetail(rep)), 0o644); err != nil {
				return err
			}
			svg := filepath.Join(previewDir, svgFileName(rep))
			return os.WriteFile(svg, []byte(render.KernelImage(rep)), 0o644)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "exported %d kernels to %s\n", len(doc.Reports), exportOutDir)
	return nil
}

// svgFileName uses the same percent-encoded stem as the markdown export.
func svgFileName(r *report.KernelReport) string {
	name := render.KernelFileName(r.KernelName)
	return name[:len(name)-len(".md")] + ".svg"
}
