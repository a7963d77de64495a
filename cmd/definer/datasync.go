package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/definer/internal/datasync"
	"github.com/at-ishikawa/definer/internal/dictionary"
	"github.com/at-ishikawa/definer/internal/pdf"
)

type ExportFormat string

func (f *ExportFormat) Set(val string) error {
	for _, format := range allExportFormats {
		if val == string(format) {
			*f = format
			return nil
		}
	}
	return fmt.Errorf("invalid export format: %s", val)
}

func (f ExportFormat) String() string {
	return string(f)
}

func (f *ExportFormat) Type() string {
	return "format"
}

const (
	ExportFormatYAML ExportFormat = "yaml"
	ExportFormatPDF  ExportFormat = "pdf"
)

var (
	_                pflag.Value = (*ExportFormat)(nil)
	allExportFormats             = []ExportFormat{ExportFormatYAML, ExportFormatPDF}
)

func newExportCommand() *cobra.Command {
	format := ExportFormatYAML
	var outputDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every term to a YAML file or a PDF glossary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if outputDir == "" {
				outputDir = cfg.Exports.Directory
			}

			db, err := openDatabase(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			repo := dictionary.NewDBRepository(db, cfg.Database.Table)

			out := cmd.OutOrStdout()
			switch format {
			case ExportFormatPDF:
				entries, err := repo.FindAll(ctx)
				if err != nil {
					return fmt.Errorf("load entries: %w", err)
				}
				pdfPath, err := pdf.WriteGlossary(entries, filepath.Join(outputDir, "glossary.md"), pdf.GlossaryOptions{
					TemplatePath: cfg.Exports.GlossaryTemplate,
					Date:         time.Now(),
				})
				if err != nil {
					return fmt.Errorf("pdf.WriteGlossary() > %w", err)
				}
				_, _ = fmt.Fprintf(out, "Exported %d terms to %s\n", len(entries), pdfPath)
			default:
				sink := datasync.NewYAMLEntrySink(outputDir)
				n, err := datasync.NewExporter(repo).Export(ctx, sink)
				if err != nil {
					return fmt.Errorf("export entries: %w", err)
				}
				_, _ = fmt.Fprintf(out, "Exported %d terms to %s\n", n, sink.Path())
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Var(&format, "format", fmt.Sprintf("Export format. Possible values are %v", allExportFormats))
	flags.StringVar(&outputDir, "output", "", "output directory (defaults to exports.directory)")
	return cmd
}

func newImportCommand() *cobra.Command {
	var dryRun bool
	var updateExisting bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import terms from a YAML file into the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			entries, err := datasync.ReadYAMLEntries(args[0])
			if err != nil {
				return fmt.Errorf("read entries: %w", err)
			}

			db, err := openDatabase(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			out := cmd.OutOrStdout()
			importer := datasync.NewImporter(dictionary.NewDBRepository(db, cfg.Database.Table), out)
			opts := datasync.ImportOptions{
				DryRun:         dryRun,
				UpdateExisting: updateExisting,
			}
			result, err := importer.Import(ctx, entries, opts)
			if err != nil {
				return fmt.Errorf("import entries: %w", err)
			}

			_, _ = fmt.Fprintln(out, "\nImport Summary:")
			if opts.DryRun {
				_, _ = fmt.Fprintln(out, "  (dry-run mode: no changes made)")
			}
			_, _ = fmt.Fprintf(out, "  Terms:  %d new, %d skipped, %d updated\n", result.New, result.Skipped, result.Updated)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without modifying the database")
	cmd.Flags().BoolVar(&updateExisting, "update-existing", false, "Update existing records with new data")
	return cmd
}
