package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c360studio/notegraph/export"
	"github.com/c360studio/notegraph/graph"
)

var (
	flagExportFormat  string
	flagExportProfile string
	flagExportOutput  string
	flagExportNER     bool
)

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Serialize the extracted graph as RDF",
	Long: `Export processes a document tree and serializes the assembled graph.
The ontology profile controls type assertions: minimal emits notegraph
and PROV-O types, bfo adds Basic Formal Ontology, cco adds Common Core
Ontologies on top.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := setupLogging()
		cfg, err := loadConfig(logger)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		formatName := flagExportFormat
		if formatName == "" {
			formatName = cfg.Export.Format
		}
		format, err := export.ParseFormat(formatName)
		if err != nil {
			return err
		}

		profileName := flagExportProfile
		if profileName == "" {
			profileName = cfg.Export.Profile
		}
		profile, err := export.ParseProfile(profileName)
		if err != nil {
			return err
		}

		root, err := resolveRoot(cfg, args)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		docs, err := collectDocuments(cfg, root, logger)
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			return fmt.Errorf("no documents found under %s", root)
		}

		result, err := runBatch(ctx, cfg, docs, flagExportNER, nil, logger)
		if err != nil {
			return fmt.Errorf("process documents: %w", err)
		}
		if result.Succeeded == 0 {
			return fmt.Errorf("all %d documents failed", result.Failed)
		}

		assembler := graph.NewAssembler(cfg.Graph.BaseNamespace)
		exporter := export.NewRDFExporter(profile, export.WithVocabularyBase(cfg.Graph.VocabBase))
		for _, res := range result.Results {
			exporter.AddStatements(assembler.Assemble(res.Entities))
		}

		out, err := exporter.Export(format)
		if err != nil {
			return err
		}

		if flagExportOutput == "" || flagExportOutput == "-" {
			fmt.Print(out)
			return nil
		}
		if err := os.WriteFile(flagExportOutput, []byte(out), 0644); err != nil {
			return fmt.Errorf("write %s: %w", flagExportOutput, err)
		}
		logger.Info("Graph exported",
			"path", flagExportOutput,
			"format", format,
			"profile", profile,
			"documents", result.Succeeded)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportFormat, "format", "f", "", "Output format: turtle, ntriples, jsonld (default from config)")
	exportCmd.Flags().StringVarP(&flagExportProfile, "profile", "p", "", "Ontology profile: minimal, bfo, cco (default from config)")
	exportCmd.Flags().StringVarP(&flagExportOutput, "output", "o", "", "Output file (default stdout)")
	exportCmd.Flags().BoolVar(&flagExportNER, "ner", false, "Recognize named entities with the configured model")
	rootCmd.AddCommand(exportCmd)
}
