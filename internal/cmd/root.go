package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pthm/ideadensity/internal/locale"
	"github.com/pthm/ideadensity/internal/parser"
	"github.com/pthm/ideadensity/internal/ui"
)

// defaultLocale is used when neither a flag nor the input names one
const defaultLocale = "en"

var (
	// Global flags
	verbose     bool
	format      string
	localeName  string
	localeFile  string
	workers     int
	metricsFile string

	logger   = zap.NewNop()
	globalUI *ui.UI
)

// ErrLocaleConflict is returned when input files declare different locales
// and no --locale flag settles it.
var ErrLocaleConflict = errors.New("input files declare different locales")

// RootCmd is the ideadensity command
var RootCmd = &cobra.Command{
	Use:   "ideadensity",
	Short: "Propositional idea density from dependency trees",
	Long: `ideadensity extracts the propositions expressed by dependency-parsed
sentences and reports their idea density: propositions per word.

Input is one or more treebanks in CoNLL-U, JSON, YAML, or markdown with
fenced conllu blocks. Locale configuration supplies the closed word
classes (determiners, copulas, relative pronouns) for each language.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		globalUI = ui.New(os.Stdout, os.Stderr, format)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	RootCmd.PersistentFlags().StringVarP(&format, "format", "f", "text", "Output format (text, json, markdown, html)")
	RootCmd.PersistentFlags().StringVarP(&localeName, "locale", "l", "", "Built-in locale (default: from input, else "+defaultLocale+")")
	RootCmd.PersistentFlags().StringVar(&localeFile, "locale-file", "", "Load the locale from a YAML file")
	RootCmd.PersistentFlags().IntVarP(&workers, "workers", "w", 0, "Sentences analysed in parallel (default: number of CPUs)")
	RootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics to this file")
}

// GetUI returns the UI configured for the current command
func GetUI() *ui.UI {
	if globalUI == nil {
		globalUI = ui.New(os.Stdout, os.Stderr, format)
	}
	return globalUI
}

// resolveLocale picks the locale: --locale-file, then --locale, then the
// locale the documents declare, then the default.
func resolveLocale(docs []*parser.Document) (*locale.Config, error) {
	if localeFile != "" {
		cfg, err := locale.LoadFromFile(localeFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load locale: %w", err)
		}
		return cfg, nil
	}

	name := localeName
	if name == "" {
		for _, doc := range docs {
			if doc.Locale == "" {
				continue
			}
			if name != "" && doc.Locale != name {
				return nil, fmt.Errorf("%w: %s and %s", ErrLocaleConflict, name, doc.Locale)
			}
			name = doc.Locale
		}
	}
	if name == "" {
		name = defaultLocale
	}

	cfg, err := locale.Load(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load locale: %w", err)
	}
	logger.Debug("locale resolved", zap.String("locale", cfg.Name))
	return cfg, nil
}

// readDocuments parses every path; no paths means standard input
func readDocuments(paths []string, progress *ui.ProgressController) ([]*parser.Document, error) {
	if len(paths) == 0 {
		paths = []string{parser.StdinPath}
	}

	docs := make([]*parser.Document, 0, len(paths))
	for _, path := range paths {
		progress.SetOperation(path)
		doc, err := parser.Parse(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read corpus: %w", err)
		}
		logger.Debug("corpus file read",
			zap.String("path", path),
			zap.Stringer("type", doc.FileType),
			zap.Int("sentences", len(doc.Sentences)),
		)
		docs = append(docs, doc)
	}
	return docs, nil
}
