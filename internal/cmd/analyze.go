package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pthm/ideadensity/internal/density"
	"github.com/pthm/ideadensity/internal/metrics"
	"github.com/pthm/ideadensity/internal/reporter"
	"github.com/pthm/ideadensity/internal/ui"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file...]",
	Short: "Extract propositions and compute idea density",
	Long: `Analyze dependency-parsed sentences and report their propositions
and idea density.

With no files, CoNLL-U is read from standard input.

Examples:
  ideadensity analyze corpus.conllu
  ideadensity analyze --locale pt notes.md
  ideadensity analyze --format json corpus.json > report.json
  ideadensity analyze --metrics-file run.prom corpus.conllu`,
	RunE: runAnalyze,
}

func init() {
	RootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	u := GetUI()

	// Pick the reporter first so a bad --format fails before any work
	rep, err := reporter.New(format, u.Writer, u.Styles)
	if err != nil {
		return err
	}

	progress := u.StartProgress()
	defer func() {
		progress.Done(nil)
	}()

	// Stage 1: Read corpus
	progress.SetStage(ui.StageReadCorpus)
	docs, err := readDocuments(args, progress)
	if err != nil {
		return err
	}

	// Stage 2: Load locale
	progress.SetStage(ui.StageLoadLocale)
	cfg, err := resolveLocale(docs)
	if err != nil {
		return err
	}

	var sentences []density.Sentence
	for _, doc := range docs {
		sentences = append(sentences, doc.Sentences...)
	}

	// Stage 3: Analyze
	progress.SetStage(ui.StageAnalyze)
	progress.SetSentenceCount(len(sentences))

	opts := []density.Option{
		density.WithLogger(logger),
		density.WithProgress(progress.SentencesDone),
	}
	if workers > 0 {
		opts = append(opts, density.WithWorkers(workers))
	}
	var recorder *metrics.Recorder
	if metricsFile != "" {
		recorder = metrics.New()
		opts = append(opts, density.WithObserver(recorder))
	}

	report, err := density.NewAnalyzer(cfg, opts...).Analyze(cmd.Context(), sentences)

	// Stop progress before reporting
	progress.Done(err)
	progress = nil

	if err != nil && !errors.Is(err, density.ErrNoWords) {
		return err
	}

	if recorder != nil {
		if werr := recorder.WriteFile(metricsFile); werr != nil {
			return werr
		}
		logger.Debug("metrics written", zap.String("path", metricsFile))
	}

	if rerr := rep.Report(report); rerr != nil {
		return fmt.Errorf("failed to write report: %w", rerr)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, u.Styles.Warning.Render(
			fmt.Sprintf("%s %v", u.Styles.IconWarning, err),
		))
	}
	return err
}
