package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pthm/ideadensity/internal/density"
	"github.com/pthm/ideadensity/internal/parser"
	"github.com/pthm/ideadensity/internal/transform"
)

var (
	transformOutput string
	transformPasses []string
)

var transformCmd = &cobra.Command{
	Use:   "transform [file]",
	Short: "Apply the tree transformation pipeline and write CoNLL-U",
	Long: `Rewrite dependency trees the way the analyzer sees them: punctuation
removed, intensifiers merged, reflexive and compound-name relations
relabelled. The result is written as CoNLL-U.

Examples:
  ideadensity transform corpus.json > corpus.conllu
  ideadensity transform --pass remove-punctuation corpus.conllu
  ideadensity transform -o out.conllu notes.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTransform,
}

func init() {
	transformCmd.Flags().StringVarP(&transformOutput, "output", "o", "", "Write to file instead of stdout")
	transformCmd.Flags().StringSliceVar(&transformPasses, "pass", nil, "Only run the named passes (repeatable)")
	RootCmd.AddCommand(transformCmd)
}

func runTransform(cmd *cobra.Command, args []string) error {
	docs, err := readDocuments(args, nil)
	if err != nil {
		return err
	}
	cfg, err := resolveLocale(docs)
	if err != nil {
		return err
	}

	pipeline, err := selectPasses(transform.DefaultPipeline(cfg), transformPasses)
	if err != nil {
		return err
	}

	var out []density.Sentence
	for _, doc := range docs {
		for _, s := range doc.Sentences {
			if s.Tree != nil {
				s.Tree = s.Tree.Clone()
				pipeline.Apply(s.Tree, func(t transform.Transformation) {
					logger.Debug("pass applied", zap.String("sentence", s.ID), zap.String("pass", t.Name()))
				})
				if err := s.Tree.Validate(); err != nil {
					return fmt.Errorf("sentence %s: %w", s.ID, err)
				}
			}
			out = append(out, s)
		}
	}

	var w io.Writer = os.Stdout
	if transformOutput != "" {
		f, err := os.Create(transformOutput)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	return parser.WriteConllU(w, out)
}

// selectPasses keeps only the named passes, in pipeline order
func selectPasses(p *transform.Pipeline, names []string) (*transform.Pipeline, error) {
	if len(names) == 0 {
		return p, nil
	}
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	selected := transform.NewPipeline()
	for _, pass := range p.Passes() {
		if wanted[pass.Name()] {
			selected.Add(pass)
			delete(wanted, pass.Name())
		}
	}
	for n := range wanted {
		return nil, fmt.Errorf("unknown pass %q", n)
	}
	return selected, nil
}
