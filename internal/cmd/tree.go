package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pthm/ideadensity/internal/density"
	"github.com/pthm/ideadensity/internal/transform"
	"github.com/pthm/ideadensity/internal/ui"
)

var (
	treePrint       bool
	treeTransformed bool
)

var treeCmd = &cobra.Command{
	Use:   "tree [file]",
	Short: "Browse dependency trees and their propositions",
	Long: `Displays an interactive tree view of each sentence with the
propositions extracted from it.

Controls:
  ↑/k, ↓/j    Navigate up/down
  ←/h, →/l    Collapse/expand nodes
  Enter/Space Toggle expand/collapse
  t           Toggle tags
  p           Toggle propositions
  q           Quit

Examples:
  ideadensity tree corpus.conllu
  ideadensity tree --transformed corpus.conllu
  ideadensity tree --print corpus.conllu`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTree,
}

func init() {
	treeCmd.Flags().BoolVarP(&treePrint, "print", "p", false, "Print trees to stdout instead of interactive mode")
	treeCmd.Flags().BoolVar(&treeTransformed, "transformed", false, "Show trees after the transformation pipeline")
	RootCmd.AddCommand(treeCmd)
}

func runTree(cmd *cobra.Command, args []string) error {
	u := GetUI()

	// Check if interactive mode is available (unless --print is used)
	if !treePrint && !u.IsInteractive() {
		return fmt.Errorf("tree command requires an interactive terminal (TTY). Use --print for non-interactive output")
	}

	docs, err := readDocuments(args, nil)
	if err != nil {
		return err
	}
	cfg, err := resolveLocale(docs)
	if err != nil {
		return err
	}

	analyzer := density.NewAnalyzer(cfg, density.WithLogger(logger))
	pipeline := transform.DefaultPipeline(cfg)

	var sentences []ui.TreeSentence
	for _, doc := range docs {
		for _, s := range doc.Sentences {
			tree := s.Tree
			if treeTransformed && tree != nil {
				tree = tree.Clone()
				pipeline.Apply(tree)
			}
			result := analyzer.AnalyzeSentence(s)
			sentences = append(sentences, ui.TreeSentence{
				ID:           s.ID,
				Text:         result.Text,
				Tree:         tree,
				Propositions: result.Propositions,
			})
		}
	}

	if treePrint {
		return printTrees(u, sentences)
	}
	return u.RunTreeViewer(sentences)
}

func printTrees(u *ui.UI, sentences []ui.TreeSentence) error {
	s := u.Styles
	for i, sentence := range sentences {
		if i > 0 {
			fmt.Fprintln(u.Writer)
		}
		fmt.Fprintf(u.Writer, "%s %s\n", s.Header.Render("["+sentence.ID+"]"), sentence.Text)
		if sentence.Tree != nil {
			fmt.Fprint(u.Writer, s.Path.Render(sentence.Tree.Format()))
			fmt.Fprintln(u.Writer)
		}
		for _, p := range sentence.Propositions {
			fmt.Fprintf(u.Writer, "  %s %s\n",
				s.Subheader.Render(fmt.Sprintf("%3d", p.ID)),
				s.Kind(p.Kind).Render(p.Kind.String()+p.String()))
		}
	}
	return nil
}
