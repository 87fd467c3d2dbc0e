package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pthm/ideadensity/internal/locale"
)

var localesCmd = &cobra.Command{
	Use:   "locales [name]",
	Short: "List built-in locales or show one locale's keys",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u := GetUI()
		s := u.Styles

		if len(args) == 0 {
			for _, name := range locale.Available() {
				cfg, err := locale.Load(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(u.Writer, "%s  %s\n", s.Header.Render(fmt.Sprintf("%-4s", name)), cfg.Description)
			}
			return nil
		}

		cfg, err := locale.Load(args[0])
		if err != nil {
			return err
		}
		for _, key := range cfg.Keys() {
			value, _ := cfg.Get(key)
			fmt.Fprintf(u.Writer, "%s %s\n", s.Label.Render(key+":"), value)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(localesCmd)
}
