package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"sba-portal/internal/config"
)

var checklistCommand = &cli.Command{
	Name:   "checklist",
	Usage:  "Print the configured document checklist",
	Action: printChecklist,
}

func printChecklist(cCtx *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cl, err := cfg.Checklist()
	if err != nil {
		return err
	}

	w := cCtx.App.Writer
	fmt.Fprintf(w, "Required (%d):\n", len(cl.Required))
	for _, c := range cl.Required {
		fmt.Fprintf(w, "  - %s\n", c)
	}
	if len(cl.Optional) > 0 {
		fmt.Fprintf(w, "Optional (%d):\n", len(cl.Optional))
		for _, c := range cl.Optional {
			fmt.Fprintf(w, "  - %s\n", c)
		}
	}
	fmt.Fprintf(w, "Minimum uploads to submit: %d\n", cl.Minimum)
	return nil
}
