package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/niems-digital/emslog/pkg/textutil"
)

func projectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List the projects-master registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			reg, err := newRegistry(logger)
			if err != nil {
				return fmt.Errorf("projects: %w", err)
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendHeader(table.Row{"Code", "Name", "FY", "Fund", "Owner", "Section 15"})
			for _, p := range reg.All() {
				section := ""
				if p.Section15Main != nil {
					section = textutil.Truncate(*p.Section15Main, 32)
				}
				tw.AppendRow(table.Row{
					p.Code,
					textutil.Truncate(p.NameTH, 44),
					p.FiscalYear,
					p.FundSource,
					textutil.Truncate(p.OwnerUnit, 32),
					section,
				})
			}
			tw.Render()

			fmt.Printf("\n%d projects\n", reg.Len())
			return nil
		},
	}
	return cmd
}
