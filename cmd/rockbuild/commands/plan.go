package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/rockbuild/internal/core/domain"
	"go.trai.ch/rockbuild/internal/ui/style"
)

func (c *CLI) newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show how each library would be provided, without compiling",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			plan, err := c.app.Plan(cmd.Context(), options(cmd))
			if err != nil {
				return err
			}
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(plan)
			}
			renderPlan(cmd.OutOrStdout(), plan)
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Print the plan as JSON")
	return cmd
}

func renderPlan(w io.Writer, plan *domain.BuildPlan) {
	s := style.New(style.NewRenderer(w))

	_, _ = fmt.Fprintf(w, "%s %s (%s)\n\n", s.Heading.Render("Target"), plan.Facts.Triple, plan.Facts.Platform)

	_, _ = fmt.Fprintln(w, s.Heading.Render("Components"))
	for _, pc := range plan.Components {
		name := fmt.Sprintf("%-8s", pc.Component)
		switch {
		case !pc.Enabled:
			_, _ = fmt.Fprintf(w, "  %s %s %s\n", s.Off.Render(style.Circle), name, s.Off.Render("disabled"))
		case pc.Kind == domain.ResolutionExternal:
			_, _ = fmt.Fprintf(w, "  %s %s %s %s %s\n",
				s.Extern.Render(style.Dot), name, s.Extern.Render("external"), pc.Mode, s.Muted.Render(pc.Dir))
		default:
			_, _ = fmt.Fprintf(w, "  %s %s %s %s\n", s.Bundled.Render(style.Dot), name, s.Bundled.Render("bundled "), pc.Mode)
		}
	}

	if len(plan.Sources) > 0 {
		_, _ = fmt.Fprintf(w, "\n%s %d files in the unity unit\n", s.Heading.Render("Sources"), len(plan.Sources))
	}

	_, _ = fmt.Fprintf(w, "\n%s\n", s.Heading.Render("Links"))
	for _, l := range plan.Links {
		if l.SearchPath == "" {
			_, _ = fmt.Fprintf(w, "  %s (%s)\n", l.Name, l.Mode)
			continue
		}
		_, _ = fmt.Fprintf(w, "  %s (%s) %s\n", l.Name, l.Mode, s.Muted.Render(l.SearchPath))
	}
}
