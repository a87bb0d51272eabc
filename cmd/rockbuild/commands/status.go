package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/rockbuild/internal/core/domain"
	"go.trai.ch/rockbuild/internal/ui/style"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the build records of the last successful build",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := c.app.Status(cmd.Context(), options(cmd))
			if err != nil {
				return err
			}
			renderStatus(cmd.OutOrStdout(), records)
			return nil
		},
	}
}

func renderStatus(w io.Writer, records []domain.BuildRecord) {
	s := style.New(style.NewRenderer(w))

	if len(records) == 0 {
		_, _ = fmt.Fprintln(w, s.Muted.Render("no build records, run `rockbuild build` first"))
		return
	}

	_, _ = fmt.Fprintln(w, s.Heading.Render("Last build"))
	for _, r := range records {
		name := fmt.Sprintf("%-8s", r.Component)
		if r.Kind == domain.ResolutionExternal {
			_, _ = fmt.Fprintf(w, "  %s %s %s %s %s\n",
				s.Extern.Render(style.Check), name, s.Extern.Render("external"), r.Mode, s.Muted.Render(r.LibDir))
			continue
		}
		_, _ = fmt.Fprintf(w, "  %s %s %s %s %s\n",
			s.Bundled.Render(style.Check), name, s.Bundled.Render("bundled "), r.Mode, r.Artifact)
		_, _ = fmt.Fprintf(w, "    %s\n", s.Muted.Render(fmt.Sprintf("inputs %s  archive %s  %s",
			r.InputHash, r.OutputHash, r.Timestamp.UTC().Format(time.RFC3339))))
	}
}
