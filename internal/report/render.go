package report

import (
	"fmt"
	"io"
	"safesurf/pkg/domain"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
)

// RenderOptions control Render.
type RenderOptions struct {
	// Tabs to print; empty prints the state's selected tab.
	Tabs []Tab
	// Now is used for date based indicators.
	Now time.Time
	// NoColor disables ANSI colours.
	NoColor bool
	// ShowProvenance prints whether the score came from the service or the
	// local heuristic.
	ShowProvenance bool
	// Tooltips prints row descriptions under their row.
	Tooltips bool
}

// Render prints a header for the analysed page followed by the rows of the
// requested tabs, all from the same snapshot.
func Render(w io.Writer, s State, opts RenderOptions) error {
	tabs := opts.Tabs
	if len(tabs) == 0 {
		tabs = []Tab{s.Tab}
	}

	good := color.New(color.FgGreen)
	bad := color.New(color.FgRed)
	head := color.New(color.Bold)
	dim := color.New(color.Faint)
	tier := tierColor(s)
	if opts.NoColor || color.NoColor {
		for _, c := range []*color.Color{good, bad, head, dim, tier} {
			c.DisableColor()
		}
	}

	if _, err := head.Fprintln(w, "SafeSurf report"); err != nil {
		return fmt.Errorf("could not write header: %w", err)
	}
	switch s.Status {
	case StatusLoading:
		_, err := fmt.Fprintln(w, MsgLoading)
		return err
	case StatusError:
		_, err := bad.Fprintln(w, s.Error)
		return err
	}
	if s.Data != nil && s.Data.Whois.DomainName != "" {
		fmt.Fprintf(w, "Domain: %s\n", s.Data.Whois.DomainName)
	}
	if s.Verdict != nil {
		line := fmt.Sprintf("Trust score: %d / 100 (%s)", s.Verdict.Score, s.Verdict.Tier)
		if opts.ShowProvenance {
			line += " [" + string(s.Verdict.Source) + "]"
		}
		tier.Fprintln(w, line)
	}

	for _, tab := range tabs {
		fmt.Fprintln(w)
		head.Fprintln(w, strings.ToUpper(string(tab)))

		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, r := range s.Rows(tab, opts.Now) {
			mark := " "
			switch r.Mark {
			case MarkGood:
				mark = good.Sprint("✔")
			case MarkBad:
				mark = bad.Sprint("✘")
			}
			fmt.Fprintf(tw, "%s\t%s:\t%s\n", mark, r.Label, r.Value)
			if opts.Tooltips && r.Tooltip != "" {
				fmt.Fprintf(tw, " \t\t%s\n", dim.Sprint(r.Tooltip))
			}
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("could not write %s tab: %w", tab, err)
		}
	}

	return nil
}

func tierColor(s State) *color.Color {
	if s.Verdict == nil {
		return color.New(color.Reset)
	}
	switch s.Verdict.Tier {
	case domain.TierSafe:
		return color.New(color.FgGreen, color.Bold)
	case domain.TierCaution:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}
