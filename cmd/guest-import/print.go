package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	guestsdomain "wedding-registry-go/internal/domain/guests"
)

var sides = []guestsdomain.Side{guestsdomain.SideBride, guestsdomain.SideGroom, guestsdomain.SideBoth}

func printSummary(out io.Writer, summary guestsdomain.ImportSummary, dryRun bool) {
	if dryRun {
		fmt.Fprintln(out, "Dry run: nothing was written.")
	} else {
		fmt.Fprintln(out, "Guest list replaced.")
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Total guests\t%d\n", summary.TotalGuests)
	fmt.Fprintf(tw, "Family groups\t%d\n", summary.FamilyGroups)
	fmt.Fprintf(tw, "Solo guests\t%d\n", summary.SoloGroups)
	for _, side := range sides {
		fmt.Fprintf(tw, "Side %s\t%d\n", side, summary.BySide[side])
	}
	_ = tw.Flush()
}

func printReport(out io.Writer, report guestsdomain.GroupingReport) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Family groups:")
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "GROUP\tSIDE\tSIZE\tMEMBERS")
	for _, group := range report.Groups {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", group.Key, group.Side, len(group.Members), strings.Join(group.Members, ", "))
	}
	_ = tw.Flush()

	if len(report.Duplicates) == 0 {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Names that resolve to the same lookup key (only the first is reachable by exact match):")
	for _, dup := range report.Duplicates {
		fmt.Fprintf(out, "  %s: %s\n", dup.NormalizedName, strings.Join(dup.Names, " | "))
	}
}
