package main

import (
	"fmt"
	"io"

	"github.com/poiesic/mergen/assembly"
	"github.com/poiesic/mergen/core"
)

// printPlan writes a plan as numbered, human readable packages.
func printPlan(w io.Writer, plan *core.Plan) {
	if len(plan.Packages) == 0 {
		fmt.Fprintln(w, plan.Message)
		return
	}

	for i, pkg := range plan.Packages {
		h := pkg.Hotel
		fmt.Fprintf(w, "%d. %s (%s) - %s/gece\n", i+1, h.Name, h.City, assembly.FormatPrice(pkg.Breakdown.Hotel))
		if desc := assembly.CleanDescription(h.Description, h.Name, h.City, h.Concept); desc != "" {
			fmt.Fprintf(w, "   %s\n", desc)
		}
		fmt.Fprintf(w, "   %s\n", assembly.FlightText(pkg.Flight))
		fmt.Fprintf(w, "   %s\n", assembly.TransferText(pkg.Transfer))
		fmt.Fprintf(w, "   Toplam: %s\n", assembly.FormatPrice(pkg.Breakdown.Total))
		if pkg.Summary != "" {
			fmt.Fprintf(w, "   %s\n", pkg.Summary)
		}
		fmt.Fprintln(w)
	}
}
