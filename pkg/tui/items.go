package tui

import (
	"time"

	"github.com/stefanpenner/brandpilot/pkg/program"
)

// Card is a program on the board together with its metrics for this render.
type Card struct {
	Program program.Program
	Metrics program.Metrics
}

// Column is one status column of the board.
type Column struct {
	Status program.Status
	Cards  []Card
}

// BuildColumns groups programs into the board columns in status order and
// computes every card's metrics as of now. Programs with an unknown status
// are returned separately.
func BuildColumns(programs []program.Program, now time.Time) ([]Column, []program.Program) {
	grouped, dropped := program.GroupByStatus(programs)

	columns := make([]Column, 0, len(program.Statuses))
	for _, status := range program.Statuses {
		col := Column{Status: status}
		for _, p := range grouped[status] {
			col.Cards = append(col.Cards, Card{
				Program: p,
				Metrics: program.ComputeMetrics(p, now),
			})
		}
		columns = append(columns, col)
	}
	return columns, dropped
}

// brandOptions returns the brand filter values: AllBrands followed by brands.
func brandOptions(brands []string) []string {
	return append([]string{program.AllBrands}, brands...)
}
