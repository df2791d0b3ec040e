package program

import "sort"

// Columns holds the board columns keyed by status. All three statuses are
// always present, possibly with empty slices.
type Columns map[Status][]Program

// Total returns the number of programs across all columns.
func (c Columns) Total() int {
	n := 0
	for _, ps := range c {
		n += len(ps)
	}
	return n
}

// GroupByStatus partitions programs into the three board columns, keeping
// input order within each column. Programs whose status is not one of the
// known statuses are left out of every column and returned separately so the
// caller can report them.
func GroupByStatus(programs []Program) (Columns, []Program) {
	cols := make(Columns, len(Statuses))
	for _, s := range Statuses {
		cols[s] = []Program{}
	}

	var dropped []Program
	for _, p := range programs {
		if _, ok := cols[p.Status]; !ok {
			dropped = append(dropped, p)
			continue
		}
		cols[p.Status] = append(cols[p.Status], p)
	}
	return cols, dropped
}

// BrandCount is the number of programs for one brand.
type BrandCount struct {
	Brand string `json:"brand"`
	Count int    `json:"count"`
}

// Share returns the count as a fraction of total, or 0 when total is 0.
func (b BrandCount) Share(total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(b.Count) / float64(total)
}

// GroupByBrand counts programs per brand, sorted by count descending.
// Brands with equal counts keep the order in which they were first seen.
func GroupByBrand(programs []Program) []BrandCount {
	index := make(map[string]int)
	var counts []BrandCount
	for _, p := range programs {
		i, ok := index[p.Brand]
		if !ok {
			i = len(counts)
			index[p.Brand] = i
			counts = append(counts, BrandCount{Brand: p.Brand})
		}
		counts[i].Count++
	}

	sort.SliceStable(counts, func(a, b int) bool {
		return counts[a].Count > counts[b].Count
	})
	return counts
}
