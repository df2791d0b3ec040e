package program

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func board() []Program {
	mk := func(id, brand, desc string, status Status) Program {
		p := sampleProgram(brand)
		p.ID = id
		p.Description = desc
		p.Status = status
		return p
	}
	return []Program{
		mk("PROG-1", "Acme", "Rocket skates display", StatusActive),
		mk("PROG-2", "Globex", "Summer sell-in", StatusPending),
		mk("PROG-3", "Acme", "Anvil bundle", StatusEnded),
		mk("PROG-4", "Initech", "TPS report sponsorship", StatusActive),
		mk("PROG-5", "Globex", "Back to school", StatusActive),
	}
}

func TestFilterAllAndEmptyQueryReturnsInput(t *testing.T) {
	in := board()
	got := Filter(in, AllBrands, "")
	if diff := cmp.Diff(in, got); diff != "" {
		t.Errorf("Filter() mismatch (-want +got):\n%s", diff)
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		brand string
		query string
		want  []string
	}{
		{"brand only", "Acme", "", []string{"PROG-1", "PROG-3"}},
		{"query matches description case-insensitively", AllBrands, "SELL", []string{"PROG-2"}},
		{"query matches brand", AllBrands, "glob", []string{"PROG-2", "PROG-5"}},
		{"query matches id", AllBrands, "prog-4", []string{"PROG-4"}},
		{"brand and query must both hold", "Globex", "school", []string{"PROG-5"}},
		{"brand and query disjoint", "Acme", "school", []string{}},
		{"unknown brand", "Umbrella", "", []string{}},
		{"brand filter is exact", "acme", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(board(), tt.brand, tt.query)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterIdempotent(t *testing.T) {
	once := Filter(board(), "Globex", "s")
	twice := Filter(once, "Globex", "s")
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("second Filter() changed result (-once +twice):\n%s", diff)
	}
}

func TestGroupByStatus(t *testing.T) {
	in := board()
	cols, dropped := GroupByStatus(in)

	assert.Empty(t, dropped)
	require.Len(t, cols, 3)
	assert.Equal(t, []string{"PROG-1", "PROG-4", "PROG-5"}, ids(cols[StatusActive]))
	assert.Equal(t, []string{"PROG-2"}, ids(cols[StatusPending]))
	assert.Equal(t, []string{"PROG-3"}, ids(cols[StatusEnded]))
	assert.Equal(t, len(in), cols.Total())

	// Partition: every program lands in exactly one column
	seen := make(map[string]int)
	for _, s := range Statuses {
		for _, p := range cols[s] {
			seen[p.ID]++
		}
	}
	for _, p := range in {
		assert.Equal(t, 1, seen[p.ID], p.ID)
	}
}

func TestGroupByStatusEmptyInputHasAllColumns(t *testing.T) {
	cols, dropped := GroupByStatus(nil)
	assert.Empty(t, dropped)
	for _, s := range Statuses {
		ps, ok := cols[s]
		assert.True(t, ok, s)
		assert.Empty(t, ps)
	}
}

func TestGroupByStatusDropsUnknownStatus(t *testing.T) {
	in := board()
	in[1].Status = "Archived"

	cols, dropped := GroupByStatus(in)
	assert.Equal(t, []string{"PROG-2"}, ids(dropped))
	assert.Equal(t, len(in)-1, cols.Total())
	assert.Empty(t, cols[StatusPending])
	_, ok := cols["Archived"]
	assert.False(t, ok)
}

func TestGroupByBrand(t *testing.T) {
	got := GroupByBrand(board())
	want := []BrandCount{
		{Brand: "Acme", Count: 2},
		{Brand: "Globex", Count: 2},
		{Brand: "Initech", Count: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GroupByBrand() mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupByBrandTieKeepsFirstSeen(t *testing.T) {
	in := board()
	// Initech first, then Globex twice: Globex wins on count, Initech and Acme tie
	in = append([]Program{in[3]}, in[1], in[4], in[0])

	got := GroupByBrand(in)
	require.Len(t, got, 3)
	assert.Equal(t, "Globex", got[0].Brand)
	assert.Equal(t, "Initech", got[1].Brand)
	assert.Equal(t, "Acme", got[2].Brand)
}

func TestBrandCountShare(t *testing.T) {
	assert.InDelta(t, 0.4, BrandCount{Brand: "Acme", Count: 2}.Share(5), 1e-9)
	assert.Equal(t, 0.0, BrandCount{Brand: "Acme", Count: 2}.Share(0))
}
