package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stefanpenner/brandpilot/pkg/program"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.NotEmpty(t, c.Brands)
	assert.NotEmpty(t, c.ProgramTypes)
	require.NotEmpty(t, c.Programs)

	// Seed programs load into a store without conflicts
	s := program.NewStore()
	require.NoError(t, s.Seed(c.Programs))
	assert.Equal(t, len(c.Programs), s.Len())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		check   func(t *testing.T, c *Catalog)
	}{
		{
			name: "full catalog",
			input: `brands: [Acme, Globex]
program_types: [Display]
programs:
  - id: PROG-1
    program_type: Display
    brand: Acme
    description: Shelf display
    start_date: 2024-01-01
    end_date: 2024-01-11
    target: 100
    achievement: 40
    reward_percentage: 2.5
    status: Active
    payment_status: Partial
`,
			check: func(t *testing.T, c *Catalog) {
				assert.Equal(t, []string{"Acme", "Globex"}, c.Brands)
				assert.True(t, c.HasBrand("Globex"))
				assert.False(t, c.HasBrand("Initech"))
				require.Len(t, c.Programs, 1)
				p := c.Programs[0]
				assert.Equal(t, "PROG-1", p.ID)
				assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), p.StartDate)
				assert.Equal(t, 2.5, p.RewardPercentage)
				assert.Equal(t, program.StatusActive, p.Status)
				assert.Equal(t, program.PaymentPartial, p.PaymentStatus)
			},
		},
		{
			name:  "reference lists only",
			input: "brands: [Acme]\nprogram_types: [Display]\n",
			check: func(t *testing.T, c *Catalog) {
				assert.Empty(t, c.Programs)
			},
		},
		{name: "no brands", input: "program_types: [Display]\n", wantErr: true},
		{name: "duplicate brand", input: "brands: [Acme, Acme]\nprogram_types: [Display]\n", wantErr: true},
		{name: "reserved brand", input: "brands: [All]\nprogram_types: [Display]\n", wantErr: true},
		{name: "blank type", input: "brands: [Acme]\nprogram_types: ['  ']\n", wantErr: true},
		{name: "bad yaml", input: "brands: [Acme\n", wantErr: true},
		{
			name: "invalid seed program",
			input: `brands: [Acme]
program_types: [Display]
programs:
  - id: PROG-1
    program_type: Display
    brand: Acme
    description: Backwards window
    start_date: 2024-02-01
    end_date: 2024-01-01
    status: Active
    payment_status: Paid
`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, c)
		})
	}
}

func TestLoadMissingFileFallsBackToDefault(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Brands, c.Brands)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	orig := Default()
	require.NoError(t, Save(path, orig))

	_, err := os.Stat(path)
	require.NoError(t, err)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, orig.Brands, loaded.Brands)
	assert.Equal(t, orig.ProgramTypes, loaded.ProgramTypes)
	require.Len(t, loaded.Programs, len(orig.Programs))
	for i := range orig.Programs {
		assert.Equal(t, orig.Programs[i].ID, loaded.Programs[i].ID)
		assert.True(t, orig.Programs[i].StartDate.Equal(loaded.Programs[i].StartDate))
		assert.Equal(t, orig.Programs[i].Achievement, loaded.Programs[i].Achievement)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("brands: []\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
