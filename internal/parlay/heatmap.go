package parlay

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/xtding233/payout-engine/internal/contract"
)

const (
	DefaultGridSize = 15
	MaxGridSize     = 256
)

// Axis is the value range swept along one grid dimension.
type Axis struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (a Axis) isZero() bool { return a.Min == 0 && a.Max == 0 }

// at returns the value of step k out of size.
func (a Axis) at(k, size int) float64 {
	return a.Min + (a.Max-a.Min)*float64(k)/float64(size-1)
}

// GridSpec configures a heatmap sweep. Zero axes fall back to the catalog
// bounds of parameters 0 and 1. Fixed holds one value for each remaining
// parameter.
type GridSpec struct {
	Size  int       `json:"size,omitempty"`
	X     Axis      `json:"x"`
	Y     Axis      `json:"y"`
	Fixed []float64 `json:"fixed,omitempty"`
}

// Cell is the evaluation at one grid point.
type Cell struct {
	Fraction     float64 `json:"fraction"`
	PayoutAmount int64   `json:"payoutAmount"`
}

// Grid holds Size x Size cells. Rows run along Y, columns along X.
type Grid struct {
	Size  int      `json:"size"`
	X     Axis     `json:"x"`
	Y     Axis     `json:"y"`
	Cells [][]Cell `json:"cells"`
}

// Cell returns the cell at column i (X) and row j (Y).
func (g Grid) Cell(i, j int) Cell { return g.Cells[j][i] }

// NonZero counts cells with a positive fraction.
func (g Grid) NonZero() int {
	n := 0
	for _, row := range g.Cells {
		for _, c := range row {
			if c.Fraction > 0 {
				n++
			}
		}
	}
	return n
}

// Locate maps an (x, y) observation to the nearest grid coordinates,
// clamped to the grid.
func (g Grid) Locate(x, y float64) (i, j int) {
	return locate(g.X, x, g.Size), locate(g.Y, y, g.Size)
}

func locate(a Axis, v float64, size int) int {
	if size < 2 || a.Max == a.Min {
		return 0
	}
	k := int(math.Round((v - a.Min) / (a.Max - a.Min) * float64(size-1)))
	return max(0, min(k, size-1))
}

// Heatmap evaluates d over a grid of the first two parameters. Rows are
// computed concurrently and share no mutable state.
func Heatmap(ctx context.Context, d contract.ParlayDescriptor, totalCollateral int64, spec GridSpec) (Grid, error) {
	spec, err := resolveGrid(d, spec)
	if err != nil {
		return Grid{}, err
	}
	if totalCollateral <= 0 {
		return Grid{}, &contract.InvalidParameterError{
			Index:  -1,
			Reason: fmt.Sprintf("total collateral must be > 0, got %d", totalCollateral),
		}
	}

	grid := Grid{Size: spec.Size, X: spec.X, Y: spec.Y, Cells: make([][]Cell, spec.Size)}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for j := 0; j < spec.Size; j++ {
		j := j
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			values := make([]float64, 2+len(spec.Fixed))
			copy(values[2:], spec.Fixed)
			values[1] = spec.Y.at(j, spec.Size)
			row := make([]Cell, spec.Size)
			for i := range row {
				values[0] = spec.X.at(i, spec.Size)
				r, err := Evaluate(d, values, totalCollateral)
				if err != nil {
					return fmt.Errorf("cell (%d,%d): %w", i, j, err)
				}
				row[i] = Cell{Fraction: r.Fraction, PayoutAmount: r.PayoutAmount}
			}
			grid.Cells[j] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Grid{}, err
	}
	return grid, nil
}

func resolveGrid(d contract.ParlayDescriptor, spec GridSpec) (GridSpec, error) {
	n := d.NumParameters()
	if n < 2 {
		return spec, &contract.InvalidParameterError{Index: -1, Reason: fmt.Sprintf("heatmap needs at least 2 parameters, got %d", n)}
	}
	if len(spec.Fixed) != n-2 {
		return spec, &contract.InvalidParameterError{
			Index:  -1,
			Reason: fmt.Sprintf("expected %d fixed values, got %d", n-2, len(spec.Fixed)),
		}
	}
	for k, v := range spec.Fixed {
		if err := validateObserved(v); err != nil {
			return spec, withIndex(err, k+2)
		}
	}
	if spec.Size == 0 {
		spec.Size = DefaultGridSize
	}
	if spec.Size < 2 || spec.Size > MaxGridSize {
		return spec, &contract.InvalidParameterError{
			Index:  -1,
			Reason: fmt.Sprintf("grid size must be in [2, %d], got %d", MaxGridSize, spec.Size),
		}
	}
	var err error
	if spec.X, err = resolveAxis(d, 0, spec.X); err != nil {
		return spec, err
	}
	if spec.Y, err = resolveAxis(d, 1, spec.Y); err != nil {
		return spec, err
	}
	return spec, nil
}

func resolveAxis(d contract.ParlayDescriptor, i int, a Axis) (Axis, error) {
	if a.isZero() {
		info, ok := LookupDataType(d.Parameter(i).DataType)
		if !ok {
			return a, &contract.InvalidParameterError{Index: i, Reason: fmt.Sprintf("no default bounds for %q", d.Parameter(i).DataType)}
		}
		return Axis{Min: info.Min, Max: info.Max}, nil
	}
	if math.IsNaN(a.Min) || math.IsInf(a.Min, 0) || math.IsNaN(a.Max) || math.IsInf(a.Max, 0) || a.Max <= a.Min {
		return a, &contract.InvalidParameterError{Index: i, Reason: fmt.Sprintf("axis bounds [%v, %v] must be finite and increasing", a.Min, a.Max)}
	}
	return a, nil
}
