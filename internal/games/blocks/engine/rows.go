package engine

import (
	"fmt"
	"strconv"
	"strings"
)

type rowKind uint8

const (
	rowAuto rowKind = iota
	rowMidpoint
	rowTop
	rowFixed
)

// RowRule selects a grid row independent of grid height.
// The zero value is RowAuto.
type RowRule struct {
	kind  rowKind
	fixed int
}

var (
	// RowAuto is the midpoint for a spawn row, and the spawn row for a game-over row.
	RowAuto = RowRule{kind: rowAuto}

	// RowMidpoint is height/2 - 1.
	RowMidpoint = RowRule{kind: rowMidpoint}

	// RowTop is row 0.
	RowTop = RowRule{kind: rowTop}
)

// RowFixed selects an explicit row index.
func RowFixed(row int) RowRule {
	return RowRule{kind: rowFixed, fixed: row}
}

// ParseRowRule reads "auto", "spawn", "midpoint", "top" or a row index.
// An empty string is RowAuto.
func ParseRowRule(s string) (RowRule, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "", "auto", "spawn":
		return RowAuto, nil
	case "midpoint", "middle":
		return RowMidpoint, nil
	case "top":
		return RowTop, nil
	default:
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return RowRule{}, fmt.Errorf("engine: invalid row %q (want auto, midpoint, top or a non-negative index)", s)
		}
		return RowFixed(n), nil
	}
}

// IsAuto reports whether the rule defers to its context.
func (r RowRule) IsAuto() bool {
	return r.kind == rowAuto
}

// Resolve returns the row index for a grid of the given height.
// RowAuto resolves like RowMidpoint here; match setup handles the
// game-over case separately.
func (r RowRule) Resolve(height int) int {
	switch r.kind {
	case rowTop:
		return 0
	case rowFixed:
		return r.fixed
	default:
		return height/2 - 1
	}
}

func (r RowRule) String() string {
	switch r.kind {
	case rowMidpoint:
		return "midpoint"
	case rowTop:
		return "top"
	case rowFixed:
		return strconv.Itoa(r.fixed)
	default:
		return "auto"
	}
}
