package rts

import (
	"math"
	"sort"
)

// FormationType identifies the layout used when a group is ordered to move.
type FormationType int

const (
	FormationGrid   FormationType = iota // roughly square block
	FormationLine                        // single rank across the X axis
	FormationColumn                      // single file along the Z axis
)

// ParseFormation maps a config name to a FormationType, defaulting to grid.
func ParseFormation(name string) FormationType {
	switch name {
	case "line":
		return FormationLine
	case "column":
		return FormationColumn
	default:
		return FormationGrid
	}
}

func (ft FormationType) String() string {
	switch ft {
	case FormationLine:
		return "line"
	case FormationColumn:
		return "column"
	default:
		return "grid"
	}
}

// formationOffsets returns one ground-plane (x, z) offset per member, centred
// on the ordered point and spaced by spacing. Offsets are pairwise distinct.
func formationOffsets(ft FormationType, count int, spacing float64) [][2]float64 {
	offsets := make([][2]float64, count)
	if count == 0 {
		return offsets
	}

	switch ft {
	case FormationLine:
		mid := float64(count-1) / 2
		for i := range offsets {
			offsets[i] = [2]float64{(float64(i) - mid) * spacing, 0}
		}

	case FormationColumn:
		mid := float64(count-1) / 2
		for i := range offsets {
			offsets[i] = [2]float64{0, (float64(i) - mid) * spacing}
		}

	default:
		cols := int(math.Ceil(math.Sqrt(float64(count))))
		rows := (count + cols - 1) / cols
		midC := float64(cols-1) / 2
		midR := float64(rows-1) / 2
		for i := range offsets {
			col := i % cols
			row := i / cols
			offsets[i] = [2]float64{
				(float64(col) - midC) * spacing,
				(float64(row) - midR) * spacing,
			}
		}
	}
	return offsets
}

// assignSlots orders units to match formationOffsets so that members keep
// their relative places and paths to the slots do not cross: by depth into
// rows, then left to right within a row.
func assignSlots(units []*Unit, ft FormationType) []*Unit {
	out := append([]*Unit(nil), units...)
	byX := func(s []*Unit) {
		sort.SliceStable(s, func(i, j int) bool { return s[i].Position.X < s[j].Position.X })
	}
	byZ := func(s []*Unit) {
		sort.SliceStable(s, func(i, j int) bool { return s[i].Position.Z < s[j].Position.Z })
	}

	switch ft {
	case FormationLine:
		byX(out)
	case FormationColumn:
		byZ(out)
	default:
		cols := int(math.Ceil(math.Sqrt(float64(len(out)))))
		byZ(out)
		for start := 0; start < len(out); start += cols {
			end := start + cols
			if end > len(out) {
				end = len(out)
			}
			byX(out[start:end])
		}
	}
	return out
}
