package rts

import (
	"math"
	"testing"

	"github.com/Garsondee/mini-arcade/internal/geom"
)

func TestFormationOffsets_Count(t *testing.T) {
	for _, ft := range []FormationType{FormationGrid, FormationLine, FormationColumn} {
		for _, count := range []int{0, 1, 3, 7, 16} {
			offsets := formationOffsets(ft, count, 1.6)
			if len(offsets) != count {
				t.Fatalf("%s: expected %d offsets, got %d", ft, count, len(offsets))
			}
		}
	}
}

func TestFormationOffsets_DistinctAndSpaced(t *testing.T) {
	const spacing = 1.6
	for _, ft := range []FormationType{FormationGrid, FormationLine, FormationColumn} {
		offsets := formationOffsets(ft, 11, spacing)
		for i := range offsets {
			for j := i + 1; j < len(offsets); j++ {
				d := math.Hypot(offsets[i][0]-offsets[j][0], offsets[i][1]-offsets[j][1])
				if d < spacing-1e-9 {
					t.Fatalf("%s: slots %d and %d only %.2f apart", ft, i, j, d)
				}
			}
		}
	}
}

func TestFormationOffsets_GridIsRoughlySquare(t *testing.T) {
	offsets := formationOffsets(FormationGrid, 9, 1)
	var minX, maxX, minZ, maxZ float64
	for _, o := range offsets {
		minX, maxX = math.Min(minX, o[0]), math.Max(maxX, o[0])
		minZ, maxZ = math.Min(minZ, o[1]), math.Max(maxZ, o[1])
	}
	if maxX-minX != 2 || maxZ-minZ != 2 {
		t.Fatalf("9 units should form a 3x3 block, got extent %.1f x %.1f", maxX-minX, maxZ-minZ)
	}
	// A full square is centred on the ordered point.
	var cx, cz float64
	for _, o := range offsets {
		cx += o[0]
		cz += o[1]
	}
	if math.Abs(cx) > 1e-9 || math.Abs(cz) > 1e-9 {
		t.Fatalf("3x3 block should be centred, centroid (%.2f,%.2f)", cx/9, cz/9)
	}
}

func TestFormationOffsets_Line_SameDepth(t *testing.T) {
	for i, o := range formationOffsets(FormationLine, 5, 2) {
		if o[1] != 0 {
			t.Fatalf("line slot %d: z offset should be 0, got %.1f", i, o[1])
		}
	}
}

func TestFormationOffsets_Column_SingleFile(t *testing.T) {
	for i, o := range formationOffsets(FormationColumn, 4, 2) {
		if o[0] != 0 {
			t.Fatalf("column slot %d: x offset should be 0, got %.1f", i, o[0])
		}
	}
}

func TestAssignSlots_KeepsRelativePlaces(t *testing.T) {
	units := []*Unit{
		{ID: 1, Position: geom.Vec3{X: 4, Z: 2.1}},
		{ID: 2, Position: geom.Vec3{X: 0, Z: 0.2}},
		{ID: 3, Position: geom.Vec3{X: 0, Z: 1.9}},
		{ID: 4, Position: geom.Vec3{X: 4, Z: 0}},
	}
	got := assignSlots(units, FormationGrid)
	// Rows by depth: {4, 2} then {3, 1}; each row left to right.
	want := []int{2, 4, 3, 1}
	for i, u := range got {
		if u.ID != want[i] {
			t.Fatalf("slot %d: want unit %d, got %d", i, want[i], u.ID)
		}
	}
}

func TestParseFormation(t *testing.T) {
	cases := map[string]FormationType{"grid": FormationGrid, "line": FormationLine, "column": FormationColumn, "": FormationGrid, "wedge": FormationGrid}
	for in, want := range cases {
		if got := ParseFormation(in); got != want {
			t.Fatalf("ParseFormation(%q) = %s, want %s", in, got, want)
		}
	}
}
