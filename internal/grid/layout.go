package grid

import "fmt"

// Region names a rectangle for layout validation.
type Region struct {
	Name   string
	Bounds Bounds
}

// CheckLayout verifies that every region fits within rows and that no two
// regions overlap.
func CheckLayout(rows int, regions []Region) error {
	for _, r := range regions {
		if r.Bounds.LastRow() >= rows {
			return &LayoutError{
				First:  r.Name,
				Bounds: r.Bounds,
				Reason: fmt.Sprintf("extends to row %d of a %d-row grid", r.Bounds.LastRow(), rows),
			}
		}
	}
	for i := 0; i < len(regions); i++ {
		for j := i + 1; j < len(regions); j++ {
			a, b := regions[i], regions[j]
			if a.Bounds.Overlaps(b.Bounds) {
				return &LayoutError{
					First:  a.Name,
					Second: b.Name,
					Bounds: a.Bounds,
					Other:  b.Bounds,
					Reason: "regions overlap",
				}
			}
		}
	}
	return nil
}
