package screen

// autoPosition assigns each of n flow entries, in order, the next slot that
// is not occupied, scanning row-major. Entries that do not fit get -1.
func autoPosition(occupied []bool, n int) []int {
	slots := make([]int, n)
	next := 0
	for i := range slots {
		for next < len(occupied) && occupied[next] {
			next++
		}
		if next >= len(occupied) {
			slots[i] = -1
			continue
		}
		slots[i] = next
		next++
	}
	return slots
}
