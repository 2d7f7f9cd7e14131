package rules

// Env is the data surface visible to rule conditions, e.g.
// `Turn % 7 == 0 && Turn > 1` or `SP >= 8`.
type Env struct {
	Turn int
	SP   float64
	MP   float64
}

// Every reports whether the turn falls on residue r of an n-turn cadence.
func (e Env) Every(n, r int) bool {
	if n <= 0 {
		return false
	}
	return e.Turn%n == r
}

// Between is the exclusive range check lo < Turn < hi.
func (e Env) Between(lo, hi int) bool {
	return lo < e.Turn && e.Turn < hi
}
