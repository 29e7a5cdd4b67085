package commander

import "fmt"

// Weighting is the frequency weighting curve applied to level measurements.
type Weighting byte

const (
	DB_C Weighting = 0
	DB_A Weighting = 1
	DB_Z Weighting = 2
)

var weightingNames = [...]string{
	DB_C: "DB_C",
	DB_A: "DB_A",
	DB_Z: "DB_Z",
}

func (w Weighting) Valid() bool {
	return int(w) < len(weightingNames)
}

func (w Weighting) String() string {
	if !w.Valid() {
		return fmt.Sprintf("Weighting(%d)", byte(w))
	}
	return weightingNames[w]
}

// Next cycles C -> A -> Z -> C.
func (w Weighting) Next() Weighting {
	return Weighting((int(w) + 1) % len(weightingNames))
}

// WeightingFromByte decodes the wire value.
func WeightingFromByte(b byte) (Weighting, error) {
	w := Weighting(b)
	if !w.Valid() {
		return 0, fmt.Errorf("unknown weighting value %d", b)
	}
	return w, nil
}

// ParseWeighting accepts the symbolic name, e.g. "DB_A".
func ParseWeighting(name string) (Weighting, error) {
	for i, n := range weightingNames {
		if n == name {
			return Weighting(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weighting %q, expected DB_C, DB_A or DB_Z", name)
}
