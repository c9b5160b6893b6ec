package types

// Restaurant is a single registry entry. Name is the primary key.
type Restaurant struct {
	Name   string `json:"name"`
	Weight int    `json:"weight"`
}

// Slots is the number of entries the restaurant occupies in the weighted draw.
func (r Restaurant) Slots() int {
	if r.Weight < 0 {
		return 1
	}
	return r.Weight + 1
}

func Clone(records []Restaurant) []Restaurant {
	if records == nil {
		return []Restaurant{}
	}
	out := make([]Restaurant, len(records))
	copy(out, records)
	return out
}
