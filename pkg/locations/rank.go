package locations

import "sort"

// RankByDistance returns a copy of records with Distance set relative to
// ref, ordered farthest first. Records at equal distance are in no
// particular order.
func RankByDistance(records []Record, ref Coordinate) []Record {
	ranked := make([]Record, len(records))
	for i, r := range records {
		r.Distance = Distance(r.Coordinate, ref)
		r.Ranked = true
		ranked[i] = r
	}
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].Distance > ranked[j].Distance
	})
	return ranked
}
