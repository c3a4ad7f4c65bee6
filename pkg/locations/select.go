package locations

// SelectClosest truncates a farthest-first ranking. The first record is
// always kept; the prefix then grows while it is shorter than MaxCount and
// the next record lies within MaxDistance.
//
// Note the result is a prefix of the farthest-first order, so it starts
// with the overall farthest record. ModeNearest is the alternative.
func SelectClosest(ranked []Record, c Constraints) []Record {
	if len(ranked) == 0 {
		return nil
	}
	pos := 1
	for pos < c.MaxCount && pos < len(ranked) && ranked[pos].Distance <= c.MaxDistance {
		pos++
	}
	return ranked[:pos]
}
