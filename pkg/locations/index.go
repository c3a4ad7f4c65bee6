package locations

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
)

// Kilometres per degree, rounded down so search boxes err on the large side.
const (
	kmPerDegreeLat = 110.0
	kmPerDegreeLon = 111.0
	searchMargin   = 1.01
	pointTolerance = 1e-9
)

type indexedRecord struct {
	Record
}

func (r *indexedRecord) Bounds() *rtreego.Rect {
	p := rtreego.Point{r.Coordinate.Lon, r.Coordinate.Lat}
	return p.ToRect(pointTolerance)
}

// Index is a spatial index over records, keyed on longitude/latitude.
type Index struct {
	rt *rtreego.Rtree
}

func NewIndex(records []Record) *Index {
	objs := make([]rtreego.Spatial, len(records))
	for i := range records {
		objs[i] = &indexedRecord{records[i]}
	}
	return &Index{rt: rtreego.NewTree(2, 25, 50, objs...)}
}

func (ix *Index) Size() int {
	return ix.rt.Size()
}

// SelectNearest returns at most c.MaxCount records within c.MaxDistance
// kilometres of ref, nearest first, with Distance set.
func (ix *Index) SelectNearest(ref Coordinate, c Constraints) []Record {
	var found []Record
	for _, s := range ix.rt.SearchIntersect(searchRect(ref, c.MaxDistance)) {
		r := s.(*indexedRecord).Record
		r.Distance = Distance(r.Coordinate, ref)
		r.Ranked = true
		if r.Distance <= c.MaxDistance {
			found = append(found, r)
		}
	}
	sort.Slice(found, func(i, j int) bool {
		a, b := found[i], found[j]
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		return a.Address < b.Address
	})
	if len(found) > c.MaxCount {
		found = found[:c.MaxCount]
	}
	return found
}

// searchRect returns a longitude/latitude box containing every point within
// maxKm of ref. Boxes that would reach a pole or wrap the antimeridian
// widen to the full longitude range.
func searchRect(ref Coordinate, maxKm float64) *rtreego.Rect {
	d := maxKm * searchMargin
	dLat := d / kmPerDegreeLat
	minLat := math.Max(ref.Lat-dLat, -90)
	maxLat := math.Min(ref.Lat+dLat, 90)
	minLon, maxLon := -180.0, 180.0
	if edge := math.Max(math.Abs(minLat), math.Abs(maxLat)); edge < 89.9 {
		dLon := d / (kmPerDegreeLon * math.Cos(edge*math.Pi/180))
		if ref.Lon-dLon >= -180 && ref.Lon+dLon <= 180 {
			minLon, maxLon = ref.Lon-dLon, ref.Lon+dLon
		}
	}
	lengths := []float64{
		math.Max(maxLon-minLon, pointTolerance),
		math.Max(maxLat-minLat, pointTolerance),
	}
	r, err := rtreego.NewRect(rtreego.Point{minLon, minLat}, lengths)
	if err != nil {
		panic(err)
	}
	return r
}
