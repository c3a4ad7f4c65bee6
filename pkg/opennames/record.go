package opennames

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
)

// Record holds the columns of an OS Open Names row that the gazetteer
// import needs. GeomX and GeomY are British National Grid metres.
type Record struct {
	ID              string
	Name            string
	Type            string
	LocalType       string
	GeomX           float64
	GeomY           float64
	PopulatedPlace  string
	DistrictBorough string
	CountyUnitary   string
	Region          string
	Country         string
}

const numFields = 34

type Scanner struct {
	csvReader  *csv.Reader
	nextRecord *Record
	err        error
}

func NewScanner(r io.Reader) (*Scanner, error) {
	br := bufio.NewReader(r)
	err := skipBOM(br)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(br)
	cr.FieldsPerRecord = numFields
	cr.ReuseRecord = true
	return &Scanner{csvReader: cr}, nil
}

var BOM = [3]byte{0xef, 0xbb, 0xbf}

func skipBOM(br *bufio.Reader) error {
	xs, err := br.Peek(3)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if xs[0] == BOM[0] && xs[1] == BOM[1] && xs[2] == BOM[2] {
		br.Discard(3)
	}
	return nil
}

func (s *Scanner) Scan() bool {
	rawRecord, err := s.csvReader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false
		}
		s.err = err
		return false
	}
	s.nextRecord, err = parseRecord(rawRecord)
	if err != nil {
		s.err = err
		return false
	}
	return true
}

func (s *Scanner) Err() error {
	return s.err
}

func (s *Scanner) Record() *Record {
	return s.nextRecord
}

func parseRecord(xs []string) (*Record, error) {
	if len(xs) != numFields {
		return nil, csv.ErrFieldCount
	}
	record := Record{
		ID:              xs[0],
		Name:            xs[2],
		Type:            xs[6],
		LocalType:       xs[7],
		PopulatedPlace:  xs[18],
		DistrictBorough: xs[21],
		CountyUnitary:   xs[24],
		Region:          xs[27],
		Country:         xs[29],
	}
	for i, p := range []*float64{&record.GeomX, &record.GeomY} {
		s := xs[i+8]
		if s != "" {
			var err error
			*p, err = strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, err
			}
		}
	}
	return &record, nil
}
