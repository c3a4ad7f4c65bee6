package opennames

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"
)

type Handler func(*Record) error

type Filter func(*Record) bool

func (f Filter) Complement() Filter {
	return func(r *Record) bool {
		return !f(r)
	}
}

func FilterType(t string) Filter {
	return func(r *Record) bool {
		return r.Type == t
	}
}

func FilterLocalType(types ...string) Filter {
	return func(r *Record) bool {
		for _, t := range types {
			if r.LocalType == t {
				return true
			}
		}
		return false
	}
}

// Process calls handler for every record in a single Open Names CSV file
// that passes all the filters.
func Process(r io.Reader, handler Handler, filters ...Filter) error {
	s, err := NewScanner(r)
	if err != nil {
		return err
	}
	for s.Scan() {
		r := s.Record()
		if wanted := applyFilters(r, filters); !wanted {
			continue
		}
		if err := handler(r); err != nil {
			return err
		}
	}
	return s.Err()
}

// ProcessFile reads the compressed OS Open Names data set and calls the handler for each record.
func ProcessFile(filename string, handler Handler, filters ...Filter) error {
	r, err := zip.OpenReader(filename)
	if err != nil {
		return fmt.Errorf("error opening %s for reading: %w", filename, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if !(strings.HasPrefix(f.Name, "DATA/") && strings.HasSuffix(f.Name, ".csv")) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("error opening %s: %w", f.Name, err)
		}
		err = Process(rc, handler, filters...)
		rc.Close()
		if err != nil {
			return fmt.Errorf("error parsing %s: %w", f.Name, err)
		}
	}
	return nil
}

func applyFilters(r *Record, filters []Filter) bool {
	for _, f := range filters {
		if !f(r) {
			return false
		}
	}
	return true
}
