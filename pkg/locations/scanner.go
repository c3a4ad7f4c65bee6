package locations

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
)

var BOM = [3]byte{0xef, 0xbb, 0xbf}

// Scanner yields the tab-separated rows of a locations corpus one at a time.
// Lines may be of any length. It is single-pass: once Scan returns false
// the scanner is exhausted.
type Scanner struct {
	br   *bufio.Reader
	row  []string
	err  error
	done bool
}

func NewScanner(r io.Reader) (*Scanner, error) {
	br := bufio.NewReader(r)
	if err := skipBOM(br); err != nil {
		return nil, err
	}
	return &Scanner{br: br}, nil
}

func skipBOM(br *bufio.Reader) error {
	xs, err := br.Peek(len(BOM))
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if bytes.Equal(xs, BOM[:]) {
		br.Discard(len(BOM))
	}
	return nil
}

func (s *Scanner) Scan() bool {
	s.row = nil
	if s.done {
		return false
	}
	line, err := s.br.ReadString('\n')
	if err != nil {
		s.done = true
		if !errors.Is(err, io.EOF) {
			s.err = err
			return false
		}
		if line == "" {
			return false
		}
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	s.row = strings.Split(line, "\t")
	return true
}

func (s *Scanner) Err() error {
	return s.err
}

// Row returns the fields of the most recently scanned line.
func (s *Scanner) Row() []string {
	return s.row
}
