package locations

import "strconv"

// CheckInt reports whether s is a non-empty string of ASCII digits.
func CheckInt(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// TitleYear extracts the year from a title ending in "(YYYY)".
func TitleYear(title string) (int, bool) {
	rs := []rune(title)
	n := len(rs)
	if n < 5 {
		return 0, false
	}
	token := string(rs[n-5 : n-1])
	if !CheckInt(token) {
		return 0, false
	}
	year, err := strconv.Atoi(token)
	if err != nil {
		return 0, false
	}
	return year, true
}

func FilterYear(records []Record, year int) []Record {
	var selected []Record
	for _, r := range records {
		if y, ok := TitleYear(r.Title); ok && y == year {
			selected = append(selected, r)
		}
	}
	return selected
}
