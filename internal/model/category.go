package model

import "fmt"

// Category is one of the four DISC behavioral styles.
type Category string

const (
	CategoryD Category = "D"
	CategoryI Category = "I"
	CategoryS Category = "S"
	CategoryC Category = "C"
)

// Categories lists all styles in their fixed enumeration order.
// Dominant-style resolution and report rendering iterate this slice,
// so the order is load-bearing: on a tied tally the earlier entry wins.
var Categories = [4]Category{CategoryD, CategoryI, CategoryS, CategoryC}

// ParseCategory validates a raw category code.
func ParseCategory(raw string) (Category, error) {
	switch Category(raw) {
	case CategoryD, CategoryI, CategoryS, CategoryC:
		return Category(raw), nil
	}
	return "", fmt.Errorf("unknown category %q", raw)
}

// DisplayName returns the long-form style name.
func (c Category) DisplayName() string {
	switch c {
	case CategoryD:
		return "Dominance"
	case CategoryI:
		return "Influence"
	case CategoryS:
		return "Steadiness"
	case CategoryC:
		return "Conscientiousness"
	}
	return "Unknown"
}

// Tally counts the answers recorded per category. The fields are
// exhaustive over Categories so adding a style is a compile-time change.
type Tally struct {
	D int `json:"D"`
	I int `json:"I"`
	S int `json:"S"`
	C int `json:"C"`
}

// Get returns the count for a category.
func (t Tally) Get(c Category) int {
	switch c {
	case CategoryD:
		return t.D
	case CategoryI:
		return t.I
	case CategoryS:
		return t.S
	case CategoryC:
		return t.C
	}
	return 0
}

// Inc increments the count for a category.
func (t *Tally) Inc(c Category) {
	switch c {
	case CategoryD:
		t.D++
	case CategoryI:
		t.I++
	case CategoryS:
		t.S++
	case CategoryC:
		t.C++
	}
}

// Total returns the number of answers counted across all categories.
func (t Tally) Total() int {
	return t.D + t.I + t.S + t.C
}

// Dominant resolves the category with the strictly highest count.
// Ties go to the first category in enumeration order (score must be
// strictly greater to displace an earlier maximum). An all-zero tally
// has no dominant category and returns ok=false.
func (t Tally) Dominant() (Category, bool) {
	var (
		maxScore int
		dominant Category
		found    bool
	)
	for _, c := range Categories {
		if score := t.Get(c); score > maxScore {
			maxScore = score
			dominant = c
			found = true
		}
	}
	return dominant, found
}
