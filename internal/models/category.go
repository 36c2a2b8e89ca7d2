package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Category is the payment bucket a payment, credit or installment counts against.
type Category string

const (
	CategoryTrip  Category = "trip"
	CategoryTours Category = "tours"
)

// Categories lists every valid category in breakdown order.
var Categories = []Category{CategoryTrip, CategoryTours}

// ParseCategory accepts only the closed set of categories.
func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case CategoryTrip, CategoryTours:
		return c, nil
	default:
		return "", fmt.Errorf("unknown payment category %q", s)
	}
}

// Valid reports whether c is one of the known categories. Legacy rows may carry
// anything in the column, so values read from the store are not trusted.
func (c Category) Valid() bool {
	return c == CategoryTrip || c == CategoryTours
}

func (c Category) String() string {
	return string(c)
}

// Value implements driver.Valuer for Category
func (c Category) Value() (driver.Value, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("refusing to store invalid category %q", string(c))
	}
	return string(c), nil
}

// Scan implements sql.Scanner for Category. NULL and unknown values are kept
// verbatim (NULL as the empty string) so the breakdown can report them.
func (c *Category) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*c = ""
	case string:
		*c = Category(v)
	case []byte:
		*c = Category(v)
	default:
		return fmt.Errorf("cannot scan %T into Category", value)
	}
	return nil
}
