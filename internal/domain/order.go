package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Order maps item ids to requested quantities. It lives for one request.
type Order map[string]int

// Validate rejects empty orders, blank item ids and non-positive quantities.
func (o Order) Validate() error {
	if len(o) == 0 {
		return ErrEmptyOrder
	}
	for _, item := range o.Items() {
		if strings.TrimSpace(item) == "" {
			return fmt.Errorf("%w: item id must not be empty", ErrInvalidQuantity)
		}
		if q := o[item]; q <= 0 {
			return fmt.Errorf("%w: item %q quantity must be positive, got %d", ErrInvalidQuantity, item, q)
		}
	}
	return nil
}

// Items returns the ordered item ids in lexical order.
func (o Order) Items() []string {
	items := make([]string, 0, len(o))
	for item := range o {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}

// Key renders the order canonically, e.g. "A=1,E=2".
func (o Order) Key() string {
	var b strings.Builder
	for i, item := range o.Items() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(item)
		b.WriteByte('=')
		b.WriteString(strconv.Itoa(o[item]))
	}
	return b.String()
}
