package pagination

import "strconv"

// Page is one fixed-size slice of an ordered collection plus the
// metadata a listing needs to render pager controls.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Number     int  `json:"number"`
	PerPage    int  `json:"per_page"`
	Count      int  `json:"count"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// ParseNumber turns a ?page= query value into a page number. Anything
// that is not a positive integer falls back to the first page.
func ParseNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Paginate slices items into pages of perPage and returns the requested
// page. Out-of-range numbers clamp to the nearest valid page, they
// never error. An empty collection yields a single empty page.
func Paginate[T any](items []T, number, perPage int) Page[T] {
	if perPage < 1 {
		perPage = 1
	}

	count := len(items)
	totalPages := (count + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}

	if number < 1 {
		number = 1
	} else if number > totalPages {
		number = totalPages
	}

	start := (number - 1) * perPage
	end := start + perPage
	if start > count {
		start = count
	}
	if end > count {
		end = count
	}

	return Page[T]{
		Items:      items[start:end],
		Number:     number,
		PerPage:    perPage,
		Count:      count,
		TotalPages: totalPages,
		HasNext:    number < totalPages,
		HasPrev:    number > 1,
	}
}
