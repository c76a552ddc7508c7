package repository

import (
	"net/url"
	"strconv"
)

// PerPage is the fixed listing page size.
const PerPage = 15

const (
	prevLabel = "&laquo; Previous"
	nextLabel = "Next &raquo;"

	// pages shown either side of the current one before links collapse
	onEachSide = 3
)

// PageRequest carries the page number plus what is needed to rebuild
// pagination urls that keep every other query parameter.
type PageRequest struct {
	Page  int
	Path  string
	Query url.Values
}

// Offset is the number of rows skipped before this page.
func (p PageRequest) Offset() int {
	return (p.number() - 1) * PerPage
}

func (p PageRequest) number() int {
	if p.Page < 1 {
		return 1
	}
	return p.Page
}

// ParsePage reads a page number, treating anything unusable as the first page.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// PageLink is one entry of the numbered link bar.
type PageLink struct {
	URL    *string `json:"url"`
	Label  string  `json:"label"`
	Active bool    `json:"active"`
}

// Page is a bounded slice of a listing plus its pagination metadata.
type Page[T any] struct {
	Data         []T        `json:"data"`
	CurrentPage  int        `json:"current_page"`
	LastPage     int        `json:"last_page"`
	PerPage      int        `json:"per_page"`
	Total        int64      `json:"total"`
	From         *int       `json:"from"`
	To           *int       `json:"to"`
	FirstPageURL string     `json:"first_page_url"`
	LastPageURL  string     `json:"last_page_url"`
	PrevPageURL  *string    `json:"prev_page_url"`
	NextPageURL  *string    `json:"next_page_url"`
	Path         string     `json:"path"`
	Links        []PageLink `json:"links"`
}

func newPage[T any](items []T, total int64, req PageRequest) *Page[T] {
	if items == nil {
		items = []T{}
	}

	current := req.number()
	last := int((total + PerPage - 1) / PerPage)
	if last < 1 {
		last = 1
	}

	p := &Page[T]{
		Data:         items,
		CurrentPage:  current,
		LastPage:     last,
		PerPage:      PerPage,
		Total:        total,
		FirstPageURL: req.url(1),
		LastPageURL:  req.url(last),
		Path:         req.Path,
	}

	if len(items) > 0 {
		from := req.Offset() + 1
		to := from + len(items) - 1
		p.From, p.To = &from, &to
	}
	if current > 1 {
		u := req.url(current - 1)
		p.PrevPageURL = &u
	}
	if current < last {
		u := req.url(current + 1)
		p.NextPageURL = &u
	}

	p.Links = append(p.Links, PageLink{URL: p.PrevPageURL, Label: prevLabel})
	for _, n := range pageWindow(current, last) {
		if n == 0 {
			p.Links = append(p.Links, PageLink{Label: "..."})
			continue
		}
		u := req.url(n)
		p.Links = append(p.Links, PageLink{URL: &u, Label: strconv.Itoa(n), Active: n == current})
	}
	p.Links = append(p.Links, PageLink{URL: p.NextPageURL, Label: nextLabel})

	return p
}

// url keeps every query parameter of the request and replaces page.
func (p PageRequest) url(page int) string {
	q := url.Values{}
	for k, v := range p.Query {
		q[k] = append([]string(nil), v...)
	}
	q.Set("page", strconv.Itoa(page))
	return p.Path + "?" + q.Encode()
}

// pageWindow returns the page numbers to link, with 0 marking a gap.
func pageWindow(current, last int) []int {
	if last < onEachSide*2+8 {
		return pageRange(1, last)
	}

	window := onEachSide + 4
	var out []int
	switch {
	case current <= window:
		out = append(out, pageRange(1, window+onEachSide)...)
		out = append(out, 0)
		out = append(out, pageRange(last-1, last)...)
	case current > last-window:
		out = append(out, pageRange(1, 2)...)
		out = append(out, 0)
		out = append(out, pageRange(last-(window+onEachSide-1), last)...)
	default:
		out = append(out, pageRange(1, 2)...)
		out = append(out, 0)
		out = append(out, pageRange(current-onEachSide, current+onEachSide)...)
		out = append(out, 0)
		out = append(out, pageRange(last-1, last)...)
	}
	return out
}

func pageRange(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}
