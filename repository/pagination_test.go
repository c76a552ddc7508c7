package repository

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePage(t *testing.T) {
	assert.Equal(t, 1, ParsePage(""))
	assert.Equal(t, 1, ParsePage("0"))
	assert.Equal(t, 1, ParsePage("-3"))
	assert.Equal(t, 1, ParsePage("two"))
	assert.Equal(t, 4, ParsePage("4"))
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		name          string
		current, last int
		want          []int
	}{
		{"single page", 1, 1, []int{1}},
		{"short listing", 3, 5, []int{1, 2, 3, 4, 5}},
		{"near the start", 1, 20, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 0, 19, 20}},
		{"middle", 10, 20, []int{1, 2, 0, 7, 8, 9, 10, 11, 12, 13, 0, 19, 20}},
		{"near the end", 20, 20, []int{1, 2, 0, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pageWindow(tt.current, tt.last))
		})
	}
}

func TestNewPageEmptyListing(t *testing.T) {
	p := newPage[string](nil, 0, PageRequest{Page: 1, Path: "/cases"})

	assert.NotNil(t, p.Data)
	assert.Equal(t, 1, p.LastPage)
	assert.Nil(t, p.From)
	assert.Nil(t, p.PrevPageURL)
	assert.Nil(t, p.NextPageURL)
	assert.Equal(t, "/cases?page=1", p.FirstPageURL)
	require.Len(t, p.Links, 3)
	assert.True(t, p.Links[1].Active)
}

func TestPageURLKeepsQuery(t *testing.T) {
	q := url.Values{"search": {"a b"}, "priority": {"high"}, "page": {"1"}}
	p := newPage([]int{1}, 40, PageRequest{Page: 1, Path: "/cases", Query: q})

	require.NotNil(t, p.NextPageURL)
	assert.Equal(t, "/cases?page=2&priority=high&search=a+b", *p.NextPageURL)
	assert.Equal(t, "/cases?page=3&priority=high&search=a+b", p.LastPageURL)
	// the request's own query is left alone
	assert.Equal(t, "1", q.Get("page"))
}
