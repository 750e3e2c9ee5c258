package util

import (
	"net/url"
	"strconv"
)

const DefaultPageSize = 6

// PageParams is the page/limit pair parsed from a list request.
type PageParams struct {
	Page  int
	Limit int
}

// Offset returns the row offset for the current page.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page is the pagination envelope returned by every paginated list endpoint.
type Page struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// ParsePageParams reads page and limit from the query string, falling back
// to page 1 and the default page size on absent or malformed values.
func ParsePageParams(query url.Values) PageParams {
	params := PageParams{Page: 1, Limit: DefaultPageSize}
	if v, err := strconv.Atoi(query.Get("page")); err == nil && v > 0 {
		params.Page = v
	}
	if v, err := strconv.Atoi(query.Get("limit")); err == nil && v > 0 {
		params.Limit = v
	}
	return params
}

// BuildPage assembles the envelope, deriving next/previous links from the
// request URL.
func BuildPage(requestURL *url.URL, params PageParams, count int64, results interface{}) Page {
	page := Page{Count: count, Results: results}
	if int64(params.Offset()+params.Limit) < count {
		page.Next = pageLink(requestURL, params.Page+1)
	}
	if params.Page > 1 {
		page.Previous = pageLink(requestURL, params.Page-1)
	}
	return page
}

func pageLink(requestURL *url.URL, page int) *string {
	u := *requestURL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}
