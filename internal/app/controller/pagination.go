package controller

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// PagedResponse is the list envelope: one page of results plus the total
// match count and absolute links to the adjacent pages.
type PagedResponse struct {
	Results  interface{} `json:"results"`
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
}

// parsePagination reads page and page_size from the query string. Malformed
// or out-of-range values fall back to the defaults.
func parsePagination(c *gin.Context) (page, pageSize int) {
	page = 1
	if raw := c.Query("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page = v
		}
	}

	pageSize = defaultPageSize
	if raw := c.Query("page_size"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			pageSize = v
			if pageSize > maxPageSize {
				pageSize = maxPageSize
			}
		}
	}

	return page, pageSize
}

func newPagedResponse(c *gin.Context, results interface{}, total int64, page, pageSize int) PagedResponse {
	resp := PagedResponse{
		Results: results,
		Count:   total,
	}

	if int64(page*pageSize) < total {
		resp.Next = pageURL(c, page+1)
	}
	if page > 1 {
		resp.Previous = pageURL(c, page-1)
	}
	return resp
}

func pageURL(c *gin.Context, page int) *string {
	u := *c.Request.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	full := fmt.Sprintf("%s://%s%s", scheme, c.Request.Host, u.RequestURI())
	return &full
}
