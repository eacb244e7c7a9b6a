package helper

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

/* ===============================
   Pagination type & defaults
=================================*/

type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
	Count      int   `json:"count"` // items on this page
}

func BuildPagination(page, perPage int, total int64, count int) Pagination {
	totalPages := 0
	if perPage > 0 {
		totalPages = int((total + int64(perPage) - 1) / int64(perPage))
	}
	return Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    total > int64(page)*int64(perPage),
		HasPrev:    page > 1,
		Count:      count,
	}
}

/* ===============================
   Paging resolver (query → page/limit/offset)
=================================*/

type Paging struct {
	Page    int
	PerPage int
	Offset  int
	Limit   int
}

// ResolvePaging reads ?page= and ?limit= (alias ?per_page=) and normalizes.
func ResolvePaging(c *fiber.Ctx, defaultPerPage, maxPerPage int) Paging {
	pageStr := strings.TrimSpace(c.Query("page", "1"))

	perPageStr := strings.TrimSpace(c.Query("limit"))
	if perPageStr == "" {
		perPageStr = strings.TrimSpace(c.Query("per_page", strconv.Itoa(defaultPerPage)))
	}

	page, _ := strconv.Atoi(pageStr)
	if page < 1 {
		page = 1
	}

	perPage, _ := strconv.Atoi(perPageStr)
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if maxPerPage > 0 && perPage > maxPerPage {
		perPage = maxPerPage
	}

	offset := (page - 1) * perPage

	return Paging{
		Page:    page,
		PerPage: perPage,
		Offset:  offset,
		Limit:   perPage,
	}
}

/* ===============================
   Sort resolver
=================================*/

// ResolveSort maps an API sort key to a safe ORDER BY clause. A leading "-"
// means descending. Columns come from a whitelist so user input never
// reaches SQL directly.
func ResolveSort(sortKey string, allowed map[string]string, defaultKey string) (string, error) {
	key := strings.TrimSpace(sortKey)
	if key == "" {
		key = defaultKey
	}

	desc := false
	if strings.HasPrefix(key, "-") {
		desc = true
		key = key[1:]
	}

	col, ok := allowed[key]
	if !ok {
		col, ok = allowed[strings.TrimPrefix(defaultKey, "-")]
		if !ok {
			return "", fmt.Errorf("no valid default sort key")
		}
		desc = strings.HasPrefix(defaultKey, "-")
	}

	if desc {
		return col + " DESC", nil
	}
	return col + " ASC", nil
}
