package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nasiya/backend/internal/domain/shared"
	"github.com/nasiya/backend/internal/interfaces/http/dto"
)

// bindListFilter extracts pagination parameters from the query string,
// falling back to defaults for absent or invalid values.
func bindListFilter(c *gin.Context) shared.Filter {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		req = dto.DefaultListRequest()
	}

	filter := shared.DefaultFilter()
	filter.Page = req.Page
	filter.PageSize = req.PageSize
	filter.Search = req.Search
	return filter
}

// bindYearMonth extracts year and month query parameters, defaulting to
// the current UTC month. Returns ok=false when either value is out of
// range.
func bindYearMonth(c *gin.Context) (int, time.Month, bool) {
	now := time.Now().UTC()
	year, month := now.Year(), now.Month()

	if raw := c.Query("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1970 || v > 9999 {
			return 0, 0, false
		}
		year = v
	}
	if raw := c.Query("month"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 12 {
			return 0, 0, false
		}
		month = time.Month(v)
	}
	return year, month, true
}
