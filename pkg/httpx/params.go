package httpx

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ClampInt — ограничение значения v в диапазоне [lo, hi].
func ClampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// ParseLimitOffset — пагинация журнала из query.
// Нет limit — defaultLimit, приведённый к [1, maxLimit]; нечисловой limit — defaultLimit как есть.
// Нечисловой или отрицательный offset — 0.
func ParseLimitOffset(c *gin.Context, defaultLimit, maxLimit int) (limit, offset int) {
	limit = defaultLimit
	raw, ok := c.GetQuery("limit")
	if !ok {
		raw = strconv.Itoa(defaultLimit)
	}
	if v, err := strconv.Atoi(raw); err == nil {
		limit = ClampInt(v, 1, maxLimit)
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

// QueryLower — значение параметра без пробелов по краям в нижнем регистре ("" — нет параметра).
func QueryLower(c *gin.Context, key string) string {
	return strings.ToLower(strings.TrimSpace(c.Query(key)))
}
