package api

import (
	"encoding/json"
	"errors"
	"log"
	"math"

	"github.com/gin-gonic/gin"

	"svbase/internal/access"
	"svbase/internal/pg"
)

// maxExactFloat: до 2^53 float64 хранит целые точно.
const maxExactFloat = 1 << 53

// normalizeValue переводит json.Number в int64, если число целое
// (в т.ч. записанное как 1.0 или 1e3), иначе оставляет строкой:
// numeric примет её без потери точности.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		if f, err := t.Float64(); err == nil && f == math.Trunc(f) && math.Abs(f) <= maxExactFloat {
			return int64(f)
		}
		return t.String()
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, x := range t {
			out[k] = normalizeValue(x)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, x := range t {
			out[i] = normalizeValue(x)
		}
		return out
	default:
		return v
	}
}

// normalizeData сохраняет набор ключей как есть: присутствие ключа значимо.
func normalizeData(data map[string]any) map[string]any {
	if data == nil {
		return nil
	}
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = normalizeValue(v)
	}
	return out
}

func writeResult(c *gin.Context, res access.Result, err error) {
	if err != nil && res.Status >= 500 {
		var qe *pg.QueryError
		if errors.As(err, &qe) {
			log.Printf("[%s] query failed: %v; sql: %s", requestID(c), err, qe.SQL)
		} else {
			log.Printf("[%s] request failed: %v", requestID(c), err)
		}
	}
	c.JSON(res.Status, res)
}
