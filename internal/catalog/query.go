package catalog

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"catalog-service/internal/models"
)

// Query string parameter names
const (
	ParamText     = "q"
	ParamCategory = "category"
	ParamMin      = "min"
	ParamMax      = "max"
	ParamSort     = "sort"
)

// EncodeQuery serializes q, emitting only the fields that differ from the
// default query. The default query encodes to "".
func EncodeQuery(q models.Query) string {
	v := url.Values{}
	if q.Text != "" {
		v.Set(ParamText, q.Text)
	}
	if q.Category != models.CategoryAll {
		v.Set(ParamCategory, q.Category)
	}
	if q.MinPrice != nil {
		v.Set(ParamMin, formatBound(*q.MinPrice))
	}
	if q.MaxPrice != nil {
		v.Set(ParamMax, formatBound(*q.MaxPrice))
	}
	if q.Sort != models.SortDefault && q.Sort != "" {
		v.Set(ParamSort, string(q.Sort))
	}
	return v.Encode()
}

// DecodeQuery builds a Query from query parameters. Absent parameters keep
// their defaults, unparseable bounds become nil and an unknown sort is the
// default order.
func DecodeQuery(v url.Values) models.Query {
	q := models.DefaultQuery()
	if v.Has(ParamText) {
		q.Text = v.Get(ParamText)
	}
	if v.Has(ParamCategory) {
		q.Category = v.Get(ParamCategory)
	}
	if v.Has(ParamMin) {
		q.MinPrice = parseBound(v.Get(ParamMin))
	}
	if v.Has(ParamMax) {
		q.MaxPrice = parseBound(v.Get(ParamMax))
	}
	if v.Has(ParamSort) {
		if s := models.SortOrder(v.Get(ParamSort)); s.Valid() {
			q.Sort = s
		}
	}
	return q
}

// ParseQuery decodes a raw query string, with or without the leading "?".
// Malformed pairs are skipped.
func ParseQuery(raw string) models.Query {
	v, _ := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	return DecodeQuery(v)
}

// ShareURL returns path with the encoded query appended, or the bare path
// when q is the default query.
func ShareURL(path string, q models.Query) string {
	encoded := EncodeQuery(q)
	if encoded == "" {
		return path
	}
	return path + "?" + encoded
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func parseBound(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
