package utils

import (
	"net/url"
	"strconv"
	"strings"

	"inventory-system/pkg/types"
)

// ParsePageRequest reads pageNumber/pageSize from the query string. Missing or
// unparsable values take the defaults; the result is always normalized.
func ParsePageRequest(values url.Values) types.PageRequest {
	page := types.PageRequest{
		PageNumber: types.DefaultPageNumber,
		PageSize:   types.DefaultPageSize,
	}

	if raw := values.Get("pageNumber"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			page.PageNumber = n
		}
	}
	if raw := values.Get("pageSize"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			page.PageSize = n
		}
	}

	return page.Normalize()
}

// ParseOptionalUint64 returns nil when the key is absent.
func ParseOptionalUint64(values url.Values, key string) (*uint64, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func ParseOptionalInt16(values url.Values, key string) (*int16, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 16)
	if err != nil {
		return nil, err
	}
	n := int16(v)
	return &n, nil
}

func ParseOptionalBool(values url.Values, key string) (*bool, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
