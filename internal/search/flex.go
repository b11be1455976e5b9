package search

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Backends are inconsistent about numeric fields: the REST API returns
// price and score columns as strings while the index returns numbers, and
// either may omit them. flexFloat and flexInt absorb all of these shapes;
// unparseable input decodes to zero instead of failing the whole hit.

type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	*f = 0
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*f = flexFloat(v)
		}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*f = flexFloat(v)
	}
	return nil
}

type flexInt int64

func (i *flexInt) UnmarshalJSON(data []byte) error {
	*i = 0
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		if v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			*i = flexInt(v)
		}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*i = flexInt(int64(v))
	}
	return nil
}
