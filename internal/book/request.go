package book

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

const msgInvalidYear = "year harus berupa bilangan bulat"

// Year accepts a JSON number or a numeric string, e.g. 1965 or "1965".
type Year int

func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return Validation(msgInvalidYear)
		}
		raw = strings.TrimSpace(s)
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return Validation(msgInvalidYear)
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return Validation(msgInvalidYear)
	}
	*y = Year(f)
	return nil
}

// Request is the JSON body of create and update.
type Request struct {
	Title     string `json:"title" validate:"required"`
	Author    string `json:"author"`
	Publisher string `json:"publisher"`
	Year      *Year  `json:"year" validate:"required"`
}

// Fields converts a validated request into store fields.
func (r Request) Fields() Fields {
	f := Fields{
		Title:     r.Title,
		Author:    r.Author,
		Publisher: r.Publisher,
	}
	if r.Year != nil {
		f.Year = int(*r.Year)
	}
	return f
}

// ParseID parses a path id. Ids are 32-bit in the store, so an integer outside
// that range cannot name a stored book and yields ErrNotFound.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, ErrNotFound
		}
		return 0, Validation("ID buku tidak valid")
	}
	return id, nil
}
