package volume

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// DecodeFields reads a single JSON object of volume attributes with best-effort type coercion:
// string attributes accept numbers and booleans, publishedYear and rating accept numeric
// strings, and genre accepts a single string as a one-element list. null and unknown keys
// are ignored. Syntax errors yield ErrMalformedBody, values that cannot be coerced yield
// ErrInvalidInput.
func DecodeFields(r io.Reader) (Fields, error) {
	var raw map[string]json.RawMessage
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		if err == io.EOF {
			return Fields{}, nil
		}
		return Fields{}, errors.Wrap(ErrMalformedBody, err.Error())
	}
	if err := dec.Decode(new(json.RawMessage)); err != io.EOF {
		return Fields{}, errors.Wrap(ErrMalformedBody, "unexpected data after JSON object")
	}

	var f Fields
	var err error
	for key, msg := range raw {
		if isNull(msg) {
			continue
		}
		switch key {
		case "title":
			f.Title, err = coerceString(msg)
		case "author":
			f.Author, err = coerceString(msg)
		case "language":
			f.Language, err = coerceString(msg)
		case "country":
			f.Country, err = coerceString(msg)
		case "summary":
			f.Summary, err = coerceString(msg)
		case "coverImageUrl":
			f.CoverImageURL, err = coerceString(msg)
		case "publishedYear":
			f.PublishedYear, err = coerceInt(msg)
		case "rating":
			f.Rating, err = coerceFloat(msg)
		case "genre":
			f.Genre, err = coerceStrings(msg)
		}
		if err != nil {
			return Fields{}, errors.Wrapf(ErrInvalidInput, "%s: %v", key, err)
		}
	}
	return f, nil
}

func isNull(msg json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(msg), []byte("null"))
}

func coerceString(msg json.RawMessage) (*string, error) {
	var v any
	if err := decodeNumber(msg, &v); err != nil {
		return nil, err
	}
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case json.Number:
		s = t.String()
	case bool:
		s = strconv.FormatBool(t)
	default:
		return nil, fmt.Errorf("cannot use %s as a string", msg)
	}
	return &s, nil
}

func coerceFloat(msg json.RawMessage) (*float64, error) {
	var v any
	if err := decodeNumber(msg, &v); err != nil {
		return nil, err
	}
	var text string
	switch t := v.(type) {
	case json.Number:
		text = t.String()
	case string:
		text = strings.TrimSpace(t)
	default:
		return nil, fmt.Errorf("cannot use %s as a number", msg)
	}
	n, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, fmt.Errorf("cannot use %s as a number", msg)
	}
	return &n, nil
}

func coerceInt(msg json.RawMessage) (*int, error) {
	n, err := coerceFloat(msg)
	if err != nil {
		return nil, err
	}
	i, ok := wholeInt(*n)
	if !ok {
		return nil, fmt.Errorf("cannot use %s as an integer", msg)
	}
	return &i, nil
}

// ParseYear converts a publishedYear path value. It accepts a sign and a zero fraction,
// so "-44" and "1965.0" are valid.
func ParseYear(raw string) (int, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, errors.Wrapf(ErrInvalidInput, "cannot use %q as a year", raw)
	}
	i, ok := wholeInt(n)
	if !ok {
		return 0, errors.Wrapf(ErrInvalidInput, "cannot use %q as a year", raw)
	}
	return i, nil
}

func wholeInt(n float64) (int, bool) {
	if n != math.Trunc(n) || n > math.MaxInt32 || n < math.MinInt32 {
		return 0, false
	}
	return int(n), true
}

func coerceStrings(msg json.RawMessage) (*[]string, error) {
	var list []json.RawMessage
	if err := json.Unmarshal(msg, &list); err != nil {
		s, serr := coerceString(msg)
		if serr != nil {
			return nil, fmt.Errorf("cannot use %s as a list of strings", msg)
		}
		return &[]string{*s}, nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if isNull(item) {
			continue
		}
		s, err := coerceString(item)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return &out, nil
}

func decodeNumber(msg json.RawMessage, v *any) error {
	dec := json.NewDecoder(bytes.NewReader(msg))
	dec.UseNumber()
	return dec.Decode(v)
}
