package volume

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFields(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Fields
	}{
		{
			name: "plain values",
			body: `{"title":"Dune","publishedYear":1965,"rating":4.5,"genre":["Sci-Fi"],"coverImageUrl":"http://x/y.png"}`,
			want: Fields{
				Title:         ptr("Dune"),
				PublishedYear: ptr(1965),
				Rating:        ptr(4.5),
				Genre:         &[]string{"Sci-Fi"},
				CoverImageURL: ptr("http://x/y.png"),
			},
		},
		{
			name: "numeric strings",
			body: `{"publishedYear":" 2012 ","rating":"3"}`,
			want: Fields{PublishedYear: ptr(2012), Rating: ptr(3.0)},
		},
		{
			name: "scalars as strings",
			body: `{"title":451,"summary":true}`,
			want: Fields{Title: ptr("451"), Summary: ptr("true")},
		},
		{
			name: "single genre",
			body: `{"genre":"Business"}`,
			want: Fields{Genre: &[]string{"Business"}},
		},
		{
			name: "whole float year",
			body: `{"publishedYear":2001.0}`,
			want: Fields{PublishedYear: ptr(2001)},
		},
		{
			name: "nulls and unknown keys",
			body: `{"title":null,"_id":"abc","__v":0}`,
			want: Fields{},
		},
		{
			name: "empty body",
			body: ``,
			want: Fields{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeFields(strings.NewReader(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeFields_RejectsMalformedBody(t *testing.T) {
	bodies := map[string]string{
		"not an object": `["Dune"]`,
		"broken json":   `{"title":`,
		"trailing data": `{"title":"x"}garbage`,
		"second object": `{"title":"x"} {"title":"y"}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeFields(strings.NewReader(body))
			assert.True(t, errors.Is(err, ErrMalformedBody), "got %v", err)
		})
	}
}

func TestDecodeFields_TrailingWhitespace(t *testing.T) {
	got, err := DecodeFields(strings.NewReader("{\"title\":\"x\"}\n  "))
	require.NoError(t, err)
	assert.Equal(t, "x", *got.Title)
}

func TestParseYear(t *testing.T) {
	for raw, want := range map[string]int{"1965": 1965, "-44": -44, "1965.0": 1965, "+7": 7} {
		got, err := ParseYear(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
	for _, raw := range []string{"abc", "1965.5", "NaN", "99999999999", ""} {
		_, err := ParseYear(raw)
		assert.True(t, errors.Is(err, ErrInvalidInput), "%q: got %v", raw, err)
	}
}

func TestDecodeFields_Rejects(t *testing.T) {
	bodies := map[string]string{
		"year text":        `{"publishedYear":"soon"}`,
		"fractional year":  `{"publishedYear":1965.5}`,
		"rating object":    `{"rating":{"stars":4}}`,
		"title object":     `{"title":{"en":"Dune"}}`,
		"genre of objects": `{"genre":[{"name":"x"}]}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeFields(strings.NewReader(body))
			assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
		})
	}
}

func ptr[T any](v T) *T { return &v }
