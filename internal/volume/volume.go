package volume

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no volume matches the identifier or filter.
var ErrNotFound = errors.New("volume not found")

// ErrInvalidInput is returned when a request value cannot be coerced into a volume field.
var ErrInvalidInput = errors.New("invalid volume input")

// ErrMalformedBody is returned when a request body is not a single JSON object.
var ErrMalformedBody = errors.New("malformed request body")

// StorageError wraps any failure reported by a store backend.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("volume store %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// Fields holds the client-writable attributes of a volume.
// A nil pointer means the attribute was not supplied.
type Fields struct {
	Title         *string   `json:"title,omitempty" bson:"title,omitempty"`
	Author        *string   `json:"author,omitempty" bson:"author,omitempty"`
	PublishedYear *int      `json:"publishedYear,omitempty" bson:"publishedYear,omitempty"`
	Genre         *[]string `json:"genre,omitempty" bson:"genre,omitempty"`
	Language      *string   `json:"language,omitempty" bson:"language,omitempty"`
	Country       *string   `json:"country,omitempty" bson:"country,omitempty"`
	Rating        *float64  `json:"rating,omitempty" bson:"rating,omitempty"`
	Summary       *string   `json:"summary,omitempty" bson:"summary,omitempty"`
	CoverImageURL *string   `json:"coverImageUrl,omitempty" bson:"coverImageUrl,omitempty"`
}

// Volume is a stored book record.
type Volume struct {
	ID string `json:"id"`
	Fields
}

// Apply overwrites f with every attribute supplied in patch.
func (f *Fields) Apply(patch Fields) {
	if patch.Title != nil {
		f.Title = patch.Title
	}
	if patch.Author != nil {
		f.Author = patch.Author
	}
	if patch.PublishedYear != nil {
		f.PublishedYear = patch.PublishedYear
	}
	if patch.Genre != nil {
		f.Genre = patch.Genre
	}
	if patch.Language != nil {
		f.Language = patch.Language
	}
	if patch.Country != nil {
		f.Country = patch.Country
	}
	if patch.Rating != nil {
		f.Rating = patch.Rating
	}
	if patch.Summary != nil {
		f.Summary = patch.Summary
	}
	if patch.CoverImageURL != nil {
		f.CoverImageURL = patch.CoverImageURL
	}
}

// IsEmpty reports whether no attribute was supplied.
func (f Fields) IsEmpty() bool {
	return f == Fields{}
}

// withDefaults returns a copy with store defaults filled in. genre is always present on
// a stored record, as an empty list when the client sent none.
func (f Fields) withDefaults() Fields {
	if f.Genre == nil {
		empty := []string{}
		f.Genre = &empty
	}
	return f
}

// FilterField names an attribute usable for exact-match lookups.
type FilterField string

const (
	FilterTitle         FilterField = "title"
	FilterAuthor        FilterField = "author"
	FilterGenre         FilterField = "genre"
	FilterPublishedYear FilterField = "publishedYear"
)

// Filter selects volumes whose Field equals Value exactly. For FilterGenre the match is
// membership in the genre list.
type Filter struct {
	Field FilterField
	Value any
}

// ByTitle, ByAuthor, ByGenre and ByYear build the supported filters.
func ByTitle(title string) Filter   { return Filter{Field: FilterTitle, Value: title} }
func ByAuthor(author string) Filter { return Filter{Field: FilterAuthor, Value: author} }
func ByGenre(genre string) Filter   { return Filter{Field: FilterGenre, Value: genre} }
func ByYear(year int) Filter        { return Filter{Field: FilterPublishedYear, Value: year} }

// Matches reports whether v satisfies the filter.
func (q Filter) Matches(v Volume) bool {
	switch q.Field {
	case FilterTitle:
		return v.Title != nil && *v.Title == q.Value
	case FilterAuthor:
		return v.Author != nil && *v.Author == q.Value
	case FilterPublishedYear:
		return v.PublishedYear != nil && *v.PublishedYear == q.Value
	case FilterGenre:
		if v.Genre == nil {
			return false
		}
		for _, g := range *v.Genre {
			if g == q.Value {
				return true
			}
		}
	}
	return false
}

// validate rejects filters on unsupported fields or with a value of the wrong type.
func (q Filter) validate() error {
	switch q.Field {
	case FilterTitle, FilterAuthor, FilterGenre:
		if _, ok := q.Value.(string); ok {
			return nil
		}
	case FilterPublishedYear:
		if _, ok := q.Value.(int); ok {
			return nil
		}
	}
	return fmt.Errorf("%w: unsupported filter %s=%v", ErrInvalidInput, q.Field, q.Value)
}
