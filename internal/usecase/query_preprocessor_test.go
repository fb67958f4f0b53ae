package usecase

import (
	"errors"
	"reflect"
	"testing"

	"github.com/macrolens/nutrilookup/internal/domain"
)

func TestSplitFoodList(t *testing.T) {
	testCases := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "splits and trims",
			query: "rice, chicken breast ,broccoli",
			want:  []string{"rice", "chicken breast", "broccoli"},
		},
		{
			name:  "drops empty tokens",
			query: "egg,, ,milk,",
			want:  []string{"egg", "milk"},
		},
		{
			name:  "keeps duplicates and original case",
			query: "Rice, rice , RICE",
			want:  []string{"Rice", "rice", "RICE"},
		},
		{
			name:  "single item",
			query: "  oats  ",
			want:  []string{"oats"},
		},
		{
			name:  "empty query",
			query: "",
			want:  []string{},
		},
		{
			name:  "only separators and whitespace",
			query: " , ,\t,",
			want:  []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitFoodList(tc.query)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("SplitFoodList(%q) = %#v, want %#v", tc.query, got, tc.want)
			}
		})
	}
}

func TestParseQuery(t *testing.T) {
	t.Run("builds request for valid query", func(t *testing.T) {
		req, err := ParseQuery("egg, rice, milk")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"egg", "rice", "milk"}
		if !reflect.DeepEqual(req.Foods, want) {
			t.Errorf("Foods = %v, want %v", req.Foods, want)
		}
	})

	t.Run("rejects empty query", func(t *testing.T) {
		for _, query := range []string{"", "   ", ",,", " , "} {
			_, err := ParseQuery(query)
			if !errors.Is(err, domain.ErrEmptyQuery) {
				t.Errorf("ParseQuery(%q) error = %v, want ErrEmptyQuery", query, err)
			}
		}
	})
}
