package feed

import (
	"reflect"
	"testing"

	"feedclient/pkg/models"
)

func testPosts() []models.Post {
	return []models.Post{
		{ID: 1, Title: "Cats", Author: models.Author{Name: "Ann"}},
		{ID: 2, Title: "Dogs", Author: models.Author{Name: "Bob"}},
	}
}

func ids(posts []models.Post) []int {
	out := make([]int, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name    string
		term    string
		mode    string
		wantIDs []int
	}{
		{"empty term returns all", "", ModeTitle, []int{1, 2}},
		{"empty term ignores mode", "", "nonsense", []int{1, 2}},
		{"title mode matches title", "dog", ModeTitle, []int{2}},
		{"title mode ignores author", "ann", ModeTitle, []int{}},
		{"author mode matches author", "an", ModeAuthor, []int{1}},
		{"author mode ignores title", "cats", ModeAuthor, []int{}},
		{"both mode matches either", "bob", ModeBoth, []int{2}},
		{"unknown mode matches either", "cats", "whatever", []int{1}},
		{"case insensitive", "DOG", ModeTitle, []int{2}},
		{"no match", "zebras", ModeBoth, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(testPosts(), tt.term, tt.mode))
			if !reflect.DeepEqual(got, tt.wantIDs) {
				t.Errorf("want ids %v, got ids %v", tt.wantIDs, got)
			}
		})
	}
}

func TestFilter_preservesOrder(t *testing.T) {
	posts := []models.Post{
		{ID: 3, Title: "newest post"},
		{ID: 2, Title: "newer post"},
		{ID: 1, Title: "old post"},
	}

	got := ids(Filter(posts, "post", ModeTitle))
	want := []int{3, 2, 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("want ids %v, got ids %v", want, got)
	}
}

func TestFilter_missingFields(t *testing.T) {
	posts := []models.Post{
		{ID: 1, Author: models.Author{Name: "Ann"}}, // no title
		{ID: 2, Title: "Dogs"},                      // no author name
	}

	if got := ids(Filter(posts, "dogs", ModeTitle)); !reflect.DeepEqual(got, []int{2}) {
		t.Errorf("want only post with a title to match, got ids %v", got)
	}
	if got := ids(Filter(posts, "ann", ModeAuthor)); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("want only post with an author name to match, got ids %v", got)
	}
	if got := ids(Filter(posts, "x", ModeBoth)); len(got) != 0 {
		t.Errorf("want no matches, got ids %v", got)
	}
}
