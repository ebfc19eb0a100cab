package genre

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Science Fiction", "science-fiction"},
		{"LitRPG", "litrpg"},
		{"Sci-Fi/Fantasy", "sci-fi-fantasy"},
		{"  True   Crime  ", "true-crime"},
		{"Children's Books", "children-s-books"},
		{"Café Culture", "cafe-culture"},
		{"---", ""},
		{"", ""},
	}

	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
