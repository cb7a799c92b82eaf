package feed

import (
	"strings"

	"feedclient/pkg/models"
)

// Filter modes. Any value other than ModeTitle and ModeAuthor matches
// against both fields.
const (
	ModeTitle  = "title"
	ModeAuthor = "author"
	ModeBoth   = "both"
)

// Filter returns the subsequence of posts whose relevant field contains
// term, case-insensitively, preserving input order. An empty term matches
// everything regardless of mode. A missing title or author name never
// matches.
func Filter(posts []models.Post, term, mode string) []models.Post {
	if term == "" {
		return posts
	}
	term = strings.ToLower(term)

	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		inTitle := strings.Contains(strings.ToLower(p.Title), term)
		inAuthor := strings.Contains(strings.ToLower(p.Author.Name), term)

		var match bool
		switch mode {
		case ModeTitle:
			match = inTitle
		case ModeAuthor:
			match = inAuthor
		default:
			match = inTitle || inAuthor
		}

		if match {
			out = append(out, p)
		}
	}

	return out
}
