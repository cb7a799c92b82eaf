package feed

import "feedclient/pkg/models"

// Card is one rendered post plus its per-card affordances.
type Card struct {
	Post models.Post

	// Owned gates the edit/delete controls. Ownership is a display-name
	// equality check against the session user, matching the remote API's
	// unique-handle semantics.
	Owned bool
}

// ViewOptions parameterize one derivation of the card list.
type ViewOptions struct {
	Term        string
	Mode        string
	EditingID   int // 0 means no post is being edited
	CurrentUser string
}

// View is everything the feed template needs for the card list.
type View struct {
	Cards   []Card
	Editing *models.Post
}

// BuildView derives the rendered card list from the full cached listing:
// filter by term/mode, drop the post currently open for editing, and mark
// ownership per card. Pure; never touches the network.
func BuildView(posts []models.Post, opts ViewOptions) View {
	filtered := Filter(posts, opts.Term, opts.Mode)

	v := View{Cards: make([]Card, 0, len(filtered))}
	for _, p := range filtered {
		if opts.EditingID != 0 && p.ID == opts.EditingID {
			continue
		}
		v.Cards = append(v.Cards, Card{
			Post:  p,
			Owned: opts.CurrentUser != "" && p.Author.Name == opts.CurrentUser,
		})
	}

	if opts.EditingID != 0 {
		for i := range posts {
			if posts[i].ID == opts.EditingID {
				v.Editing = &posts[i]
				break
			}
		}
	}

	return v
}
