package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"feedclient/pkg/feed"
	"feedclient/pkg/models"
)

const (
	msgPostCreated  = "Post created!"
	msgPostUpdated  = "Post updated!"
	msgSubmitFailed = "Failed to submit post."
	msgPostDeleted  = "Post deleted successfully."
	msgDeleteFailed = "Failed to delete post."
	msgFeedFailed   = "Could not load posts. Please try again."
	msgCommentOK    = "Comment added!"
	msgCommentEmpty = "Comment cannot be empty."
)

// guard enforces the feed precondition: both session values must be
// present, otherwise the visitor is sent back to the login page before
// anything renders.
func (api *API) guard(w http.ResponseWriter, r *http.Request) (models.Credentials, models.Profile, bool) {
	creds, err := api.store.Credentials()
	if err != nil || creds.AccessToken == "" || creds.APIKey == "" {
		if err != nil {
			log.Errorf("[guard] failed to read session: %v", err)
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return models.Credentials{}, models.Profile{}, false
	}

	profile, err := api.store.Profile()
	if err != nil {
		log.Errorf("[guard] failed to read profile: %v", err)
	}

	return creds, profile, true
}

// refresh replaces the cached listing with a fresh fetch. Mutations always
// go through here afterwards; the cache is never patched in place.
func (api *API) refresh(r *http.Request, creds models.Credentials) error {
	posts, err := api.client.Posts(r.Context(), creds)
	if err != nil {
		return err
	}

	api.cache.Replace(posts)
	return nil
}

type feedParams struct {
	term      string
	mode      string
	editingID int
	form      PostForm
	message   string
	messageOK bool
}

func (api *API) renderFeed(w http.ResponseWriter, profile models.Profile, p feedParams) {
	view := feed.BuildView(api.cache.Posts(), feed.ViewOptions{
		Term:        p.term,
		Mode:        p.mode,
		EditingID:   p.editingID,
		CurrentUser: profile.Name,
	})

	formTitle := "Create Post"
	if p.form.ID != "" {
		formTitle = "Edit Post"
	}

	api.renderHTML(w, "feed.page.html", &FeedData{
		Title:     "Feed",
		User:      profile,
		View:      view,
		Term:      p.term,
		Mode:      p.mode,
		Form:      p.form,
		FormTitle: formTitle,
		Message:   p.message,
		MessageOK: p.messageOK,
	})
}

func (api *API) feedHandler(w http.ResponseWriter, r *http.Request) {
	reqID := GetRequestID(r.Context())
	sID := shorten(reqID)

	creds, profile, ok := api.guard(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	p := feedParams{
		term: q.Get("search"),
		mode: q.Get("filterBy"),
	}
	if editStr := q.Get("edit"); editStr != "" {
		if id, err := strconv.Atoi(editStr); err == nil {
			p.editingID = id
		}
	}

	searching := p.term != "" || p.mode != ""

	// A plain load re-fetches; search and edit re-derive from the cache
	// without touching the network.
	if !searching && p.editingID == 0 {
		if err := api.refresh(r, creds); err != nil {
			log.Errorf("[feedHandler][%s] failed to fetch posts: %v", sID, err)
			p.message = errorCopy(err, msgFeedFailed)
			api.renderFeed(w, profile, p)
			return
		}
	}

	if p.editingID != 0 {
		post, found := api.cache.Find(p.editingID)
		if found {
			p.form = PostForm{ID: strconv.Itoa(post.ID), Title: post.Title, Body: post.Body}
		} else {
			p.editingID = 0
		}
	}

	api.renderFeed(w, profile, p)
	log.Debugf("[feedHandler][%s] rendered %d cached posts for %q", sID, api.cache.Len(), profile.Name)
}

func (api *API) submitPostHandler(w http.ResponseWriter, r *http.Request) {
	reqID := GetRequestID(r.Context())
	sID := shorten(reqID)

	creds, profile, ok := api.guard(w, r)
	if !ok {
		return
	}

	idStr := r.FormValue("id")
	title := r.FormValue("title")
	body := r.FormValue("body")

	var err error
	successMsg := msgPostCreated
	if idStr == "" {
		_, err = api.client.CreatePost(r.Context(), creds, title, body)
	} else {
		successMsg = msgPostUpdated
		var id int
		id, err = strconv.Atoi(idStr)
		if err == nil {
			_, err = api.client.UpdatePost(r.Context(), creds, id, title, body)
		}
	}

	if err != nil {
		log.Errorf("[submitPostHandler][%s] submission failed: %v", sID, err)
		// Form keeps the entered values; an edit in progress stays open.
		p := feedParams{
			form:    PostForm{ID: idStr, Title: title, Body: body},
			message: errorCopy(err, msgSubmitFailed),
		}
		if id, convErr := strconv.Atoi(idStr); convErr == nil {
			p.editingID = id
		}
		api.renderFeed(w, profile, p)
		return
	}

	if err := api.refresh(r, creds); err != nil {
		log.Errorf("[submitPostHandler][%s] failed to refresh posts: %v", sID, err)
	}

	log.Infof("[submitPostHandler][%s] %q submitted post (update=%v)", sID, profile.Name, idStr != "")
	api.renderFeed(w, profile, feedParams{message: successMsg, messageOK: true})
}

func (api *API) deletePostHandler(w http.ResponseWriter, r *http.Request) {
	reqID := GetRequestID(r.Context())
	sID := shorten(reqID)

	creds, profile, ok := api.guard(w, r)
	if !ok {
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid post id", http.StatusBadRequest)
		log.Debugf("[deletePostHandler][%s] invalid id: %v", sID, err)
		return
	}

	if err := api.client.DeletePost(r.Context(), creds, id); err != nil {
		log.Errorf("[deletePostHandler][%s] deletion failed: %v", sID, err)
		// Previously rendered list stays intact on failure.
		api.renderFeed(w, profile, feedParams{message: errorCopy(err, msgDeleteFailed)})
		return
	}

	if err := api.refresh(r, creds); err != nil {
		log.Errorf("[deletePostHandler][%s] failed to refresh posts: %v", sID, err)
	}

	log.Infof("[deletePostHandler][%s] %q deleted post %d", sID, profile.Name, id)
	api.renderFeed(w, profile, feedParams{message: msgPostDeleted, messageOK: true})
}

// commentPostHandler only validates and acknowledges; comments are not
// stored or displayed anywhere. Simulated UI behavior carried over from
// the richer feed variant.
func (api *API) commentPostHandler(w http.ResponseWriter, r *http.Request) {
	reqID := GetRequestID(r.Context())
	sID := shorten(reqID)

	_, profile, ok := api.guard(w, r)
	if !ok {
		return
	}

	comment := strings.TrimSpace(r.FormValue("comment"))
	if comment == "" {
		api.renderFeed(w, profile, feedParams{message: msgCommentEmpty})
		return
	}

	log.Debugf("[commentPostHandler][%s] acknowledged comment on post %s", sID, mux.Vars(r)["id"])
	api.renderFeed(w, profile, feedParams{message: msgCommentOK, messageOK: true})
}
