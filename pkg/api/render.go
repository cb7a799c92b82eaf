package api

import (
	"bytes"
	"html/template"
	"net/http"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"feedclient/pkg/feed"
	"feedclient/pkg/models"
)

// LoginData feeds the login/register page template.
type LoginData struct {
	Title           string
	RegisterMessage string
	RegisterOK      bool
	LoginMessage    string
	FormData        map[string]string
}

// PostForm mirrors the create/edit form state. A non-empty ID means the
// form is in edit mode and the matching card is hidden from the list.
type PostForm struct {
	ID    string
	Title string
	Body  string
}

// FeedData feeds the feed page template.
type FeedData struct {
	Title     string
	User      models.Profile
	View      feed.View
	Term      string
	Mode      string
	Form      PostForm
	FormTitle string
	Message   string
	MessageOK bool
}

var functions = template.FuncMap{
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02 Jan 2006, 15:04")
	},
}

func (api *API) renderHTML(w http.ResponseWriter, pageFile string, data any) {
	files := []string{
		filepath.Join(api.htmlDir, "base.layout.html"),
		filepath.Join(api.htmlDir, pageFile),
	}

	ts, err := template.New("").Funcs(functions).ParseFiles(files...)
	if err != nil {
		log.Errorf("[renderHTML] failed to parse templates %v: %v", files, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// Render into a buffer first so a template error never leaves a
	// half-written page behind.
	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, "base", data); err != nil {
		log.Errorf("[renderHTML] failed to execute template %s: %v", pageFile, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		log.Errorf("[renderHTML] failed to write response: %v", err)
	}
}
