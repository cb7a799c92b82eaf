package api

import (
	"errors"
	"net/http"

	"github.com/gofrs/uuid"
	log "github.com/sirupsen/logrus"

	"feedclient/pkg/noroff"
)

// User-facing copy. Server-side and unclassified failures fall back to the
// generic message per operation; validation and network failures get their
// own wording.
const (
	msgBadEmailDomain = "Email has to be a Noroff email address."
	msgRegisterOK     = "You are registered. Please log in."
	msgRegisterFailed = "Ups, something went wrong."
	msgLoginFailed    = "Error logging in."
	msgNetworkDown    = "Could not reach the server. Please try again."
	msgBadInput       = "Please check the submitted values."
)

// errorCopy maps a failed remote operation to user-facing text. Unknown
// error shapes collapse into the operation's fallback message.
func errorCopy(err error, fallback string) string {
	var re *noroff.RequestError
	if errors.As(err, &re) {
		switch re.Kind {
		case noroff.KindValidation:
			return msgBadInput
		case noroff.KindNetwork:
			return msgNetworkDown
		}
	}
	return fallback
}

func (api *API) indexHandler(w http.ResponseWriter, r *http.Request) {
	creds, err := api.store.Credentials()
	if err == nil && creds.AccessToken != "" && creds.APIKey != "" {
		http.Redirect(w, r, "/feed", http.StatusSeeOther)
		return
	}

	api.renderHTML(w, "login.page.html", &LoginData{Title: "Log in"})
}

func (api *API) registerHandler(w http.ResponseWriter, r *http.Request) {
	reqID := GetRequestID(r.Context())
	sID := shorten(reqID)

	name := r.FormValue("name")
	email := r.FormValue("email")
	password := r.FormValue("password")

	data := &LoginData{
		Title:    "Log in",
		FormData: map[string]string{"name": name, "email": email},
	}

	// Local allow-list check; a bad domain never issues a request.
	if !noroff.ValidEmail(email) {
		data.RegisterMessage = msgBadEmailDomain
		api.renderHTML(w, "login.page.html", data)
		log.Debugf("[registerHandler][%s] rejected email domain for %q", sID, email)
		return
	}

	if err := api.client.Register(r.Context(), name, email, password); err != nil {
		data.RegisterMessage = errorCopy(err, msgRegisterFailed)
		api.renderHTML(w, "login.page.html", data)
		log.Errorf("[registerHandler][%s] registration failed: %v", sID, err)
		return
	}

	data.RegisterMessage = msgRegisterOK
	data.RegisterOK = true
	api.renderHTML(w, "login.page.html", data)
	log.Infof("[registerHandler][%s] registered %q", sID, email)
}

func (api *API) loginHandler(w http.ResponseWriter, r *http.Request) {
	reqID := GetRequestID(r.Context())
	sID := shorten(reqID)

	email := r.FormValue("email")
	password := r.FormValue("password")

	data := &LoginData{
		Title:    "Log in",
		FormData: map[string]string{"email": email},
	}

	profile, token, err := api.client.Login(r.Context(), email, password)
	if err != nil {
		data.LoginMessage = errorCopy(err, msgLoginFailed)
		api.renderHTML(w, "login.page.html", data)
		log.Errorf("[loginHandler][%s] login failed: %v", sID, err)
		return
	}

	keyName := "feedclient"
	if id, err := uuid.NewV4(); err == nil {
		keyName = "feedclient-" + id.String()[:8]
	}

	apiKey, err := api.client.CreateAPIKey(r.Context(), token, keyName)
	if err != nil {
		data.LoginMessage = errorCopy(err, msgLoginFailed)
		api.renderHTML(w, "login.page.html", data)
		log.Errorf("[loginHandler][%s] API key request failed: %v", sID, err)
		return
	}

	// Token, key and profile land in one transaction; there is no state
	// where the feed guard can see a token without a key.
	if err := api.store.SaveLogin(profile, token, apiKey); err != nil {
		data.LoginMessage = msgLoginFailed
		api.renderHTML(w, "login.page.html", data)
		log.Errorf("[loginHandler][%s] failed to persist session: %v", sID, err)
		return
	}

	log.Infof("[loginHandler][%s] user %q logged in", sID, profile.Name)
	http.Redirect(w, r, "/feed", http.StatusSeeOther)
}

func (api *API) logoutHandler(w http.ResponseWriter, r *http.Request) {
	reqID := GetRequestID(r.Context())

	if err := api.store.Clear(); err != nil {
		log.Errorf("[logoutHandler][%s] failed to clear session: %v", shorten(reqID), err)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
