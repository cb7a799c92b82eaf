package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/segmentio/kafka-go"

	"feedclient/pkg/feed"
	"feedclient/pkg/noroff"
	"feedclient/pkg/session"
)

type API struct {
	ServiceName string

	r       *mux.Router
	client  *noroff.Client
	store   *session.Store
	cache   *feed.Cache
	htmlDir string
	kw      *kafka.Writer
}

func New(name string, client *noroff.Client, store *session.Store, htmlDir string, kafkaWriter *kafka.Writer) *API {
	api := API{
		ServiceName: name,
		r:           mux.NewRouter(),
		client:      client,
		store:       store,
		cache:       feed.NewCache(),
		htmlDir:     htmlDir,
		kw:          kafkaWriter,
	}
	api.endpoints()

	return &api
}

func (api *API) Router() *mux.Router {
	return api.r
}

func (api *API) endpoints() {
	api.r.Use(api.requestIDMiddleware)
	api.r.Use(api.headerMiddleware)

	if api.kw != nil {
		api.r.Use(api.loggingMiddleware(api.kw))
	}

	api.r.HandleFunc("/", api.indexHandler).Methods(http.MethodGet)
	api.r.HandleFunc("/register", api.registerHandler).Methods(http.MethodPost)
	api.r.HandleFunc("/login", api.loginHandler).Methods(http.MethodPost)
	api.r.HandleFunc("/logout", api.logoutHandler).Methods(http.MethodPost)

	api.r.HandleFunc("/feed", api.feedHandler).Methods(http.MethodGet)
	api.r.HandleFunc("/posts", api.submitPostHandler).Methods(http.MethodPost)
	api.r.HandleFunc("/posts/{id:[0-9]+}/delete", api.deletePostHandler).Methods(http.MethodPost)
	api.r.HandleFunc("/posts/{id:[0-9]+}/comment", api.commentPostHandler).Methods(http.MethodPost)
}

// GetRequestID extracts the request ID from the context.
// It returns the request ID as a string if present, otherwise returns an empty string.
func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(RequestIDKey).(string); ok {
		return v
	}
	return ""
}

// shorten truncates a string to 6 characters if it is longer than 6, appends '...' at the end,
// otherwise it returns the string unchanged.
func shorten(s string) string {
	if len(s) > 6 {
		return s[:6] + "..."
	}
	return s
}
