package models

import "time"

// Author is the profile embedded in a post when the listing is requested
// with _author=true.
type Author struct {
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// Post is a remote-owned record. The client never mutates one in place;
// it only caches the most recent full listing.
type Post struct {
	ID      int       `json:"id"`
	Title   string    `json:"title"`
	Body    string    `json:"body"`
	Author  Author    `json:"author"`
	Created time.Time `json:"created,omitempty"`
	Updated time.Time `json:"updated,omitempty"`
}

// Profile is the user payload returned by a successful login.
type Profile struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
	Banner string `json:"banner,omitempty"`
}

// Credentials carries everything an authenticated request needs.
type Credentials struct {
	AccessToken string
	APIKey      string
}
