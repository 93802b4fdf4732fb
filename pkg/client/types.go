package client

import "context"

// RemoteProfile is the photo resource returned by the first signup step. Only
// ThumbnailURL is consumed downstream.
type RemoteProfile struct {
	AlbumID      int    `json:"albumId,omitempty"`
	ID           int    `json:"id,omitempty"`
	Title        string `json:"title,omitempty"`
	URL          string `json:"url,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// HasImage reports whether the profile carries an image reference.
func (p *RemoteProfile) HasImage() bool {
	return p != nil && p.ThumbnailURL != ""
}

// UserRecord is the payload of the second signup step.
type UserRecord struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// Result is the opaque outcome of the user creation call. A transport failure
// yields the zero Result.
type Result struct {
	StatusCode int            `json:"statusCode,omitempty"`
	Body       map[string]any `json:"body,omitempty"`
}

// ProfileFetcher resolves the remote profile for a size hint. Implementations
// must fail open: any failure is reported as a nil profile, never an error.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, sizeHint int) *RemoteProfile
}

// UserCreator submits a user record. Implementations must fail open: any
// failure is reported as the zero Result, never an error.
type UserCreator interface {
	CreateUser(ctx context.Context, record UserRecord) Result
}
