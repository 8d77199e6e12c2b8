// Package branding holds the static header shown on every settings screen.
package branding

import "github.com/mmynk/tipsplit/internal/session"

const (
	AppName = "TipSplit"
	Tagline = "Split tips fairly across phases, positions and projects"
)

// Header is the payload rendered at the top of each screen.
type Header struct {
	AppName string
	Tagline string

	// DisplayName greets the signed-in user. Empty when nobody is signed in.
	DisplayName string
}

// NewHeader returns the header for the given identity, which may be nil.
// displayName is preferred over the email when set.
func NewHeader(user *session.Identity, displayName string) Header {
	h := Header{AppName: AppName, Tagline: Tagline}
	if user == nil {
		return h
	}
	h.DisplayName = displayName
	if h.DisplayName == "" {
		h.DisplayName = user.Email
	}
	return h
}
