// Package deeplink parses meeting invitation links. Invitations carry the
// room identifier and join code as roomId/code query parameters; they are
// consumed once at startup and stripped from the URL afterwards.
package deeplink

import (
	"fmt"
	"net/url"
)

// Link is a parsed invitation
type Link struct {
	RoomID string
	Code   string
}

// Parse extracts the invitation from a URL. Both parameters must be
// present for the link to count; anything else is not an invitation.
func Parse(u *url.URL) (Link, bool) {
	query := u.Query()
	roomID := query.Get("roomId")
	code := query.Get("code")

	if roomID == "" || code == "" {
		return Link{}, false
	}
	return Link{RoomID: roomID, Code: code}, true
}

// Build renders the shareable invitation URL for a room, pointing at the
// endpoint that consumes invitations. Counterpart of Parse.
func Build(origin, roomID, code string) string {
	return fmt.Sprintf("%s/join?roomId=%s&code=%s", origin, url.QueryEscape(roomID), url.QueryEscape(code))
}
