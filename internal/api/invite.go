package api

import (
	"log"
	"net/http"

	"github.com/harshala334/virtual-office/internal/deeplink"
	"github.com/harshala334/virtual-office/internal/service"
	"github.com/harshala334/virtual-office/internal/utils"
)

// InviteHandler consumes meeting invitation links. The roomId/code query
// parameters are resolved through the session controller and then stripped
// by redirecting to the bare root; failures are reported via the Notifier
// inside ResolveDeepLink and never surface as HTTP errors.
type InviteHandler struct {
	session *service.SessionController
}

// NewInviteHandler creates an invite handler over the session controller
func NewInviteHandler(session *service.SessionController) *InviteHandler {
	return &InviteHandler{
		session: session,
	}
}

// ServeHTTP handles GET /join?roomId=...&code=...
func (h *InviteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	link, ok := deeplink.Parse(r.URL)
	if !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	if _, err := h.session.ResolveDeepLink(r.Context(), link.RoomID, link.Code); err != nil {
		log.Printf("Invite for room %s not resolved: %v", utils.SanitizeLogString(link.RoomID), err)
	}

	// Clean up the URL after consuming the invitation
	http.Redirect(w, r, "/", http.StatusFound)
}
