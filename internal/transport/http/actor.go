package http

import (
	"net/http"

	"github.com/Nicasiomarques/booking-host-sub000/internal/app"
)

// Identity headers are injected by the upstream gateway after it has
// authenticated the caller; the engine never sees credentials.
const (
	headerActorID   = "X-Actor-ID"
	headerActorRole = "X-Actor-Role"
)

func actorFromRequest(r *http.Request) app.Actor {
	return app.Actor{
		ID:   r.Header.Get(headerActorID),
		Role: app.ParseRole(r.Header.Get(headerActorRole)),
	}
}
