package ports

import "github.com/bnema/gigpulse/internal/domain"

// IdentityProvider reports the signed-in user. An empty UserID means nobody
// is signed in.
type IdentityProvider interface {
	CurrentUserID() domain.UserID
	Subscribe(fn func(domain.UserID)) (unsubscribe func())
}
