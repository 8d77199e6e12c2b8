package auth

import (
	"context"

	"github.com/mmynk/tipsplit/internal/models"
)

// Authenticator verifies who may use the settings screens.
// Implementations can be swapped (password, passkeys, OAuth) without
// touching the services.
type Authenticator interface {
	// Register creates a new account. The credential format depends on the
	// implementation.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the credentials and returns the user.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks the credential against the implementation's rules.
	ValidateCredential(credential string) error
}
