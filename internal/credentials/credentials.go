// Package credentials loads the privileged principal used by admin tooling.
//
// The principal comes from a service-account JSON payload (usually the
// TIPSPLIT_SERVICE_ACCOUNT environment variable). When no payload is set the
// process runs with ambient credentials, i.e. whatever the runtime grants it.
package credentials

import (
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mmynk/tipsplit/internal/session"
)

const serviceAccountType = "service_account"

var ErrMalformed = errors.New("malformed service account payload")

// Source says where the credentials came from.
type Source int

const (
	Ambient Source = iota
	ServiceAccount
)

func (s Source) String() string {
	if s == ServiceAccount {
		return "service_account"
	}
	return "ambient"
}

// Credentials is the parsed admin principal.
type Credentials struct {
	Source      Source
	ProjectID   string
	ClientEmail string
	PrivateKey  *rsa.PrivateKey
}

type payload struct {
	Type         string `json:"type"`
	ProjectID    string `json:"project_id"`
	PrivateKeyID string `json:"private_key_id"`
	PrivateKey   string `json:"private_key"`
	ClientEmail  string `json:"client_email"`
}

// Parse reads a service-account payload. An empty payload yields ambient
// credentials; anything else must be a complete service account or Parse
// returns an error wrapping ErrMalformed.
func Parse(raw string) (*Credentials, error) {
	if strings.TrimSpace(raw) == "" {
		return &Credentials{Source: Ambient}, nil
	}

	var p payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if p.Type != serviceAccountType {
		return nil, fmt.Errorf("%w: type is %q, want %q", ErrMalformed, p.Type, serviceAccountType)
	}
	if p.ClientEmail == "" {
		return nil, fmt.Errorf("%w: client_email is required", ErrMalformed)
	}
	if p.PrivateKey == "" {
		return nil, fmt.Errorf("%w: private_key is required", ErrMalformed)
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(p.PrivateKey))
	if err != nil {
		return nil, fmt.Errorf("%w: private_key: %v", ErrMalformed, err)
	}

	return &Credentials{
		Source:      ServiceAccount,
		ProjectID:   p.ProjectID,
		ClientEmail: p.ClientEmail,
		PrivateKey:  key,
	}, nil
}

// Identity returns the session identity admin tooling acts as.
func (c *Credentials) Identity() *session.Identity {
	if c.Source == ServiceAccount {
		return &session.Identity{UserID: "service:" + c.ClientEmail, Email: c.ClientEmail}
	}
	return &session.Identity{UserID: "service:ambient"}
}
