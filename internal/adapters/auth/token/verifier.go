package token

import (
	"context"
	"errors"
	"strings"

	"mypetlife-backend/internal/ports/auth"
)

// Verifier implementa auth.AuthVerifier sobre el Manager local.
// Se instancia desde main/router; el middleware solo conoce el port.
type Verifier struct {
	manager *Manager
}

func NewVerifier(manager *Manager) *Verifier {
	return &Verifier{manager: manager}
}

func (v *Verifier) Verify(ctx context.Context, tokenString string) (auth.Claims, error) {
	if v == nil || v.manager == nil {
		return auth.Claims{}, errors.New("token verifier not configured")
	}
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	c, err := v.manager.parse(tokenString)
	if err != nil {
		return auth.Claims{}, err
	}

	return auth.Claims{
		UserID: c.UserID,
		Email:  c.Email,
		Name:   c.Name,
	}, nil
}
