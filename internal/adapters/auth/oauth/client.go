package oauth

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mypetlife-backend/internal/platform/httpclient"
)

var (
	ErrNotConfigured = errors.New("oauth client not configured")
	ErrUnauthorized  = errors.New("oauth unauthorized")
	ErrUpstream      = errors.New("oauth upstream error")
)

// Config del proveedor OAuth. Valores vienen de env vars (ver internal/config).
type Config struct {
	AuthorizeURL string
	TokenURL     string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Timeout      time.Duration
}

// Identity es lo mínimo que necesitamos del proveedor para crear/ubicar
// la cuenta local: subject estable + email + nombre para el profile.
type Identity struct {
	Subject string
	Email   string
	Name    string
}

type Client struct {
	cfg  Config
	http *httpclient.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: httpclient.New(timeout),
	}
}

func (c *Client) IsConfigured() bool {
	return c != nil &&
		strings.TrimSpace(c.cfg.AuthorizeURL) != "" &&
		strings.TrimSpace(c.cfg.TokenURL) != "" &&
		strings.TrimSpace(c.cfg.ClientID) != ""
}

// AuthorizeURL arma la URL de redirect para iniciar el flujo.
// El state lo genera el handler (y lo valida en el callback).
func (c *Client) AuthorizeURL(provider, state string) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}

	q := url.Values{}
	q.Set("client_id", c.cfg.ClientID)
	q.Set("redirect_uri", c.cfg.RedirectURL)
	q.Set("response_type", "code")
	q.Set("scope", "openid email profile")
	if strings.TrimSpace(provider) != "" {
		q.Set("provider", provider)
	}
	if strings.TrimSpace(state) != "" {
		q.Set("state", state)
	}

	sep := "?"
	if strings.Contains(c.cfg.AuthorizeURL, "?") {
		sep = "&"
	}
	return c.cfg.AuthorizeURL + sep + q.Encode(), nil
}

// ExchangeCode canjea el code del callback por la identidad del usuario.
func (c *Client) ExchangeCode(ctx context.Context, code string) (Identity, error) {
	if !c.IsConfigured() {
		return Identity{}, ErrNotConfigured
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return Identity{}, ErrUnauthorized
	}

	req := map[string]string{
		"grant_type":    "authorization_code",
		"code":          code,
		"client_id":     c.cfg.ClientID,
		"client_secret": c.cfg.ClientSecret,
		"redirect_uri":  c.cfg.RedirectURL,
	}

	// Formato típico de IdP: token + claims del usuario en la misma respuesta.
	var out struct {
		Subject string `json:"sub"`
		Email   string `json:"email"`
		Name    string `json:"name"`
	}

	err := c.http.DoJSON(ctx, http.MethodPost, c.cfg.TokenURL, nil, req, &out)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			if httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden {
				return Identity{}, ErrUnauthorized
			}
		}
		return Identity{}, errors.Join(ErrUpstream, err)
	}

	out.Subject = strings.TrimSpace(out.Subject)
	if out.Subject == "" {
		return Identity{}, errors.New("oauth response missing sub")
	}

	return Identity{
		Subject: out.Subject,
		Email:   strings.TrimSpace(out.Email),
		Name:    strings.TrimSpace(out.Name),
	}, nil
}
