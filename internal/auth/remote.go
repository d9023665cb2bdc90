package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/heartmarshall/nova-backend/internal/domain"
)

const userEndpoint = "/auth/v1/user"

// RemoteVerifier resolves tokens by asking the identity provider who owns
// them. Use it when the signing secret is not available to this service.
type RemoteVerifier struct {
	client *resty.Client
}

// NewRemoteVerifier creates a verifier against the provider at baseURL.
// apiKey is the project's public (anon) key.
func NewRemoteVerifier(baseURL, apiKey string, timeout time.Duration) *RemoteVerifier {
	return &RemoteVerifier{
		client: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("apikey", apiKey).
			SetHeader("Accept", "application/json"),
	}
}

type remoteUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ValidateToken returns the identity the provider reports for token.
// 401/403 map to domain.ErrUnauthorized; transport failures and 5xx map to
// domain.ErrUnavailable.
func (v *RemoteVerifier) ValidateToken(ctx context.Context, token string) (domain.Identity, error) {
	if token == "" {
		return domain.Identity{}, fmt.Errorf("%w: token is empty", domain.ErrUnauthorized)
	}

	var user remoteUser
	res, err := v.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&user).
		Get(userEndpoint)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: identity provider: %w", domain.ErrUnavailable, err)
	}

	switch {
	case res.StatusCode() == http.StatusUnauthorized, res.StatusCode() == http.StatusForbidden:
		return domain.Identity{}, fmt.Errorf("%w: identity provider rejected token", domain.ErrUnauthorized)
	case res.StatusCode() >= http.StatusInternalServerError:
		return domain.Identity{}, fmt.Errorf("%w: identity provider status %d", domain.ErrUnavailable, res.StatusCode())
	case !res.IsSuccess():
		return domain.Identity{}, fmt.Errorf("%w: identity provider status %d", domain.ErrDownstream, res.StatusCode())
	}

	userID, err := uuid.Parse(user.ID)
	if err != nil || userID == uuid.Nil {
		return domain.Identity{}, fmt.Errorf("%w: identity provider returned invalid user id %q", domain.ErrDownstream, user.ID)
	}

	return domain.Identity{UserID: userID, Email: user.Email, Role: user.Role}, nil
}
