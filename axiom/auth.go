package axiom

import (
	"context"
	"net/http"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned by the sign-in endpoints. ExpiresIn is in
// seconds and not every deployment sends it; the session layer falls
// back to the token's own exp claim.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	ExpiresIn   int    `json:"expires_in,omitempty"`
}

// Profile is the authenticated account behind a token.
type Profile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (c *Client) SignIn(ctx context.Context, creds Credentials) (TokenResponse, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/user/signin", nil, creds)
	if err != nil {
		return TokenResponse{}, err
	}
	return decode[TokenResponse](body)
}

func (c *Client) AdminSignIn(ctx context.Context, creds Credentials) (TokenResponse, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/admin/signin", nil, creds)
	if err != nil {
		return TokenResponse{}, err
	}
	return decode[TokenResponse](body)
}

func (c *Client) SignUp(ctx context.Context, req SignUpRequest) (StatusResponse, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/user/signup", nil, req)
	if err != nil {
		return StatusResponse{}, err
	}
	return decode[StatusResponse](body)
}

func (c *Client) AdminSignUp(ctx context.Context, req SignUpRequest) (StatusResponse, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/admin/signup", nil, req)
	if err != nil {
		return StatusResponse{}, err
	}
	return decode[StatusResponse](body)
}

// VerifyOTP confirms the one-time password mailed during signup.
func (c *Client) VerifyOTP(ctx context.Context, email, code string) (TokenResponse, error) {
	payload := map[string]string{"email": email, "otp": code}
	body, err := c.do(ctx, http.MethodPost, "/auth/user/verify-otp", nil, payload)
	if err != nil {
		return TokenResponse{}, err
	}
	return decode[TokenResponse](body)
}

func (c *Client) ResendOTP(ctx context.Context, email string) error {
	payload := map[string]string{"email": email}
	_, err := c.do(ctx, http.MethodPost, "/auth/user/resend-otp", nil, payload)
	return err
}

// GetProfile returns the account owning the client's token.
func (c *Client) GetProfile(ctx context.Context) (Profile, error) {
	body, err := c.do(ctx, http.MethodGet, "/auth/user/user-profile", nil, nil)
	if err != nil {
		return Profile{}, err
	}
	return decode[Profile](body)
}

func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	payload := map[string]string{"email": email}
	_, err := c.do(ctx, http.MethodPost, "/auth/user/forgot-password", nil, payload)
	return err
}

func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	payload := map[string]string{"token": token, "new_password": newPassword}
	_, err := c.do(ctx, http.MethodPost, "/auth/user/reset-password", nil, payload)
	return err
}
