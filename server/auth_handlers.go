package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/axiomconsultancy/axiom-admin-go/axiom"
	"github.com/axiomconsultancy/axiom-admin-go/session"
)

// signinHandler handles POST /console/auth/signin
func (s *Server) signinHandler(c fiber.Ctx) error {
	var req signinRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	creds := axiom.Credentials{Email: req.Email, Password: req.Password}

	var token axiom.TokenResponse
	var err error
	if req.Admin {
		token, err = s.platform.AdminSignIn(c.Context(), creds)
	} else {
		token, err = s.platform.SignIn(c.Context(), creds)
	}
	if err != nil {
		return respondError(c, err)
	}

	return s.issueSession(c, token)
}

// signupHandler handles POST /console/auth/signup
func (s *Server) signupHandler(c fiber.Ctx) error {
	var req signupRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return badRequest(c, "Username, email and password are required")
	}

	payload := axiom.SignUpRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}

	var status axiom.StatusResponse
	var err error
	if req.Admin {
		status, err = s.platform.AdminSignUp(c.Context(), payload)
	} else {
		status, err = s.platform.SignUp(c.Context(), payload)
	}
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(status)
}

// verifyOTPHandler handles POST /console/auth/verify-otp. A verified
// code signs the account in.
func (s *Server) verifyOTPHandler(c fiber.Ctx) error {
	var req otpRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}
	if req.Email == "" || req.Code == "" {
		return badRequest(c, "Email and code are required")
	}

	token, err := s.platform.VerifyOTP(c.Context(), req.Email, req.Code)
	if err != nil {
		return respondError(c, err)
	}

	return s.issueSession(c, token)
}

// resendOTPHandler handles POST /console/auth/resend-otp
func (s *Server) resendOTPHandler(c fiber.Ctx) error {
	var req emailRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}
	if req.Email == "" {
		return badRequest(c, "Email is required")
	}

	if err := s.platform.ResendOTP(c.Context(), req.Email); err != nil {
		return respondError(c, err)
	}

	return c.JSON(map[string]string{"message": "Verification code sent"})
}

// forgotPasswordHandler handles POST /console/auth/forgot-password
func (s *Server) forgotPasswordHandler(c fiber.Ctx) error {
	var req emailRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}
	if req.Email == "" {
		return badRequest(c, "Email is required")
	}

	if err := s.platform.RequestPasswordReset(c.Context(), req.Email); err != nil {
		return respondError(c, err)
	}

	return c.JSON(map[string]string{"message": "Reset link sent"})
}

// resetPasswordHandler handles POST /console/auth/reset-password
func (s *Server) resetPasswordHandler(c fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}
	if req.Token == "" || req.NewPassword == "" {
		return badRequest(c, "Token and new password are required")
	}

	if err := s.platform.ResetPassword(c.Context(), req.Token, req.NewPassword); err != nil {
		return respondError(c, err)
	}

	return c.JSON(map[string]string{"message": "Password updated"})
}

// signoutHandler handles POST /console/auth/signout
func (s *Server) signoutHandler(c fiber.Ctx) error {
	sess := sessionFrom(c)

	if err := s.sessions.Delete(sess.ID); err != nil {
		log.Warn().Err(err).Str("session_id", sess.ID).Msg("Failed to delete session")
	}
	s.state.drop(sess.ID)

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	log.Info().Str("user_id", sess.UserID).Msg("Operator signed out")

	return c.JSON(map[string]string{"message": "Signed out"})
}

// profileHandler handles GET /console/auth/profile. The profile is
// fetched fresh so a revoked platform token surfaces immediately.
func (s *Server) profileHandler(c fiber.Ctx) error {
	sess, state := s.consoleFor(c)

	profile, err := state.client.GetProfile(c.Context())
	if err != nil {
		var apiErr axiom.APIError
		if errors.As(err, &apiErr) && apiErr.Status == fiber.StatusUnauthorized {
			s.sessions.Delete(sess.ID)
			s.state.drop(sess.ID)
		}
		return respondError(c, err)
	}

	return c.JSON(profile)
}

// issueSession exchanges a platform token for a console session and
// sets the session cookie.
func (s *Server) issueSession(c fiber.Ctx, token axiom.TokenResponse) error {
	profile, err := s.platform.WithToken(token.AccessToken).GetProfile(c.Context())
	if err != nil {
		return respondError(c, err)
	}

	sess, err := s.sessions.Create(token.AccessToken, token.ExpiresIn, session.Identity{
		UserID:   profile.ID,
		Username: profile.Username,
		Email:    profile.Email,
		Role:     profile.Role,
	})
	if err != nil {
		return respondError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    sess.ID,
		Path:     "/",
		Expires:  sess.TokenExpiry,
		HTTPOnly: true,
		SameSite: "Lax",
	})

	log.Info().Str("user_id", sess.UserID).Str("role", sess.Role).Msg("Operator signed in")

	return c.JSON(sessionInfo(sess))
}
