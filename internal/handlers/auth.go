// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"threadbox/internal/middleware"
	"threadbox/internal/models"
)

// registerRequest is the body for POST /auth/register.
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginRequest is the body for POST /auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse is the payload for successful register/login calls.
type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
	// TwoFARequired signals that the token only unlocks /auth/2fa/verify;
	// admin routes stay closed until a TOTP code is presented.
	TwoFARequired bool `json:"twoFaRequired,omitempty"`
}

// Register creates a user account and returns a signed token. Accounts
// always start with the user role; admins are promoted out of band.
func (a *API) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if msg := decodeJSON(w, r, &req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if msg := validateCredentials(req.Name, req.Email, req.Password); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	existing, err := a.users.FindByEmail(req.Email)
	if err != nil {
		slog.Error("register lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Registration failed")
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "An account with this email already exists")
		return
	}

	user, err := a.users.Create(strings.TrimSpace(req.Name), req.Email, req.Password, models.RoleUser)
	if err != nil {
		slog.Error("register create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	signed, err := a.tokens.Issue(user, true)
	if err != nil {
		slog.Error("register token issue failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	slog.Info("user registered", "user", user.ID, "email", user.Email)
	writeJSON(w, http.StatusCreated, authResponse{Token: signed, User: user})
}

// Login verifies credentials and returns a signed token. Admins with TOTP
// enrolled get a restricted token until they verify a code.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if msg := decodeJSON(w, r, &req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	user, err := a.users.FindByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}
	// Same response for unknown email and wrong password.
	if user == nil || !a.users.CheckPassword(user, req.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	twoFADone := !(user.IsAdmin() && user.TOTPEnabled)
	signed, err := a.tokens.Issue(user, twoFADone)
	if err != nil {
		slog.Error("login token issue failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	slog.Info("user logged in", "user", user.ID, "twofa_pending", !twoFADone)
	writeJSON(w, http.StatusOK, authResponse{Token: signed, User: user, TwoFARequired: !twoFADone})
}

// Me returns the authenticated user's profile.
func (a *API) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())

	user, err := a.users.FindByID(claims.UserUUID())
	if err != nil {
		slog.Error("profile lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// TwoFASetup generates a TOTP secret for the authenticated admin and
// returns it with a QR code for authenticator apps. The secret stays
// inactive until verified once.
func (a *API) TwoFASetup(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	if !claims.IsAdmin() {
		writeError(w, http.StatusForbidden, "Admin access required")
		return
	}

	user, err := a.users.FindByID(claims.UserUUID())
	if err != nil || user == nil {
		slog.Error("2fa setup lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to start 2FA setup")
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "threadbox",
		AccountName: user.Email,
	})
	if err != nil {
		slog.Error("totp generate failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to start 2FA setup")
		return
	}

	if err := a.users.SetTOTPSecret(user.ID, key.Secret()); err != nil {
		slog.Error("save totp secret failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to start 2FA setup")
		return
	}

	qrPNG, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		slog.Error("qr code generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to start 2FA setup")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"secret": key.Secret(),
		"qrCode": base64.StdEncoding.EncodeToString(qrPNG),
	})
}

// TwoFAVerify validates a TOTP code. On first success it activates the
// enrollment; every success returns a full token with admin routes open.
func (a *API) TwoFAVerify(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())

	var req struct {
		Code string `json:"code"`
	}
	if msg := decodeJSON(w, r, &req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	user, err := a.users.FindByID(claims.UserUUID())
	if err != nil || user == nil {
		slog.Error("2fa verify lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Verification failed")
		return
	}
	if user.TOTPSecret == nil {
		writeError(w, http.StatusBadRequest, "Two-factor authentication is not set up")
		return
	}

	if !totp.Validate(strings.TrimSpace(req.Code), *user.TOTPSecret) {
		writeError(w, http.StatusUnauthorized, "Invalid verification code")
		return
	}

	if !user.TOTPEnabled {
		if err := a.users.EnableTOTP(user.ID); err != nil {
			slog.Error("enable totp failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Verification failed")
			return
		}
		user.TOTPEnabled = true
	}

	signed, err := a.tokens.Issue(user, true)
	if err != nil {
		slog.Error("2fa token issue failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Verification failed")
		return
	}

	slog.Info("2fa verified", "user", user.ID)
	writeJSON(w, http.StatusOK, authResponse{Token: signed, User: user})
}
