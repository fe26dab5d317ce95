package handlers

import (
	"log/slog"
	"net/http"
)

// UserList returns all accounts. Admin only; password hashes and TOTP
// secrets never serialize.
func (a *API) UserList(w http.ResponseWriter, r *http.Request) {
	users, err := a.users.List()
	if err != nil {
		slog.Error("user list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load users")
		return
	}
	writeJSON(w, http.StatusOK, users)
}
