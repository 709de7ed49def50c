// Package auth is a stub. The mobile client calls /auth/login before
// anything else; real authentication is out of scope for this service, so
// the endpoint always succeeds.
package auth

import (
	"net/http"

	"github.com/solestack/catalog-service/internal/pkg/web"
)

func LoginHandler(w http.ResponseWriter, r *http.Request) {
	web.JSON(w, http.StatusOK, struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}{Success: true, Token: "no-auth"})
}
