package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/market/app/services"
	"github.com/shashiranjanraj/market/pkg/auth"
	"github.com/shashiranjanraj/market/pkg/response"
)

type AuthController struct {
	auth   *services.AuthService
	users  *services.UserService
	tokens *auth.TokenService
}

func NewAuthController(a *services.AuthService, users *services.UserService, tokens *auth.TokenService) *AuthController {
	return &AuthController{auth: a, users: users, tokens: tokens}
}

// credentials accepts the login name as either "email" or "username".
type credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c credentials) login() string {
	if c.Email != "" {
		return c.Email
	}
	return c.Username
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decode(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}
	u, err := c.auth.Register(r.Context(), req.Name, req.login(), req.Password)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, u)
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decode(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}
	token, err := c.auth.Login(r.Context(), req.login(), req.Password)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]interface{}{
		"token":      token,
		"token_type": "Bearer",
		"expires_in": int(c.tokens.Timeout().Seconds()),
	})
}

// Me returns the authenticated caller.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}
	u, err := c.users.Find(r.Context(), id.UserID)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, u)
}
