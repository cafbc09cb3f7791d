package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/kevinaaaquil/myb/backend/apperr"
	"github.com/kevinaaaquil/myb/backend/middleware"
	"github.com/kevinaaaquil/myb/backend/models"
	"github.com/kevinaaaquil/myb/backend/utils"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler authenticates the single administrator configured through the environment.
type AuthHandler struct {
	Tokens    *middleware.TokenIssuer
	AdminUser string
	AdminPass string
	// AdminPassHash, when set, is a bcrypt hash that replaces the clear-text comparison.
	AdminPassHash string
	Logger        *zap.Logger
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type MeResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req, maxJSONBody, nil); err != nil {
		failWith(h.Logger, w, r, err)
		return
	}
	if req.Username == "" || req.Password == "" {
		utils.Error(w, apperr.MissingField("username and password required"))
		return
	}
	if !h.checkCredentials(req.Username, req.Password) {
		h.Logger.Warn("login rejected", zap.String("username", req.Username))
		utils.Error(w, &apperr.Error{Code: apperr.CodeInvalidCredential, Message: "Invalid credentials"})
		return
	}

	id := models.Identity{Username: req.Username, Role: models.RoleAdmin}
	token, _, err := h.Tokens.Issue(id)
	if err != nil {
		failWith(h.Logger, w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, LoginResponse{Token: token, Username: id.Username, Role: id.Role})
}

func (h *AuthHandler) checkCredentials(username, password string) bool {
	if h.AdminUser == "" || subtle.ConstantTimeCompare([]byte(username), []byte(h.AdminUser)) != 1 {
		return false
	}
	if h.AdminPassHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(h.AdminPassHash), []byte(password)) == nil
	}
	return h.AdminPass != "" && subtle.ConstantTimeCompare([]byte(password), []byte(h.AdminPass)) == 1
}

// Me echoes the identity carried by the caller's token. Runs behind middleware.Auth.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.Error(w, apperr.ErrUnauthorized)
		return
	}
	utils.JSON(w, http.StatusOK, MeResponse{Username: id.Username, Role: id.Role})
}
