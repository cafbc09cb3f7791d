package handlers

import (
	"net/http"

	"github.com/kevinaaaquil/myb/backend/models"
	"github.com/kevinaaaquil/myb/backend/utils"
	"go.uber.org/zap"
)

// UsersHandler serves reader accounts. Passwords are accepted on signup but never returned.
type UsersHandler struct {
	*Base
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.DB.AllUsers(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	views := make([]models.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, u.View())
	}
	utils.JSON(w, http.StatusOK, listResponse[models.UserView]{Data: views})
}

func (h *UsersHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	id, now, err := newIDAndTime()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	user := req.NewUser(id, now)
	if err := h.DB.CreateUser(r.Context(), user); err != nil {
		h.fail(w, r, err)
		return
	}
	h.Logger.Info("user signed up", zap.String("id", user.ID))
	utils.JSON(w, http.StatusOK, user.View())
}
