package models

import "strings"

// User is a reader account. Password is kept in clear text, exactly as the signup form sends
// it; it is never written to API responses.
type User struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	JoinedDate string `json:"joined_date"`
}

// UserView is what GET /tables/users and signup return.
type UserView struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	JoinedDate string `json:"joined_date"`
}

func (u User) View() UserView {
	return UserView{ID: u.ID, Username: u.Username, Email: u.Email, JoinedDate: u.JoinedDate}
}

type SignupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r SignupRequest) NewUser(id, joined string) User {
	return User{
		ID:         id,
		Username:   strings.TrimSpace(r.Username),
		Email:      NormalizeEmail(r.Email),
		Password:   r.Password,
		JoinedDate: joined,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
