package model

// LoginRequest carries credentials for the normal and admin login paths.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest carries self-registration parameters. Admin accounts are
// never self-registered; they are provisioned through the admin panel.
type RegisterRequest struct {
	Username        string `json:"username" binding:"required,notblank,max=80"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	Role            string `json:"role" binding:"required,oneof=mother clinic nurse"`
}

// LoginResponse is returned on successful login: the session token plus the
// dashboard the client should land on for the user's role.
type LoginResponse struct {
	Token    string `json:"token"`
	Redirect string `json:"redirect"`
	User     *User  `json:"user"`
}

// AskRequest carries a free-text question for the assistant relay.
type AskRequest struct {
	Message string `json:"message" binding:"required"`
}

// AskResponse carries the assistant reply (or the fixed fallback).
type AskResponse struct {
	Reply string `json:"reply"`
}

// DashboardCounts is the admin dashboard summary.
type DashboardCounts struct {
	Users        int `json:"users"`
	Clinics      int `json:"clinics"`
	Appointments int `json:"appointments"`
}
