package dto

// LoginRequest carries admin credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminInfo is the public view of an admin credential.
type AdminInfo struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// SessionResponse reports the state of the admin session cookie.
type SessionResponse struct {
	LoggedIn bool       `json:"loggedIn"`
	Admin    *AdminInfo `json:"admin,omitempty"`
}

// UpdatePaymentRequest changes a record's payment status.
type UpdatePaymentRequest struct {
	Status string `json:"status" binding:"required"`
}
