package dto

// Request DTOs

type LoginRequest struct {
	Username string `json:"benutzername" validate:"required"`
	Password string `json:"passwort" validate:"required"`
}

// Response DTOs

type LoginResponse struct {
	Status     string `json:"status"`
	EmployeeID int64  `json:"employeeId"`
	Token      string `json:"token,omitempty"`
	ExpiresIn  int64  `json:"expiresIn,omitempty"`
}
