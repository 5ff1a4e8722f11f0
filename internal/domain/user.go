package domain

type UserRole string

const (
    RoleAdmin   UserRole = "admin"
    RoleCashier UserRole = "cashier"
)

type User struct {
    UserID string   `json:"user_id"`
    Name   string   `json:"name"`
    Email  string   `json:"email"`
    Role   UserRole `json:"role"`
}

type CreateUserRequest struct {
    Name  string `json:"name"  binding:"required"`
    Email string `json:"email" binding:"required,email"`
    Role  string `json:"role"  binding:"required,oneof=admin cashier"`
}

type UpdateUserRequest struct {
    Name  *string `json:"name"`
    Email *string `json:"email"`
    Role  *string `json:"role"`
}

type LoginRequest struct {
    Email    string `json:"email"    binding:"required"`
    Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
    Token string `json:"token"`
    User  User   `json:"user"`
}
