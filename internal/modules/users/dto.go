package users

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Role     string `json:"role" binding:"required,oneof=Admin Manager User"`
	Password string `json:"password" binding:"omitempty,min=6"`
}

// UpdateUserRequest is a partial update; nil fields stay unchanged.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Role     *string `json:"role" binding:"omitempty,oneof=Admin Manager User"`
	Password *string `json:"password" binding:"omitempty,min=6"`
}

type ListFilter struct {
	Q    string `form:"q"`
	Role string `form:"role"`
}
