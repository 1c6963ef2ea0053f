package dto

type CreateUserInput struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	FirstName  string `json:"firstName" binding:"required,max=100"`
	LastName   string `json:"lastName" binding:"max=100"`
	Department string `json:"department" binding:"max=100"`
	Role       string `json:"role" binding:"required,oneof=admin manager employee"`
}

// UpdateUserInput changes only the fields that are set.
type UpdateUserInput struct {
	FirstName  *string `json:"firstName" binding:"omitempty,max=100"`
	LastName   *string `json:"lastName" binding:"omitempty,max=100"`
	Department *string `json:"department" binding:"omitempty,max=100"`
	Role       *string `json:"role" binding:"omitempty,oneof=admin manager employee"`
	IsActive   *bool   `json:"isActive"`
	Password   *string `json:"password" binding:"omitempty,min=8"`
}
