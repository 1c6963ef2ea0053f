package dto

import "github.com/google/uuid"

type CreateProjectInput struct {
	Name        string `json:"name" binding:"required,max=150"`
	Description string `json:"description" binding:"max=5000"`
}

type ProjectStatusInput struct {
	Status string `json:"status" binding:"required,oneof=active on-hold completed"`
}

type MemberInput struct {
	UserID uuid.UUID `json:"userId" binding:"required"`
}

type CreateTicketInput struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description" binding:"max=5000"`
	AssigneeID  *uuid.UUID `json:"assigneeId"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high"`
}

type TicketStatusInput struct {
	Status string `json:"status" binding:"required,oneof=open in-progress done"`
}
