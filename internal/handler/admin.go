package handler

import (
	"fmt"

	"github.com/DeveloperClyde246/ai-interview-portal/pkg"
	"github.com/DeveloperClyde246/ai-interview-portal/pkg/model"
	"github.com/DeveloperClyde246/ai-interview-portal/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// mainAdminEmail marks the bootstrap account that can never be deleted.
const mainAdminEmail = "mainAdmin@gmail.com"

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Repo.ListUsers(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	out := make([]model.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, model.UserResponse{UserID: u.UserID, Name: u.Name, Email: u.Email, Role: u.Role})
	}
	response.OK(c, gin.H{"users": out})
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	role, err := model.ParseRole(req.Role)
	if err != nil {
		h.writeError(c, err)
		return
	}

	hash, err := pkg.HashPassword(req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	id, err := h.Repo.CreateUser(c.Request.Context(), &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Created(c, gin.H{"user_id": id})
}

func (h *Handler) PatchUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	var req model.PatchUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Role != nil {
		role, err := model.ParseRole(*req.Role)
		if err != nil {
			h.writeError(c, err)
			return
		}
		updates["role"] = role
	}
	if len(updates) == 0 {
		response.BadRequest(c, "no fields to update")
		return
	}

	if err := h.Repo.UpdateUser(c.Request.Context(), id, updates); err != nil {
		h.writeError(c, err)
		return
	}

	response.Message(c, "user updated")
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	user, err := h.Repo.GetUserByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if user.Email == mainAdminEmail {
		h.writeError(c, fmt.Errorf("%w: the main admin account cannot be deleted", model.ErrForbidden))
		return
	}

	if err := h.Repo.DeleteUser(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}

	response.Message(c, "user deleted")
}
