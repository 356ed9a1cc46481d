package handler

import (
	"github.com/DeveloperClyde246/ai-interview-portal/internal/auth"
	"github.com/DeveloperClyde246/ai-interview-portal/pkg"
	"github.com/DeveloperClyde246/ai-interview-portal/pkg/model"
	"github.com/DeveloperClyde246/ai-interview-portal/pkg/response"
	"github.com/gin-gonic/gin"
)

// Register handles candidate self-registration; other roles are created by
// an admin.
func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
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
		Role:         model.RoleCandidate,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Created(c, gin.H{"user_id": id})
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.Repo.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil || pkg.ComparePassword(user.PasswordHash, req.Password) != nil {
		response.Unauthorized(c, "invalid email or password")
		return
	}

	token, expiresAt, err := auth.GenerateToken(h.JwtSecret, user, h.JwtTTL)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, model.TokenResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt.Unix(),
		Role:        user.Role,
	})
}

func (h *Handler) Me(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	response.OK(c, gin.H{
		"user_id": claims.UserID,
		"name":    claims.Name,
		"role":    claims.Role,
	})
}

// Logout is stateless: tokens are short-lived and discarded client-side.
func (h *Handler) Logout(c *gin.Context) {
	response.Message(c, "logged out")
}

func (h *Handler) ChangePassword(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	var req model.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.Repo.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if pkg.ComparePassword(user.PasswordHash, req.CurrentPassword) != nil {
		response.Unauthorized(c, "incorrect current password")
		return
	}

	hash, err := pkg.HashPassword(req.NewPassword)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if err := h.Repo.UpdateUserPassword(c.Request.Context(), claims.UserID, hash); err != nil {
		h.writeError(c, err)
		return
	}

	response.Message(c, "password updated")
}
