package handler

import (
	"fmt"
	"time"

	"github.com/DeveloperClyde246/ai-interview-portal/pkg/model"
	"github.com/DeveloperClyde246/ai-interview-portal/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) CreateInterview(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	var req model.CreateInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(time.Now()); err != nil {
		h.writeError(c, err)
		return
	}

	iv := &model.Interview{
		RecruiterID:    claims.UserID,
		Title:          req.Title,
		Description:    req.Description,
		ScheduledAt:    req.ScheduledAt,
		AnswerDuration: req.AnswerDuration,
	}
	id, err := h.Repo.CreateInterview(c.Request.Context(), iv, req.Questions, req.CandidateIDs)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Created(c, gin.H{"interview_id": id})
}

// ListInterviews serves both roles: recruiters see interviews they own,
// candidates see interviews they are assigned to. Both projections are
// ordered by scheduled time descending.
func (h *Handler) ListInterviews(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	var (
		interviews []model.Interview
		err        error
	)
	switch claims.Role {
	case model.RoleRecruiter:
		interviews, err = h.Repo.ListInterviewsByRecruiter(c.Request.Context(), claims.UserID)
	case model.RoleCandidate:
		interviews, err = h.Repo.ListInterviewsForCandidate(c.Request.Context(), claims.UserID)
	default:
		response.Forbidden(c, "no interview listing for this role")
		return
	}
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, gin.H{"interviews": interviews})
}

func (h *Handler) GetInterview(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid interview id")
		return
	}

	iv, err := h.Repo.GetInterviewByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	switch claims.Role {
	case model.RoleRecruiter:
		if iv.RecruiterID != claims.UserID {
			response.Forbidden(c, "not your interview")
			return
		}
	case model.RoleCandidate:
		assigned, err := h.Repo.IsCandidateAssigned(c.Request.Context(), id, claims.UserID)
		if err != nil {
			h.writeError(c, err)
			return
		}
		if !assigned {
			response.Forbidden(c, "not assigned to this interview")
			return
		}
	}

	response.OK(c, gin.H{"interview": iv})
}

// ownedInterview loads the interview in the id param and verifies the caller
// owns it.
func (h *Handler) ownedInterview(c *gin.Context) *model.Interview {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return nil
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid interview id")
		return nil
	}

	iv, err := h.Repo.GetInterviewByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return nil
	}
	if iv.RecruiterID != claims.UserID {
		response.Forbidden(c, "not your interview")
		return nil
	}
	return iv
}

func (h *Handler) PatchInterview(c *gin.Context) {
	iv := h.ownedInterview(c)
	if iv == nil {
		return
	}

	var req model.PatchInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(time.Now()); err != nil {
		h.writeError(c, err)
		return
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ScheduledAt != nil {
		updates["scheduled_at"] = *req.ScheduledAt
	}
	if req.AnswerDuration != nil {
		updates["answer_duration_secs"] = *req.AnswerDuration
	}
	if len(updates) == 0 {
		response.BadRequest(c, "no fields to update")
		return
	}

	if err := h.Repo.UpdateInterview(c.Request.Context(), iv.InterviewID, updates); err != nil {
		h.writeError(c, err)
		return
	}

	response.Message(c, "interview updated")
}

// ReplaceQuestions swaps the question list atomically. Questions freeze once
// any response exists; the repository enforces that inside the same
// transaction.
func (h *Handler) ReplaceQuestions(c *gin.Context) {
	iv := h.ownedInterview(c)
	if iv == nil {
		return
	}

	var req model.ReplaceQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := model.ValidateQuestions(req.Questions); err != nil {
		h.writeError(c, err)
		return
	}

	if err := h.Repo.ReplaceQuestions(c.Request.Context(), iv.InterviewID, req.Questions); err != nil {
		h.writeError(c, err)
		return
	}

	response.Message(c, "questions updated")
}

func (h *Handler) AssignCandidates(c *gin.Context) {
	iv := h.ownedInterview(c)
	if iv == nil {
		return
	}

	var req model.AssignCandidatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	// only candidate accounts can be assigned
	for _, cid := range req.CandidateIDs {
		user, err := h.Repo.GetUserByID(c.Request.Context(), cid)
		if err != nil {
			h.writeError(c, err)
			return
		}
		if user.Role != model.RoleCandidate {
			h.writeError(c, fmt.Errorf("%w: user %s is not a candidate", model.ErrValidation, cid))
			return
		}
	}

	if err := h.Repo.AssignCandidates(c.Request.Context(), iv.InterviewID, req.CandidateIDs); err != nil {
		h.writeError(c, err)
		return
	}

	response.Message(c, "candidates assigned")
}

func (h *Handler) UnassignCandidate(c *gin.Context) {
	iv := h.ownedInterview(c)
	if iv == nil {
		return
	}

	candidateID, err := uuid.Parse(c.Param("cid"))
	if err != nil {
		response.BadRequest(c, "invalid candidate id")
		return
	}

	if err := h.Repo.UnassignCandidate(c.Request.Context(), iv.InterviewID, candidateID); err != nil {
		h.writeError(c, err)
		return
	}

	response.Message(c, "candidate unassigned")
}

func (h *Handler) DeleteInterview(c *gin.Context) {
	iv := h.ownedInterview(c)
	if iv == nil {
		return
	}

	if err := h.Repo.DeleteInterview(c.Request.Context(), iv.InterviewID); err != nil {
		h.writeError(c, err)
		return
	}

	response.Message(c, "interview deleted")
}

// GetResults returns per-candidate answers, per-video marks and the
// aggregate mark. Marks stay null while scoring is pending or when no video
// answers exist.
func (h *Handler) GetResults(c *gin.Context) {
	iv := h.ownedInterview(c)
	if iv == nil {
		return
	}

	responses, err := h.Repo.ListResponses(c.Request.Context(), iv.InterviewID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, model.InterviewResults{
		InterviewID: iv.InterviewID,
		Title:       iv.Title,
		Questions:   iv.Questions,
		Responses:   responses,
	})
}
