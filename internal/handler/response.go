package handler

import (
	"io"

	"github.com/DeveloperClyde246/ai-interview-portal/internal/intake"
	"github.com/DeveloperClyde246/ai-interview-portal/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxUploadBytes caps one uploaded answer file.
const maxUploadBytes = 200 << 20

// SubmitResponse accepts a candidate's answers as a multipart form: repeated
// "answers" fields (text or direct video URLs) plus optional "file_answers"
// uploads. Persistence happens before scoring; the call returns without
// waiting for marks.
func (h *Handler) SubmitResponse(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	interviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid interview id")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "expected multipart form")
		return
	}
	answers := form.Value["answers"]

	var files []intake.FileUpload
	for _, fh := range form.File["file_answers"] {
		if fh.Size > maxUploadBytes {
			response.BadRequest(c, "file too large")
			return
		}
		f, err := fh.Open()
		if err != nil {
			h.writeError(c, err)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			h.writeError(c, err)
			return
		}
		files = append(files, intake.FileUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	resp, err := h.Intake.Submit(c.Request.Context(), interviewID, claims.UserID, answers, files)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Created(c, gin.H{"response": resp})
}
