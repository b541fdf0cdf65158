package handler

import (
	"anonchat/backend/internal/moderation"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// BlockUser adds the target to the viewer's own block list.
func (h *Handler) BlockUser(c *gin.Context) {
	if err := h.Moderation.Block(c.GetString("uid"), c.Param("uid")); err != nil {
		h.moderationError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UnblockUser removes the target from the viewer's block list.
func (h *Handler) UnblockUser(c *gin.Context) {
	if err := h.Moderation.Unblock(c.GetString("uid"), c.Param("uid")); err != nil {
		h.moderationError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type reportRequest struct {
	TargetUID string `json:"target_uid"`
	Reason    string `json:"reason"`
}

// SubmitReport appends a pending report to the moderation queue.
func (h *Handler) SubmitReport(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed body"})
		return
	}

	report, err := h.Moderation.Report(c.GetString("uid"), req.TargetUID, req.Reason)
	if err != nil {
		h.moderationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

// ListReports returns the pending queue for the admin view, worst first.
func (h *Handler) ListReports(c *gin.Context) {
	reports, err := h.Storage.ListPendingReports()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reports"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

type resolveRequest struct {
	// BlockTarget adds the reported user to the reviewing admin's own block
	// list. There is no global ban from a report.
	BlockTarget bool `json:"block_target"`
}

// ResolveReport closes a pending report as actioned.
func (h *Handler) ResolveReport(c *gin.Context) {
	var req resolveRequest
	// Body is optional; an empty body means no block.
	_ = c.ShouldBindJSON(&req)

	if err := h.Moderation.Resolve(c.GetString("uid"), c.Param("id"), req.BlockTarget); err != nil {
		h.moderationError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DismissReport closes a pending report without action.
func (h *Handler) DismissReport(c *gin.Context) {
	if err := h.Moderation.Dismiss(c.GetString("uid"), c.Param("id")); err != nil {
		h.moderationError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) moderationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, moderation.ErrSelfTarget),
		errors.Is(err, moderation.ErrEmptyReason):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, moderation.ErrReportNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, moderation.ErrReportDecided):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Moderation operation failed"})
	}
}
