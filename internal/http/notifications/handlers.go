package notifications

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tritogether/internal/http/common"
	"tritogether/internal/usecase"
)

type Handler struct {
	Pairing *usecase.PairingService
}

func NewHandler(pairing *usecase.PairingService) *Handler {
	return &Handler{Pairing: pairing}
}

// HandleRequest creates a pending pairing request from an athlete towards
// a coach.
func (h *Handler) HandleRequest(c *gin.Context) {
	principal, ok := common.PrincipalFromContext(c)
	if !ok {
		return
	}
	athleteID, ok := common.ParseIntParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		CoachID int `json:"coachId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.WriteErrorCode(c, http.StatusBadRequest, "INVALID_INPUT", "coachId is required")
		return
	}
	notification, err := h.Pairing.RequestPairing(c.Request.Context(), principal, athleteID, req.CoachID)
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"notification": notification})
}

// HandleResolve moves a notification out of PENDING. The athlete and coach
// ids in the body must match the pair the notification was created with.
func (h *Handler) HandleResolve(c *gin.Context) {
	principal, ok := common.PrincipalFromContext(c)
	if !ok {
		return
	}
	athleteID, ok := common.ParseIntParam(c, "id")
	if !ok {
		return
	}
	notificationID, ok := common.ParseIntParam(c, "notification_id")
	if !ok {
		return
	}
	var req struct {
		CoachID int    `json:"coachId" binding:"required"`
		Status  string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.WriteErrorCode(c, http.StatusBadRequest, "INVALID_INPUT", "coachId and status are required")
		return
	}
	notification, err := h.Pairing.ResolvePairing(c.Request.Context(), principal, usecase.ResolvePairingInput{
		AthleteID:      athleteID,
		NotificationID: notificationID,
		CoachID:        req.CoachID,
		Status:         req.Status,
	})
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notification": notification})
}

func (h *Handler) HandleListForAthlete(c *gin.Context) {
	principal, ok := common.PrincipalFromContext(c)
	if !ok {
		return
	}
	id, ok := common.ParseIntParam(c, "id")
	if !ok {
		return
	}
	notifications, err := h.Pairing.ListForAthlete(c.Request.Context(), principal, id)
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func (h *Handler) HandleListForCoach(c *gin.Context) {
	principal, ok := common.PrincipalFromContext(c)
	if !ok {
		return
	}
	id, ok := common.ParseIntParam(c, "id")
	if !ok {
		return
	}
	notifications, err := h.Pairing.ListForCoach(c.Request.Context(), principal, id)
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}
