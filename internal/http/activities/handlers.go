package activities

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"tritogether/internal/http/common"
	"tritogether/internal/usecase"
)

type Handler struct {
	Activities *usecase.ActivityService
}

func NewHandler(activities *usecase.ActivityService) *Handler {
	return &Handler{Activities: activities}
}

type activityRequest struct {
	Description  string    `json:"description" binding:"required,min=10,max=255"`
	Date         time.Time `json:"date" binding:"required"`
	DisciplineID int       `json:"disciplineId" binding:"required"`
}

func (r activityRequest) toInput() usecase.ActivityInput {
	return usecase.ActivityInput{
		Description:  r.Description,
		Date:         r.Date,
		DisciplineID: r.DisciplineID,
	}
}

// HandleListMonth lists one athlete's activities for the month named by the
// required month query parameter.
func (h *Handler) HandleListMonth(c *gin.Context) {
	principal, ok := common.PrincipalFromContext(c)
	if !ok {
		return
	}
	athleteID, ok := common.ParseIntParam(c, "id")
	if !ok {
		return
	}
	raw := strings.TrimSpace(c.Query("month"))
	month, err := strconv.Atoi(raw)
	if err != nil {
		common.WriteErrorCode(c, http.StatusBadRequest, "INVALID_INPUT", "month query parameter is required")
		return
	}
	activities, err := h.Activities.ListMonth(c.Request.Context(), principal, athleteID, month)
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": activities})
}

func (h *Handler) HandleGet(c *gin.Context) {
	principal, ok := common.PrincipalFromContext(c)
	if !ok {
		return
	}
	athleteID, ok := common.ParseIntParam(c, "id")
	if !ok {
		return
	}
	activityID, ok := common.ParseIntParam(c, "activity_id")
	if !ok {
		return
	}
	activity, err := h.Activities.Get(c.Request.Context(), principal, athleteID, activityID)
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity": activity})
}

func (h *Handler) HandleCreate(c *gin.Context) {
	principal, ok := common.PrincipalFromContext(c)
	if !ok {
		return
	}
	athleteID, ok := common.ParseIntParam(c, "id")
	if !ok {
		return
	}
	var req activityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.WriteErrorCode(c, http.StatusBadRequest, "INVALID_INPUT", "description, date and disciplineId are required")
		return
	}
	activity, err := h.Activities.Create(c.Request.Context(), principal, athleteID, req.toInput())
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"activity": activity})
}

func (h *Handler) HandleUpdate(c *gin.Context) {
	principal, ok := common.PrincipalFromContext(c)
	if !ok {
		return
	}
	athleteID, ok := common.ParseIntParam(c, "id")
	if !ok {
		return
	}
	activityID, ok := common.ParseIntParam(c, "activity_id")
	if !ok {
		return
	}
	var req activityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.WriteErrorCode(c, http.StatusBadRequest, "INVALID_INPUT", "description, date and disciplineId are required")
		return
	}
	activity, err := h.Activities.Update(c.Request.Context(), principal, athleteID, activityID, req.toInput())
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity": activity})
}

func (h *Handler) HandleDelete(c *gin.Context) {
	principal, ok := common.PrincipalFromContext(c)
	if !ok {
		return
	}
	athleteID, ok := common.ParseIntParam(c, "id")
	if !ok {
		return
	}
	activityID, ok := common.ParseIntParam(c, "activity_id")
	if !ok {
		return
	}
	if err := h.Activities.Delete(c.Request.Context(), principal, athleteID, activityID); err != nil {
		common.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) HandleListDisciplines(c *gin.Context) {
	disciplines, err := h.Activities.ListDisciplines(c.Request.Context())
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"disciplines": disciplines})
}
