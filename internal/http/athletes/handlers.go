package athletes

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"tritogether/internal/domain/coaching"
	"tritogether/internal/http/common"
	"tritogether/internal/usecase"
)

type Handler struct {
	Athletes *usecase.AthleteService
	Pairing  *usecase.PairingService
}

func NewHandler(athletes *usecase.AthleteService, pairing *usecase.PairingService) *Handler {
	return &Handler{Athletes: athletes, Pairing: pairing}
}

type availabilityRequest struct {
	Monday    bool `json:"monday"`
	Tuesday   bool `json:"tuesday"`
	Wednesday bool `json:"wednesday"`
	Thursday  bool `json:"thursday"`
	Friday    bool `json:"friday"`
	Saturday  bool `json:"saturday"`
	Sunday    bool `json:"sunday"`
}

func (r availabilityRequest) toDomain() *coaching.Availability {
	return &coaching.Availability{
		Monday:    r.Monday,
		Tuesday:   r.Tuesday,
		Wednesday: r.Wednesday,
		Thursday:  r.Thursday,
		Friday:    r.Friday,
		Saturday:  r.Saturday,
		Sunday:    r.Sunday,
	}
}

func (h *Handler) HandleRegister(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required,min=10,max=80"`
		Email    string `json:"email" binding:"required,email,min=10,max=100"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.WriteErrorCode(c, http.StatusBadRequest, "INVALID_INPUT", "name, email and password are required")
		return
	}
	athlete, err := h.Athletes.Register(c.Request.Context(), usecase.RegisterAthleteInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"athlete": athlete})
}

func (h *Handler) HandleList(c *gin.Context) {
	filter := usecase.AthleteListFilter{Order: strings.TrimSpace(c.Query("order")), Take: 10}
	if raw := strings.TrimSpace(c.Query("skip")); raw != "" {
		if skip, err := strconv.Atoi(raw); err == nil && skip > 0 {
			filter.Skip = skip
		}
	}
	if raw := strings.TrimSpace(c.Query("take")); raw != "" {
		if take, err := strconv.Atoi(raw); err == nil && take > 0 {
			filter.Take = take
		}
	}
	athletes, err := h.Athletes.List(c.Request.Context(), filter)
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"athletes": athletes})
}

func (h *Handler) HandleGet(c *gin.Context) {
	principal, ok := common.PrincipalFromContext(c)
	if !ok {
		return
	}
	id, ok := common.ParseIntParam(c, "id")
	if !ok {
		return
	}
	athlete, err := h.Athletes.Get(c.Request.Context(), principal, id)
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"athlete": athlete})
}

func (h *Handler) HandleUpdate(c *gin.Context) {
	principal, ok := common.PrincipalFromContext(c)
	if !ok {
		return
	}
	id, ok := common.ParseIntParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Name         string               `json:"name" binding:"required,min=10,max=80"`
		Email        string               `json:"email" binding:"required,email,min=10,max=100"`
		Password     string               `json:"password" binding:"required"`
		Availability *availabilityRequest `json:"availability"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.WriteErrorCode(c, http.StatusBadRequest, "INVALID_INPUT", "name, email and password are required")
		return
	}
	input := usecase.UpdateAthleteInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	if req.Availability != nil {
		input.Availability = req.Availability.toDomain()
	}
	athlete, err := h.Athletes.Update(c.Request.Context(), principal, id, input)
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"athlete": athlete})
}

func (h *Handler) HandleDelete(c *gin.Context) {
	principal, ok := common.PrincipalFromContext(c)
	if !ok {
		return
	}
	id, ok := common.ParseIntParam(c, "id")
	if !ok {
		return
	}
	if err := h.Athletes.Delete(c.Request.Context(), principal, id); err != nil {
		common.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleSetCoach serves both halves of the pairing endpoint: a body with a
// coach id accepts a pairing, a body without one dissolves the current
// pairing and must carry the coach password.
func (h *Handler) HandleSetCoach(c *gin.Context) {
	principal, ok := common.PrincipalFromContext(c)
	if !ok {
		return
	}
	athleteID, ok := common.ParseIntParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		ID       *int   `json:"id"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.WriteErrorCode(c, http.StatusBadRequest, "INVALID_INPUT", "invalid request body")
		return
	}
	var athlete coaching.Athlete
	var err error
	if req.ID != nil {
		athlete, err = h.Pairing.AssignCoach(c.Request.Context(), principal, athleteID, *req.ID)
	} else {
		if req.Password == "" {
			common.WriteErrorCode(c, http.StatusBadRequest, "INVALID_INPUT", "password is required to remove a coach")
			return
		}
		athlete, err = h.Pairing.RemoveCoach(c.Request.Context(), principal, athleteID, req.Password)
	}
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"athlete": athlete})
}
