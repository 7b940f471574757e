package coaches

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tritogether/internal/http/common"
	"tritogether/internal/usecase"
)

type Handler struct {
	Coaches *usecase.CoachService
}

func NewHandler(coaches *usecase.CoachService) *Handler {
	return &Handler{Coaches: coaches}
}

func (h *Handler) HandleRegister(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required,min=5,max=80"`
		Email    string `json:"email" binding:"required,email,min=10,max=100"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.WriteErrorCode(c, http.StatusBadRequest, "INVALID_INPUT", "name, email and password are required")
		return
	}
	coach, err := h.Coaches.Register(c.Request.Context(), usecase.RegisterCoachInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"coach": coach})
}

func (h *Handler) HandleList(c *gin.Context) {
	coaches, err := h.Coaches.List(c.Request.Context())
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"coaches": coaches})
}

func (h *Handler) HandleGet(c *gin.Context) {
	id, ok := common.ParseIntParam(c, "id")
	if !ok {
		return
	}
	coach, err := h.Coaches.Get(c.Request.Context(), id)
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"coach": coach})
}

func (h *Handler) HandleListAthletes(c *gin.Context) {
	principal, ok := common.PrincipalFromContext(c)
	if !ok {
		return
	}
	id, ok := common.ParseIntParam(c, "id")
	if !ok {
		return
	}
	order := strings.TrimSpace(c.Query("order"))
	athletes, err := h.Coaches.ListAthletes(c.Request.Context(), principal, id, order)
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"athletes": athletes})
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
		Name     string `json:"name" binding:"required,min=5,max=80"`
		Email    string `json:"email" binding:"required,email,min=10,max=100"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.WriteErrorCode(c, http.StatusBadRequest, "INVALID_INPUT", "name, email and password are required")
		return
	}
	coach, err := h.Coaches.Update(c.Request.Context(), principal, id, usecase.UpdateCoachInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"coach": coach})
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
	if err := h.Coaches.Delete(c.Request.Context(), principal, id); err != nil {
		common.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
