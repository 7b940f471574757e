package authn

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tritogether/internal/domain/coaching"
	"tritogether/internal/http/common"
	"tritogether/internal/usecase"
)

type Handler struct {
	Auth *usecase.AuthService
}

func NewHandler(auth *usecase.AuthService) *Handler {
	return &Handler{Auth: auth}
}

func (h *Handler) HandleSignIn(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		Rol      string `json:"rol" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.WriteErrorCode(c, http.StatusBadRequest, "INVALID_INPUT", "email, password and rol are required")
		return
	}
	role, err := coaching.ParseRole(req.Rol)
	if err != nil {
		common.WriteErrorCode(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}
	result, err := h.Auth.SignIn(c.Request.Context(), usecase.SignInInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":         result.User,
		"access_token": result.AccessToken,
	})
}

func (h *Handler) HandleResetPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
		Rol   string `json:"rol" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.WriteErrorCode(c, http.StatusBadRequest, "INVALID_INPUT", "a valid email and rol are required")
		return
	}
	role, err := coaching.ParseRole(req.Rol)
	if err != nil {
		common.WriteErrorCode(c, http.StatusBadRequest, "INVALID_INPUT", "unknown rol")
		return
	}
	if err := h.Auth.ResetPassword(c.Request.Context(), role, req.Email); err != nil {
		common.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) HandleChangePassword(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required,email"`
		Password    string `json:"password" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required"`
		Rol         string `json:"rol" binding:"required"`
		Temporary   bool   `json:"temporary"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.WriteErrorCode(c, http.StatusBadRequest, "INVALID_INPUT", "email, password, newPassword and rol are required")
		return
	}
	role, err := coaching.ParseRole(req.Rol)
	if err != nil {
		common.WriteErrorCode(c, http.StatusBadRequest, "INVALID_INPUT", "unknown rol")
		return
	}
	err = h.Auth.ChangePassword(c.Request.Context(), usecase.ChangePasswordInput{
		Email:       req.Email,
		Password:    req.Password,
		NewPassword: req.NewPassword,
		Role:        role,
		Temporary:   req.Temporary,
	})
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
