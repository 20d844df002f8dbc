package handlers

import (
	"github.com/dimitrije/portal-api/internal/middleware"
	"github.com/dimitrije/portal-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type UserHandler struct {
	userService UserServiceInterface
}

func NewUserHandler(userService UserServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetMe returns the portal user linked to the token's subject.
func (h *UserHandler) GetMe(c *drift.Context) {
	subject := middleware.GetUserID(c)
	if subject == "" {
		c.Unauthorized("not authenticated")
		return
	}

	user, err := h.userService.GetByAuth0ID(c.Request.Context(), subject)
	if err != nil {
		failed(c, err, "user not found", "failed to get user")
		return
	}

	c.JSON(200, dto.UserResponse{
		ID:      user.ID,
		Email:   user.Email,
		Name:    user.Name,
		Role:    user.Role,
		Company: user.Company,
	})
}
