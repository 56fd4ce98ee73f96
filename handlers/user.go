package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sittawut/doctors-portal/models"
	"github.com/sittawut/doctors-portal/store"
)

type UserHandler struct {
	users  UserStore
	tokens TokenSigner
}

func NewUserHandler(users UserStore, tokens TokenSigner) *UserHandler {
	return &UserHandler{
		users:  users,
		tokens: tokens,
	}
}

// UpsertUser records the user on login and hands back a fresh bearer token.
func (h *UserHandler) UpsertUser(c *gin.Context) {
	email := c.Param("email")
	if email == "" {
		respondError(c, http.StatusBadRequest, "email is required")
		return
	}

	var req models.UpsertUserRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	result, err := h.users.Upsert(c.Request.Context(), email, req)
	if err != nil {
		respondFailure(c, "UserHandler", http.StatusInternalServerError, "Failed to save user", err)
		return
	}

	token, err := h.tokens.Sign(email)
	if err != nil {
		respondFailure(c, "UserHandler", http.StatusInternalServerError, "Failed to generate token", err)
		return
	}

	c.JSON(http.StatusOK, models.UpsertUserResponse{
		Result: result,
		Token:  token,
	})
}

func (h *UserHandler) MakeAdmin(c *gin.Context) {
	result, err := h.users.MakeAdmin(c.Request.Context(), c.Param("email"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		respondFailure(c, "UserHandler", http.StatusInternalServerError, "Failed to update user role", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetAdminStatus reports whether the email belongs to an admin. Unknown
// emails are simply not admins.
func (h *UserHandler) GetAdminStatus(c *gin.Context) {
	user, err := h.users.FindByEmail(c.Request.Context(), c.Param("email"))
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		respondFailure(c, "UserHandler", http.StatusInternalServerError, "Failed to find user", err)
		return
	}
	c.JSON(http.StatusOK, models.AdminStatusResponse{Admin: user.IsAdmin()})
}

func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		respondFailure(c, "UserHandler", http.StatusInternalServerError, "Failed to fetch users", err)
		return
	}
	c.JSON(http.StatusOK, users)
}
