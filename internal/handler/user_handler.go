package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sitecms/internal/middleware"
	"github.com/sitecms/internal/service"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=admin editor"`
	Active   *bool  `json:"active"`
}

type userUpdateRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=100"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8"`
	Role     *string `json:"role" binding:"omitempty,oneof=admin editor"`
	Active   *bool   `json:"active"`
}

// RegisterUser creates an account on behalf of an admin.
func (a *API) RegisterUser(c *gin.Context) {
	var payload registerRequest
	if !bind(c, &payload) {
		return
	}

	user, err := a.users.Create(service.UserInput{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
		Role:     payload.Role,
		Active:   payload.Active,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// ListUsers returns accounts filtered by ?search= and ?role=.
func (a *API) ListUsers(c *gin.Context) {
	result, err := a.users.List(service.UserFilter{
		Search:  c.Query("search"),
		Role:    c.Query("role"),
		Page:    queryInt(c, "page"),
		PerPage: queryInt(c, "perPage"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetUser returns a single account.
func (a *API) GetUser(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	user, err := a.users.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser changes an account, including role and active flag.
func (a *API) UpdateUser(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var payload userUpdateRequest
	if !bind(c, &payload) {
		return
	}

	user, err := a.users.Update(id, service.UserUpdate{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
		Role:     payload.Role,
		Active:   payload.Active,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser removes an account other than the caller's own.
func (a *API) DeleteUser(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	actor, _ := middleware.CurrentUser(c)
	var actorID uint
	if actor != nil {
		actorID = actor.ID
	}

	if err := a.users.Delete(id, actorID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
