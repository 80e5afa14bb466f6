package main

import (
	"net/http"

	"bitbucket.org/mmdatafocus/claims_backend/models"
	"bitbucket.org/mmdatafocus/claims_backend/workflow"
	"github.com/gin-gonic/gin"
)

func listUsersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, _, err := resolveIdentity(c)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := workflow.Authorize(ctx, workflow.OpListUsers); err != nil {
			respondError(c, err)
			return
		}

		users, err := models.GetAllUsers(ctx)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

type updateRoleRequest struct {
	Role models.UserRole `json:"role" binding:"required"`
}

func updateUserRoleHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, _, err := resolveIdentity(c)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := workflow.Authorize(ctx, workflow.OpUpdateUserRole); err != nil {
			respondError(c, err)
			return
		}
		id, ok := pathId(c)
		if !ok {
			return
		}

		var req updateRoleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		user, err := models.UpdateUserRole(ctx, id, req.Role)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
