package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"bitbucket.org/mmdatafocus/claims_backend/config"
	"bitbucket.org/mmdatafocus/claims_backend/models"
	"bitbucket.org/mmdatafocus/claims_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError maps the model/workflow error taxonomy onto HTTP statuses.
// Anything unrecognized is an internal error: logged with full detail,
// returned without it.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, utils.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, utils.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, utils.ErrorRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	case errors.Is(err, utils.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, utils.ErrInvalidTransition), errors.Is(err, utils.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger := config.GetLogger()
		config.LogError(logger, "handlers_auth.go", "respondError", c.FullPath(), nil, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// respondBindError turns a binding failure into a 400. Tag-level validator
// failures carry field-by-field detail; malformed JSON gets a generic body.
func respondBindError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation failed",
			"fields": utils.ProcessValidationErrors(validationErrors),
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
}

// resolveIdentity loads the caller behind the request and returns a context
// carrying their id and role. Two credential paths land here: a JWT (id and
// role live in the claim) and an opaque session token (username resolved by
// SessionMiddleware, user loaded via redis cache then DB).
func resolveIdentity(c *gin.Context) (context.Context, *models.User, error) {
	ctx := c.Request.Context()

	if userId, ok := utils.GetUserIdFromContext(ctx); ok && userId > 0 {
		user, err := models.GetUser(ctx, userId)
		if err != nil {
			return ctx, nil, utils.ErrUnauthenticated
		}
		ctx = utils.SetUserRoleInContext(ctx, string(user.Role))
		return ctx, user, nil
	}

	username, ok := utils.GetUsernameFromContext(ctx)
	if !ok || username == "" {
		return ctx, nil, utils.ErrUnauthenticated
	}

	var user models.User
	exists, err := config.GetRedisObject("User:"+username, &user)
	if err != nil {
		return ctx, nil, err
	}
	if !exists {
		db := config.GetDB()
		if err := db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Take(&user).Error; err != nil {
			return ctx, nil, utils.ErrUnauthenticated
		}
		cacheHours := 1
		if v, err := strconv.Atoi(os.Getenv("TOKEN_HOUR_LIFESPAN")); err == nil && v > 0 {
			cacheHours = v
		}
		if err := config.SetRedisObject("User:"+username, &user, time.Duration(cacheHours)*time.Hour); err != nil {
			config.LogError(config.GetLogger(), "handlers_auth.go", "resolveIdentity", "cache user", username, err)
		}
	}
	if user.IsActive == nil || !*user.IsActive {
		return ctx, nil, utils.ErrUnauthenticated
	}

	ctx = utils.SetUserIdInContext(ctx, user.ID)
	ctx = utils.SetUserRoleInContext(ctx, string(user.Role))
	return ctx, &user, nil
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func loginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		info, err := models.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, info)
	}
}

func logoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := models.Logout(c.Request.Context())
		if err != nil || !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
	}
}

func currentUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, user, err := resolveIdentity(c)
		if err != nil {
			respondError(c, err)
			return
		}
		user.PrepareGive()
		c.JSON(http.StatusOK, user)
	}
}
