package handlers

import (
	"errors"
	"net/http"

	"github.com/Happyesss/careerlive---alpha/config"
	"github.com/Happyesss/careerlive---alpha/middleware"
	userService "github.com/Happyesss/careerlive---alpha/services/user"
	"github.com/Happyesss/careerlive---alpha/utils"

	"github.com/gin-gonic/gin"
)

// UserSvc is wired at startup.
var UserSvc userService.UserService

// sessionCookieMaxAge matches the token lifetime.
const sessionCookieMaxAge = 7 * 24 * 60 * 60

// Register creates an account and opens a session.
func Register(c *gin.Context) {
	var in userService.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	user, token, err := UserSvc.Register(c.Request.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, userService.ErrEmailTaken):
			utils.JSONError(c, http.StatusConflict, "email already registered", "")
		case errors.Is(err, userService.ErrInvalidRole):
			utils.JSONError(c, http.StatusBadRequest, "role must be mentor or mentee", "")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to register", err.Error())
		}
		return
	}

	setAuthCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

// Login verifies credentials and opens a session.
func Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	user, token, err := UserSvc.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, userService.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, "invalid email or password", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to log in", err.Error())
		return
	}

	setAuthCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

// Logout clears the session cookie.
func Logout(c *gin.Context) {
	c.SetCookie("auth-token", "", -1, "/", "", config.IsProduction(), true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the authenticated user.
func Me(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	user, err := UserSvc.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, userService.ErrUserNotFound) {
			utils.JSONError(c, http.StatusNotFound, "user not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch user", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func setAuthCookie(c *gin.Context, token string) {
	c.SetCookie("auth-token", token, sessionCookieMaxAge, "/", "", config.IsProduction(), true)
}
