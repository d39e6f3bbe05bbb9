package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"combi_rides/internal/apperr"
	"combi_rides/internal/middleware"
	"combi_rides/internal/models"
	"combi_rides/internal/store"
)

type AuthController struct {
	Store  store.Store
	Secret []byte
}

func NewAuthController(st store.Store, secret []byte) *AuthController {
	return &AuthController{Store: st, Secret: secret}
}

type signupInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

// Signup creates a passenger or driver account. Admin accounts are seeded,
// never self-assigned.
func (ac *AuthController) Signup(c *gin.Context) {
	var input signupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := models.RolePassenger
	if input.Role != "" {
		parsed, ok := models.ParseRole(input.Role)
		if !ok || parsed == models.RoleAdmin {
			respondError(c, apperr.Validation("role must be passenger or driver"))
			return
		}
		role = parsed
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, apperr.Internal(err, "could not hash password"))
		return
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashed),
		Phone:    input.Phone,
		Role:     role,
		IsActive: true,
	}
	if err := ac.Store.CreateUser(c.Request.Context(), &user); err != nil {
		respondError(c, err)
		return
	}

	token, err := middleware.GenerateToken(ac.Secret, user.ID, user.Role)
	if err != nil {
		respondError(c, apperr.Internal(err, "could not generate token"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

func (ac *AuthController) Login(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ac.Store.UserByEmail(c.Request.Context(), body.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil || !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found or invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found or invalid credentials"})
		return
	}

	token, err := middleware.GenerateToken(ac.Secret, user.ID, user.Role)
	if err != nil {
		respondError(c, apperr.Internal(err, "could not generate token"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}
