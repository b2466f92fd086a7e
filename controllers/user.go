package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"go-shop/models"
	"go-shop/repository"
	"go-shop/utils"
)

// UserController handles user-related requests
type UserController struct {
	users    *repository.UserRepository
	tokens   *utils.TokenManager
	validate *validator.Validate
}

// NewUserController creates a new UserController
func NewUserController(users *repository.UserRepository, tokens *utils.TokenManager) *UserController {
	return &UserController{
		users:    users,
		tokens:   tokens,
		validate: validator.New(),
	}
}

type registerRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Username  string `json:"username" validate:"required,min=3,max=20"`
	Email     string `json:"email" validate:"required,email"`
	MobileNo  string `json:"mobile_no" validate:"required"`
	Password  string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updatePasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// Register handles user registration
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := uc.validate.Struct(req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	exists, err := uc.users.ExistsByEmailOrUsername(ctx, req.Email, req.Username)
	if err != nil {
		respondError(w, err)
		return
	}
	if exists {
		respondMessage(w, http.StatusBadRequest, "User already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, err)
		return
	}

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
		MobileNo:  req.MobileNo,
		Password:  string(hash),
	}
	if err := uc.users.Create(ctx, user); err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusCreated, "User registered successfully")
}

// Login handles user authentication
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := uc.validate.Struct(req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := uc.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			respondMessage(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		respondError(w, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		respondMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := uc.tokens.Generate(user)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Details retrieves the authenticated user's profile.
func (uc *UserController) Details(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requestUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// UpdatePassword sets a new password for the authenticated user.
func (uc *UserController) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requestUser(w, r)
	if !ok {
		return
	}

	var req updatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := uc.validate.Struct(req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := uc.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Password updated successfully")
}

// SetAsAdmin grants the admin role to a user. Admin only.
func (uc *UserController) SetAsAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := pathObjectID(w, mux.Vars(r)["userId"])
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := uc.users.SetAdmin(ctx, id, true); err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "User set as admin successfully")
}
