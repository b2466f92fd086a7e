package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-shop/middleware"
	"go-shop/repository"
	"go-shop/services"
	"go-shop/utils"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Error().Err(err).Msg("failed to encode response")
		}
	}
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondError maps business errors to specific statuses; anything
// unrecognized collapses to a generic 500.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrProductInactive),
		errors.Is(err, services.ErrEmptyCart):
		respondMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrItemNotFound),
		errors.Is(err, services.ErrCartNotFound),
		errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrCategoryNotFound):
		respondMessage(w, http.StatusNotFound, err.Error())
	default:
		log.Error().Err(err).Msg("request failed")
		respondMessage(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

// requestUser returns the authenticated user's ID and claims, or writes a
// 401 and reports false.
func requestUser(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, *utils.Claims, bool) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return primitive.NilObjectID, nil, false
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return primitive.NilObjectID, nil, false
	}
	return userID, claims, true
}

// pathObjectID parses a 24-hex path variable into an ObjectID, writing a
// 400 on failure.
func pathObjectID(w http.ResponseWriter, raw string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid ID")
		return primitive.NilObjectID, false
	}
	return id, true
}
