package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	zlog "github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/referly/referral-be/internal/auth"
	"github.com/referly/referral-be/internal/http/respond"
	"github.com/referly/referral-be/internal/models"
	"github.com/referly/referral-be/internal/models/dto"
	"github.com/referly/referral-be/internal/storage"
	"github.com/referly/referral-be/internal/validate"
)

// AuthHandler owns the register and login endpoints.
type AuthHandler struct {
	users  storage.UserStore
	tokens *auth.TokenManager
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(users storage.UserStore, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/login", h.handleLogin)
	mux.HandleFunc("/register", h.handleRegister)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	user, err := h.users.FindUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusBadRequest, "This email is not registered")
			return
		}
		zlog.Error().Err(err).Msg("login: fetch user failed")
		respond.Error(w, http.StatusInternalServerError, "Error occurred")
		return
	}

	// The empty-password check deliberately runs after the lookup so that an
	// unknown email always reports "not registered", whatever the password.
	if req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "Password not provided")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respond.Error(w, http.StatusBadRequest, "Wrong Password")
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		zlog.Error().Err(err).Msg("login: token generation failed")
		respond.Error(w, http.StatusInternalServerError, "Error occurred")
		return
	}

	respond.JSON(w, http.StatusOK, dto.LoginResponse{
		Msg:   "Login successfully",
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	})
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if err := validate.Struct(req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		zlog.Error().Err(err).Msg("register: hash password failed")
		respond.JSON(w, http.StatusInternalServerError, "Error occurred")
		return
	}

	_, err = h.users.CreateUser(r.Context(), models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrDuplicateName):
			respond.JSON(w, http.StatusConflict, "Username already exists, please try another username.")
		case errors.Is(err, storage.ErrDuplicateEmail):
			respond.JSON(w, http.StatusConflict, "User with this email already exists")
		default:
			zlog.Error().Err(err).Msg("register: create user failed")
			respond.JSON(w, http.StatusInternalServerError, "Error occurred")
		}
		return
	}

	respond.JSON(w, http.StatusCreated, "Registered successfully")
}
