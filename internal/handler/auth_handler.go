package handler

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/yusufkecer/body-composition-backend/internal/domain"
	"github.com/yusufkecer/body-composition-backend/internal/middleware"
	"github.com/yusufkecer/body-composition-backend/internal/repository"
)

const minPasswordLength = 6

type AccountStore interface {
	Create(ctx context.Context, email, passwordHash string) (int64, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
}

type AuthHandler struct {
	jwtSecret  string
	repo       AccountStore
	bcryptCost int
}

func NewAuthHandler(jwtSecret string, repo AccountStore) *AuthHandler {
	return &AuthHandler{jwtSecret: jwtSecret, repo: repo, bcryptCost: bcrypt.DefaultCost}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	email, password, ok := h.credentials(w, r)
	if !ok {
		return
	}
	if len(password) < minPasswordLength {
		writeError(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), h.bcryptCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	accountID, err := h.repo.Create(r.Context(), email, string(passwordHash))
	if errors.Is(err, repository.ErrDuplicate) {
		writeError(w, http.StatusConflict, "email already exists")
		return
	}
	if err != nil {
		middleware.Logger(r.Context()).WithError(err).Error("register failed")
		writeError(w, http.StatusInternalServerError, "failed to create account")
		return
	}

	h.issueToken(w, r, http.StatusCreated, accountID, email)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email, password, ok := h.credentials(w, r)
	if !ok {
		return
	}

	account, err := h.repo.GetByEmail(r.Context(), email)
	if err != nil {
		middleware.Logger(r.Context()).WithError(err).Error("login lookup failed")
		writeError(w, http.StatusInternalServerError, "failed to login")
		return
	}
	if account == nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	h.issueToken(w, r, http.StatusOK, account.ID, account.Email)
}

func (h *AuthHandler) credentials(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	var req domain.Credentials
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return "", "", false
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return "", "", false
	}
	if !validEmail(email) {
		writeError(w, http.StatusBadRequest, "invalid email format")
		return "", "", false
	}
	return email, req.Password, true
}

func (h *AuthHandler) issueToken(w http.ResponseWriter, r *http.Request, status int, accountID int64, email string) {
	token, expires, err := middleware.GenerateTokenAt(accountID, email, h.jwtSecret, time.Now())
	if err != nil {
		middleware.Logger(r.Context()).WithError(err).Error("failed to sign token")
		writeError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	writeJSON(w, status, domain.TokenResponse{Token: token, AccountID: accountID, ExpiresAt: expires})
}

// validEmail accepts a bare address whose domain has a dot.
func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return at > 0 && strings.Contains(email[at:], ".")
}
