package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rzlb/FanPhoto-v3-sub001/internal/db"
)

const tokenTTL = 12 * time.Hour

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRes struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// Login checks credentials and issues a signed token for the admin
// endpoints.
func Login(gdb *gorm.DB, secret []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in loginReq
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request")
			return
		}

		var u db.User
		err := gdb.WithContext(r.Context()).
			Where("username = ?", strings.TrimSpace(in.Username)).
			First(&u).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid_credentials")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "db_lookup_failed")
			return
		}

		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
			writeError(w, http.StatusUnauthorized, "invalid_credentials")
			return
		}

		exp := time.Now().Add(tokenTTL)
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": u.Username,
			"exp": exp.Unix(),
		})
		signed, err := token.SignedString(secret)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "token_sign_failed")
			return
		}

		toJSON(w, http.StatusOK, loginRes{
			Token:     signed,
			ExpiresAt: exp.UTC().Format(time.RFC3339),
		})
	}
}

// authRequired guards the moderation and settings endpoints. Accepts
// "Authorization: Bearer <token>".
func authRequired(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if raw == "" {
				writeError(w, http.StatusUnauthorized, "missing_token")
				return
			}

			token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				writeError(w, http.StatusUnauthorized, "invalid_token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
