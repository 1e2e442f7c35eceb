package stubapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/kondoo/console/core"
)

const tokenTTL = 24 * time.Hour

var (
	errAuthenticationFailed = echo.NewHTTPError(http.StatusBadRequest, "authentication failed")
	errUnauthorized         = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
)

func (s *server) login(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return errAuthenticationFailed
	}

	s.db.mu.RLock()
	admin := s.db.admin
	s.db.mu.RUnlock()

	if core.CleanString(body.Email, true) != admin.Email {
		return errAuthenticationFailed
	}
	if err := bcrypt.CompareHashAndPassword(admin.PasswordHash, []byte(body.Password)); err != nil {
		return errAuthenticationFailed
	}

	now := time.Now()
	claims := jwt.StandardClaims{
		Subject:   admin.Email,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.opts.Conf.Stub.SecretKey))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"token": token})
}

func (s *server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		auth := c.Request().Header.Get(echo.HeaderAuthorization)
		raw := strings.TrimPrefix(auth, "Bearer ")
		if raw == "" || raw == auth {
			return errUnauthorized
		}
		claims := jwt.StandardClaims{}
		token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errUnauthorized
			}
			return []byte(s.opts.Conf.Stub.SecretKey), nil
		})
		if err != nil || !token.Valid {
			return errUnauthorized
		}
		return next(c)
	}
}
