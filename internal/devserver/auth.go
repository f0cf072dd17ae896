package devserver

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"auctionhub/internal/models"
	"auctionhub/internal/validation"
)

const (
	tokenIssuer   = "auctionhub-api"
	tokenAudience = "auctionhub-client"
	tokenTTL      = 7 * 24 * time.Hour
)

// Register handles POST /api/register.
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Phone     string `json:"phone"`
		Address   string `json:"address"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := validation.ValidateSignup(validation.SignupForm{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}); err != nil {
		return respondError(c, fiber.StatusBadRequest, err.Error())
	}

	var count int64
	if err := s.db.Model(&models.User{}).
		Where("username = ? OR email = ?", req.Username, req.Email).
		Count(&count).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Database error")
	}
	if count > 0 {
		return respondError(c, fiber.StatusConflict, "Username or email already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  string(hashed),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Address:   req.Address,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /api/login.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validation.ValidateLogin(req.Username, req.Password); err != nil {
		return respondError(c, fiber.StatusBadRequest, err.Error())
	}

	var user models.User
	if err := s.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, fiber.StatusUnauthorized, "Invalid username or password")
		}
		return respondError(c, fiber.StatusInternalServerError, "Database error")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Invalid username or password")
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}
	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Logout handles POST /api/logout. Tokens are stateless here, so this only
// confirms the credential was valid.
func (s *Server) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// generateToken creates a signed JWT for the given user ID.
func (s *Server) generateToken(userID uint) (string, error) {
	if s.config.JWTSecret == "" {
		return "", errors.New("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"exp": now.Add(tokenTTL).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// AuthRequired returns the authentication middleware. The client sends the
// stored credential verbatim in the Authorization header; a Bearer prefix is
// also accepted.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := strings.TrimSpace(c.Get("Authorization"))
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")
		if tokenString == "" {
			return respondError(c, fiber.StatusUnauthorized, "Authorization required")
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		}, jwt.WithIssuer(tokenIssuer), jwt.WithAudience(tokenAudience))
		if err != nil || !token.Valid {
			return respondError(c, fiber.StatusUnauthorized, "Invalid or expired token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return respondError(c, fiber.StatusUnauthorized, "Invalid token claims")
		}
		sub, ok := claims["sub"].(string)
		if !ok {
			return respondError(c, fiber.StatusUnauthorized, "Invalid subject claim")
		}
		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil {
			return respondError(c, fiber.StatusUnauthorized, "Invalid user ID in token")
		}

		c.Locals("userID", uint(userID))
		return c.Next()
	}
}
