package identity

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vitals/vitals/internal/platform/openapi"
)

// Handler exposes the auth HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates an identity Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// RegisterRoutes mounts the auth routes on the given group and records them
// in the API documentation registry.
func (h *Handler) RegisterRoutes(g *echo.Group, docs *openapi.Registry) {
	g.POST("/register", h.register)
	g.POST("/login", h.login)

	docs.AddSchema("RegisterInput", map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"username": map[string]string{"type": "string"},
			"email":    map[string]string{"type": "string"},
			"password": map[string]string{"type": "string"},
		},
		"required": []string{"username", "email", "password"},
	})
	docs.AddSchema("LoginInput", map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"email":    map[string]string{"type": "string"},
			"password": map[string]string{"type": "string"},
		},
		"required": []string{"email", "password"},
	})
	docs.AddOperation(openapi.Operation{
		Method:     http.MethodPost,
		Path:       "/api/auth/register",
		Summary:    "Register a new user",
		Tag:        "Auth",
		RequestRef: "RegisterInput",
		Responses: map[int]string{
			201: "Token for the new user",
			400: "User already exists",
		},
	})
	docs.AddOperation(openapi.Operation{
		Method:     http.MethodPost,
		Path:       "/api/auth/login",
		Summary:    "Log in with email and password",
		Tag:        "Auth",
		RequestRef: "LoginInput",
		Responses: map[int]string{
			200: "Token",
			400: "Invalid credentials",
		},
	})
}

func (h *Handler) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username, email and password are required")
	}

	token, err := h.service.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return echo.NewHTTPError(http.StatusBadRequest, "User already exists")
		}
		return err
	}

	return c.JSON(http.StatusCreated, tokenResponse{Token: token})
}

func (h *Handler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	token, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid credentials")
		}
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}
