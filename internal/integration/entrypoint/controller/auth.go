// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/invoice-tracker/invoicetrack/internal/application/usecase/auth"
	domainerror "github.com/invoice-tracker/invoicetrack/internal/domain/error"
	"github.com/invoice-tracker/invoicetrack/internal/integration/entrypoint/dto"
)

// AuthController handles authentication endpoints.
type AuthController struct {
	registerUseCase *auth.RegisterUserUseCase
	loginUseCase    *auth.LoginUserUseCase
}

// NewAuthController creates a new auth controller instance.
func NewAuthController(
	registerUseCase *auth.RegisterUserUseCase,
	loginUseCase *auth.LoginUserUseCase,
) *AuthController {
	return &AuthController{
		registerUseCase: registerUseCase,
		loginUseCase:    loginUseCase,
	}
}

// Register handles POST /auth/register requests.
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Detail: "Invalid request body",
			Code:   string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	input := auth.RegisterUserInput{
		Email:    req.Email,
		Password: req.Password,
	}

	output, err := c.registerUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToUserResponse(output.User))
}

// Token handles POST /auth/token requests. Credentials arrive form-encoded,
// with the email in the username field.
func (c *AuthController) Token(ctx *gin.Context) {
	username := ctx.PostForm("username")
	password := ctx.PostForm("password")
	if username == "" || password == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Detail: "username and password are required",
			Code:   string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	input := auth.LoginUserInput{
		Email:    username,
		Password: password,
	}

	output, err := c.loginUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: output.AccessToken,
		TokenType:   "bearer",
	})
}

// handleAuthError maps authentication domain errors to HTTP responses.
func (c *AuthController) handleAuthError(ctx *gin.Context, err error) {
	var authErr *domainerror.AuthError
	if !errors.As(err, &authErr) {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Detail: "Internal server error",
		})
		return
	}

	switch authErr.Code {
	case domainerror.ErrCodeEmailExists:
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{
			Detail: "Email already registered",
			Code:   string(authErr.Code),
		})
	case domainerror.ErrCodeWeakPassword, domainerror.ErrCodeInvalidEmail:
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Detail: authErr.Message,
			Code:   string(authErr.Code),
		})
	case domainerror.ErrCodeInvalidCredentials:
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Detail: "Incorrect email or password",
			Code:   string(authErr.Code),
		})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Detail: "Internal server error",
			Code:   string(authErr.Code),
		})
	}
}
