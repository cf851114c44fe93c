package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hzerradi/avancement-api/internal/controller"
	"github.com/hzerradi/avancement-api/internal/dto"
	"github.com/hzerradi/avancement-api/internal/middleware"
	"github.com/hzerradi/avancement-api/internal/service"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login godoc
// @Summary Log in
// @Description Authenticate with email and password. Sets the session cookie and returns the role landing path.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Login: failed to bind request")
		controller.BadRequest(ctx, err)
		return
	}

	token, user, err := c.authService.Login(req)
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.TokenCookie, token, int(c.authService.TokenTTL().Seconds()), "/", "", false, true)
	ctx.JSON(http.StatusOK, dto.AuthResponse{User: *user, RedirectTo: service.LandingPath(user.Role)})
}

// Logout godoc
// @Summary Log out
// @Description Clear the session cookie.
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	ctx.SetCookie(middleware.TokenCookie, "", -1, "/", "", false, true)
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Déconnexion réussie"})
}

// Me godoc
// @Summary Current user
// @Description Return the authenticated user and their landing path.
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user, err := c.authService.Me(middleware.CurrentUserID(ctx))
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.AuthResponse{User: *user, RedirectTo: service.LandingPath(user.Role)})
}
