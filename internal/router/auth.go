package router

import "github.com/gin-gonic/gin"

func (r *Router) authRoutes(version *gin.RouterGroup) {
	auth := version.Group("/auth")
	{
		// Public routes (no authentication required)
		auth.POST("/login", r.authHandler.Login)
		auth.POST("/accept-invitation", r.authHandler.AcceptInvitation)
		auth.POST("/activate-account", r.authHandler.ActivateAccount)
		auth.POST("/resend-activation-email", r.authHandler.ResendActivationEmail)
		auth.POST("/verify-token", r.authHandler.VerifyToken)
		auth.POST("/forgot-password", r.authHandler.ForgotPassword)
		auth.POST("/reset-password", r.authHandler.ResetPassword)

		// Protected routes (JWT authentication required)
		protected := auth.Group("")
		protected.Use(r.jwtMw.RequireAuth())
		{
			protected.POST("/logout", r.authHandler.Logout)
		}
	}
}
