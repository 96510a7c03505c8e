package router

import "github.com/gin-gonic/gin"

func (r *Router) userRoutes(version *gin.RouterGroup) {
	users := version.Group("/users")
	users.Use(r.jwtMw.RequireAuth())
	{
		// Inviting and deleting users is an admin concern; reads and
		// self-service updates are open to any authenticated user.
		users.POST("", r.jwtMw.RequireRole("Admin"), r.userHandler.InviteUser)
		users.GET("", r.userHandler.GetAll)
		users.GET("/:id", r.userHandler.GetByID)
		users.PUT("/:id", r.userHandler.Update)
		users.PUT("/:id/password", r.userHandler.UpdatePassword)
		users.PUT("/:id/photo", r.userHandler.UploadPhoto)
		users.DELETE("/:id", r.jwtMw.RequireRole("Admin"), r.userHandler.Delete)
	}
}
