package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	api := router.Group("/api")
	{
		api.GET("/listings", handler.GetListings)
		api.POST("/listings", handler.CreateListing)
		api.PUT("/listings/:id", handler.UpdateListing)
		api.POST("/listings/import", handler.ImportListings)
		api.GET("/cities", handler.GetCities)

		users := api.Group("/users/:user_id")
		{
			users.GET("/alerts", handler.GetAlerts)
			users.POST("/alerts", handler.AddAlert)
			users.DELETE("/alerts/:alert_id", handler.RemoveAlert)

			users.GET("/notifications", handler.GetNotifications)
			users.PUT("/notifications/:id/read", handler.MarkNotificationRead)
			users.DELETE("/notifications/:id", handler.DeleteNotification)
		}
	}
}
