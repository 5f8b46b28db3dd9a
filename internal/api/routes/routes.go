// server/internal/api/routes/routes.go
package routes

import (
	"freight-shipment-api-server/config"
	"freight-shipment-api-server/internal/api/handlers"
	"freight-shipment-api-server/internal/api/middleware"
	"freight-shipment-api-server/internal/s3"
	"freight-shipment-api-server/internal/shipment"
	"freight-shipment-api-server/internal/socket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupRouter wires the handlers onto the gin engine.
func SetupRouter(
	shipmentService *shipment.Service,
	cfg config.Config,
	db *mongo.Database,
	s3Uploader *s3.Uploader,
	wsHub *socket.Hub,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	shipmentHandler := &handlers.ShipmentHandler{Service: shipmentService, S3Uploader: s3Uploader}
	userHandler := &handlers.UserHandler{DB: db, Cfg: cfg}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub}

	api := router.Group("/api")
	{
		// WebSocket endpoint for risk alerts (token passed as query param)
		api.GET("/ws", webSocketHandler.ServeWs)

		auth := api.Group("/auth")
		{
			auth.POST("/login", userHandler.Login)
			auth.POST("/signup", userHandler.Signup)
		}

		shipments := api.Group("/shipments")
		{
			// Public read endpoints
			shipments.GET("/", shipmentHandler.GetShipments)
			shipments.GET("/:id", shipmentHandler.GetShipmentByID)

			// Everything that mutates requires a logged-in user
			protected := shipments.Group("/")
			protected.Use(middleware.Authenticate())
			{
				protected.POST("/", shipmentHandler.AddShipment)
				protected.PUT("/:id", shipmentHandler.UpdateShipment)
				protected.DELETE("/:id", shipmentHandler.RemoveShipment)

				protected.POST("/:id/msg", shipmentHandler.AddShipmentMsg)
				protected.DELETE("/:id/msg/:msgId", shipmentHandler.RemoveShipmentMsg)

				protected.POST("/:id/delivery-photo", shipmentHandler.UploadDeliveryPhoto)
			}
		}
	}

	return router
}
