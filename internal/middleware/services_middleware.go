package middleware

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nomadfest/api/internal/collections"
	"github.com/nomadfest/api/internal/events"
	"github.com/nomadfest/api/internal/stores"
)

// Services bundles the assembled application services for handlers.
type Services struct {
	DB              *gorm.DB
	Events          *events.EventLogic
	Microevents     *events.MicroeventLogic
	Collections     *collections.Engine
	EventTypes      *stores.EventTypeStore
	CampingProfiles *stores.CampingProfileStore
}

func ServicesMiddleware(services *Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("services", services)
		c.Next()
	}
}

func GetServices(c *gin.Context) *Services {
	services, exists := c.Get("services")
	if !exists {
		return nil
	}
	return services.(*Services)
}
