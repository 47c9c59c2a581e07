package server

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nomadfest/api/config"
	"github.com/nomadfest/api/internal/auth"
	"github.com/nomadfest/api/internal/collections"
	"github.com/nomadfest/api/internal/events"
	"github.com/nomadfest/api/internal/handlers"
	"github.com/nomadfest/api/internal/middleware"
	"github.com/nomadfest/api/internal/stores"
)

func Start(logger *zap.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	r := gin.Default()

	setupRoutes(r, buildServices(db, logger))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info("server listening", zap.String("port", port))
	return r.Run(":" + port)
}

func buildServices(db *gorm.DB, logger *zap.Logger) *middleware.Services {
	eventStore := stores.NewEventStore(db)
	microStore := stores.NewMicroeventStore(db)
	engine := collections.NewEngine(stores.NewCollectionStore(db), eventStore, microStore, logger)

	return &middleware.Services{
		DB:              db,
		Events:          events.NewEventLogic(db, eventStore, engine, logger),
		Microevents:     events.NewMicroeventLogic(db, microStore, engine, logger),
		Collections:     engine,
		EventTypes:      stores.NewEventTypeStore(db),
		CampingProfiles: stores.NewCampingProfileStore(db),
	}
}

func setupRoutes(r *gin.Engine, services *middleware.Services) {
	r.Use(middleware.ServicesMiddleware(services))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	public := r.Group("/v1")
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)

		eventPublic := public.Group("/events")
		{
			eventPublic.GET("", handlers.ListEvents)
			eventPublic.GET("/search", handlers.SearchNearbyEvents)
			eventPublic.GET("/type/:type_id", handlers.GetEventsByType)
			eventPublic.GET("/:id", handlers.GetEvent)
			eventPublic.GET("/:id/microevents", handlers.GetMicroeventsByEvent)
		}

		microPublic := public.Group("/microevents")
		{
			microPublic.GET("", handlers.ListMicroevents)
			microPublic.GET("/:id", handlers.GetMicroevent)
		}

		public.GET("/event-types", handlers.ListEventTypes)
		public.GET("/event-types/:id", handlers.GetEventType)

		public.GET("/camping-profiles", handlers.ListCampingProfiles)
		public.GET("/camping-profiles/:id", handlers.GetCampingProfile)
		public.GET("/camping-profiles/:id/apply", handlers.ApplyCampingProfile)
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		eventProtected := protected.Group("/events")
		{
			eventProtected.POST("", handlers.CreateEvent)
			eventProtected.PUT("/:id", handlers.UpdateEvent)
			eventProtected.DELETE("/:id", handlers.DeleteEvent)
		}

		microProtected := protected.Group("/microevents")
		{
			microProtected.POST("", handlers.CreateMicroevent)
			microProtected.PUT("/:id", handlers.UpdateMicroevent)
			microProtected.DELETE("/:id", handlers.DeleteMicroevent)
		}

		profile := protected.Group("/profile")
		{
			profile.GET("", handlers.GetProfile)
			profile.PUT("", handlers.UpdateProfile)
		}

		collection := protected.Group("/collection")
		{
			collection.GET("", handlers.GetCollection)
			collection.POST("/sync", handlers.SyncCollection)

			collection.POST("/events/:id/favorite", handlers.EventFavoriteToggle)
			collection.POST("/events/:id/save", handlers.EventSaveToggle)
			collection.POST("/microevents/:id/favorite", handlers.MicroeventFavoriteToggle)
			collection.POST("/microevents/:id/save", handlers.MicroeventSaveToggle)

			collection.GET("/events/favorites", handlers.GetFavoriteEvents)
			collection.GET("/events/saved", handlers.GetSavedEvents)
			collection.GET("/events/created", handlers.GetCreatedEvents)
			collection.GET("/microevents/favorites", handlers.GetFavoriteMicroevents)
			collection.GET("/microevents/saved", handlers.GetSavedMicroevents)
			collection.GET("/microevents/created", handlers.GetCreatedMicroevents)
		}

		admin := protected.Group("/admin")
		admin.Use(middleware.RequireRole(auth.RoleAdmin))
		{
			admin.GET("/users", handlers.ListUsers)
			admin.POST("/event-types", handlers.CreateEventType)
			admin.PUT("/event-types/:id", handlers.UpdateEventType)
			admin.DELETE("/event-types/:id", handlers.DeleteEventType)
			admin.POST("/camping-profiles", handlers.CreateCampingProfile)
			admin.PUT("/camping-profiles/:id", handlers.UpdateCampingProfile)
			admin.DELETE("/camping-profiles/:id", handlers.DeleteCampingProfile)

			super := admin.Group("")
			super.Use(middleware.RequireRole(auth.RoleSuperAdmin))
			{
				super.PUT("/users/:id/role", handlers.UpdateUserRole)
			}
		}
	}
}
