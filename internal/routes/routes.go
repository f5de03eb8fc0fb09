package routes

import (
	"time"

	"github.com/firewatchhq/firewatch-backend/internal/config"
	"github.com/firewatchhq/firewatch-backend/internal/handlers"
	"github.com/firewatchhq/firewatch-backend/internal/middleware"
	"github.com/firewatchhq/firewatch-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

// Handlers bundles everything Setup wires into the app.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Users    *handlers.UserHandler
	News     *handlers.NewsHandler
	Ingest   *handlers.IngestHandler
	Tags     *handlers.TagHandler
	Bookmark *handlers.BookmarkHandler
	Activity *handlers.ActivityHandler
}

func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, h *Handlers) {
	app.Get("/health", handlers.Health)

	jwt := middleware.JWTProtected(cfg)
	editorUp := middleware.RoleRequired(db, models.RoleEditor, models.RoleAdmin)
	reporterUp := middleware.RoleRequired(db, models.RoleReporter, models.RoleEditor, models.RoleAdmin)
	adminOnly := middleware.AdminRequired(db)

	// Credential endpoints get a tight sliding window to slow brute force.
	authLimiter := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
	})

	auth := app.Group("/auth")
	auth.Post("/register", authLimiter, h.Auth.Register)
	auth.Post("/login", authLimiter, h.Auth.Login)
	auth.Post("/refresh", authLimiter, h.Auth.Refresh)
	auth.Post("/logout", jwt, h.Auth.Logout)
	auth.Get("/me", jwt, h.Auth.Me)

	users := app.Group("/users", jwt, adminOnly)
	users.Get("/", h.Users.List)
	users.Get("/stats", h.Users.Stats)
	users.Put("/:id/role", h.Users.UpdateRole)
	users.Delete("/:id", h.Users.Delete)

	admin := app.Group("/admin", jwt, adminOnly)
	admin.Get("/activity-logs", h.Activity.List)
	admin.Get("/activity-logs/stats", h.Activity.Stats)
	admin.Get("/activity-logs/types", h.Activity.Types)
	admin.Get("/activity-logs/user/:id", h.Activity.ForUser)

	api := app.Group("/api")
	api.Get("/health", handlers.Health)

	// spreadsheet archive: metadata plus stored file, no row parsing
	api.Post("/excel-uploads", jwt, reporterUp, h.Ingest.ArchiveUpload)
	api.Get("/excel-uploads", jwt, adminOnly, h.Ingest.ListUploads)

	// record slices; literal paths registered before the :id routes
	news := api.Group("/fire-news")
	news.Get("/", jwt, h.News.List)
	news.Get("/all-leads", jwt, h.News.AllLeads)
	news.Get("/tweets", jwt, h.News.Tweets)
	news.Get("/web", jwt, h.News.Web)
	news.Get("/uncategorized", jwt, h.News.Uncategorized)
	news.Get("/hidden", jwt, editorUp, h.News.Hidden)
	news.Get("/911", jwt, h.News.Emergency)
	news.Get("/search", jwt, h.News.Search)
	news.Get("/reporters", jwt, h.News.Reporters)

	news.Post("/test-upload", jwt, reporterUp, h.Ingest.TestUpload)
	news.Post("/bulk-upload", jwt, reporterUp, h.Ingest.BulkUpload)
	news.Post("/process-excel", jwt, reporterUp, h.Ingest.ProcessSpreadsheet)
	news.Delete("/delete-all", jwt, adminOnly, h.News.DeleteAll)

	news.Get("/:id", jwt, h.News.Get)
	news.Put("/:id", jwt, reporterUp, h.News.Update)
	news.Delete("/:id", jwt, middleware.RoleRequired(db, models.RoleReporter, models.RoleAdmin), h.News.Delete)
	news.Put("/:id/toggle-verified", jwt, editorUp, h.News.ToggleVerified)
	news.Put("/:id/toggle-hidden", jwt, editorUp, h.News.ToggleHidden)

	news.Get("/:id/tags", jwt, h.Tags.GetForNews)
	news.Post("/:id/tags", jwt, editorUp, h.Tags.AssignForNews)
	news.Delete("/:id/tags/:tagId", jwt, editorUp, h.Tags.RemoveForNews)

	tags := api.Group("/tags")
	tags.Get("/", jwt, h.Tags.List)
	tags.Get("/search", jwt, h.Tags.Search)
	tags.Get("/categories", jwt, h.Tags.Categories)
	tags.Post("/", jwt, editorUp, h.Tags.Create)
	tags.Put("/:id", jwt, editorUp, h.Tags.Update)
	tags.Delete("/:id", jwt, editorUp, h.Tags.Delete)

	bookmarks := api.Group("/bookmarks", jwt)
	bookmarks.Post("/", h.Bookmark.Create)
	bookmarks.Get("/", h.Bookmark.List)
	bookmarks.Get("/check/:newsId", h.Bookmark.Status)
	bookmarks.Delete("/news/:newsId", h.Bookmark.DeleteByNews)
	bookmarks.Delete("/:id", h.Bookmark.Delete)
}
