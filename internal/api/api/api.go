package api

import (
	"github.com/gin-contrib/cors"
	"github.com/wb-go/wbf/ginext"

	"urevents/cmd/middleware"
	"urevents/internal/service"
)

type Routers struct {
	Service       service.Service
	SessionSecret string
	UploadDir     string
}

func NewRouters(r *Routers) *ginext.Engine {
	app := ginext.New("release")

	app.Use(middleware.LoggingMiddleware())
	app.Use(cors.Default())
	app.Use(middleware.SessionMiddleware(r.SessionSecret))

	app.GET("/", r.Service.Home)
	app.GET("/about", r.Service.About)
	app.GET("/events", r.Service.AllEvents)
	app.GET("/events/:id", r.Service.EventDetail)
	app.GET("/events/:id/register", r.Service.RegisterPage)
	app.POST("/events/:id/register", r.Service.Register)
	app.GET("/thank-you", r.Service.ThankYou)
	app.GET("/contact", r.Service.ContactPage)
	app.POST("/contact", r.Service.Contact)

	app.GET("/admin/login", r.Service.LoginPage)
	app.POST("/admin/login", r.Service.Login)
	app.GET("/admin/logout", r.Service.Logout)

	admin := app.Group("/admin", middleware.RequireAdmin())
	admin.GET("/dashboard", r.Service.Dashboard)
	admin.POST("/events", r.Service.AddEvent)
	admin.POST("/events/:id", r.Service.UpdateEvent)
	admin.POST("/events/:id/delete", r.Service.DeleteEvent)
	admin.GET("/registrations", r.Service.Registrations)
	admin.GET("/messages", r.Service.Messages)

	// Uploaded event images are served straight from the blob directory.
	app.Static("/uploads", r.UploadDir)

	return app
}
