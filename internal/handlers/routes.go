package handlers

import (
	"net/http"

	"github.com/DonSam77/reservasjs/internal/handlers/auth"
	"github.com/DonSam77/reservasjs/internal/handlers/common"
	"github.com/DonSam77/reservasjs/internal/handlers/reservations"
	"github.com/DonSam77/reservasjs/internal/handlers/rooms"
	"github.com/DonSam77/reservasjs/internal/handlers/users"
	"github.com/DonSam77/reservasjs/internal/middleware"
	"github.com/DonSam77/reservasjs/internal/store"
	"github.com/gin-gonic/gin"
)

// Welcome is the body of GET /.
const Welcome = "Welcome to the room reservation system"

// Options configures optional write protection. With Auth nil every route
// is public.
type Options struct {
	Auth      *auth.Handler
	JWTSecret string
}

// NewRouter builds the engine with recovery, request logging and all routes.
func NewRouter(st store.Store, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		common.Abort(c, http.StatusInternalServerError, common.KindInternal, "internal error")
	}))
	r.Use(middleware.RequestLogger())
	Register(r, st, opts)
	return r
}

// Register mounts every route on r. The store is shared by all handlers.
func Register(r gin.IRouter, st store.Store, opts Options) {
	userH := users.New(st)
	roomH := rooms.New(st)
	resH := reservations.NewHandler(st)

	var guard []gin.HandlerFunc
	if opts.Auth != nil {
		guard = []gin.HandlerFunc{middleware.JWTAuth(opts.JWTSecret), middleware.RequireAdmin()}
		r.POST("/auth/login", opts.Auth.Login)
		r.GET("/auth/me", middleware.JWTAuth(opts.JWTSecret), opts.Auth.Me)
	}
	write := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, guard...), h)
	}

	// Public
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, Welcome) })
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Users
	r.GET("/usuarios", userH.List)
	r.GET("/usuarios/:id", userH.Get)
	r.POST("/usuarios", write(userH.Create)...)
	r.PUT("/usuarios/:id", write(userH.Update)...)
	r.DELETE("/usuarios/:id", write(userH.Delete)...)

	// Rooms
	r.GET("/salas", roomH.List)
	r.GET("/salas/:id", roomH.Get)
	r.POST("/salas", write(roomH.Create)...)
	r.PUT("/salas/:id", write(roomH.Update)...)
	r.DELETE("/salas/:id", write(roomH.Delete)...)
	r.POST("/salas/:id/bloquear", write(roomH.Lock)...)
	r.GET("/salas/:id/disponibilidad", roomH.Availability)
	r.POST("/salas/:id/calificar", write(roomH.Rate)...)
	r.GET("/salas/:id/calificaciones", roomH.Ratings)
	r.POST("/salas/:id/reporte", write(roomH.Report)...)
	r.GET("/salas/:id/reportes", roomH.Reports)

	// Reservations
	r.GET("/reservacion", resH.List)
	r.GET("/reservacion/:id", resH.Get)
	r.POST("/reservacion", write(resH.Create)...)
	r.DELETE("/reservacion/:id", write(resH.Delete)...)
}
