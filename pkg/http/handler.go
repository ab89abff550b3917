package http

import "github.com/labstack/echo/v4"

// Handler mounts a route group on the server. The astro API and the
// websocket stream each implement it independently.
type Handler interface {
	RegisterRoutes(e *echo.Echo)
}
