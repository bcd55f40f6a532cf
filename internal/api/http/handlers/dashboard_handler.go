package handlers

import (
	_ "embed"

	"github.com/gofiber/fiber/v2"
)

//go:embed web/index.html
var dashboardPage []byte

// Dashboard GET /.
func Dashboard(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(dashboardPage)
}
