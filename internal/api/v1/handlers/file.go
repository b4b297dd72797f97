package handlers

import (
	"path"
	"path/filepath"

	"github.com/KanishkaMohata21/neighbourAid/internal/config"
	"github.com/gofiber/fiber/v2"
)

// GetFile serves a stored upload by filename.
func GetFile(c *fiber.Ctx) error {
	filename := filepath.Base(c.Params("filename"))
	return c.SendFile(path.Join(config.UploadDir, filename))
}
