package http

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/pkg/config"
)

// UploadResponse resultado de una subida de imagen.
type UploadResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// UploadHandler subida de imágenes (avatares). Solo jpg/png, con tope de
// tamaño configurable. El nombre en disco es un UUID para evitar colisiones
// y path traversal.
type UploadHandler struct {
	cfg config.UploadConfig
}

// NewUploadHandler construye el handler.
func NewUploadHandler(cfg config.UploadConfig) *UploadHandler {
	return &UploadHandler{cfg: cfg}
}

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Upload godoc
// @Summary      Subir imagen
// @Tags         upload
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Imagen jpg o png"
// @Success      201   {object}  UploadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/upload/image [post]
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "campo file requerido"})
	}
	if file.Size > h.cfg.MaxSizeBytes {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("el archivo supera el máximo de %d bytes", h.cfg.MaxSizeBytes),
		})
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_TYPE", Message: "solo se aceptan imágenes jpg o png"})
	}

	name := uuid.New().String() + ext
	dest := filepath.Join(h.cfg.Dir, name)
	if err := c.SaveFile(file, dest); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo guardar el archivo"})
	}
	return c.Status(fiber.StatusCreated).JSON(UploadResponse{
		URL:      "/uploads/" + name,
		Filename: name,
	})
}
