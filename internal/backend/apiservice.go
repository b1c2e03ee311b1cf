package backend

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/jo-hoe/defectframe/internal/backend/database"
	"github.com/jo-hoe/defectframe/internal/backend/raster"
	"github.com/jo-hoe/defectframe/internal/core"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	mimePNG = "image/png"

	uploadSuccessMessage = "The image was saved successfully."
	uploadFailurePrefix  = "An error occurred while saving the image: "
)

type APIService struct {
	coreService *core.CoreService
	config      *core.ServiceConfig
}

type uploadRequest struct {
	// may be empty, but the field itself must be sent
	ImageDefectName string `form:"imageDefectName" validate:"max=255"`
}

type UploadResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func NewAPIService(config *core.ServiceConfig, coreService *core.CoreService) *APIService {
	return &APIService{
		coreService: coreService,
		config:      config,
	}
}

func (s *APIService) SetRoutes(e *echo.Echo) {
	// Set probe route
	e.GET("/probe", func(c echo.Context) error {
		return c.String(http.StatusOK, "API Service is running")
	})

	images := e.Group("/api/images")
	images.POST("/upload", s.uploadImageHandler, middleware.BodyLimit(s.config.MaxUploadSize))
	images.GET("/:id", s.getImageByIDHandler)
	images.GET("/:id/:variant", s.getImageVariantByIDHandler)
}

func (s *APIService) uploadImageHandler(ctx echo.Context) error {
	var request uploadRequest
	if err := ctx.Bind(&request); err != nil {
		return err
	}
	if err := ctx.Validate(&request); err != nil {
		return err
	}

	params, err := ctx.FormParams()
	if err != nil {
		return ctx.String(http.StatusBadRequest, uploadFailurePrefix+err.Error())
	}
	if _, ok := params["imageDefectName"]; !ok {
		return ctx.String(http.StatusBadRequest, uploadFailurePrefix+"missing imageDefectName")
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		slog.Error("uploadImageHandler: failed to get uploaded file",
			"status", http.StatusBadRequest, "error", err)
		return ctx.String(http.StatusBadRequest, uploadFailurePrefix+"missing file")
	}

	src, err := file.Open()
	if err != nil {
		slog.Error("uploadImageHandler: failed to open uploaded file",
			"status", http.StatusInternalServerError, "error", err, "filename", file.Filename)
		return ctx.String(http.StatusInternalServerError, uploadFailurePrefix+err.Error())
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			slog.Error("uploadImageHandler: failed to close uploaded file reader", "error", cerr, "filename", file.Filename)
		}
	}()

	image, err := io.ReadAll(src)
	if err != nil {
		slog.Error("uploadImageHandler: failed to read uploaded file",
			"status", http.StatusInternalServerError, "error", err, "filename", file.Filename)
		return ctx.String(http.StatusInternalServerError, uploadFailurePrefix+err.Error())
	}

	id, err := s.coreService.ProcessAndSaveImage(ctx.Request().Context(), request.ImageDefectName, image)
	if err != nil {
		status := uploadErrorStatus(err)
		slog.Error("uploadImageHandler: failed to process uploaded image",
			"status", status, "error", err, "filename", file.Filename)
		return ctx.String(status, uploadFailurePrefix+err.Error())
	}

	return ctx.JSON(http.StatusOK, UploadResponse{ID: id, Message: uploadSuccessMessage})
}

// uploadErrorStatus separates bad input from server side failures
func uploadErrorStatus(err error) int {
	var decodeErr *raster.DecodeError
	var dimErr *raster.InvalidDimensionsError
	if errors.As(err, &decodeErr) || errors.As(err, &dimErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *APIService) getImageByIDHandler(ctx echo.Context) error {
	id := ctx.Param("id")

	image, err := s.coreService.GetImageByID(ctx.Request().Context(), id)
	if errors.Is(err, database.ErrImageNotFound) {
		return ctx.String(http.StatusNotFound, "Image not found")
	}
	if err != nil {
		slog.Error("getImageByIDHandler: failed to load image", "id", id, "error", err)
		return ctx.String(http.StatusInternalServerError, "Failed to load image")
	}

	return ctx.JSON(http.StatusOK, image)
}

func (s *APIService) getImageVariantByIDHandler(ctx echo.Context) error {
	id := ctx.Param("id")

	role, err := core.ParseRole(ctx.Param("variant"))
	if err != nil {
		return ctx.String(http.StatusNotFound, "Unknown variant")
	}

	data, err := s.coreService.GetVariantByID(ctx.Request().Context(), id, role)
	if errors.Is(err, database.ErrImageNotFound) {
		return ctx.String(http.StatusNotFound, "Image not found")
	}
	if err != nil {
		slog.Error("getImageVariantByIDHandler: failed to load variant", "id", id, "variant", role, "error", err)
		return ctx.String(http.StatusInternalServerError, "Failed to load image")
	}

	// stored records are never rewritten
	ctx.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	return ctx.Blob(http.StatusOK, mimePNG, data)
}
