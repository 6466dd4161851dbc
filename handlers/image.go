package handlers

import (
	"CasaFacil/repository"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const maxImageSize = 5 << 20

var imageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

type ImageController struct {
	images ImageStore
}

func NewImageController(images ImageStore) *ImageController {
	return &ImageController{images: images}
}

func (ic *ImageController) Upload(c echo.Context) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return fail(c, http.StatusBadRequest, "Image file is required")
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	contentType, allowed := imageTypes[ext]
	if !allowed {
		return fail(c, http.StatusBadRequest, "Only jpg, jpeg, png and webp images are allowed")
	}
	if fh.Size > maxImageSize {
		return fail(c, http.StatusBadRequest, "Image must be 5MB or smaller")
	}

	src, err := fh.Open()
	if err != nil {
		return fail(c, http.StatusBadRequest, "Failed to read image")
	}
	defer src.Close()

	key, err := ic.images.Upload(c.Request().Context(), currentUserID(c), ext, contentType, src)
	if err != nil {
		logFailure(c, "upload image", err)
		return fail(c, http.StatusInternalServerError, "Failed to upload image")
	}
	return ok(c, http.StatusCreated, "data", map[string]string{
		"key": key,
		"url": "/api/images/" + key,
	})
}

func validImageKey(key string) bool {
	ext := filepath.Ext(key)
	if _, allowed := imageTypes[ext]; !allowed {
		return false
	}
	_, err := uuid.Parse(strings.TrimSuffix(key, ext))
	return err == nil
}

func (ic *ImageController) Download(c echo.Context) error {
	key := c.Param("key")
	if !validImageKey(key) {
		return fail(c, http.StatusBadRequest, "Invalid image key")
	}
	img, err := ic.images.Open(c.Request().Context(), key)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusNotFound, "Image not found")
	}
	if err != nil {
		logFailure(c, "open image", err)
		return fail(c, http.StatusInternalServerError, "Failed to fetch image")
	}
	defer img.Body.Close()

	c.Response().Header().Set(echo.HeaderContentLength, strconv.FormatInt(img.Size, 10))
	c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	return c.Stream(http.StatusOK, img.ContentType, img.Body)
}
