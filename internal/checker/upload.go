package checker

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrUnsupportedType = errors.New("only jpg, jpeg and png images are supported")
	ErrInvalidName     = errors.New("invalid file name")
)

// AllowedExtensions are the image types the upload control accepts.
var AllowedExtensions = []string{".jpg", ".jpeg", ".png"}

func allowedImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range AllowedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// saveUpload writes the upload into dir under its original base name. Uploads
// with the same name overwrite each other.
func saveUpload(c *fiber.Ctx, file *multipart.FileHeader, dir string) (string, error) {
	name := filepath.Base(file.Filename)
	if name == "." || name == string(filepath.Separator) || name == ".." {
		return "", ErrInvalidName
	}
	if !allowedImage(name) {
		return "", ErrUnsupportedType
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create temp directory: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := c.SaveFile(file, path); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	return path, nil
}
