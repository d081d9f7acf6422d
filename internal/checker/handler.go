package checker

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/image-price-checker/internal/detection"
	"github.com/wichananm65/image-price-checker/internal/logger"
	"github.com/wichananm65/image-price-checker/internal/price"
)

//go:embed templates/index.html
var templates embed.FS

var indexPage = template.Must(template.ParseFS(templates, "templates/index.html"))

const noProductsMessage = "No products found in the image."

// errProcessImage marks a failed detection. The page treats it as an image
// with nothing recognisable in it.
var errProcessImage = errors.New("could not process the image")

type Handler struct {
	service  *Service
	tempDir  string
	currency string
	logger   *logger.Logger
}

func NewHandler(service *Service, tempDir, currency string, logger *logger.Logger) *Handler {
	return &Handler{service: service, tempDir: tempDir, currency: currency, logger: logger}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/", h.index)
	app.Post("/", h.upload)
	app.Post("/api/v1/check", h.check)
}

type pageData struct {
	Accept    string
	Submitted bool
	Lines     []string
	Error     string
}

type checkResponse struct {
	Items      []price.PricedItem    `json:"items"`
	Currency   string                `json:"currency"`
	Detections []detection.Detection `json:"detections"`
	Message    string                `json:"message,omitempty"`
}

func (h *Handler) index(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, pageData{})
}

func (h *Handler) upload(c *fiber.Ctx) error {
	result, status, err := h.process(c)
	if errors.Is(err, errProcessImage) {
		return h.render(c, status, pageData{Submitted: true})
	}
	if err != nil {
		return h.render(c, status, pageData{Submitted: true, Error: err.Error()})
	}

	lines := make([]string, 0, len(result.Items))
	for _, item := range result.Items {
		lines = append(lines, FormatLine(item, h.currency))
	}
	return h.render(c, fiber.StatusOK, pageData{Submitted: true, Lines: lines})
}

func (h *Handler) check(c *fiber.Ctx) error {
	result, status, err := h.process(c)
	if err != nil {
		return c.Status(status).JSON(fiber.Map{"message": err.Error()})
	}

	resp := checkResponse{
		Items:      result.Items,
		Currency:   h.currency,
		Detections: result.Detections,
	}
	if resp.Detections == nil {
		resp.Detections = []detection.Detection{}
	}
	if !result.Found() {
		resp.Message = noProductsMessage
	}
	return c.JSON(resp)
}

// process saves the upload, runs the check and always removes the temp file.
// The returned error text is safe to show to the user.
func (h *Handler) process(c *fiber.Ctx) (Result, int, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return Result{}, fiber.StatusBadRequest, errors.New("please choose an image to upload")
	}

	path, err := saveUpload(c, file, h.tempDir)
	if err != nil {
		if errors.Is(err, ErrUnsupportedType) || errors.Is(err, ErrInvalidName) {
			return Result{}, fiber.StatusBadRequest, err
		}
		h.logger.Error("Failed to store upload %s: %v", file.Filename, err)
		return Result{}, fiber.StatusInternalServerError, errors.New("could not store the uploaded image")
	}
	defer h.remove(path)

	result, err := h.service.Check(c.UserContext(), path)
	if err != nil {
		h.logger.Error("Detection failed for %s: %v", path, err)
		return Result{}, fiber.StatusUnprocessableEntity, errProcessImage
	}
	h.logger.Info("Checked %s: %d detections, %d priced", file.Filename, len(result.Detections), len(result.Items))
	return result, fiber.StatusOK, nil
}

func (h *Handler) remove(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		h.logger.Warning("Failed to remove temp file %s: %v", path, err)
	}
}

func (h *Handler) render(c *fiber.Ctx, status int, data pageData) error {
	data.Accept = strings.Join(AllowedExtensions, ",")
	var buf bytes.Buffer
	if err := indexPage.Execute(&buf, data); err != nil {
		h.logger.Error("Failed to render page: %v", err)
		return c.Status(fiber.StatusInternalServerError).SendString("failed to render page")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}

// FormatLine renders one priced item as "<product>: <price> <currency>".
func FormatLine(item price.PricedItem, currency string) string {
	return fmt.Sprintf("%s: %s %s", item.Product, item.Price, currency)
}
