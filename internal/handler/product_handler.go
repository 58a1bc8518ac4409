package handler

import (
	"errors"

	"go-catalog-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ProductHandler struct {
	service service.CatalogService
	log     *logrus.Logger
}

func NewProductHandler(s service.CatalogService, log *logrus.Logger) *ProductHandler {
	return &ProductHandler{service: s, log: log}
}

// RegisterRoutes mounts the product routes. Stats live outside /products so
// every term stays reachable.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/stats/products", h.GetStats)

	products := router.Group("/products")
	products.Post("/", h.CreateProduct)
	products.Get("/", h.GetProducts)
	products.Get("/:term", h.GetProduct)
	products.Patch("/:id", h.UpdateProduct)
	products.Delete("/:term", h.DeleteProduct)
}

// respondError translates service errors to status codes
func (h *ProductHandler) respondError(c *fiber.Ctx, err error) error {
	var vErr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidRequest):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &vErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": vErr.Detail})
	default:
		if !errors.Is(err, service.ErrPersistence) {
			h.log.WithError(err).WithField("path", c.Path()).Error("Unhandled error")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": service.ErrPersistence.Error()})
	}
}

// CreateProduct handles product creation
// POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.CreateProduct(c.UserContext(), &req)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Product created", "data": toProductResponse(product)})
}

// GetProducts returns one page of products
// GET /api/v1/products?limit=&offset=
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	var page service.Pagination
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid pagination parameters"})
	}

	products, err := h.service.FindAll(c.UserContext(), page)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(toProductResponses(products))
}

// GetProduct looks a product up by UUID, title or slug
// GET /api/v1/products/:term
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.service.FindOne(c.UserContext(), c.Params("term"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(toProductResponse(product))
}

// UpdateProduct applies a partial update
// PATCH /api/v1/products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req service.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateProduct(c.UserContext(), productID, &req)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Product updated", "data": toProductResponse(updated)})
}

// DeleteProduct removes a product and its images
// DELETE /api/v1/products/:term
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.UserContext(), c.Params("term")); err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

// GetStats returns overview statistics
// GET /api/v1/stats/products
func (h *ProductHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext())
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(stats)
}
