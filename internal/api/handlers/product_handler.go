package handlers

import (
	"errors"

	"vitrifiye-studio/internal/dto"
	"vitrifiye-studio/internal/models"
	"vitrifiye-studio/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var knownCategories = map[models.ProductCategory]bool{
	models.CategoryLavabo:   true,
	models.CategoryKlozet:   true,
	models.CategoryBatarya:  true,
	models.CategoryDusSeti:  true,
	models.CategoryAyna:     true,
	models.CategoryAksesuar: true,
	models.CategoryKaro:     true,
	models.CategoryDiger:    true,
}

type ProductHandler struct {
	productService *service.ProductService
	logger         *zap.Logger
}

func NewProductHandler(productService *service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// List godoc
// @Summary List products
// @Description All active catalog products
// @Tags products
// @Produce json
// @Success 200 {array} dto.ProductResponse
// @Failure 500 {object} map[string]string
// @Router /products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.productService.List(c.UserContext())
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to list products")
	}
	return c.JSON(products)
}

// Get godoc
// @Summary Get product
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} map[string]string
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	product, err := h.productService.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return errorResponse(c, fiber.StatusNotFound, "Product not found")
		}
		h.logger.Error("Failed to get product", zap.Int64("product_id", id), zap.Error(err))
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to get product")
	}
	return c.JSON(product)
}

// ByCategory godoc
// @Summary List products in a category
// @Tags products
// @Produce json
// @Param category path string true "Category" Enums(lavabo, klozet, batarya, dus_seti, ayna, aksesuar, karo, diger)
// @Success 200 {array} dto.ProductResponse
// @Failure 400 {object} map[string]string
// @Router /products/category/{category} [get]
func (h *ProductHandler) ByCategory(c *fiber.Ctx) error {
	category := models.ProductCategory(c.Params("category"))
	if !knownCategories[category] {
		return errorResponse(c, fiber.StatusBadRequest, "Unknown category")
	}

	products, err := h.productService.ByCategory(c.UserContext(), category)
	if err != nil {
		h.logger.Error("Failed to list category", zap.String("category", string(category)), zap.Error(err))
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to list products")
	}
	return c.JSON(products)
}

// Search godoc
// @Summary Filter products
// @Description Conjunction of the given filters; tags match when any is present
// @Tags products
// @Produce json
// @Param category query string false "Category"
// @Param style query string false "Style"
// @Param color query string false "Color"
// @Param minPrice query int false "Minimum price in kuruş"
// @Param maxPrice query int false "Maximum price in kuruş"
// @Param tags query string false "Comma separated tags"
// @Success 200 {array} dto.ProductResponse
// @Failure 400 {object} map[string]string
// @Router /products/search [get]
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	var q dto.ProductSearchQuery
	if err := c.QueryParser(&q); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid query parameters")
	}
	if msg := validateStruct(&q); msg != "" {
		return errorResponse(c, fiber.StatusBadRequest, msg)
	}

	products, err := h.productService.Search(c.UserContext(), q)
	if err != nil {
		h.logger.Error("Product search failed", zap.Error(err))
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to search products")
	}
	return c.JSON(products)
}
