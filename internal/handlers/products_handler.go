package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"admin-bff-service/internal/clients"
	"admin-bff-service/internal/config"
	"admin-bff-service/internal/events"
	"admin-bff-service/internal/models"
	"admin-bff-service/internal/repository"

	gosharedmw "github.com/Tesseract-Nexus/go-shared/middleware"
)

// ProductsHandler proxies catalog operations to products-service and
// categories-service
type ProductsHandler struct {
	cfg              *config.Config
	repo             *repository.SessionsRepository
	productsClient   *clients.ProductsClient
	categoriesClient *clients.CategoriesClient
	eventsPublisher  *events.Publisher
}

func NewProductsHandler(cfg *config.Config, repo *repository.SessionsRepository, eventsPublisher *events.Publisher) *ProductsHandler {
	return &ProductsHandler{
		cfg:              cfg,
		repo:             repo,
		productsClient:   clients.NewProductsClient(),
		categoriesClient: clients.NewCategoriesClient(),
		eventsPublisher:  eventsPublisher,
	}
}

func actorFrom(c *gin.Context) events.Actor {
	info := gosharedmw.GetActorInfo(c)
	return events.Actor{
		ID:    info.ActorID,
		Name:  info.ActorName,
		Email: info.ActorEmail,
	}
}

// GetProducts lists products for the tenant
// @Summary List products
// @Description List products with pagination and filtering
// @Tags Products
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(12)
// @Param status query string false "Filter by status"
// @Param category query string false "Filter by category ID"
// @Param search query string false "Search term"
// @Success 200 {object} models.ProductListResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /products [get]
func (h *ProductsHandler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(h.cfg.DefaultPageSize)))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > h.cfg.MaxPageSize {
		limit = h.cfg.DefaultPageSize
	}

	filter := clients.ProductListFilter{
		Page:     page,
		Limit:    limit,
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}

	result, err := h.productsClient.GetProducts(claimsFrom(c), filter)
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "FETCH_FAILED",
				Message: "Failed to retrieve products",
			},
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetProduct fetches a single product
// @Summary Get product
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.ProductResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (h *ProductsHandler) GetProduct(c *gin.Context) {
	product, err := h.productsClient.GetProduct(claimsFrom(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "NOT_FOUND",
				Message: "Product not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.ProductResponse{Success: true, Data: product})
}

// CreateProduct forwards a product creation to products-service
// @Summary Create product
// @Tags Products
// @Accept json
// @Produce json
// @Param product body models.CreateProductRequest true "Product data"
// @Success 201 {object} models.ProductResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /products [post]
func (h *ProductsHandler) CreateProduct(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	if len(req.Images) > models.MediaLimits.MaxGalleryImages {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: fmt.Sprintf("Maximum %d images allowed per product", models.MediaLimits.MaxGalleryImages),
				Field:   "images",
			},
		})
		return
	}

	product, err := h.productsClient.CreateProduct(claimsFrom(c), req)
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "CREATION_FAILED",
				Message: "Failed to create product",
			},
		})
		return
	}

	if h.eventsPublisher != nil {
		_ = h.eventsPublisher.PublishProductSaved(c.Request.Context(), product, tenantID.(string), true, nil, actorFrom(c))
	}

	c.JSON(http.StatusCreated, models.ProductResponse{Success: true, Data: product})
}

// UpdateProduct forwards a product update to products-service
// @Summary Update product
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param product body models.UpdateProductRequest true "Product data"
// @Success 200 {object} models.ProductResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /products/{id} [put]
func (h *ProductsHandler) UpdateProduct(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	product, err := h.productsClient.UpdateProduct(claimsFrom(c), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "UPDATE_FAILED",
				Message: "Failed to update product",
			},
		})
		return
	}

	if h.eventsPublisher != nil {
		_ = h.eventsPublisher.PublishProductSaved(c.Request.Context(), product, tenantID.(string), false, nil, actorFrom(c))
	}

	c.JSON(http.StatusOK, models.ProductResponse{Success: true, Data: product})
}

// UpdateProductStatus changes a single product's status
// @Summary Update product status
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param status body models.UpdateProductStatusRequest true "New status"
// @Success 200 {object} models.ProductResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /products/{id}/status [put]
func (h *ProductsHandler) UpdateProductStatus(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	var req models.UpdateProductStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	claims := claimsFrom(c)
	productID := c.Param("id")

	oldStatus := ""
	if current, err := h.productsClient.GetProduct(claims, productID); err == nil {
		oldStatus = string(current.Status)
	}

	product, err := h.productsClient.UpdateProductStatus(claims, productID, req)
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "UPDATE_FAILED",
				Message: "Failed to update product status",
			},
		})
		return
	}

	if h.eventsPublisher != nil {
		_ = h.eventsPublisher.PublishProductStatusChanged(c.Request.Context(), product, oldStatus, string(req.Status), tenantID.(string), actorFrom(c))
	}

	c.JSON(http.StatusOK, models.ProductResponse{Success: true, Data: product})
}

// BulkUpdateProductStatus changes the status of multiple products at once
// @Summary Bulk update product status
// @Tags Products
// @Accept json
// @Produce json
// @Param request body models.BulkStatusUpdateRequest true "Product IDs and new status"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /products/bulk/status [post]
func (h *ProductsHandler) BulkUpdateProductStatus(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	var req models.BulkStatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	if len(req.ProductIDs) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: "At least one product ID is required",
				Field:   "productIds",
			},
		})
		return
	}

	if err := h.productsClient.BulkUpdateProductStatus(claimsFrom(c), req); err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "UPDATE_FAILED",
				Message: "Failed to update product statuses",
			},
		})
		return
	}

	if h.eventsPublisher != nil {
		_ = h.eventsPublisher.PublishBulkStatusChanged(c.Request.Context(), req.ProductIDs, string(req.Status), tenantID.(string), actorFrom(c))
	}

	msg := fmt.Sprintf("%d products updated", len(req.ProductIDs))
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: &msg})
}

// Category handlers

// GetCategories lists categories for the tenant
// @Summary Get categories
// @Tags Categories
// @Produce json
// @Param search query string false "Search term"
// @Param activeOnly query bool false "Only active categories"
// @Success 200 {object} models.CategoryListResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /categories [get]
func (h *ProductsHandler) GetCategories(c *gin.Context) {
	filter := clients.CategoryFilter{
		Search:     c.Query("search"),
		ActiveOnly: c.Query("activeOnly") == "true",
	}

	categories, err := h.categoriesClient.GetCategories(claimsFrom(c), filter)
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "FETCH_FAILED",
				Message: "Failed to retrieve categories",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.CategoryListResponse{Success: true, Data: categories})
}

// CreateCategory creates a new category
// @Summary Create category
// @Tags Categories
// @Accept json
// @Produce json
// @Param category body models.CreateCategoryRequest true "Category data"
// @Success 201 {object} models.CategoryResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /categories [post]
func (h *ProductsHandler) CreateCategory(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	category, err := h.categoriesClient.CreateCategory(claimsFrom(c), req)
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "CREATION_FAILED",
				Message: "Failed to create category",
			},
		})
		return
	}

	h.repo.InvalidateCategoryCaches(c.Request.Context(), tenantID.(string))

	c.JSON(http.StatusCreated, models.CategoryResponse{Success: true, Data: category})
}

// GetCategoryOptions returns the category picker entries: the tenant's real
// categories plus default suggestions for names the tenant has not created
// yet. Picking a suggestion creates the real category through CreateCategory.
// @Summary Get category picker options
// @Tags Categories
// @Produce json
// @Success 200 {object} models.CategoryOptionsResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /categories/options [get]
func (h *ProductsHandler) GetCategoryOptions(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")
	claims := claimsFrom(c)

	var options []models.CategoryOption
	cacheKey := fmt.Sprintf("categories:%s:options", tenantID.(string))
	err := h.repo.GetOrSetCached(c.Request.Context(), cacheKey, &options, repository.CategoryCacheTTL, func() (interface{}, error) {
		categories, err := h.categoriesClient.GetCategories(claims, clients.CategoryFilter{ActiveOnly: true})
		if err != nil {
			return nil, err
		}
		return buildCategoryOptions(categories), nil
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "FETCH_FAILED",
				Message: "Failed to retrieve category options",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.CategoryOptionsResponse{Success: true, Data: options})
}

// buildCategoryOptions merges existing categories with default suggestions,
// skipping suggestions whose name matches an existing category
func buildCategoryOptions(categories []models.Category) []models.CategoryOption {
	options := make([]models.CategoryOption, 0, len(categories)+len(models.DefaultCategorySuggestions))
	existing := make(map[string]bool, len(categories))

	for i := range categories {
		cat := categories[i]
		existing[cat.Name] = true
		options = append(options, models.CategoryOption{
			Kind:     models.CategoryOptionExisting,
			Category: &cat,
		})
	}

	for _, suggestion := range models.DefaultCategorySuggestions {
		if existing[suggestion.Name] {
			continue
		}
		options = append(options, suggestion)
	}

	return options
}
