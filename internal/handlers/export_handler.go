package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"admin-bff-service/internal/clients"
	"admin-bff-service/internal/config"
	"admin-bff-service/internal/models"
	"github.com/xuri/excelize/v2"
)

// ExportHandler builds catalog exports from products fetched through the
// products client
type ExportHandler struct {
	cfg            *config.Config
	productsClient *clients.ProductsClient
}

func NewExportHandler(cfg *config.Config) *ExportHandler {
	return &ExportHandler{
		cfg:            cfg,
		productsClient: clients.NewProductsClient(),
	}
}

// ExportRequest selects the format and an optional filter
type ExportRequest struct {
	Format string `json:"format" binding:"required,oneof=xlsx csv"`
	Status string `json:"status,omitempty"`
	Search string `json:"search,omitempty"`
}

var exportColumns = []string{
	"ID", "Name", "SKU", "Slug", "Brand", "Status", "Price", "Compare Price",
	"Cost Price", "Category ID", "Quantity", "Min Order Qty", "Max Order Qty",
	"Low Stock Threshold", "Weight", "Tags", "Images", "Created At",
}

// ExportProducts streams the tenant's catalog as XLSX or CSV
// @Summary Export products
// @Tags Products
// @Accept json
// @Produce application/octet-stream
// @Param request body ExportRequest true "Format and filter"
// @Success 200 {file} binary
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /products/export [post]
func (h *ExportHandler) ExportProducts(c *gin.Context) {
	var req ExportRequest
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

	products, err := h.fetchAll(claimsFrom(c), req)
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "EXPORT_FAILED",
				Message: "Failed to fetch products for export",
			},
		})
		return
	}

	if req.Format == "csv" {
		h.writeCSV(c, products)
		return
	}
	h.writeXLSX(c, products)
}

// fetchAll pages through the products-service list until the export cap
func (h *ExportHandler) fetchAll(claims clients.ClaimHeaders, req ExportRequest) ([]models.Product, error) {
	var all []models.Product

	for page := 1; len(all) < h.cfg.MaxExportRows; page++ {
		result, err := h.productsClient.GetProducts(claims, clients.ProductListFilter{
			Page:   page,
			Limit:  h.cfg.MaxPageSize,
			Status: req.Status,
			Search: req.Search,
		})
		if err != nil {
			return nil, err
		}
		if len(result.Data) == 0 {
			break
		}
		all = append(all, result.Data...)
		if result.Pagination != nil && !result.Pagination.HasNext {
			break
		}
	}

	if len(all) > h.cfg.MaxExportRows {
		all = all[:h.cfg.MaxExportRows]
	}
	return all, nil
}

func exportRow(p models.Product) []string {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	derefInt := func(n *int) string {
		if n == nil {
			return ""
		}
		return strconv.Itoa(*n)
	}

	imageURLs := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		imageURLs = append(imageURLs, img.URL)
	}

	return []string{
		p.ID, p.Name, p.SKU, deref(p.Slug), deref(p.Brand), string(p.Status),
		p.Price, deref(p.ComparePrice), deref(p.CostPrice), p.CategoryID,
		derefInt(p.Quantity), derefInt(p.MinOrderQty), derefInt(p.MaxOrderQty),
		derefInt(p.LowStockThreshold), deref(p.Weight),
		strings.Join(p.Tags, ", "), strings.Join(imageURLs, ", "),
		p.CreatedAt.Format(time.RFC3339),
	}
}

func (h *ExportHandler) writeCSV(c *gin.Context, products []models.Product) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=products_export.csv")

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportColumns)
	for _, p := range products {
		writer.Write(exportRow(p))
	}
}

func (h *ExportHandler) writeXLSX(c *gin.Context, products []models.Product) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Products"
	f.SetSheetName("Sheet1", sheetName)

	// Style for header row
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, col := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)

		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 20)
	}

	for rowIdx, p := range products {
		for colIdx, value := range exportRow(p) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	sheetIdx, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(sheetIdx)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=products_export_%s.xlsx", time.Now().Format("20060102")))

	f.Write(c.Writer)
}
