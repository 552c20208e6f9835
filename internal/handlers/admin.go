// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/xingluo6/redmart/internal/config"
	"github.com/xingluo6/redmart/internal/ingest"
	"github.com/xingluo6/redmart/internal/repository"
	"github.com/xingluo6/redmart/internal/utils"
)

// AdminHandler drives the ingestion pipelines and database maintenance.
type AdminHandler struct {
	loader *repository.BulkLoader
	cfg    *config.Config
}

func NewAdminHandler(loader *repository.BulkLoader, cfg *config.Config) *AdminHandler {
	return &AdminHandler{loader: loader, cfg: cfg}
}

// POST /v1/admin/seed — replace the database with a synthetic dataset.
func (h *AdminHandler) Seed(c *gin.Context) {
	ds := ingest.GenerateDataset(ingest.SyntheticOptions{
		Products: h.cfg.Seed.Products,
		Users:    h.cfg.Seed.Users,
		Orders:   h.cfg.Seed.Orders,
	})

	if err := h.loader.Store(c.Request.Context(), ds.Products, ds.Users, ds.Orders, true); err != nil {
		handleRepoError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"products": len(ds.Products),
		"users":    len(ds.Users),
		"orders":   len(ds.Orders),
	})
}

// POST /v1/admin/import/retail — replace the database with the Online Retail
// dataset transformation.
func (h *AdminHandler) ImportRetail(c *gin.Context) {
	ds, err := ingest.LoadRetailCSV(h.cfg.Retail.DataPath, ingest.RetailOptions{
		FillMissing: h.cfg.Retail.FillMissing,
	})
	if err != nil {
		logrus.WithError(err).Error("Retail import failed")
		utils.BadRequestResponse(c, "Failed to load retail dataset", err.Error())
		return
	}

	if err := h.loader.Store(c.Request.Context(), ds.Products, ds.Users, ds.Orders, true); err != nil {
		handleRepoError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"products": len(ds.Products),
		"users":    len(ds.Users),
		"orders":   len(ds.Orders),
	})
}

// DELETE /v1/admin/flush
func (h *AdminHandler) Flush(c *gin.Context) {
	if err := h.loader.Flush(c.Request.Context()); err != nil {
		handleRepoError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"flushed": true})
}
