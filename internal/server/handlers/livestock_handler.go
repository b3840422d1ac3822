package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/genapagie/ovinpro/internal/domain/models"
	"github.com/genapagie/ovinpro/internal/service/livestock"
)

// UserIDKey is the gin context key the auth middleware fills with the
// authenticated user id.
const UserIDKey = "user_id"

func userID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

// LivestockHandler exposes breeders, sheep, prices and time-series records.
type LivestockHandler struct {
	svc    *livestock.Service
	logger *zap.Logger
}

// NewLivestockHandler constructs the HTTP handler adapter.
func NewLivestockHandler(svc *livestock.Service, logger *zap.Logger) *LivestockHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LivestockHandler{svc: svc, logger: logger}
}

func (h *LivestockHandler) saveError(c *gin.Context, err error) {
	if errors.Is(err, livestock.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func (h *LivestockHandler) listError(c *gin.Context, err error) {
	if errors.Is(err, livestock.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	h.logger.Error("listing failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
}

// ---- breeders ----

func (h *LivestockHandler) ListBreeders(c *gin.Context) {
	breeders, err := h.svc.ListBreeders(c.Request.Context(), userID(c))
	if err != nil {
		h.listError(c, err)
		return
	}
	if breeders == nil {
		breeders = []models.Breeder{}
	}
	c.JSON(http.StatusOK, breeders)
}

func (h *LivestockHandler) SaveBreeder(c *gin.Context) {
	var breeder models.Breeder
	if err := c.ShouldBindJSON(&breeder); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	saved, err := h.svc.SaveBreeder(c.Request.Context(), userID(c), breeder)
	if err != nil {
		h.saveError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *LivestockHandler) DeleteBreeder(c *gin.Context) {
	if err := h.svc.DeleteBreeder(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		h.saveError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ---- prices ----

func (h *LivestockHandler) ListPrices(c *gin.Context) {
	breederID := c.Query("breeder")
	if breederID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "breeder query parameter is required"})
		return
	}

	prices, err := h.svc.ListPrices(c.Request.Context(), userID(c), breederID)
	if err != nil {
		h.listError(c, err)
		return
	}
	if prices == nil {
		prices = []models.IngredientPrice{}
	}
	c.JSON(http.StatusOK, prices)
}

func (h *LivestockHandler) UpsertPrice(c *gin.Context) {
	var price models.IngredientPrice
	if err := c.ShouldBindJSON(&price); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	saved, err := h.svc.UpsertPrice(c.Request.Context(), userID(c), price)
	if err != nil {
		h.saveError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// ---- sheep ----

func (h *LivestockHandler) ListSheep(c *gin.Context) {
	sheep, err := h.svc.ListSheep(c.Request.Context(), userID(c), c.Query("breeder"))
	if err != nil {
		h.listError(c, err)
		return
	}
	if sheep == nil {
		sheep = []models.Sheep{}
	}
	c.JSON(http.StatusOK, sheep)
}

func (h *LivestockHandler) SaveSheep(c *gin.Context) {
	var sheep models.Sheep
	if err := c.ShouldBindJSON(&sheep); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	saved, err := h.svc.SaveSheep(c.Request.Context(), userID(c), sheep)
	if err != nil {
		h.saveError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *LivestockHandler) DeleteSheep(c *gin.Context) {
	if err := h.svc.DeleteSheep(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		h.saveError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ---- time-series records ----

func (h *LivestockHandler) ListHealth(c *gin.Context) {
	recs, err := h.svc.ListHealth(c.Request.Context(), userID(c), c.Query("breeder"))
	if err != nil {
		h.listError(c, err)
		return
	}
	if recs == nil {
		recs = []models.HealthRecord{}
	}
	c.JSON(http.StatusOK, recs)
}

func (h *LivestockHandler) AddHealth(c *gin.Context) {
	var rec models.HealthRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	saved, err := h.svc.AddHealth(c.Request.Context(), userID(c), rec)
	if err != nil {
		h.saveError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (h *LivestockHandler) ListProduction(c *gin.Context) {
	recs, err := h.svc.ListProduction(c.Request.Context(), userID(c), c.Query("breeder"))
	if err != nil {
		h.listError(c, err)
		return
	}
	if recs == nil {
		recs = []models.ProductionRecord{}
	}
	c.JSON(http.StatusOK, recs)
}

func (h *LivestockHandler) AddProduction(c *gin.Context) {
	var rec models.ProductionRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	saved, err := h.svc.AddProduction(c.Request.Context(), userID(c), rec)
	if err != nil {
		h.saveError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (h *LivestockHandler) ListReproduction(c *gin.Context) {
	recs, err := h.svc.ListReproduction(c.Request.Context(), userID(c), c.Query("breeder"))
	if err != nil {
		h.listError(c, err)
		return
	}
	if recs == nil {
		recs = []models.ReproductionRecord{}
	}
	c.JSON(http.StatusOK, recs)
}

func (h *LivestockHandler) AddReproduction(c *gin.Context) {
	var rec models.ReproductionRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	saved, err := h.svc.AddReproduction(c.Request.Context(), userID(c), rec)
	if err != nil {
		h.saveError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (h *LivestockHandler) ListNutrition(c *gin.Context) {
	recs, err := h.svc.ListNutrition(c.Request.Context(), userID(c), c.Query("breeder"))
	if err != nil {
		h.listError(c, err)
		return
	}
	if recs == nil {
		recs = []models.NutritionRecord{}
	}
	c.JSON(http.StatusOK, recs)
}

func (h *LivestockHandler) AddNutrition(c *gin.Context) {
	var rec models.NutritionRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	saved, err := h.svc.AddNutrition(c.Request.Context(), userID(c), rec)
	if err != nil {
		h.saveError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}
