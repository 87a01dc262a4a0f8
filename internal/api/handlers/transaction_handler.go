package handlers

import (
	"time"

	"finlens/internal/dto"
	"finlens/internal/hierarchy"
	"finlens/internal/models"
	"finlens/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type TransactionHandler struct {
	statements *service.StatementService
	logger     *zap.Logger
}

func NewTransactionHandler(statements *service.StatementService, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		statements: statements,
		logger:     logger,
	}
}

// IngestTransactions godoc
// @Summary Ingest statement transactions
// @Description Classify and store a batch of statement rows
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body dto.IngestTransactionsRequest true "Transaction batch"
// @Success 201 {object} dto.IngestTransactionsResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/transactions [post]
func (h *TransactionHandler) IngestTransactions(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req dto.IngestTransactionsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if len(req.Transactions) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Transaction batch is empty",
		})
	}

	transactions, err := h.statements.Ingest(c.Context(), userID, req.Transactions)
	if err != nil {
		h.logger.Error("Ingest failed", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.IngestTransactionsResponse{
		Transactions: toTransactionResponses(transactions),
		Total:        len(transactions),
	})
}

// ListTransactions godoc
// @Summary List stored transactions
// @Tags transactions
// @Produce json
// @Param from query string false "Start date (inclusive)"
// @Param to query string false "End date (inclusive)"
// @Success 200 {object} dto.ListTransactionsResponse
// @Router /api/v1/transactions [get]
func (h *TransactionHandler) ListTransactions(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	from, to, err := parseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	transactions, err := h.statements.List(c.Context(), userID, from, to)
	if err != nil {
		h.logger.Error("List failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list transactions",
		})
	}

	return c.JSON(dto.ListTransactionsResponse{
		Transactions: toTransactionResponses(transactions),
		Total:        len(transactions),
	})
}

// GetHierarchy godoc
// @Summary Category drill-down tree
// @Description Aggregated Category > Subcategory > Merchant view
// @Tags categories
// @Produce json
// @Param from query string false "Start date (inclusive)"
// @Param to query string false "End date (inclusive)"
// @Param direction query string false "income, expense or all"
// @Success 200 {object} dto.HierarchyResponse
// @Router /api/v1/categories/hierarchy [get]
func (h *TransactionHandler) GetHierarchy(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	from, to, err := parseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	direction := hierarchy.Direction(c.Query("direction", string(hierarchy.DirectionAll)))
	switch direction {
	case hierarchy.DirectionIncome, hierarchy.DirectionExpense, hierarchy.DirectionAll:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid direction",
		})
	}

	filter := hierarchy.Filter{From: from, To: to, Direction: direction}
	tree, err := h.statements.Hierarchy(c.Context(), userID, filter)
	if err != nil {
		h.logger.Error("Hierarchy failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build hierarchy",
		})
	}

	return c.JSON(dto.HierarchyResponse{
		From:      c.Query("from"),
		To:        c.Query("to"),
		Direction: string(direction),
		Tree:      tree,
	})
}

// GetCategoryDrilldown godoc
// @Summary One category subtree
// @Tags categories
// @Produce json
// @Param id path string true "Category id"
// @Success 200 {object} dto.CategoryDrilldownResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/categories/{id} [get]
func (h *TransactionHandler) GetCategoryDrilldown(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	from, to, err := parseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	tree, err := h.statements.Hierarchy(c.Context(), userID, hierarchy.Filter{
		From: from, To: to, Direction: hierarchy.DirectionAll,
	})
	if err != nil {
		h.logger.Error("Hierarchy failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build hierarchy",
		})
	}

	category := tree.Category(c.Params("id"))
	if category == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Category not found",
		})
	}
	return c.JSON(dto.CategoryDrilldownResponse{Category: category})
}

// GetSubcategoryDrilldown godoc
// @Summary One subcategory subtree with its transactions
// @Tags categories
// @Produce json
// @Param id path string true "Category id"
// @Param sub path string true "Subcategory id"
// @Success 200 {object} dto.SubcategoryDrilldownResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/categories/{id}/{sub} [get]
func (h *TransactionHandler) GetSubcategoryDrilldown(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	from, to, err := parseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	tree, err := h.statements.Hierarchy(c.Context(), userID, hierarchy.Filter{
		From: from, To: to, Direction: hierarchy.DirectionAll,
	})
	if err != nil {
		h.logger.Error("Hierarchy failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build hierarchy",
		})
	}

	sub := tree.Subcategory(c.Params("id"), c.Params("sub"))
	if sub == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Subcategory not found",
		})
	}

	var leaves []*models.Transaction
	for i := range sub.Merchants {
		for j := range sub.Merchants[i].Transactions {
			leaves = append(leaves, &sub.Merchants[i].Transactions[j])
		}
	}
	return c.JSON(dto.SubcategoryDrilldownResponse{
		Subcategory:  sub,
		Transactions: toTransactionResponses(leaves),
	})
}

// Reclassify godoc
// @Summary Reclassify stored transactions
// @Description Rerun classification against the active merchant catalog
// @Tags categories
// @Produce json
// @Success 200 {object} dto.ReclassifyResponse
// @Router /api/v1/categories/reclassify [post]
func (h *TransactionHandler) Reclassify(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	total, changed, err := h.statements.Reclassify(c.Context(), userID)
	if err != nil {
		h.logger.Error("Reclassify failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Reclassification failed",
		})
	}

	return c.JSON(dto.ReclassifyResponse{Reclassified: total, Changed: changed})
}

// ReloadCatalog godoc
// @Summary Reload the merchant catalog
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.CatalogReloadResponse
// @Router /api/v1/catalog/reload [post]
func (h *TransactionHandler) ReloadCatalog(c *fiber.Ctx) error {
	if _, err := getUserID(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	merchants, err := h.statements.ReloadCatalog()
	if err != nil {
		h.logger.Error("Catalog reload failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Catalog reload failed",
		})
	}

	return c.JSON(dto.CatalogReloadResponse{Merchants: merchants})
}

func toTransactionResponses(transactions []*models.Transaction) []dto.TransactionResponse {
	out := make([]dto.TransactionResponse, len(transactions))
	for i, tx := range transactions {
		out[i] = dto.TransactionResponse{
			ID:          tx.ID.String(),
			Date:        tx.Date.Format("2006-01-02"),
			Narration:   tx.Narration,
			Amount:      tx.Amount,
			AccountRef:  tx.AccountRef,
			Category:    tx.CategoryID,
			Subcategory: tx.SubcategoryID,
			Merchant:    tx.MerchantName,
			MatchKind:   string(tx.MatchKind),
			CreatedAt:   tx.CreatedAt.Format(time.RFC3339),
		}
	}
	return out
}

func parseDateRange(from, to string) (time.Time, time.Time, error) {
	var f, t time.Time
	var err error
	if from != "" {
		if f, err = time.Parse("2006-01-02", from); err != nil {
			return f, t, fiber.NewError(fiber.StatusBadRequest, "Invalid from date")
		}
	}
	if to != "" {
		if t, err = time.Parse("2006-01-02", to); err != nil {
			return f, t, fiber.NewError(fiber.StatusBadRequest, "Invalid to date")
		}
	}
	return f, t, nil
}
