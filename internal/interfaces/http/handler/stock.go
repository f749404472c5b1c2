package handler

import (
	"github.com/branchstock/backend/internal/application/movement"
	"github.com/branchstock/backend/internal/application/reconciliation"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockHandler handles stock intake and stock queries
type StockHandler struct {
	BaseHandler
	movementService *movement.Service
	queryService    *reconciliation.QueryService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(movementService *movement.Service, queryService *reconciliation.QueryService) *StockHandler {
	return &StockHandler{
		movementService: movementService,
		queryService:    queryService,
	}
}

// AddStockRequest is the body of POST /stock
type AddStockRequest struct {
	BranchID       uuid.UUID       `json:"branch_id" binding:"required"`
	BranchName     string          `json:"branch_name" binding:"max=200"`
	BranchNumber   int             `json:"branch_number" binding:"min=0"`
	ArticleID      uuid.UUID       `json:"article_id" binding:"required"`
	ArticleName    string          `json:"article_name" binding:"max=200"`
	ItemID         uuid.UUID       `json:"item_id" binding:"required"`
	Size           string          `json:"size" binding:"max=50"`
	Qty            decimal.Decimal `json:"qty" binding:"gt=0"`
	Purchase       decimal.Decimal `json:"purchase" binding:"gte=0"`
	InvoiceNo      string          `json:"invoice_no" binding:"max=100"`
	TruckNo        string          `json:"truck_no" binding:"max=100"`
	Date           int64           `json:"date" binding:"min=0"`
	Description    string          `json:"description" binding:"max=500"`
	IdempotencyKey string          `json:"idempotency_key" binding:"max=128"`
}

// StockRangeRequest is the body of POST /stock/range.
// A missing end means now.
type StockRangeRequest struct {
	From int64 `json:"from" binding:"min=0"`
	To   int64 `json:"to" binding:"min=0"`
}

// StockBranchRequest is the body of POST /stock/branch.
// Either all is true or branch_id is set; an empty body is rejected.
type StockBranchRequest struct {
	All      bool      `json:"all"`
	BranchID uuid.UUID `json:"branch_id"`
}

// Add godoc
// @ID           addStock
// @Summary      Record goods received at a branch
// @Description  Creates a stock entry and raises the item's quantity. A repeated Idempotency-Key replays the first result.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Replay key"
// @Param        request body AddStockRequest true "Stock intake request"
// @Success      201 {object} dto.Response{data=movement.StockEntryResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Router       /stock [post]
func (h *StockHandler) Add(c *gin.Context) {
	var req AddStockRequest
	if !h.bindJSON(c, &req) {
		return
	}

	entry, err := h.movementService.AddStock(c.Request.Context(), movement.AddStockRequest{
		BranchID:       req.BranchID,
		BranchName:     req.BranchName,
		BranchNumber:   req.BranchNumber,
		ArticleID:      req.ArticleID,
		ArticleName:    req.ArticleName,
		ItemID:         req.ItemID,
		Size:           req.Size,
		Qty:            req.Qty,
		Purchase:       req.Purchase,
		InvoiceNo:      req.InvoiceNo,
		TruckNo:        req.TruckNo,
		Date:           epochTime(req.Date),
		Description:    req.Description,
		IdempotencyKey: idempotencyKey(c, req.IdempotencyKey),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, entry)
}

// ListByDateRange godoc
// @ID           listStockByDateRange
// @Summary      List stock entries in a date range
// @Description  Dates are epoch seconds and both ends are inclusive. A missing end means now.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        request body StockRangeRequest true "Date range"
// @Success      200 {object} dto.Response{data=[]movement.StockEntryResponse}
// @Failure      400 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Router       /stock/range [post]
func (h *StockHandler) ListByDateRange(c *gin.Context) {
	var req StockRangeRequest
	if !h.bindJSON(c, &req) {
		return
	}

	entries, err := h.queryService.ListStockByDateRange(c.Request.Context(), req.From, req.To)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}

// ListByBranch godoc
// @ID           listStockByBranch
// @Summary      List stock entries by branch
// @Description  Set all to list every branch, or branch_id for one.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        request body StockBranchRequest true "Branch selector"
// @Success      200 {object} dto.Response{data=[]movement.StockEntryResponse}
// @Failure      400 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Router       /stock/branch [post]
func (h *StockHandler) ListByBranch(c *gin.Context) {
	var req StockBranchRequest
	if !h.bindJSON(c, &req) {
		return
	}

	entries, err := h.queryService.ListStockByBranch(c.Request.Context(), reconciliation.StockByBranchRequest{
		All:      req.All,
		BranchID: req.BranchID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}

// idempotencyKey prefers the Idempotency-Key header over the body field
func idempotencyKey(c *gin.Context, fromBody string) string {
	if key := c.GetHeader("Idempotency-Key"); key != "" {
		return key
	}
	return fromBody
}
