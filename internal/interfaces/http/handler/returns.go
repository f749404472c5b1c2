package handler

import (
	"github.com/branchstock/backend/internal/application/movement"
	"github.com/branchstock/backend/internal/application/reconciliation"
	"github.com/branchstock/backend/internal/domain/trade"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReturnHandler handles sales returns and invoice deletion
type ReturnHandler struct {
	BaseHandler
	movementService *movement.Service
	queryService    *reconciliation.QueryService
}

// NewReturnHandler creates a new ReturnHandler
func NewReturnHandler(movementService *movement.Service, queryService *reconciliation.QueryService) *ReturnHandler {
	return &ReturnHandler{
		movementService: movementService,
		queryService:    queryService,
	}
}

// ReturnLineRequest is one returned line
type ReturnLineRequest struct {
	ItemID      uuid.UUID       `json:"item_id" binding:"required"`
	ArticleName string          `json:"article_name" binding:"max=200"`
	ArticleSize string          `json:"article_size" binding:"max=50"`
	Qty         decimal.Decimal `json:"qty" binding:"gt=0"`
	Price       decimal.Decimal `json:"price" binding:"gte=0"`
	Purchase    decimal.Decimal `json:"purchase" binding:"gte=0"`
	Amount      decimal.Decimal `json:"amount" binding:"gte=0"`
}

// CreateReturnRequest is the body of POST /returns
type CreateReturnRequest struct {
	CustomerID     uuid.UUID           `json:"customer_id" binding:"required"`
	Date           int64               `json:"date" binding:"min=0"`
	InvoiceNo      string              `json:"invoice_no" binding:"required,max=100"`
	Discount       decimal.Decimal     `json:"discount" binding:"gte=0"`
	Items          []ReturnLineRequest `json:"items" binding:"required,min=1,dive"`
	IdempotencyKey string              `json:"idempotency_key" binding:"max=128"`
}

// CustomerReturnsRequest is the body of POST /returns/list
type CustomerReturnsRequest struct {
	CustomerID uuid.UUID `json:"customer_id" binding:"required"`
}

// DeleteInvoiceRequest is the body of DELETE /returns/invoice
type DeleteInvoiceRequest struct {
	CustomerID uuid.UUID `json:"customer_id" binding:"required"`
	InvoiceNo  string    `json:"invoice_no" binding:"required,max=100"`
}

// Create godoc
// @ID           createReturn
// @Summary      Record a customer return
// @Description  Stores the return, puts the returned quantities back on their items and credits the customer's balance.
// @Tags         returns
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Replay key"
// @Param        request body CreateReturnRequest true "Return request"
// @Success      201 {object} dto.Response{data=movement.SalesReturnResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Router       /returns [post]
func (h *ReturnHandler) Create(c *gin.Context) {
	var req CreateReturnRequest
	if !h.bindJSON(c, &req) {
		return
	}

	items := make([]trade.ReturnLineInput, len(req.Items))
	for i, line := range req.Items {
		items[i] = trade.ReturnLineInput{
			ItemID:      line.ItemID,
			ArticleName: line.ArticleName,
			ArticleSize: line.ArticleSize,
			Qty:         line.Qty,
			Price:       line.Price,
			Purchase:    line.Purchase,
			Amount:      line.Amount,
		}
	}

	ret, err := h.movementService.CreateReturn(c.Request.Context(), movement.CreateReturnRequest{
		CustomerID:     req.CustomerID,
		Date:           epochTime(req.Date),
		InvoiceNo:      req.InvoiceNo,
		Discount:       req.Discount,
		Items:          items,
		IdempotencyKey: idempotencyKey(c, req.IdempotencyKey),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, ret)
}

// List godoc
// @ID           listCustomerReturns
// @Summary      List a customer's return lines
// @Tags         returns
// @Accept       json
// @Produce      json
// @Param        request body CustomerReturnsRequest true "Customer selector"
// @Success      200 {object} dto.Response{data=[]reconciliation.ReturnLineResponse}
// @Failure      400 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Router       /returns/list [post]
func (h *ReturnHandler) List(c *gin.Context) {
	var req CustomerReturnsRequest
	if !h.bindJSON(c, &req) {
		return
	}

	lines, err := h.queryService.GetReturns(c.Request.Context(), req.CustomerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lines)
}

// DeleteInvoice godoc
// @ID           deleteReturnInvoice
// @Summary      Delete a return invoice
// @Description  Reverses the item and balance effects of every return under the invoice, then removes them.
// @Tags         returns
// @Accept       json
// @Produce      json
// @Param        request body DeleteInvoiceRequest true "Invoice selector"
// @Success      200 {object} dto.Response{data=movement.DeleteInvoiceResult}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Router       /returns/invoice [delete]
func (h *ReturnHandler) DeleteInvoice(c *gin.Context) {
	var req DeleteInvoiceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.movementService.DeleteInvoice(c.Request.Context(), movement.DeleteInvoiceRequest{
		CustomerID: req.CustomerID,
		InvoiceNo:  req.InvoiceNo,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
