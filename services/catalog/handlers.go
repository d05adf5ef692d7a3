package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// ProductUseCaseInterface define a interface para o use case
type ProductUseCaseInterface interface {
	Buy(ctx context.Context, productID string, quantity int, unitPrice float64) (*Operation, *Product, error)
	Sell(ctx context.Context, productID string, quantity int) (*Operation, *Product, error)
	ListActiveProducts(ctx context.Context) ([]*Product, error)
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	GetProduct(ctx context.Context, productID string) (*Product, []*Operation, error)
	UpdateProduct(ctx context.Context, productID string, req UpdateProductRequest) (*Product, error)
	DeactivateProduct(ctx context.Context, productID string) (*Product, error)
}

// BuyProductRequest representa a requisição de compra de um produto
type BuyProductRequest struct {
	Quantity  int     `json:"quantity" binding:"required"`
	UnitPrice float64 `json:"unit_price" binding:"required"`
}

// SellProductRequest representa a requisição de venda de um produto
type SellProductRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// ProductHandler contém os handlers HTTP do catálogo
type ProductHandler struct {
	useCase      ProductUseCaseInterface
	tracer       trace.Tracer
	transactions metric.Int64Counter
}

// NewProductHandler cria uma nova instância de ProductHandler
func NewProductHandler(useCase ProductUseCaseInterface, tracer trace.Tracer, transactions metric.Int64Counter) *ProductHandler {
	return &ProductHandler{
		useCase:      useCase,
		tracer:       tracer,
		transactions: transactions,
	}
}

// Buy é o endpoint da operação de compra
func (h *ProductHandler) Buy(c *gin.Context) {
	productID := c.Param("id")

	var req BuyProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "buy_product")
	defer span.End()

	span.SetAttributes(
		attribute.String("product_id", productID),
		attribute.Int("quantity", req.Quantity),
		attribute.Float64("unit_price", req.UnitPrice),
	)

	operation, product, err := h.useCase.Buy(ctx, productID, req.Quantity, req.UnitPrice)
	if err != nil {
		span.RecordError(err)
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	h.transactions.Add(ctx, 1, metric.WithAttributes(attribute.String("operation_type", OperationTypePurchase)))
	span.SetAttributes(attribute.String("operation_id", operation.ID))

	c.JSON(http.StatusOK, gin.H{
		"operation": operation,
		"product":   product,
	})
}

// Sell é o endpoint da operação de venda
func (h *ProductHandler) Sell(c *gin.Context) {
	productID := c.Param("id")

	var req SellProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "sell_product")
	defer span.End()

	span.SetAttributes(
		attribute.String("product_id", productID),
		attribute.Int("quantity", req.Quantity),
	)

	operation, product, err := h.useCase.Sell(ctx, productID, req.Quantity)
	if err != nil {
		span.RecordError(err)
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	h.transactions.Add(ctx, 1, metric.WithAttributes(attribute.String("operation_type", OperationTypeSale)))
	span.SetAttributes(attribute.String("operation_id", operation.ID))

	c.JSON(http.StatusOK, gin.H{
		"operation": operation,
		"product":   product,
	})
}

// ListProducts retorna todos os produtos ativos
func (h *ProductHandler) ListProducts(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "list_products")
	defer span.End()

	products, err := h.useCase.ListActiveProducts(ctx)
	if err != nil {
		span.RecordError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// CreateProduct cria um novo produto
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "create_product")
	defer span.End()

	product, err := h.useCase.CreateProduct(ctx, req)
	if err != nil {
		span.RecordError(err)
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	span.SetAttributes(attribute.String("product_id", product.ID))
	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// GetProduct retorna um produto com seu histórico de operações
func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID := c.Param("id")

	ctx, span := h.tracer.Start(c.Request.Context(), "get_product")
	defer span.End()

	span.SetAttributes(attribute.String("product_id", productID))

	product, operations, err := h.useCase.GetProduct(ctx, productID)
	if err != nil {
		span.RecordError(err)
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product":    product,
		"operations": operations,
	})
}

// UpdateProduct atualiza os dados de um produto
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	productID := c.Param("id")

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "update_product")
	defer span.End()

	span.SetAttributes(attribute.String("product_id", productID))

	product, err := h.useCase.UpdateProduct(ctx, productID, req)
	if err != nil {
		span.RecordError(err)
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// DeactivateProduct muda o status do produto para inativo
func (h *ProductHandler) DeactivateProduct(c *gin.Context) {
	productID := c.Param("id")

	ctx, span := h.tracer.Start(c.Request.Context(), "deactivate_product")
	defer span.End()

	span.SetAttributes(attribute.String("product_id", productID))

	product, err := h.useCase.DeactivateProduct(ctx, productID)
	if err != nil {
		span.RecordError(err)
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// HealthCheck verifica a saúde do serviço
func (h *ProductHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "catalog-service",
	})
}

// statusFromError mapeia os erros de negócio para códigos HTTP
func statusFromError(err error) int {
	switch {
	case errors.Is(err, ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidQuantity), errors.Is(err, ErrInvalidPrice):
		return http.StatusBadRequest
	case errors.Is(err, ErrInsufficientStock):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
