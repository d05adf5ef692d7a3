package main

import (
	"context"
	"fmt"
	"log"
	"time"
)

// ProductUseCase contém a lógica de negócio do catálogo e das transações de
// compra e venda
type ProductUseCase struct {
	repository Repository
}

// NewProductUseCase cria uma nova instância de ProductUseCase
func NewProductUseCase(repository Repository) *ProductUseCase {
	return &ProductUseCase{
		repository: repository,
	}
}

// CreateProductRequest representa a requisição para criar um produto
type CreateProductRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description" binding:"required"`
	PurchasePrice float64 `json:"purchase_price"`
	SalePrice     float64 `json:"sale_price"`
	Quantity      int     `json:"quantity"`
}

// UpdateProductRequest representa a requisição de atualização simples de um
// produto; campos omitidos mantêm o valor atual
type UpdateProductRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	PurchasePrice *float64 `json:"purchase_price"`
	SalePrice     *float64 `json:"sale_price"`
	Quantity      *int     `json:"quantity"`
}

// Buy executa a operação de compra de um produto como uma unidade atômica:
// carrega o produto com lock, deriva os novos preços, soma a quantidade
// comprada e grava a mutação do produto junto com o registro da operação
// na mesma transação.
func (uc *ProductUseCase) Buy(ctx context.Context, productID string, quantity int, unitPrice float64) (*Operation, *Product, error) {
	log.Printf("➡️ [BUY] ProductID: %s | Quantity: %d | UnitPrice: %.2f", productID, quantity, unitPrice)

	// Validação antes de qualquer leitura ou escrita
	if quantity <= 0 {
		return nil, nil, ErrInvalidQuantity
	}
	if unitPrice <= 0 {
		return nil, nil, ErrInvalidPrice
	}

	tx, err := uc.repository.BeginTx(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	product, err := uc.repository.GetProductForUpdate(ctx, tx, productID)
	if err != nil {
		log.Printf("❌ [BUY] GetProductForUpdate | ProductID=%s | Error=%v", productID, err)
		return nil, nil, err
	}

	product.PurchasePrice, product.SalePrice = DerivePurchasePricing(product.PurchasePrice, product.SalePrice, unitPrice)
	product.Quantity, _ = ApplyStockDelta(product.Quantity, quantity)
	product.UpdatedAt = time.Now()

	operation := NewOperation(product.ID, OperationTypePurchase, quantity, unitPrice)

	if err := uc.repository.ApplyTransaction(ctx, tx, product, operation); err != nil {
		log.Printf("❌ [BUY] Failed to persist | ProductID=%s | Error=%v", productID, err)
		return nil, nil, fmt.Errorf("failed to apply purchase: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit purchase: %w", err)
	}

	log.Printf("✅ [BUY] Success: ProductID=%s | NewQuantity=%d | SalePrice=%.2f", product.ID, product.Quantity, product.SalePrice)
	return operation, product, nil
}

// Sell executa a operação de venda de um produto como uma unidade atômica.
// O preço unitário da operação é o preço de venda vigente, capturado antes
// de qualquer mutação; se a venda esgotar o estoque, os preços do produto
// são zerados.
func (uc *ProductUseCase) Sell(ctx context.Context, productID string, quantity int) (*Operation, *Product, error) {
	log.Printf("➡️ [SELL] ProductID: %s | Quantity: %d", productID, quantity)

	if quantity <= 0 {
		return nil, nil, ErrInvalidQuantity
	}

	tx, err := uc.repository.BeginTx(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	product, err := uc.repository.GetProductForUpdate(ctx, tx, productID)
	if err != nil {
		log.Printf("❌ [SELL] GetProductForUpdate | ProductID=%s | Error=%v", productID, err)
		return nil, nil, err
	}

	// Regra de negócio: a quantidade nunca pode ficar negativa
	if quantity > product.Quantity {
		log.Printf("❌ [SELL] Insufficient stock | ProductID=%s | Stock=%d | Requested=%d", productID, product.Quantity, quantity)
		return nil, nil, ErrInsufficientStock
	}

	// Preço unitário capturado antes da mutação do produto
	operation := NewOperation(product.ID, OperationTypeSale, quantity, product.SalePrice)

	newQuantity, pricingReset := ApplyStockDelta(product.Quantity, -quantity)
	product.Quantity = newQuantity
	if pricingReset {
		product.PurchasePrice = 0
		product.SalePrice = 0
	}
	product.UpdatedAt = time.Now()

	if err := uc.repository.ApplyTransaction(ctx, tx, product, operation); err != nil {
		log.Printf("❌ [SELL] Failed to persist | ProductID=%s | Error=%v", productID, err)
		return nil, nil, fmt.Errorf("failed to apply sale: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit sale: %w", err)
	}

	log.Printf("✅ [SELL] Success: ProductID=%s | NewQuantity=%d", product.ID, product.Quantity)
	return operation, product, nil
}

// ListActiveProducts retorna todos os produtos com status ativo
func (uc *ProductUseCase) ListActiveProducts(ctx context.Context) ([]*Product, error) {
	products, err := uc.repository.ListActiveProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// CreateProduct cria um novo produto com os dados informados pelo chamador
func (uc *ProductUseCase) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	if req.Quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	if req.PurchasePrice < 0 || req.SalePrice < 0 {
		return nil, ErrInvalidPrice
	}

	product := NewProduct(req.Name, req.Description, req.PurchasePrice, req.SalePrice, req.Quantity)

	if err := uc.repository.CreateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	log.Printf("✅ [CREATE] Product created: %s", product.ID)
	return product, nil
}

// GetProduct busca um produto pelo ID junto com o histórico de operações
func (uc *ProductUseCase) GetProduct(ctx context.Context, productID string) (*Product, []*Operation, error) {
	product, err := uc.repository.GetProduct(ctx, productID)
	if err != nil {
		return nil, nil, err
	}

	operations, err := uc.repository.ListOperations(ctx, productID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list operations: %w", err)
	}

	return product, operations, nil
}

// UpdateProduct atualiza os dados do produto informado; campos omitidos na
// requisição mantêm o valor atual
func (uc *ProductUseCase) UpdateProduct(ctx context.Context, productID string, req UpdateProductRequest) (*Product, error) {
	product, err := uc.repository.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.PurchasePrice != nil {
		if *req.PurchasePrice < 0 {
			return nil, ErrInvalidPrice
		}
		product.PurchasePrice = *req.PurchasePrice
	}
	if req.SalePrice != nil {
		if *req.SalePrice < 0 {
			return nil, ErrInvalidPrice
		}
		product.SalePrice = *req.SalePrice
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, ErrInvalidQuantity
		}
		product.Quantity = *req.Quantity
	}
	product.UpdatedAt = time.Now()

	if err := uc.repository.UpdateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	log.Printf("✅ [UPDATE] Product updated: %s", product.ID)
	return product, nil
}

// DeactivateProduct muda o status do produto para inativo; produtos nunca
// são removidos, apenas desativados
func (uc *ProductUseCase) DeactivateProduct(ctx context.Context, productID string) (*Product, error) {
	product, err := uc.repository.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if !product.Active {
		return product, nil
	}

	product.Active = false
	product.UpdatedAt = time.Now()

	if err := uc.repository.UpdateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to deactivate product: %w", err)
	}

	log.Printf("✅ [DEACTIVATE] Product deactivated: %s", product.ID)
	return product, nil
}
