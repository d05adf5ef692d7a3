package main

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Erros de negócio das transações de estoque
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrInvalidPrice      = errors.New("unit price must be greater than zero")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// saleMargin é a margem fixa de lucro aplicada sobre o preço de compra (50%)
const saleMargin = 1.5

// OperationType representa os tipos de operação sobre um produto
const (
	OperationTypePurchase = "purchase"
	OperationTypeSale     = "sale"
)

// Product representa um produto do catálogo com seus preços e estoque
type Product struct {
	ID            string    `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Description   string    `json:"description" db:"description"`
	PurchasePrice float64   `json:"purchase_price" db:"purchase_price"`
	SalePrice     float64   `json:"sale_price" db:"sale_price"`
	Quantity      int       `json:"quantity" db:"quantity"`
	Active        bool      `json:"active" db:"active"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// NewProduct cria uma nova instância de Product
func NewProduct(name, description string, purchasePrice, salePrice float64, quantity int) *Product {
	return &Product{
		ID:            uuid.New().String(),
		Name:          name,
		Description:   description,
		PurchasePrice: purchasePrice,
		SalePrice:     salePrice,
		Quantity:      quantity,
		Active:        true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

// Operation representa o registro imutável de uma compra ou venda.
// Depois de criado ele nunca é atualizado, mesmo que os preços do produto
// mudem em transações posteriores.
type Operation struct {
	ID            string    `json:"id" db:"id"`
	ProductID     string    `json:"product_id" db:"product_id"`
	OperationType string    `json:"operation_type" db:"operation_type"`
	Quantity      int       `json:"quantity" db:"quantity"`
	UnitPrice     float64   `json:"unit_price" db:"unit_price"`
	Total         float64   `json:"total" db:"total"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// NewOperation cria o registro de uma operação; o total é calculado uma única
// vez (quantidade * preço unitário) e armazenado como está
func NewOperation(productID, operationType string, quantity int, unitPrice float64) *Operation {
	return &Operation{
		ID:            uuid.New().String(),
		ProductID:     productID,
		OperationType: operationType,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		Total:         float64(quantity) * unitPrice,
		CreatedAt:     time.Now(),
	}
}

// DerivePurchasePricing calcula os novos preços do produto após uma compra.
// O preço de venda candidato é o preço informado com margem de 50%; ele só é
// adotado quando for estritamente maior que o preço de venda atual — nesse
// caso o preço de compra também passa a ser o preço informado. Empate exato
// não atualiza nada.
func DerivePurchasePricing(currentPurchase, currentSale, incomingUnit float64) (float64, float64) {
	candidate := incomingUnit * saleMargin
	if candidate > currentSale {
		return incomingUnit, candidate
	}
	return currentPurchase, currentSale
}

// ApplyStockDelta aplica uma variação de estoque e indica se os preços devem
// ser zerados. O reset só acontece quando uma venda esgota o estoque, ou
// seja, quando a quantidade resultante é exatamente zero.
func ApplyStockDelta(current, delta int) (int, bool) {
	newQuantity := current + delta
	reset := delta < 0 && newQuantity == 0
	return newQuantity, reset
}
