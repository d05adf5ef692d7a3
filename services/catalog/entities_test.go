package main

import (
	"testing"
	"time"
)

func TestNewProduct(t *testing.T) {
	// Arrange
	name := "Teclado Mecânico"
	description := "Teclado mecânico ABNT2"
	purchasePrice := 10.0
	salePrice := 20.0
	quantity := 5

	// Act
	product := NewProduct(name, description, purchasePrice, salePrice, quantity)

	// Assert
	if product.ID == "" {
		t.Error("Expected ID to be set")
	}
	if product.Name != name {
		t.Errorf("Expected Name %s, got %s", name, product.Name)
	}
	if product.Description != description {
		t.Errorf("Expected Description %s, got %s", description, product.Description)
	}
	if product.PurchasePrice != purchasePrice {
		t.Errorf("Expected PurchasePrice %.2f, got %.2f", purchasePrice, product.PurchasePrice)
	}
	if product.SalePrice != salePrice {
		t.Errorf("Expected SalePrice %.2f, got %.2f", salePrice, product.SalePrice)
	}
	if product.Quantity != quantity {
		t.Errorf("Expected Quantity %d, got %d", quantity, product.Quantity)
	}
	if !product.Active {
		t.Error("Expected new product to be active")
	}
	if product.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}
	if product.UpdatedAt.IsZero() {
		t.Error("Expected UpdatedAt to be set")
	}

	now := time.Now()
	if product.CreatedAt.After(now) || product.CreatedAt.Before(now.Add(-time.Second)) {
		t.Error("CreatedAt is not within expected time range")
	}
}

func TestNewOperation(t *testing.T) {
	// Arrange
	productID := "product-123"
	quantity := 3
	unitPrice := 15.0

	// Act
	operation := NewOperation(productID, OperationTypePurchase, quantity, unitPrice)

	// Assert
	if operation.ID == "" {
		t.Error("Expected ID to be set")
	}
	if operation.ProductID != productID {
		t.Errorf("Expected ProductID %s, got %s", productID, operation.ProductID)
	}
	if operation.OperationType != OperationTypePurchase {
		t.Errorf("Expected OperationType %s, got %s", OperationTypePurchase, operation.OperationType)
	}
	if operation.Quantity != quantity {
		t.Errorf("Expected Quantity %d, got %d", quantity, operation.Quantity)
	}
	if operation.UnitPrice != unitPrice {
		t.Errorf("Expected UnitPrice %.2f, got %.2f", unitPrice, operation.UnitPrice)
	}
	if operation.Total != 45.0 {
		t.Errorf("Expected Total 45.00, got %.2f", operation.Total)
	}
	if operation.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}
}

func TestOperationType(t *testing.T) {
	// Test that constants are defined correctly
	if OperationTypePurchase != "purchase" {
		t.Errorf("Expected OperationTypePurchase to be 'purchase', got %s", OperationTypePurchase)
	}
	if OperationTypeSale != "sale" {
		t.Errorf("Expected OperationTypeSale to be 'sale', got %s", OperationTypeSale)
	}
}

func TestDerivePurchasePricingAdoptsHigherCandidate(t *testing.T) {
	// Candidate 15 * 1.5 = 22.5 > 20, so both prices change
	newPurchase, newSale := DerivePurchasePricing(10, 20, 15)

	if newPurchase != 15 {
		t.Errorf("Expected new purchase price 15, got %.2f", newPurchase)
	}
	if newSale != 22.5 {
		t.Errorf("Expected new sale price 22.5, got %.2f", newSale)
	}
}

func TestDerivePurchasePricingKeepsPricesBelowMargin(t *testing.T) {
	// Candidate 10 * 1.5 = 15 <= 20, so nothing changes
	newPurchase, newSale := DerivePurchasePricing(10, 20, 10)

	if newPurchase != 10 {
		t.Errorf("Expected purchase price unchanged at 10, got %.2f", newPurchase)
	}
	if newSale != 20 {
		t.Errorf("Expected sale price unchanged at 20, got %.2f", newSale)
	}
}

func TestDerivePurchasePricingExactTieKeepsPrices(t *testing.T) {
	// Candidate 20 * 1.5 = 30 equals the current sale price exactly;
	// comparison is strict so nothing changes
	newPurchase, newSale := DerivePurchasePricing(18, 30, 20)

	if newPurchase != 18 {
		t.Errorf("Expected purchase price unchanged at 18, got %.2f", newPurchase)
	}
	if newSale != 30 {
		t.Errorf("Expected sale price unchanged at 30, got %.2f", newSale)
	}
}

func TestApplyStockDeltaPurchaseNeverResets(t *testing.T) {
	newQuantity, reset := ApplyStockDelta(5, 3)

	if newQuantity != 8 {
		t.Errorf("Expected quantity 8, got %d", newQuantity)
	}
	if reset {
		t.Error("Expected no pricing reset on purchase")
	}
}

func TestApplyStockDeltaSaleToZeroResets(t *testing.T) {
	newQuantity, reset := ApplyStockDelta(8, -8)

	if newQuantity != 0 {
		t.Errorf("Expected quantity 0, got %d", newQuantity)
	}
	if !reset {
		t.Error("Expected pricing reset when sale depletes the stock")
	}
}

func TestApplyStockDeltaPartialSaleKeepsPricing(t *testing.T) {
	newQuantity, reset := ApplyStockDelta(8, -3)

	if newQuantity != 5 {
		t.Errorf("Expected quantity 5, got %d", newQuantity)
	}
	if reset {
		t.Error("Expected no pricing reset when stock remains above zero")
	}
}

func TestApplyStockDeltaPurchaseFromZeroDoesNotReset(t *testing.T) {
	// Quantity zero after a positive delta is impossible, but a purchase
	// landing on any value must never trigger the reset flag
	newQuantity, reset := ApplyStockDelta(0, 4)

	if newQuantity != 4 {
		t.Errorf("Expected quantity 4, got %d", newQuantity)
	}
	if reset {
		t.Error("Expected no pricing reset on purchase")
	}
}
