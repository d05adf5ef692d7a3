package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository define a interface para operações de banco de dados do catálogo
type Repository interface {
	// BeginTx inicia uma transação de banco para uma compra ou venda
	BeginTx(ctx context.Context) (Tx, error)

	// GetProductForUpdate obtém o produto com lock pessimista (FOR UPDATE),
	// serializando transações concorrentes sobre o mesmo produto
	GetProductForUpdate(ctx context.Context, tx Tx, productID string) (*Product, error)

	// ApplyTransaction grava a mutação do produto e insere a operação dentro
	// da transação aberta, como uma unidade só
	ApplyTransaction(ctx context.Context, tx Tx, product *Product, operation *Operation) error

	// GetProduct busca um produto pelo ID
	GetProduct(ctx context.Context, productID string) (*Product, error)

	// ListActiveProducts retorna todos os produtos com status ativo
	ListActiveProducts(ctx context.Context) ([]*Product, error)

	// ListOperations retorna as operações de um produto em ordem cronológica
	ListOperations(ctx context.Context, productID string) ([]*Operation, error)

	// CreateProduct cria um novo produto
	CreateProduct(ctx context.Context, product *Product) error

	// UpdateProduct atualiza os campos de um produto fora de uma transação
	UpdateProduct(ctx context.Context, product *Product) error
}

// Tx interface para transações
type Tx interface {
	Commit() error
	Rollback() error
}

// PostgresTx implementa a interface Tx
type PostgresTx struct {
	tx pgx.Tx
}

func (t *PostgresTx) Commit() error {
	return t.tx.Commit(context.Background())
}

func (t *PostgresTx) Rollback() error {
	return t.tx.Rollback(context.Background())
}

// PostgresProductRepository implementa Repository usando PostgreSQL
type PostgresProductRepository struct {
	db *pgxpool.Pool
}

// NewProductRepository cria uma nova instância de PostgresProductRepository
func NewProductRepository(db *pgxpool.Pool) Repository {
	return &PostgresProductRepository{
		db: db,
	}
}

// BeginTx inicia uma nova transação
func (r *PostgresProductRepository) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &PostgresTx{tx: tx}, nil
}

// GetProductForUpdate obtém o produto com lock pessimista (FOR UPDATE)
func (r *PostgresProductRepository) GetProductForUpdate(ctx context.Context, tx Tx, productID string) (*Product, error) {
	pgTx := tx.(*PostgresTx).tx

	query := `
		SELECT id, name, description, purchase_price, sale_price, quantity, active, created_at, updated_at
		FROM products
		WHERE id = $1
		FOR UPDATE
	`

	var product Product
	err := pgTx.QueryRow(ctx, query, productID).Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.PurchasePrice,
		&product.SalePrice,
		&product.Quantity,
		&product.Active,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product with lock: %w", err)
	}

	return &product, nil
}

// ApplyTransaction atualiza o produto e insere a operação na mesma transação.
// O commit fica a cargo do chamador; qualquer erro aqui deixa a transação
// pronta para rollback sem efeito parcial.
func (r *PostgresProductRepository) ApplyTransaction(ctx context.Context, tx Tx, product *Product, operation *Operation) error {
	pgTx := tx.(*PostgresTx).tx

	updateQuery := `
		UPDATE products
		SET purchase_price = $1,
		    sale_price = $2,
		    quantity = $3,
		    updated_at = $4
		WHERE id = $5
	`

	_, err := pgTx.Exec(ctx, updateQuery,
		product.PurchasePrice, product.SalePrice, product.Quantity, product.UpdatedAt, product.ID)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	insertQuery := `
		INSERT INTO operations (id, product_id, operation_type, quantity, unit_price, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = pgTx.Exec(ctx, insertQuery,
		operation.ID, operation.ProductID, operation.OperationType,
		operation.Quantity, operation.UnitPrice, operation.Total, operation.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert operation record: %w", err)
	}

	return nil
}

// GetProduct busca um produto pelo ID
func (r *PostgresProductRepository) GetProduct(ctx context.Context, productID string) (*Product, error) {
	var product Product
	err := r.db.QueryRow(ctx, `
		SELECT id, name, description, purchase_price, sale_price, quantity, active, created_at, updated_at
		FROM products WHERE id = $1
	`, productID).Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.PurchasePrice,
		&product.SalePrice,
		&product.Quantity,
		&product.Active,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListActiveProducts retorna todos os produtos com status ativo
func (r *PostgresProductRepository) ListActiveProducts(ctx context.Context) ([]*Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, description, purchase_price, sale_price, quantity, active, created_at, updated_at
		FROM products
		WHERE active = true
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*Product{}
	for rows.Next() {
		var product Product
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Description,
			&product.PurchasePrice,
			&product.SalePrice,
			&product.Quantity,
			&product.Active,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		products = append(products, &product)
	}
	return products, rows.Err()
}

// ListOperations retorna as operações de um produto em ordem de inserção
func (r *PostgresProductRepository) ListOperations(ctx context.Context, productID string) ([]*Operation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, product_id, operation_type, quantity, unit_price, total, created_at
		FROM operations
		WHERE product_id = $1
		ORDER BY created_at
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}
	defer rows.Close()

	operations := []*Operation{}
	for rows.Next() {
		var operation Operation
		err := rows.Scan(
			&operation.ID,
			&operation.ProductID,
			&operation.OperationType,
			&operation.Quantity,
			&operation.UnitPrice,
			&operation.Total,
			&operation.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		operations = append(operations, &operation)
	}
	return operations, rows.Err()
}

// CreateProduct cria um novo produto
func (r *PostgresProductRepository) CreateProduct(ctx context.Context, product *Product) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO products (id, name, description, purchase_price, sale_price, quantity, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, product.ID, product.Name, product.Description, product.PurchasePrice, product.SalePrice,
		product.Quantity, product.Active, product.CreatedAt, product.UpdatedAt)
	return err
}

// UpdateProduct atualiza os campos de um produto
func (r *PostgresProductRepository) UpdateProduct(ctx context.Context, product *Product) error {
	_, err := r.db.Exec(ctx, `
		UPDATE products
		SET name = $1,
		    description = $2,
		    purchase_price = $3,
		    sale_price = $4,
		    quantity = $5,
		    active = $6,
		    updated_at = $7
		WHERE id = $8
	`, product.Name, product.Description, product.PurchasePrice, product.SalePrice,
		product.Quantity, product.Active, product.UpdatedAt, product.ID)
	return err
}
