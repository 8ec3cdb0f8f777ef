package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	models "github.com/rogerio-castellano/catalog-console/internal/models"
)

const queryTimeout = 3 * time.Second

const productColumns = `id, name, category, price, rating, stock, created_at, updated_at`

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var (
		p                    models.Product
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Rating, &p.Stock, &createdAt, &updatedAt); err != nil {
		return models.Product{}, err
	}
	p.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	p.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
	return p, nil
}

func (r *PostgresProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	query := `INSERT INTO products (id, name, category, price, rating, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING ` + productColumns
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return scanProduct(r.db.QueryRowContext(ctx, query,
		uuid.NewString(), p.Name, p.Category, p.Price, p.Rating, p.Stock, time.Now().UTC()))
}

func (r *PostgresProductRepository) GetByID(ctx context.Context, id string) (models.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.Product{}, ErrProductNotFound
	}
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) GetByName(ctx context.Context, name string) (models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE LOWER(name) = LOWER($1) ORDER BY created_at LIMIT 1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) Update(ctx context.Context, p models.Product) (models.Product, error) {
	if _, err := uuid.Parse(p.ID); err != nil {
		return models.Product{}, ErrProductNotFound
	}
	query := `UPDATE products
		SET name = $1, category = $2, price = $3, rating = $4, stock = $5, updated_at = $6
		WHERE id = $7
		RETURNING ` + productColumns
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	updated, err := scanProduct(r.db.QueryRowContext(ctx, query,
		p.Name, p.Category, p.Price, p.Rating, p.Stock, time.Now().UTC(), p.ID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return updated, err
}

func (r *PostgresProductRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrProductNotFound
	}
	query := `DELETE FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *PostgresProductRepository) Filter(ctx context.Context, pf ProductFilter) ([]models.Product, int, error) {
	conditions, args, argIdx := filterConditions(pf)

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var totalCount int
	countQuery := "SELECT COUNT(*) FROM products WHERE 1=1" + conditions
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	query += conditions
	query += orderClause(pf.SortBy, pf.SortOrder)

	if pf.Limit != nil && *pf.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, *pf.Limit)
		argIdx++
	}
	if pf.Offset != nil && *pf.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, *pf.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, totalCount, rows.Err()
}

func (r *PostgresProductRepository) Categories(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT category FROM products ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *PostgresProductRepository) Statistics(ctx context.Context, pf ProductFilter) (models.ProductStats, error) {
	conditions, args, _ := filterConditions(pf)

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	stats := models.ProductStats{ByCategory: []models.CategoryStat{}}
	var avg sql.NullFloat64
	totalQuery := `SELECT COUNT(*), AVG(price) FROM products WHERE 1=1` + conditions
	if err := r.db.QueryRowContext(ctx, totalQuery, args...).Scan(&stats.TotalProducts, &avg); err != nil {
		return models.ProductStats{}, err
	}
	if stats.TotalProducts == 0 {
		return stats, nil
	}
	stats.AveragePrice = roundCents(avg.Float64)

	rows, err := r.db.QueryContext(ctx,
		`SELECT category, COUNT(*) FROM products WHERE 1=1`+conditions+` GROUP BY category`, args...)
	if err != nil {
		return models.ProductStats{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			category string
			count    int
		)
		if err := rows.Scan(&category, &count); err != nil {
			return models.ProductStats{}, err
		}
		stats.ByCategory = append(stats.ByCategory, categoryStat(category, count, stats.TotalProducts))
	}
	if err := rows.Err(); err != nil {
		return models.ProductStats{}, err
	}
	sortCategoryStats(stats.ByCategory)
	return stats, nil
}

func filterConditions(pf ProductFilter) (string, []any, int) {
	query := ""
	argIdx := 1
	args := []any{}

	if pf.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, pf.Category)
		argIdx++
	}
	if pf.Search != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", argIdx)
		args = append(args, "%"+pf.Search+"%")
		argIdx++
	}
	if pf.MinPrice != nil {
		query += fmt.Sprintf(" AND price >= $%d", argIdx)
		args = append(args, *pf.MinPrice)
		argIdx++
	}
	if pf.MaxPrice != nil {
		query += fmt.Sprintf(" AND price <= $%d", argIdx)
		args = append(args, *pf.MaxPrice)
		argIdx++
	}

	return query, args, argIdx
}

// orderClause only ever emits whitelisted columns.
func orderClause(by models.SortField, order models.SortOrder) string {
	dir := "ASC"
	if order == models.SortDesc {
		dir = "DESC"
	}
	switch by {
	case models.SortByName:
		return " ORDER BY LOWER(name) " + dir + ", created_at, id"
	case models.SortByPrice:
		return " ORDER BY price " + dir + ", created_at, id"
	default:
		return " ORDER BY created_at, id"
	}
}
