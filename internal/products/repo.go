package products

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nutricoach/server/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// Repo is the local product table, the last stop of the lookup chain.
// Mostly coach-curated products that the external APIs don't know.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, product Product) (_ *Product, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.products.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("barcode", product.Barcode))

	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO product
				(barcode, name, calories_100g, protein_100g, carbs_100g, fat_100g, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id;`,
		product.Barcode, product.Name,
		product.CaloriesPer100g, product.ProteinPer100g, product.CarbsPer100g, product.FatPer100g,
		product.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	product.ID = id
	product.Source = SourceLocal
	return &product, nil
}

func (r *Repo) GetByBarcode(ctx context.Context, barcode string) (_ *Product, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.products.getByBarcode")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("barcode", barcode))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, barcode, name, calories_100g, protein_100g, carbs_100g, fat_100g, created_at
			FROM product
			WHERE barcode = $1;`,
		barcode,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	productsFound, err := r.rows2products(rows)
	if err != nil {
		return nil, err
	}

	if len(productsFound) != 1 {
		return nil, ErrProductNotFound
	}

	return &productsFound[0], nil
}

// SearchByName does a case-insensitive substring search over the local
// table, capped at 50 rows.
func (r *Repo) SearchByName(ctx context.Context, query string) (_ []Product, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.products.searchByName")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("query", query))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, barcode, name, calories_100g, protein_100g, carbs_100g, fat_100g, created_at
			FROM product
			WHERE name ILIKE '%' || $1 || '%'
			ORDER BY name
			LIMIT 50;`,
		query,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return r.rows2products(rows)
}

func (r *Repo) rows2products(rows pgx.Rows) ([]Product, error) {
	var productsFound []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID, &p.Barcode, &p.Name,
			&p.CaloriesPer100g, &p.ProteinPer100g, &p.CarbsPer100g, &p.FatPer100g,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		p.Source = SourceLocal
		productsFound = append(productsFound, p)
	}
	return productsFound, nil
}
