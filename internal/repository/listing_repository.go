package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/DronKashyap/DK-PropertyListings/internal/model"
)

type ListingRepository struct {
	DB *sqlx.DB
}

func NewListingRepository(db *sqlx.DB) *ListingRepository {
	return &ListingRepository{DB: db}
}

// ListingFilter narrows GetFiltered. Nil/zero fields are skipped.
type ListingFilter struct {
	OwnerID  *int64
	Type     string
	Offer    *bool
	MinPrice *float64
	MaxPrice *float64
}

// Create inserts the listing and fills in ID and the timestamps.
func (r *ListingRepository) Create(ctx context.Context, l *model.Listing) error {
	now := time.Now().UTC()
	l.CreatedAt = now
	l.UpdatedAt = now
	if l.ImageURLs == nil {
		l.ImageURLs = pq.StringArray{}
	}
	const q = `
        INSERT INTO listings
            (user_id, name, description, address, regular_price, discount_price,
             bathrooms, bedrooms, furnished, parking, type, offer, image_urls,
             photo_file_id, created_at, updated_at)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
        RETURNING id
    `
	err := r.DB.QueryRowxContext(ctx, q,
		l.UserID, l.Name, l.Description, l.Address, l.RegularPrice, l.DiscountPrice,
		l.Bathrooms, l.Bedrooms, l.Furnished, l.Parking, l.Type, l.Offer, l.ImageURLs,
		l.PhotoFileID, l.CreatedAt, l.UpdatedAt,
	).Scan(&l.ID)
	if err != nil {
		return fmt.Errorf("ListingRepository.Create: %w", err)
	}
	return nil
}

func (r *ListingRepository) GetByID(ctx context.Context, id int64) (*model.Listing, error) {
	var l model.Listing
	err := r.DB.GetContext(ctx, &l, `SELECT * FROM listings WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ListingRepository.GetByID: %w", err)
	}
	return &l, nil
}

func (r *ListingRepository) GetFiltered(ctx context.Context, f ListingFilter, limit, offset int) ([]model.Listing, error) {
	query := "SELECT * FROM listings WHERE 1=1"
	args := []interface{}{}
	idx := 1

	if f.OwnerID != nil {
		query += fmt.Sprintf(" AND user_id = $%d", idx)
		args = append(args, *f.OwnerID)
		idx++
	}
	if f.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", idx)
		args = append(args, f.Type)
		idx++
	}
	if f.Offer != nil {
		query += fmt.Sprintf(" AND offer = $%d", idx)
		args = append(args, *f.Offer)
		idx++
	}
	if f.MinPrice != nil {
		query += fmt.Sprintf(" AND regular_price >= $%d", idx)
		args = append(args, *f.MinPrice)
		idx++
	}
	if f.MaxPrice != nil {
		query += fmt.Sprintf(" AND regular_price <= $%d", idx)
		args = append(args, *f.MaxPrice)
		idx++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, limit, offset)

	var listings []model.Listing
	if err := r.DB.SelectContext(ctx, &listings, query, args...); err != nil {
		return nil, fmt.Errorf("ListingRepository.GetFiltered: %w", err)
	}
	return listings, nil
}

// UpdateOwned applies the non-nil patch fields with an owner-scoped WHERE, so
// a listing that changed hands between check and write is left untouched.
// Returns ErrNotFound when no row matched id+owner.
func (r *ListingRepository) UpdateOwned(ctx context.Context, id, ownerID int64, patch model.ListingPatch) (*model.Listing, error) {
	sets := []string{}
	args := []interface{}{}
	idx := 1

	add := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Address != nil {
		add("address", *patch.Address)
	}
	if patch.RegularPrice != nil {
		add("regular_price", *patch.RegularPrice)
	}
	if patch.DiscountPrice != nil {
		add("discount_price", *patch.DiscountPrice)
	}
	if patch.Bathrooms != nil {
		add("bathrooms", *patch.Bathrooms)
	}
	if patch.Bedrooms != nil {
		add("bedrooms", *patch.Bedrooms)
	}
	if patch.Furnished != nil {
		add("furnished", *patch.Furnished)
	}
	if patch.Parking != nil {
		add("parking", *patch.Parking)
	}
	if patch.Type != nil {
		add("type", *patch.Type)
	}
	if patch.Offer != nil {
		add("offer", *patch.Offer)
	}
	if patch.ImageURLs != nil {
		add("image_urls", pq.StringArray(*patch.ImageURLs))
	}
	add("updated_at", time.Now().UTC())

	query := fmt.Sprintf(
		"UPDATE listings SET %s WHERE id = $%d AND user_id = $%d",
		strings.Join(sets, ", "), idx, idx+1,
	)
	args = append(args, id, ownerID)

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListingRepository.UpdateOwned: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// DeleteOwned deletes the listing only when it belongs to ownerID.
// Returns ErrNotFound when no row matched id+owner.
func (r *ListingRepository) DeleteOwned(ctx context.Context, id, ownerID int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM listings WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("ListingRepository.DeleteOwned: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ListingRepository) UpdatePhotoFileID(ctx context.Context, id int64, fileID string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE listings SET photo_file_id = $1 WHERE id = $2`, fileID, id)
	if err != nil {
		return fmt.Errorf("ListingRepository.UpdatePhotoFileID: %w", err)
	}
	return nil
}
