package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wrenfall/StarstreamBot_Go/internal/domain"
)

// ShopRepository implements the shop repository for PostgreSQL
type ShopRepository struct {
	db *pgxpool.Pool
}

// NewShopRepository creates a new ShopRepository
func NewShopRepository(db *pgxpool.Pool) *ShopRepository {
	return &ShopRepository{db: db}
}

const itemColumns = `item_id, guild_id, item_name, cost, reward_role_id, image_url, is_unique, purchased_by`

func scanItem(row pgx.Row) (*domain.ShopItem, error) {
	var item domain.ShopItem
	err := row.Scan(
		&item.ID,
		&item.GuildID,
		&item.Name,
		&item.Cost,
		&item.RewardRoleID,
		&item.ImageURL,
		&item.Unique,
		&item.PurchasedBy,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// InsertItem creates the item and fills item.ID. The (guild_id,
// item_name) unique constraint is the authority on name conflicts.
func (r *ShopRepository) InsertItem(ctx context.Context, item *domain.ShopItem) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO shop_items (guild_id, item_name, cost, reward_role_id, image_url, is_unique)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING item_id
	`, item.GuildID, item.Name, item.Cost, item.RewardRoleID, item.ImageURL, item.Unique).Scan(&item.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrItemExists
		}
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

// DeleteItem removes the item, reporting whether one was found.
func (r *ShopRepository) DeleteItem(ctx context.Context, guildID, name string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM shop_items WHERE guild_id = $1 AND item_name = $2
	`, guildID, name)
	if err != nil {
		return false, fmt.Errorf("failed to delete item: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetItem fetches an item by guild and name, returning nil when absent.
func (r *ShopRepository) GetItem(ctx context.Context, guildID, name string) (*domain.ShopItem, error) {
	item, err := scanItem(r.db.QueryRow(ctx, `
		SELECT `+itemColumns+` FROM shop_items
		WHERE guild_id = $1 AND item_name = $2
	`, guildID, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// ListItems returns the guild's items ordered by ascending cost.
func (r *ShopRepository) ListItems(ctx context.Context, guildID string) ([]domain.ShopItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+itemColumns+` FROM shop_items
		WHERE guild_id = $1
		ORDER BY cost ASC, item_id ASC
	`, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []domain.ShopItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read items: %w", err)
	}
	return items, nil
}

// ClaimItem marks a unique item as purchased only if it is currently
// unclaimed. The condition makes concurrent claims race-free: exactly
// one caller observes RowsAffected == 1.
func (r *ShopRepository) ClaimItem(ctx context.Context, itemID int64, userID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE shop_items SET purchased_by = $2
		WHERE item_id = $1 AND purchased_by IS NULL
	`, itemID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to claim item: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ReleaseClaim clears purchased_by only when held by userID, used by
// the refund flow after an external reward grant fails.
func (r *ShopRepository) ReleaseClaim(ctx context.Context, itemID int64, userID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE shop_items SET purchased_by = NULL
		WHERE item_id = $1 AND purchased_by = $2
	`, itemID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to release claim: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
