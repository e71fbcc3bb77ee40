package domain

// ShopItem is a purchasable artifact scoped to a guild. Names are
// unique per guild; two guilds may each have a "Cloak".
type ShopItem struct {
	ID           int64   `json:"item_id"`
	GuildID      string  `json:"guild_id"`
	Name         string  `json:"name"`
	Cost         int64   `json:"cost"`
	RewardRoleID string  `json:"reward_role_id"`
	ImageURL     *string `json:"image_url,omitempty"`
	Unique       bool    `json:"unique"`
	PurchasedBy  *string `json:"purchased_by,omitempty"`
}

// Claimed reports whether a unique item has already been bought.
// Always false for non-unique items.
func (i *ShopItem) Claimed() bool {
	return i.Unique && i.PurchasedBy != nil
}
