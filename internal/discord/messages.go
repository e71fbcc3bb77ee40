package discord

// Friendly message constants for Discord responses
const (
	// Economy
	MsgInsufficientFunds = "⚠️ **Not Enough Starstream Coins!**\nYour balance can't cover this transaction."
	MsgInvalidAmount     = "🔢 **Invalid Amount**\nThe amount has to be a positive number."

	// Shop
	MsgItemNotFound = "❓ **Item Not Found**\nMaybe check the spelling?"
	MsgItemExists   = "📦 **Item Already Exists**\nThis server's shop already has an item with that name."
	MsgItemClaimed  = "🏆 **Already Claimed**\nSomeone beat you to it. Unique items can only be bought once."

	// Admin
	MsgCooldownActive = "⏳ **Whoa there!**\nYou need to wait a bit before doing that again."
	MsgNotAdmin       = "🚫 **Not Allowed**\nThis command is reserved for server admins."

	MsgGenericError = "❌ Something went wrong."
)
