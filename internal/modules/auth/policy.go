package auth

import "github.com/Onkar-Kul/simple-inventory-management/internal/modules/user"

// Access policy for the item endpoints. These are pure functions of the
// caller's identity and capability set.

// CanReadItems reports whether the caller may list and retrieve items.
func CanReadItems(caller *user.User) bool {
	return caller != nil
}

// CanCreateItem reports whether the caller may create items: an
// authenticated caller with the staff or item-adder capability.
func CanCreateItem(caller *user.User) bool {
	return caller != nil && (caller.Has(user.CapabilityStaff) || caller.Has(user.CapabilityItemAdder))
}

// CanMutateItem reports whether the caller may update or delete items.
// Same rule as CanCreateItem.
func CanMutateItem(caller *user.User) bool {
	return CanCreateItem(caller)
}
