package authz

import "campusswap/internal/domain"

// AuthorizeMutation permits a change to item only by its owner. A missing
// item and a foreign owner both yield domain.ErrNotFoundOrForbidden so
// callers cannot probe which items exist.
func AuthorizeMutation(who domain.Identity, item *domain.Item) error {
	if item == nil || item.OwnerID != who.UserID {
		return domain.ErrNotFoundOrForbidden
	}
	return nil
}
