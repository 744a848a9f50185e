package orderControllers

import (
	"errors"
	"sort"

	"github.com/littlecubs/babyshop-api/models"
)

// Sort keys accepted by the my-orders listing.
const (
	SortByID     = "id"
	SortByDate   = "date"
	SortByAmount = "amount"
	SortByStatus = "status"
)

// sortParams validates the sort/dir query parameters. Defaults match the
// order page: newest first.
func sortParams(key, dir string) (string, bool, error) {
	if key == "" {
		key = SortByDate
	}
	switch key {
	case SortByID, SortByDate, SortByAmount, SortByStatus:
	default:
		return "", false, errors.New("invalid sort key")
	}

	desc := key == SortByDate // date defaults to newest first
	switch dir {
	case "":
	case "asc":
		desc = false
	case "desc":
		desc = true
	default:
		return "", false, errors.New("invalid sort direction")
	}
	return key, desc, nil
}

// sortOrders sorts in place, stably: equal keys keep their prior relative
// order.
func sortOrders(orders []models.Order, key string, desc bool) {
	less := func(a, b models.Order) bool {
		switch key {
		case SortByID:
			return a.ID < b.ID
		case SortByAmount:
			return a.Amount < b.Amount
		case SortByStatus:
			return a.Status < b.Status
		default:
			return a.Date.Before(b.Date)
		}
	}
	sort.SliceStable(orders, func(i, j int) bool {
		if desc {
			return less(orders[j], orders[i])
		}
		return less(orders[i], orders[j])
	})
}
