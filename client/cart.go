package client

import (
	"fmt"

	"github.com/littlecubs/babyshop-api/models"
)

// CartState is the local cart a storefront view mutates before checkout.
type CartState struct {
	Items []models.CartItem
}

// AddOrder re-adds an order's line items: products already in the cart get
// their quantity incremented, the rest are inserted from the order's
// snapshots. Returns the counts of newly added vs updated items and the
// user-facing message.
func (s *CartState) AddOrder(order models.Order) (added, updated int, message string) {
	for _, item := range order.Items {
		idx := -1
		for i := range s.Items {
			if s.Items[i].ProductID == item.ProductID {
				idx = i
				break
			}
		}
		if idx >= 0 {
			s.Items[idx].Quantity += item.Quantity
			updated++
		} else {
			s.Items = append(s.Items, models.CartItem{
				ProductID: item.ProductID,
				Name:      item.Name,
				Price:     item.Price,
				Image:     item.Image,
				Quantity:  item.Quantity,
			})
			added++
		}
	}
	return added, updated, cartMessage(added, updated)
}

func cartMessage(added, updated int) string {
	switch {
	case added > 0 && updated > 0:
		return fmt.Sprintf("%d new item(s) added and %d existing item(s) updated in cart!", added, updated)
	case added > 0:
		return fmt.Sprintf("%d item(s) added to cart!", added)
	default:
		return fmt.Sprintf("%d item(s) updated in cart!", updated)
	}
}
