package handler

import "gatepass/internal/order/models"

// PlaceRequest is the order placement payload submitted by an employee.
type PlaceRequest struct {
	Supplier      string             `json:"supplier"`
	Items         []PlaceRequestItem `json:"items"`
	Justification string             `json:"justification"`
	UserName      string             `json:"user_name"`
	UserEmail     string             `json:"user_email"`
}

type PlaceRequestItem struct {
	ProductName   string  `json:"product_name"`
	Quantity      int     `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
	Justification string  `json:"justification"`
}

func (r PlaceRequest) ToDraft() models.Draft {
	items := make([]models.OrderItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, models.OrderItem{
			ProductName:   item.ProductName,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			Justification: item.Justification,
		})
	}
	return models.Draft{
		Supplier:      r.Supplier,
		Items:         items,
		Justification: r.Justification,
		UserName:      r.UserName,
		UserEmail:     r.UserEmail,
	}
}

// UpdateStatusRequest carries the new lifecycle status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
