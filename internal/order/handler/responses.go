package handler

import (
	"gatepass/internal/notify"
	"gatepass/internal/order/models"
	"gatepass/internal/order/service"
)

// OrderResponse is the wire shape of an order record.
type OrderResponse struct {
	ID            string             `json:"id"`
	Reference     string             `json:"reference"`
	UserID        string             `json:"user_id"`
	UserName      string             `json:"user_name,omitempty"`
	Supplier      string             `json:"supplier"`
	OrderDate     string             `json:"order_date"`
	Status        models.Status      `json:"status"`
	Items         []models.OrderItem `json:"items"`
	TotalAmount   float64            `json:"total_amount"`
	Justification string             `json:"justification,omitempty"`
	Notified      bool               `json:"notified"`
	CreatedAt     string             `json:"created_at"`
}

// PlacedOrderResponse pairs the created order with its notification outcomes
// so the caller sees which channels delivered.
type PlacedOrderResponse struct {
	Order    OrderResponse         `json:"order"`
	Dispatch notify.DispatchResult `json:"dispatch"`
}

func FromOrder(o *models.Order) OrderResponse {
	return OrderResponse{
		ID:            o.ID.String(),
		Reference:     o.Reference,
		UserID:        o.UserID.String(),
		UserName:      o.UserName,
		Supplier:      o.Supplier,
		OrderDate:     o.OrderDate.Format("2006-01-02"),
		Status:        o.Status,
		Items:         o.Items,
		TotalAmount:   o.TotalAmount,
		Justification: o.Justification,
		Notified:      o.Notified,
		CreatedAt:     o.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func FromOrders(orders []*models.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return out
}

func FromPlacedOrder(placed *service.PlacedOrder) PlacedOrderResponse {
	return PlacedOrderResponse{
		Order:    FromOrder(placed.Order),
		Dispatch: placed.Dispatch,
	}
}
