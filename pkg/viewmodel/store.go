package viewmodel

import "time"

// InsuranceProduct is an entry of the pet insurance catalog.
type InsuranceProduct struct {
	ID             string   `json:"id"`
	Company        string   `json:"company"`
	Name           string   `json:"name"`
	MonthlyPremium int      `json:"monthlyPremium"`
	CoverageLimit  int      `json:"coverageLimit"`
	Species        []string `json:"species"`
	Features       []string `json:"features,omitempty"`
	URL            string   `json:"url,omitempty"`
}

// Product is a store item. Prices are in won.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Price         int      `json:"price"`
	DiscountPrice *int     `json:"discountPrice,omitempty"`
	Images        []string `json:"images,omitempty"`
	Stock         int      `json:"stock"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"reviewCount"`
}

// CartItem is a product in the shopping cart.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// Order is a placed order.
type Order struct {
	ID          string      `json:"id"`
	UserID      string      `json:"userId"`
	Items       []CartItem  `json:"items"`
	TotalAmount int         `json:"totalAmount"`
	Status      OrderStatus `json:"status"`
	Address     string      `json:"address"`
	CreatedAt   time.Time   `json:"createdAt"`
}
