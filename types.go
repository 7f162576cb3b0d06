package aurum

import (
	"math"

	"github.com/aurumkit/aurum/tokenstore"
)

// Session is the client's persisted authenticated identity: the token pair
// plus the profile fields extracted from the login response.
type Session = tokenstore.Session

// Role is the enumerated account type. The core never interprets it; callers
// use it to gate optional functionality (sellers list items, buyers order).
type Role string

const (
	// RoleBuyer can browse and place orders.
	RoleBuyer Role = "BUYER"
	// RoleSeller can list items for sale.
	RoleSeller Role = "SELLER"
)

// Valid reports whether r is a role the backend accepts.
func (r Role) Valid() bool {
	return r == RoleBuyer || r == RoleSeller
}

// SessionState is the client's position in the session lifecycle.
type SessionState uint8

const (
	// StateAnonymous means no access token is held. Initial state.
	StateAnonymous SessionState = iota
	// StateAuthenticated means an access token is held.
	StateAuthenticated
	// StateRefreshing means a refresh call is in flight.
	StateRefreshing
)

func (s SessionState) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	case StateRefreshing:
		return "refreshing"
	default:
		return "unknown"
	}
}

// Profile is the display metadata carried by a session. The core stores it
// verbatim and never interprets it.
type Profile struct {
	Username  string
	Email     string
	Role      Role
	CreatedAt string
}

// GoldPrice is one row of the public price board.
type GoldPrice struct {
	GoldType string  `json:"goldType"`
	Price    float64 `json:"price"`
}

// Item is a listed commodity unit: a gold type priced per gram with an
// available quantity in grams.
type Item struct {
	ID       int64   `json:"id"`
	ItemType string  `json:"itemType"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
}

// CreateItemInput lists a new item for sale. Quantity is grams in 0.5 steps.
type CreateItemInput struct {
	ItemType string  `json:"itemType"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

// OrderStatus is the backend's order lifecycle enumeration.
type OrderStatus string

const (
	OrderPlaced     OrderStatus = "ORDER_PLACED"
	OrderCancelled  OrderStatus = "ORDER_CANCELLED"
	RefundRequested OrderStatus = "REFUND_REQUESTED"
	RefundCompleted OrderStatus = "REFUND_COMPLETED"
	ReturnRequested OrderStatus = "RETURN_REQUESTED"
	ReturnCompleted OrderStatus = "RETURN_COMPLETED"
	PaymentReceived OrderStatus = "PAYMENT_RECEIVED"
	Shipped         OrderStatus = "SHIPPED"
	Received        OrderStatus = "RECEIVED"
)

// ShippingAddress is the delivery address attached to an order.
type ShippingAddress struct {
	StreetAddress string `json:"streetAddress"`
	ZipCode       string `json:"zipCode"`
	AddressDetail string `json:"addressDetail"`
}

// OrderLine selects an item and a quantity in grams.
type OrderLine struct {
	ID       int64   `json:"id"`
	Quantity float64 `json:"quantity"`
}

// CreateOrderInput places an order for one or more items.
type CreateOrderInput struct {
	Items           []OrderLine     `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
}

// OrderedItem is one fulfilled line of an order.
type OrderedItem struct {
	ID       int64   `json:"id"`
	ItemType string  `json:"itemType"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

// Order is a placed order as the backend reports it.
type Order struct {
	ID              int64           `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	OrderDate       string          `json:"orderDate"`
	TotalPrice      float64         `json:"totalPrice"`
	Status          OrderStatus     `json:"status"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	OrderItems      []OrderedItem   `json:"orderItems"`
}

// RegisterInput creates a new account.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// validQuantity reports whether q is a positive multiple of 0.5 grams, the
// storefront's trading step.
func validQuantity(q float64) bool {
	if q < 0.5 {
		return false
	}
	doubled := q * 2
	return math.Abs(doubled-math.Round(doubled)) < 1e-9
}
