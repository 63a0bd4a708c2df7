package order

// Items describes the package being delivered.
type Items struct {
	Description   string
	WeightKg      float64
	Fragile       bool
	Value         int
	HandlingNotes string
}

// Contact holds recipient details.
type Contact struct {
	Name     string
	Phone    string
	IDNumber string
}

// Driver holds the assigned driver's details. Present on the order only
// once a driver has accepted it.
type Driver struct {
	ID    string
	Name  string
	Phone string
	Plate string
}

// Coords is a geographic point.
type Coords struct {
	Lat float64
	Lng float64
}

// PaymentStatus tracks the payment-capture outcome reported by the payment
// collaborator. The zero value means no outcome has been reported yet.
type PaymentStatus string

const (
	PaymentUnset  PaymentStatus = ""
	PaymentPaid   PaymentStatus = "PAID"
	PaymentFailed PaymentStatus = "FAILED"
)
