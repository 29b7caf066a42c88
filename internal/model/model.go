package model

import "fmt"

// Order is one synthesized retail order row.
type Order struct {
	OrderID     string `json:"orderId"`
	Customer    string `json:"customer"`
	AmountCents int64  `json:"amountCents"`
	Status      string `json:"status"`
	OrderDate   string `json:"orderDate"`
}

// Header lists the CSV column names in output order.
var Header = []string{"OrderID", "Customer", "Amount", "Status", "OrderDate"}

// customers and statuses are closed vocabularies. Arrays keep the sets
// fixed-size; the accessors below hand out copies only.
var customers = [5]string{"Alice", "Bob", "Charlie", "Diana", "Eve"}
var statuses = [4]string{"confirmed", "shipped", "pending", "cancelled"}

// Customers returns a copy of the customer vocabulary.
func Customers() []string {
	out := make([]string, len(customers))
	copy(out, customers[:])
	return out
}

// Statuses returns a copy of the status vocabulary.
func Statuses() []string {
	out := make([]string, len(statuses))
	copy(out, statuses[:])
	return out
}

// ValidCustomer reports whether name is in the customer vocabulary.
func ValidCustomer(name string) bool {
	for _, c := range customers {
		if c == name {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is in the status vocabulary.
func ValidStatus(s string) bool {
	for _, st := range statuses {
		if st == s {
			return true
		}
	}
	return false
}

// Amount renders the order amount with exactly two decimal places.
func (o Order) Amount() string {
	return fmt.Sprintf("%d.%02d", o.AmountCents/100, o.AmountCents%100)
}

// Record returns the CSV fields in Header order.
func (o Order) Record() []string {
	return []string{o.OrderID, o.Customer, o.Amount(), o.Status, o.OrderDate}
}
