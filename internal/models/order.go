package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order types. A pharmacy order carries medicine items and requires a
// pharmacyId; a pathology order carries test items and requires a
// pathologyCenterId. The store does not enforce this, ValidateRefs does.
const (
	OrderTypePharmacy  = "pharmacy"
	OrderTypePathology = "pathology"
)

// Order progress states.
const (
	OrderPending        = "pending"
	OrderConfirmed      = "confirmed"
	OrderAssigned       = "assigned"
	OrderDispatched     = "dispatched"
	OrderOutForDelivery = "out-for-delivery"
	OrderDelivered      = "delivered"
	OrderCancelled      = "cancelled"
)

// Payment states.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

var orderStatuses = map[string]bool{
	OrderPending:        true,
	OrderConfirmed:      true,
	OrderAssigned:       true,
	OrderDispatched:     true,
	OrderOutForDelivery: true,
	OrderDelivered:      true,
	OrderCancelled:      true,
}

// IsValidOrderStatus reports whether s is one of the order progress states.
func IsValidOrderStatus(s string) bool {
	return orderStatuses[s]
}

type Order struct {
	ID                   primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	OrderType            string              `bson:"orderType" json:"orderType"`
	CustomerID           primitive.ObjectID  `bson:"customerId" json:"customerId"`
	PharmacyID           *primitive.ObjectID `bson:"pharmacyId,omitempty" json:"pharmacyId,omitempty"`
	PathologyCenterID    *primitive.ObjectID `bson:"pathologyCenterId,omitempty" json:"pathologyCenterId,omitempty"`
	DeliveryPartnerID    *primitive.ObjectID `bson:"deliveryPartnerId,omitempty" json:"deliveryPartnerId,omitempty"`
	Items                []OrderItem         `bson:"items" json:"items"`
	DeliveryAddress      *Address            `bson:"deliveryAddress,omitempty" json:"deliveryAddress,omitempty"`
	PickupAddress        *PickupAddress      `bson:"pickupAddress,omitempty" json:"pickupAddress,omitempty"`
	OrderStatus          string              `bson:"orderStatus" json:"orderStatus"`
	PaymentStatus        string              `bson:"paymentStatus" json:"paymentStatus"`
	PaymentMethod        string              `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	TotalAmount          float64             `bson:"totalAmount" json:"totalAmount"`
	OrderDate            time.Time           `bson:"orderDate" json:"orderDate"`
	DeliveryDate         *time.Time          `bson:"deliveryDate,omitempty" json:"deliveryDate,omitempty"`
	PrescriptionRequired bool                `bson:"prescriptionRequired" json:"prescriptionRequired"`
	IsTestHomeCollection bool                `bson:"isTestHomeCollection" json:"isTestHomeCollection"`
	CreatedAt            time.Time           `bson:"createdAt" json:"createdAt"`
}

// OrderItem is either a medicine line (medicineId, quantity, price) or a
// named pathology test.
type OrderItem struct {
	MedicineID   *primitive.ObjectID `bson:"medicineId,omitempty" json:"medicineId,omitempty"`
	TestName     string              `bson:"testName,omitempty" json:"testName,omitempty"`
	Quantity     int                 `bson:"quantity,omitempty" json:"quantity,omitempty"`
	Price        float64             `bson:"price,omitempty" json:"price,omitempty"`
	Prescription string              `bson:"prescription,omitempty" json:"prescription,omitempty"` // URL if uploaded
}

type PickupAddress struct {
	Address     string      `bson:"address" json:"address"`
	Coordinates Coordinates `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
}

// ValidateRefs checks the conditional reference required by the order type.
func (o *Order) ValidateRefs() bool {
	switch o.OrderType {
	case OrderTypePharmacy:
		return o.PharmacyID != nil
	case OrderTypePathology:
		return o.PathologyCenterID != nil
	default:
		return false
	}
}
