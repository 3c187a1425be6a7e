package models

type User struct {
	ID    uint   `gorm:"primaryKey;autoIncrement"    json:"id"`
	Name  string `gorm:"size:50;index;not null"      json:"name"`
	Email string `gorm:"size:100;uniqueIndex;not null" json:"email"`
}

type Product struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"    json:"id"`
	ProductName string `gorm:"size:50;uniqueIndex;not null" json:"product_name"`
	Cost        int64  `gorm:"index;not null"              json:"cost"`
}

type Order struct {
	ID                uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	NameCustomer      string `gorm:"size:50;index;not null"   json:"name_customer"`
	AddressCustomer   string `gorm:"size:50;index;not null"   json:"address_customer"`
	PhoneCustomer     string `gorm:"size:12;index;not null"   json:"phone_customer"`
	ContractNumber    int64  `gorm:"index;not null"           json:"contract_number"`
	DateOrder         Date   `gorm:"index;not null"           json:"date_order"`
	NameProduct       string `gorm:"size:50;index;not null"   json:"name_product"`
	ScheduledDelivery string `gorm:"size:50;index;not null"   json:"scheduled_delivery"`
}

// Shipment.ProductID is a plain column: deleting the product leaves it dangling.
type Shipment struct {
	ID              uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID       uint   `gorm:"index;not null"           json:"product_id"`
	DateShipment    Date   `gorm:"index;not null"           json:"date_shipment"`
	HaveBeenShipped string `gorm:"size:25;index;not null"   json:"have_been_shipped"`
}

type Contract struct {
	ID               uint   `gorm:"primaryKey;autoIncrement"    json:"id"`
	Name             string `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Address          string `gorm:"size:50;not null"            json:"address"`
	DateRegistration Date   `gorm:"index;not null"              json:"date_registration"`
	DateCompletion   Date   `gorm:"index;not null"              json:"date_completion"`
}

type Workshop struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"    json:"id"`
	Name         string `gorm:"size:50;uniqueIndex;not null" json:"name"`
	WorkshopHead string `gorm:"size:50;not null"            json:"workshop_head"`
	Phone        string `gorm:"size:12;not null"            json:"phone"`
}

type Good struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"    json:"id"`
	GoodName   string `gorm:"size:50;uniqueIndex;not null" json:"good_name"`
	WorkshopID uint   `gorm:"index;not null"              json:"workshop_id"`
	UnitCost   int64  `gorm:"index;not null"              json:"unit_cost"`
}

func (u User) Key() uint     { return u.ID }
func (p Product) Key() uint  { return p.ID }
func (o Order) Key() uint    { return o.ID }
func (s Shipment) Key() uint { return s.ID }
func (c Contract) Key() uint { return c.ID }
func (w Workshop) Key() uint { return w.ID }
func (g Good) Key() uint     { return g.ID }

// All lists every table the service owns, in migration order.
func All() []any {
	return []any{
		&User{},
		&Product{},
		&Order{},
		&Shipment{},
		&Contract{},
		&Workshop{},
		&Good{},
	}
}
