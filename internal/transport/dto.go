package transport

import (
	"github.com/Skotchmaster/factory_registry/internal/domain"
	"github.com/Skotchmaster/factory_registry/internal/models"
)

// Request bodies carry only mutable fields; ids in the payload are dropped by the decoder.
// Numeric fields are pointers; an absent number fails required.

type UserRequest struct {
	Name  string `json:"name"  validate:"required,max=50"`
	Email string `json:"email" validate:"required,max=100"`
}

func (r UserRequest) Apply(u *models.User) {
	u.Name = r.Name
	u.Email = r.Email
}

type ProductRequest struct {
	ProductName string `json:"product_name" validate:"required,max=50"`
	Cost        *int64 `json:"cost"         validate:"required,gte=0"`
}

func (r ProductRequest) Apply(p *models.Product) {
	p.ProductName = r.ProductName
	p.Cost = *r.Cost
}

type OrderRequest struct {
	NameCustomer      string      `json:"name_customer"      validate:"required,max=50"`
	AddressCustomer   string      `json:"address_customer"   validate:"required,max=50"`
	PhoneCustomer     string      `json:"phone_customer"     validate:"required,max=12"`
	ContractNumber    *int64      `json:"contract_number"    validate:"required,gte=0"`
	DateOrder         models.Date `json:"date_order"         validate:"required"`
	NameProduct       string      `json:"name_product"       validate:"required,max=50"`
	ScheduledDelivery string      `json:"scheduled_delivery" validate:"required,max=50"`
}

func (r OrderRequest) Apply(o *models.Order) {
	o.NameCustomer = r.NameCustomer
	o.AddressCustomer = r.AddressCustomer
	o.PhoneCustomer = r.PhoneCustomer
	o.ContractNumber = *r.ContractNumber
	o.DateOrder = r.DateOrder
	o.NameProduct = r.NameProduct
	o.ScheduledDelivery = r.ScheduledDelivery
}

type ShipmentRequest struct {
	ProductID       uint        `json:"product_id"        validate:"required"`
	DateShipment    models.Date `json:"date_shipment"     validate:"required"`
	HaveBeenShipped string      `json:"have_been_shipped" validate:"required,max=25"`
}

func (r ShipmentRequest) Apply(s *models.Shipment) {
	s.ProductID = r.ProductID
	s.DateShipment = r.DateShipment
	s.HaveBeenShipped = r.HaveBeenShipped
}

func (r ShipmentRequest) Refs() []domain.Ref {
	return []domain.Ref{{Table: "products", Field: "product_id", ID: r.ProductID}}
}

type ContractRequest struct {
	Name             string      `json:"name"              validate:"required,max=50"`
	Address          string      `json:"address"           validate:"required,max=50"`
	DateRegistration models.Date `json:"date_registration" validate:"required"`
	DateCompletion   models.Date `json:"date_completion"   validate:"required"`
}

func (r ContractRequest) Apply(c *models.Contract) {
	c.Name = r.Name
	c.Address = r.Address
	c.DateRegistration = r.DateRegistration
	c.DateCompletion = r.DateCompletion
}

type WorkshopRequest struct {
	Name         string `json:"name"          validate:"required,max=50"`
	WorkshopHead string `json:"workshop_head" validate:"required,max=50"`
	Phone        string `json:"phone"         validate:"required,max=12"`
}

func (r WorkshopRequest) Apply(w *models.Workshop) {
	w.Name = r.Name
	w.WorkshopHead = r.WorkshopHead
	w.Phone = r.Phone
}

type GoodRequest struct {
	GoodName   string `json:"good_name"   validate:"required,max=50"`
	WorkshopID uint   `json:"workshop_id" validate:"required"`
	UnitCost   *int64 `json:"unit_cost"   validate:"required,gte=0"`
}

func (r GoodRequest) Apply(g *models.Good) {
	g.GoodName = r.GoodName
	g.WorkshopID = r.WorkshopID
	g.UnitCost = *r.UnitCost
}

func (r GoodRequest) Refs() []domain.Ref {
	return []domain.Ref{{Table: "workshops", Field: "workshop_id", ID: r.WorkshopID}}
}

type PageMeta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

type Page[M any] struct {
	Data []M      `json:"data"`
	Meta PageMeta `json:"meta"`
}
