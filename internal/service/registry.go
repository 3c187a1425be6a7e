package service

import (
	"gorm.io/gorm"

	"github.com/Skotchmaster/factory_registry/pkg/events"

	"github.com/Skotchmaster/factory_registry/internal/models"
	"github.com/Skotchmaster/factory_registry/internal/repo"
	"github.com/Skotchmaster/factory_registry/internal/transport"
)

var (
	UserDesc     = Descriptor{Kind: "user", Path: "users", Title: "User", ConflictMessage: "Email already registered"}
	ProductDesc  = Descriptor{Kind: "product", Path: "products", Title: "Product", ConflictMessage: "Product already exists"}
	OrderDesc    = Descriptor{Kind: "order", Path: "orders", Title: "Order", ConflictMessage: "Order already exists"}
	ShipmentDesc = Descriptor{Kind: "shipment", Path: "shipments", Title: "Shipment", ConflictMessage: "Shipment already exists"}
	ContractDesc = Descriptor{Kind: "contract", Path: "contracts", Title: "Contract", ConflictMessage: "Contract already exists"}
	WorkshopDesc = Descriptor{Kind: "workshop", Path: "workshops", Title: "Workshop", ConflictMessage: "Workshop already exists"}
	GoodDesc     = Descriptor{Kind: "good", Path: "goods", Title: "Good", ConflictMessage: "Good already exists"}
)

type Services struct {
	Users     *EntityService[models.User, transport.UserRequest]
	Products  *EntityService[models.Product, transport.ProductRequest]
	Orders    *EntityService[models.Order, transport.OrderRequest]
	Shipments *EntityService[models.Shipment, transport.ShipmentRequest]
	Contracts *EntityService[models.Contract, transport.ContractRequest]
	Workshops *EntityService[models.Workshop, transport.WorkshopRequest]
	Goods     *EntityService[models.Good, transport.GoodRequest]
}

func newEntity[M Keyed, P Payload[M]](db *gorm.DB, pub events.Publisher, d Descriptor) *EntityService[M, P] {
	return &EntityService[M, P]{Desc: d, Repo: repo.New[M](db), Events: pub}
}

func NewServices(db *gorm.DB, pub events.Publisher) *Services {
	return &Services{
		Users:     newEntity[models.User, transport.UserRequest](db, pub, UserDesc),
		Products:  newEntity[models.Product, transport.ProductRequest](db, pub, ProductDesc),
		Orders:    newEntity[models.Order, transport.OrderRequest](db, pub, OrderDesc),
		Shipments: newEntity[models.Shipment, transport.ShipmentRequest](db, pub, ShipmentDesc),
		Contracts: newEntity[models.Contract, transport.ContractRequest](db, pub, ContractDesc),
		Workshops: newEntity[models.Workshop, transport.WorkshopRequest](db, pub, WorkshopDesc),
		Goods:     newEntity[models.Good, transport.GoodRequest](db, pub, GoodDesc),
	}
}
