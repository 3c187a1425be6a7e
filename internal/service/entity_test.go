package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	pkgdb "github.com/Skotchmaster/factory_registry/pkg/db"

	"github.com/Skotchmaster/factory_registry/internal/domain"
	"github.com/Skotchmaster/factory_registry/internal/models"
	"github.com/Skotchmaster/factory_registry/internal/repo"
	"github.com/Skotchmaster/factory_registry/internal/transport"
)

type sentEvent struct {
	Topic, Key string
	Event      map[string]any
}

type recordingPublisher struct {
	mu   sync.Mutex
	sent []sentEvent
	err  error
}

func (p *recordingPublisher) Publish(_ context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, sentEvent{Topic: topic, Key: key, Event: event.(map[string]any)})
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func num(v int64) *int64 { return &v }

func newTestServices(t *testing.T) (*Services, *recordingPublisher, *gorm.DB) {
	t.Helper()
	db, err := pkgdb.Open(context.Background(), pkgdb.Options{Driver: pkgdb.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, repo.Migrate(db))
	t.Cleanup(func() { _ = pkgdb.Close(db) })

	pub := &recordingPublisher{}
	return NewServices(db, pub), pub, db
}

func TestUserLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, pub, _ := newTestServices(t)

	created, err := svc.Users.Create(ctx, transport.UserRequest{Name: "Ann", Email: "a@x.com"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := svc.Users.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Ann", got.Name)
	require.Equal(t, "a@x.com", got.Email)

	updated, err := svc.Users.Update(ctx, created.ID, transport.UserRequest{Name: "Anna", Email: "anna@x.com"})
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, "Anna", updated.Name)
	require.Equal(t, "anna@x.com", updated.Email)

	deleted, err := svc.Users.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Anna", deleted.Name)

	_, err = svc.Users.Get(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.Len(t, pub.sent, 3)
	require.Equal(t, "user_events", pub.sent[0].Topic)
	require.Equal(t, "user_created", pub.sent[0].Event["type"])
	require.Equal(t, "user_updated", pub.sent[1].Event["type"])
	require.Equal(t, "user_deleted", pub.sent[2].Event["type"])
	require.Equal(t, pub.sent[0].Key, pub.sent[2].Key)
}

func TestDuplicateEmailIsConflict(t *testing.T) {
	ctx := context.Background()
	svc, pub, _ := newTestServices(t)

	_, err := svc.Users.Create(ctx, transport.UserRequest{Name: "Ann", Email: "a@x.com"})
	require.NoError(t, err)

	_, err = svc.Users.Create(ctx, transport.UserRequest{Name: "Other", Email: "a@x.com"})
	require.ErrorIs(t, err, domain.ErrConflict)

	page, err := svc.Users.List(ctx, 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Meta.Total)
	require.Len(t, pub.sent, 1)
}

func TestShipmentNeedsProduct(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestServices(t)

	req := transport.ShipmentRequest{ProductID: 99, DateShipment: models.NewDate(2024, time.June, 1), HaveBeenShipped: "no"}
	_, err := svc.Shipments.Create(ctx, req)
	require.ErrorIs(t, err, domain.ErrValidation)

	p, err := svc.Products.Create(ctx, transport.ProductRequest{ProductName: "bolt", Cost: num(4)})
	require.NoError(t, err)

	req.ProductID = p.ID
	s, err := svc.Shipments.Create(ctx, req)
	require.NoError(t, err)
	require.Equal(t, "2024-06-01", s.DateShipment.String())

	req.ProductID = 1234
	_, err = svc.Shipments.Update(ctx, s.ID, req)
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestGoodNeedsWorkshop(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestServices(t)

	_, err := svc.Goods.Create(ctx, transport.GoodRequest{GoodName: "gear", WorkshopID: 1, UnitCost: num(10)})
	require.ErrorIs(t, err, domain.ErrValidation)

	w, err := svc.Workshops.Create(ctx, transport.WorkshopRequest{Name: "north", WorkshopHead: "Ivan", Phone: "123"})
	require.NoError(t, err)

	g, err := svc.Goods.Create(ctx, transport.GoodRequest{GoodName: "gear", WorkshopID: w.ID, UnitCost: num(10)})
	require.NoError(t, err)
	require.Equal(t, w.ID, g.WorkshopID)

	_, err = svc.Goods.Create(ctx, transport.GoodRequest{GoodName: "gear", WorkshopID: w.ID, UnitCost: num(11)})
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestContractUpdateReplacesEveryField(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestServices(t)

	c, err := svc.Contracts.Create(ctx, transport.ContractRequest{
		Name:             "c-1",
		Address:          "Main st",
		DateRegistration: models.NewDate(2024, time.January, 1),
		DateCompletion:   models.NewDate(2024, time.December, 31),
	})
	require.NoError(t, err)

	_, err = svc.Contracts.Update(ctx, c.ID, transport.ContractRequest{
		Name:             "c-2",
		Address:          "Side st",
		DateRegistration: models.NewDate(2025, time.February, 2),
		DateCompletion:   models.NewDate(2025, time.March, 3),
	})
	require.NoError(t, err)

	got, err := svc.Contracts.Get(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, "c-2", got.Name)
	require.Equal(t, "Side st", got.Address)
	require.Equal(t, "2025-02-02", got.DateRegistration.String())
	require.Equal(t, "2025-03-03", got.DateCompletion.String())
}

func TestMissingIdsAcrossEntities(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestServices(t)

	_, err := svc.Orders.Get(ctx, 1)
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.Products.Delete(ctx, 1)
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.Workshops.Update(ctx, 1, transport.WorkshopRequest{Name: "x", WorkshopHead: "y", Phone: "1"})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	ctx := context.Background()
	svc, pub, _ := newTestServices(t)
	pub.err = errors.New("broker down")

	p, err := svc.Products.Create(ctx, transport.ProductRequest{ProductName: "nut", Cost: num(1)})
	require.NoError(t, err)

	got, err := svc.Products.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "nut", got.ProductName)
}

func TestListMeta(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestServices(t)

	for i := 0; i < 5; i++ {
		_, err := svc.Orders.Create(ctx, transport.OrderRequest{
			NameCustomer:      "Ann",
			AddressCustomer:   "Main st",
			PhoneCustomer:     "1",
			ContractNumber:    num(int64(i)),
			DateOrder:         models.NewDate(2024, time.April, 1),
			NameProduct:       "bolt",
			ScheduledDelivery: "soon",
		})
		require.NoError(t, err)
	}

	page, err := svc.Orders.List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	require.Equal(t, 2, page.Meta.Page)
	require.EqualValues(t, 5, page.Meta.Total)
	require.EqualValues(t, 3, page.Meta.TotalPages)
	require.True(t, page.Meta.HasPrev)
	require.True(t, page.Meta.HasNext)
	require.EqualValues(t, 2, page.Data[0].ContractNumber)
}
