package service

import (
	"context"
	"strconv"
	"time"

	"github.com/Skotchmaster/factory_registry/pkg/events"
	"github.com/Skotchmaster/factory_registry/pkg/logging"

	"github.com/Skotchmaster/factory_registry/internal/domain"
	"github.com/Skotchmaster/factory_registry/internal/repo"
	"github.com/Skotchmaster/factory_registry/internal/transport"
	"github.com/Skotchmaster/factory_registry/internal/util"
)

// Keyed is satisfied by every model: it exposes the primary key.
type Keyed interface {
	Key() uint
}

// Payload is a full replacement body for M.
type Payload[M any] interface {
	Apply(*M)
}

type referencer interface {
	Refs() []domain.Ref
}

type Descriptor struct {
	Kind            string
	Path            string
	Title           string
	ConflictMessage string
}

func (d Descriptor) NotFoundMessage() string {
	return d.Title + " not found"
}

type EntityService[M Keyed, P Payload[M]] struct {
	Desc   Descriptor
	Repo   *repo.GormRepo[M]
	Events events.Publisher
}

func (s *EntityService[M, P]) Get(ctx context.Context, id uint) (*M, error) {
	return s.Repo.Get(ctx, id)
}

func (s *EntityService[M, P]) List(ctx context.Context, page, size int) (*transport.Page[M], error) {
	page, offset, limit := util.Calculate(page, size)

	total, items, err := s.Repo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	return &transport.Page[M]{
		Data: items,
		Meta: transport.PageMeta{
			Page:       page,
			Size:       limit,
			Total:      total,
			TotalPages: util.TotalPages(total, limit),
			HasPrev:    page > 1,
			HasNext:    int64(offset+limit) < total,
		},
	}, nil
}

func (s *EntityService[M, P]) Create(ctx context.Context, p P) (*M, error) {
	var row M
	p.Apply(&row)
	if err := s.Repo.Create(ctx, &row, refsOf(p)...); err != nil {
		return nil, err
	}
	s.publish(ctx, "created", &row)
	return &row, nil
}

func (s *EntityService[M, P]) Update(ctx context.Context, id uint, p P) (*M, error) {
	row, err := s.Repo.Update(ctx, id, p.Apply, refsOf(p)...)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, "updated", row)
	return row, nil
}

func (s *EntityService[M, P]) Delete(ctx context.Context, id uint) (*M, error) {
	row, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, "deleted", row)
	return row, nil
}

func refsOf(p any) []domain.Ref {
	if r, ok := p.(referencer); ok {
		return r.Refs()
	}
	return nil
}

// publish runs after commit; a broker failure is logged and never fails the request.
func (s *EntityService[M, P]) publish(ctx context.Context, action string, row *M) {
	if s.Events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	id := (*row).Key()
	event := map[string]any{
		"type":   s.Desc.Kind + "_" + action,
		"id":     id,
		"entity": row,
	}
	topic := s.Desc.Kind + "_events"
	if err := s.Events.Publish(ctx, topic, strconv.FormatUint(uint64(id), 10), event); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "topic", topic, "type", event["type"], "error", err)
	}
}
