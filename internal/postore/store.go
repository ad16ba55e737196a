package postore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/stockroom-erp/stockroom-cli/internal/api"
)

// ErrSuperseded is returned when a newer command of the same kind replaced
// this one while its request was in flight; the stale result is discarded.
var ErrSuperseded = errors.New("postore: command superseded")

// OrdersAPI is the slice of the purchase-orders client the store depends on.
type OrdersAPI interface {
	List(ctx context.Context, filter *api.PurchaseOrderFilter) ([]api.PurchaseOrder, error)
	Get(ctx context.Context, id string) (api.PurchaseOrder, error)
	Create(ctx context.Context, draft api.PurchaseOrderCreate) (api.PurchaseOrder, error)
	Update(ctx context.Context, id string, patch api.PurchaseOrderUpdate) (api.PurchaseOrder, error)
	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, status api.PurchaseOrderStatus) (api.PurchaseOrder, error)
	BulkSetStatus(ctx context.Context, ids []string, status api.PurchaseOrderStatus) ([]api.PurchaseOrder, error)
}

type flight struct {
	cancel context.CancelFunc
}

// Store dispatches purchase-order commands, folds the results through the
// reducer and notifies subscribers. Commands of different kinds run without
// mutual exclusion; a new command of the same kind supersedes the in-flight
// one by cancelling its request.
type Store struct {
	api    OrdersAPI
	logger *slog.Logger

	mu       sync.Mutex
	state    State
	inflight map[Kind]*flight
	subs     map[int]func(State)
	nextSub  int
}

// New constructs a Store.
func New(ordersAPI OrdersAPI, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		api:      ordersAPI,
		logger:   logger,
		inflight: make(map[Kind]*flight),
		subs:     make(map[int]func(State)),
	}
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers a change listener and returns its remover.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Dispatch runs one command to completion: busy flag and error reset, API
// call, merge of the result, then the reload side effect for mutations.
func (s *Store) Dispatch(ctx context.Context, cmd Command) error {
	switch c := cmd.(type) {
	case LoadAll:
		return s.loadAll(ctx, c.Filter)
	case LoadOne:
		return s.loadOne(ctx, c.ID)
	case Create:
		return s.create(ctx, c.Draft)
	case Update:
		return s.update(ctx, c.ID, c.Patch)
	case Delete:
		return s.delete(ctx, c.ID)
	case SetStatus:
		return s.setStatus(ctx, c.ID, c.Status)
	case BulkSetStatus:
		return s.bulkSetStatus(ctx, c.IDs, c.Status)
	case ClearSelected:
		s.apply(SelectionCleared{})
		return nil
	case ClearAll:
		s.apply(Cleared{})
		return nil
	default:
		return fmt.Errorf("postore: unknown command %T", cmd)
	}
}

func (s *Store) loadAll(ctx context.Context, filter *api.PurchaseOrderFilter) error {
	reqCtx, f := s.begin(ctx, KindLoad)
	orders, err := s.api.List(reqCtx, filter)
	if err != nil {
		return s.fail(KindLoad, f, err)
	}
	if !s.settle(KindLoad, f, Loaded{Orders: orders}) {
		return ErrSuperseded
	}
	return nil
}

func (s *Store) loadOne(ctx context.Context, id string) error {
	reqCtx, f := s.begin(ctx, KindLoad)
	order, err := s.api.Get(reqCtx, id)
	if err != nil {
		return s.fail(KindLoad, f, err)
	}
	if !s.settle(KindLoad, f, LoadedOne{Order: order}) {
		return ErrSuperseded
	}
	return nil
}

func (s *Store) create(ctx context.Context, draft api.PurchaseOrderCreate) error {
	reqCtx, f := s.begin(ctx, KindCreate)
	order, err := s.api.Create(reqCtx, draft)
	if err != nil {
		return s.fail(KindCreate, f, err)
	}
	if !s.settle(KindCreate, f, Created{Order: order}) {
		return ErrSuperseded
	}
	s.refreshList(ctx)
	return nil
}

func (s *Store) update(ctx context.Context, id string, patch api.PurchaseOrderUpdate) error {
	reqCtx, f := s.begin(ctx, KindUpdate)
	order, err := s.api.Update(reqCtx, id, patch)
	if err != nil {
		return s.fail(KindUpdate, f, err)
	}
	if !s.settle(KindUpdate, f, Updated{Order: order}) {
		return ErrSuperseded
	}
	s.refreshOne(ctx, id)
	return nil
}

func (s *Store) delete(ctx context.Context, id string) error {
	reqCtx, f := s.begin(ctx, KindDelete)
	if err := s.api.Delete(reqCtx, id); err != nil {
		return s.fail(KindDelete, f, err)
	}
	if !s.settle(KindDelete, f, Deleted{ID: id}) {
		return ErrSuperseded
	}
	s.refreshList(ctx)
	return nil
}

func (s *Store) setStatus(ctx context.Context, id string, status api.PurchaseOrderStatus) error {
	if from, known := s.currentStatus(id); known && !CanTransition(from, status) {
		return fmt.Errorf("%w: %s -> %s", ErrTransition, from, status)
	}
	reqCtx, f := s.begin(ctx, KindUpdate)
	order, err := s.api.SetStatus(reqCtx, id, status)
	if err != nil {
		return s.fail(KindUpdate, f, err)
	}
	if !s.settle(KindUpdate, f, Updated{Order: order}) {
		return ErrSuperseded
	}
	s.refreshOne(ctx, id)
	return nil
}

func (s *Store) bulkSetStatus(ctx context.Context, ids []string, status api.PurchaseOrderStatus) error {
	for _, id := range ids {
		if from, known := s.currentStatus(id); known && !CanTransition(from, status) {
			return fmt.Errorf("%w: order %s: %s -> %s", ErrTransition, id, from, status)
		}
	}
	reqCtx, f := s.begin(ctx, KindUpdate)
	orders, err := s.api.BulkSetStatus(reqCtx, ids, status)
	if err != nil {
		return s.fail(KindUpdate, f, err)
	}
	if !s.settle(KindUpdate, f, BulkUpdated{Orders: orders}) {
		return ErrSuperseded
	}
	s.refreshList(ctx)
	return nil
}

// refreshList reloads the whole collection after a successful mutation.
// Failures are logged, not surfaced: the merge already applied.
func (s *Store) refreshList(ctx context.Context) {
	if err := s.loadAll(ctx, nil); err != nil && !errors.Is(err, ErrSuperseded) {
		s.logger.Warn("purchase order list refresh failed", slog.Any("error", err))
	}
}

func (s *Store) refreshOne(ctx context.Context, id string) {
	if err := s.loadOne(ctx, id); err != nil && !errors.Is(err, ErrSuperseded) {
		s.logger.Warn("purchase order refresh failed", slog.String("id", id), slog.Any("error", err))
	}
}

func (s *Store) currentStatus(id string) (api.PurchaseOrderStatus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.state.Orders {
		if order.ID == id {
			return order.Status, true
		}
	}
	return "", false
}

// begin cancels any in-flight command of the same kind and derives the
// context guarding this command's own request. The derived context dies with
// the flight; post-settle side effects run on the caller's context.
func (s *Store) begin(ctx context.Context, kind Kind) (context.Context, *flight) {
	s.mu.Lock()
	if prev := s.inflight[kind]; prev != nil {
		prev.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	f := &flight{cancel: cancel}
	s.inflight[kind] = f
	s.state = Reduce(s.state, Begin{Kind: kind})
	s.mu.Unlock()
	s.notify()
	return ctx, f
}

// settle applies the success event unless a newer command of the same kind
// took over in the meantime.
func (s *Store) settle(kind Kind, f *flight, event Event) bool {
	s.mu.Lock()
	if s.inflight[kind] != f {
		s.mu.Unlock()
		f.cancel()
		return false
	}
	delete(s.inflight, kind)
	f.cancel()
	s.state = Reduce(s.state, event)
	s.mu.Unlock()
	s.notify()
	return true
}

func (s *Store) fail(kind Kind, f *flight, err error) error {
	if !s.settle(kind, f, Failed{Kind: kind, Err: err.Error()}) {
		return ErrSuperseded
	}
	return err
}

func (s *Store) apply(event Event) {
	s.mu.Lock()
	s.state = Reduce(s.state, event)
	s.mu.Unlock()
	s.notify()
}

func (s *Store) notify() {
	s.mu.Lock()
	state := s.state.clone()
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()
	for _, fn := range subs {
		fn(state)
	}
}
