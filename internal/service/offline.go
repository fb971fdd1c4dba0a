package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cafebonheur/pos/internal/model"
	"github.com/cafebonheur/pos/internal/store"
	"github.com/cafebonheur/pos/pkg/validator"
)

// offlinePaymentMethod labels sales recorded while the terminal had no
// connectivity.
const offlinePaymentMethod = "Hors ligne"

// PendingSlot is the secondary durable slot holding sales recorded
// offline, separate from the main state slot.
type PendingSlot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

// OfflineParams is a cart recorded without connectivity. The payment
// method is fixed; pricing works like a regular checkout.
type OfflineParams struct {
	Lines           []CheckoutLine `validate:"required,min=1,dive"`
	DiscountPercent float64        `validate:"gte=0,lte=100"`
	Customer        string
	Cashier         string `validate:"required"`
}

// OfflineService queues sales in the pending slot and later drains them
// into the domain store.
type OfflineService interface {
	RecordOffline(ctx context.Context, params OfflineParams) (model.Transaction, error)
	ListOffline(ctx context.Context) ([]model.Transaction, error)
	// SyncOffline moves every pending sale into the store and empties the
	// pending slot. Returns the number of sales synced.
	SyncOffline(ctx context.Context) (int, error)
}

type offlineService struct {
	st       *store.Store
	pending  PendingSlot
	validate validator.Validator

	mu sync.Mutex
}

func NewOfflineService(st *store.Store, pending PendingSlot, validate validator.Validator) OfflineService {
	return &offlineService{
		st:       st,
		pending:  pending,
		validate: validate,
	}
}

func (s *offlineService) RecordOffline(ctx context.Context, params OfflineParams) (model.Transaction, error) {
	if err := s.validate.Validate(params); err != nil {
		return model.Transaction{}, fmt.Errorf("validate offline params: %w", err)
	}

	priced := PriceCart(CheckoutParams{
		Lines:           params.Lines,
		DiscountPercent: params.DiscountPercent,
		PaymentMethod:   offlinePaymentMethod,
		Customer:        params.Customer,
		Cashier:         params.Cashier,
	})

	now := time.Now()
	items := make([]model.LineItem, 0, len(priced.Items))
	for _, item := range priced.Items {
		items = append(items, model.LineItem{
			Name:  item.Name,
			Qty:   item.Qty,
			Price: item.Price,
			Total: item.Total,
		})
	}
	txn := model.Transaction{
		ID:            "offline-" + uuid.NewString(),
		Items:         items,
		Subtotal:      priced.Subtotal,
		Tax:           priced.Tax,
		Discount:      priced.Discount,
		Total:         priced.Total,
		PaymentMethod: offlinePaymentMethod,
		Date:          now.Format("2006-01-02"),
		Time:          now.Format("15:04"),
		Customer:      params.Customer,
		Cashier:       params.Cashier,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	queued, err := s.readPending(ctx)
	if err != nil {
		return model.Transaction{}, err
	}
	queued = append(queued, txn)

	if err := s.writePending(ctx, queued); err != nil {
		return model.Transaction{}, err
	}

	return txn, nil
}

func (s *offlineService) ListOffline(ctx context.Context) ([]model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readPending(ctx)
}

func (s *offlineService) SyncOffline(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	queued, err := s.readPending(ctx)
	if err != nil {
		return 0, err
	}
	if len(queued) == 0 {
		return 0, nil
	}

	// Pending sales keep their recorded date and time; only the id is
	// regenerated by the store. The store adds happen before the pending
	// slot is cleared, so a failed clear re-syncs (and duplicates) the
	// queued sales rather than losing them.
	for _, txn := range queued {
		s.st.AddTransaction(store.TransactionInput{
			Items:         txn.Items,
			Subtotal:      txn.Subtotal,
			Tax:           txn.Tax,
			Discount:      txn.Discount,
			Total:         txn.Total,
			PaymentMethod: txn.PaymentMethod,
			Date:          txn.Date,
			Time:          txn.Time,
			Customer:      txn.Customer,
			Cashier:       txn.Cashier,
		})
	}

	if err := s.writePending(ctx, nil); err != nil {
		return 0, err
	}

	return len(queued), nil
}

func (s *offlineService) readPending(ctx context.Context) ([]model.Transaction, error) {
	data, err := s.pending.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read pending slot: %w", err)
	}
	if data == nil {
		return nil, nil
	}

	var queued []model.Transaction
	if err := json.Unmarshal(data, &queued); err != nil {
		return nil, fmt.Errorf("decode pending slot: %w", err)
	}
	return queued, nil
}

func (s *offlineService) writePending(ctx context.Context, queued []model.Transaction) error {
	if queued == nil {
		queued = []model.Transaction{}
	}
	data, err := json.Marshal(queued)
	if err != nil {
		return fmt.Errorf("encode pending slot: %w", err)
	}
	if err := s.pending.Write(ctx, data); err != nil {
		return fmt.Errorf("write pending slot: %w", err)
	}
	return nil
}
