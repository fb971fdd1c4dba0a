// Package store holds the four POS record sets in memory and is the only
// writer of them. Readers get deep-copied snapshots; every mutation goes
// through one of the declared operations, which notify subscribers so the
// persisted slot can be brought up to date.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/cafebonheur/pos/internal/model"
)

var mutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pos_store_mutations_total",
	Help: "Number of store mutations by entity and operation.",
}, []string{"entity", "op"})

// txnIDPrefix marks generated transaction ids.
const txnIDPrefix = "TXN-"

const dateLayout = "2006-01-02"
const timeLayout = "15:04"

// Store owns the in-memory state. All methods are safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	state State
	gen   *idGen
	subs  []chan struct{}

	now func() time.Time
}

// New builds a store from rehydrated state. A nil persisted state, or any
// nil collection inside it, falls back to the seed data for that
// collection. Corrupt slot contents are the caller's concern and read
// back here as nil.
func New(persisted *State) *Store {
	seed := SeedState()
	state := seed
	if persisted != nil {
		if persisted.Products != nil {
			state.Products = persisted.Products
		}
		if persisted.Customers != nil {
			state.Customers = persisted.Customers
		}
		if persisted.Users != nil {
			state.Users = persisted.Users
		}
		if persisted.Transactions != nil {
			state.Transactions = persisted.Transactions
		}
	}

	floor := maxID(state.Products, func(p model.Product) int64 { return p.ID })
	if v := maxID(state.Customers, func(c model.Customer) int64 { return c.ID }); v > floor {
		floor = v
	}
	if v := maxID(state.Users, func(u model.User) int64 { return u.ID }); v > floor {
		floor = v
	}

	return &Store{
		state: state.Clone(),
		gen:   newIDGen(floor),
		now:   time.Now,
	}
}

// Snapshot returns a deep copy of the current state. Callers own the copy
// and must route every change back through the store's operations.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Subscribe returns a channel that receives a signal after each mutation.
// The channel has a buffer of one; signals arriving while a previous one
// is still pending are coalesced.
func (s *Store) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

func (s *Store) notifyLocked() {
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// ProductInput carries the caller-supplied fields of a new product.
type ProductInput struct {
	Name     string
	Price    float64
	Category string
	Stock    int
	Barcode  string
	Supplier string
}

// ProductUpdate is a partial-field merge; nil fields are left unchanged.
type ProductUpdate struct {
	Name     *string
	Price    *float64
	Category *string
	Stock    *int
	Barcode  *string
	Supplier *string
}

// AddProduct appends a product with a generated id and returns it.
func (s *Store) AddProduct(in ProductInput) model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := model.Product{
		ID:       s.gen.Next(),
		Name:     in.Name,
		Price:    in.Price,
		Category: in.Category,
		Stock:    in.Stock,
		Barcode:  in.Barcode,
		Supplier: in.Supplier,
	}
	s.state.Products = append(s.state.Products, p)

	mutationsTotal.WithLabelValues("product", "add").Inc()
	s.notifyLocked()
	return p
}

// UpdateProduct merges the non-nil fields of upd into the matching record.
// An unknown id leaves the collection unchanged and reports false.
func (s *Store) UpdateProduct(id int64, upd ProductUpdate) (model.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Products {
		if s.state.Products[i].ID != id {
			continue
		}
		p := &s.state.Products[i]
		setIf(&p.Name, upd.Name)
		setIf(&p.Price, upd.Price)
		setIf(&p.Category, upd.Category)
		setIf(&p.Stock, upd.Stock)
		setIf(&p.Barcode, upd.Barcode)
		setIf(&p.Supplier, upd.Supplier)

		mutationsTotal.WithLabelValues("product", "update").Inc()
		s.notifyLocked()
		return *p, true
	}
	return model.Product{}, false
}

// DeleteProduct removes the matching record. An unknown id is a no-op.
func (s *Store) DeleteProduct(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Products {
		if s.state.Products[i].ID == id {
			s.state.Products = append(s.state.Products[:i], s.state.Products[i+1:]...)
			mutationsTotal.WithLabelValues("product", "delete").Inc()
			s.notifyLocked()
			return true
		}
	}
	return false
}

// CustomerInput carries the caller-supplied fields of a new customer.
// Points, visits and last visit are always generated, never taken from
// the caller.
type CustomerInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
}

// CustomerUpdate is a partial-field merge; nil fields are left unchanged.
type CustomerUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Address   *string
	Points    *int
	Visits    *int
	LastVisit *string
}

// AddCustomer appends a customer with a generated id, zeroed loyalty
// counters and today's date as the last visit.
func (s *Store) AddCustomer(in CustomerInput) model.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := model.Customer{
		ID:        s.gen.Next(),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		Points:    0,
		Visits:    0,
		LastVisit: s.now().Format(dateLayout),
	}
	s.state.Customers = append(s.state.Customers, c)

	mutationsTotal.WithLabelValues("customer", "add").Inc()
	s.notifyLocked()
	return c
}

func (s *Store) UpdateCustomer(id int64, upd CustomerUpdate) (model.Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Customers {
		if s.state.Customers[i].ID != id {
			continue
		}
		c := &s.state.Customers[i]
		setIf(&c.FirstName, upd.FirstName)
		setIf(&c.LastName, upd.LastName)
		setIf(&c.Email, upd.Email)
		setIf(&c.Phone, upd.Phone)
		setIf(&c.Address, upd.Address)
		setIf(&c.Points, upd.Points)
		setIf(&c.Visits, upd.Visits)
		setIf(&c.LastVisit, upd.LastVisit)

		mutationsTotal.WithLabelValues("customer", "update").Inc()
		s.notifyLocked()
		return *c, true
	}
	return model.Customer{}, false
}

func (s *Store) DeleteCustomer(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Customers {
		if s.state.Customers[i].ID == id {
			s.state.Customers = append(s.state.Customers[:i], s.state.Customers[i+1:]...)
			mutationsTotal.WithLabelValues("customer", "delete").Inc()
			s.notifyLocked()
			return true
		}
	}
	return false
}

// UserInput carries the caller-supplied fields of a new user. The last
// login date is always generated.
type UserInput struct {
	FirstName string
	LastName  string
	Email     string
	Role      model.Role
	Status    model.UserStatus
}

// UserUpdate is a partial-field merge; nil fields are left unchanged.
type UserUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Role      *model.Role
	Status    *model.UserStatus
	LastLogin *string
}

// AddUser appends a user with a generated id and today's date as the
// last login.
func (s *Store) AddUser(in UserInput) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := model.User{
		ID:        s.gen.Next(),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Role:      in.Role,
		Status:    in.Status,
		LastLogin: s.now().Format(dateLayout),
	}
	s.state.Users = append(s.state.Users, u)

	mutationsTotal.WithLabelValues("user", "add").Inc()
	s.notifyLocked()
	return u
}

func (s *Store) UpdateUser(id int64, upd UserUpdate) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Users {
		if s.state.Users[i].ID != id {
			continue
		}
		u := &s.state.Users[i]
		setIf(&u.FirstName, upd.FirstName)
		setIf(&u.LastName, upd.LastName)
		setIf(&u.Email, upd.Email)
		setIf(&u.Role, upd.Role)
		setIf(&u.Status, upd.Status)
		setIf(&u.LastLogin, upd.LastLogin)

		mutationsTotal.WithLabelValues("user", "update").Inc()
		s.notifyLocked()
		return *u, true
	}
	return model.User{}, false
}

func (s *Store) DeleteUser(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Users {
		if s.state.Users[i].ID == id {
			s.state.Users = append(s.state.Users[:i], s.state.Users[i+1:]...)
			mutationsTotal.WithLabelValues("user", "delete").Inc()
			s.notifyLocked()
			return true
		}
	}
	return false
}

// TransactionInput carries the caller-supplied fields of a new
// transaction. Date and time default to now when empty.
type TransactionInput struct {
	Items         []model.LineItem
	Subtotal      float64
	Tax           float64
	Discount      float64
	Total         float64
	PaymentMethod string
	Date          string
	Time          string
	Customer      string
	Cashier       string
}

// AddTransaction appends a transaction with a generated prefixed id.
// Recording a sale has no side effect on product stock or customer
// loyalty counters.
func (s *Store) AddTransaction(in TransactionInput) model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	txn := model.Transaction{
		ID:            txnIDPrefix + uuid.NewString(),
		Items:         append([]model.LineItem(nil), in.Items...),
		Subtotal:      in.Subtotal,
		Tax:           in.Tax,
		Discount:      in.Discount,
		Total:         in.Total,
		PaymentMethod: in.PaymentMethod,
		Date:          in.Date,
		Time:          in.Time,
		Customer:      in.Customer,
		Cashier:       in.Cashier,
	}
	if txn.Date == "" {
		txn.Date = now.Format(dateLayout)
	}
	if txn.Time == "" {
		txn.Time = now.Format(timeLayout)
	}
	s.state.Transactions = append(s.state.Transactions, txn)

	mutationsTotal.WithLabelValues("transaction", "add").Inc()
	s.notifyLocked()
	return txn
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
