package store

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafebonheur/pos/internal/model"
	"github.com/cafebonheur/pos/pkg/ptr"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st := New(nil)
	st.now = func() time.Time {
		return time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)
	}
	return st
}

func TestNew(t *testing.T) {
	t.Run("Should seed all collections when nothing is persisted", func(t *testing.T) {
		st := New(nil)
		snap := st.Snapshot()

		assert.Len(t, snap.Products, 5)
		assert.Len(t, snap.Customers, 3)
		assert.Len(t, snap.Users, 3)
		assert.Len(t, snap.Transactions, 1)
	})

	t.Run("Should fall back to seed data per missing collection", func(t *testing.T) {
		persisted := &State{
			Products: []model.Product{{ID: 42, Name: "Espresso", Price: 1.80}},
		}
		st := New(persisted)
		snap := st.Snapshot()

		require.Len(t, snap.Products, 1)
		assert.Equal(t, int64(42), snap.Products[0].ID)
		assert.Len(t, snap.Customers, 3)
		assert.Len(t, snap.Users, 3)
		assert.Len(t, snap.Transactions, 1)
	})

	t.Run("Should keep rehydrated empty collections empty", func(t *testing.T) {
		persisted := &State{
			Products:     []model.Product{},
			Customers:    []model.Customer{},
			Users:        []model.User{},
			Transactions: []model.Transaction{},
		}
		st := New(persisted)
		snap := st.Snapshot()

		assert.Empty(t, snap.Products)
		assert.Empty(t, snap.Customers)
		assert.Empty(t, snap.Users)
		assert.Empty(t, snap.Transactions)
	})
}

func TestAddProduct(t *testing.T) {
	st := newTestStore(t)
	before := st.Snapshot()

	created := st.AddProduct(ProductInput{
		Name:     "Thé vert",
		Price:    3.00,
		Category: "Boissons",
		Stock:    20,
		Barcode:  "999",
		Supplier: "X",
	})

	snap := st.Snapshot()
	require.Len(t, snap.Products, len(before.Products)+1)

	got := snap.Products[len(snap.Products)-1]
	assert.Equal(t, created, got)
	assert.Equal(t, "Thé vert", got.Name)
	assert.Equal(t, 3.00, got.Price)
	assert.Equal(t, "Boissons", got.Category)
	assert.Equal(t, 20, got.Stock)

	for _, p := range before.Products {
		assert.NotEqual(t, p.ID, got.ID)
	}
}

func TestAddProductGeneratesUniqueIDs(t *testing.T) {
	st := newTestStore(t)

	seen := map[int64]struct{}{}
	for i := 0; i < 1000; i++ {
		p := st.AddProduct(ProductInput{Name: "Eau minérale", Price: 1.50})
		_, dup := seen[p.ID]
		require.False(t, dup, "duplicate id %d", p.ID)
		seen[p.ID] = struct{}{}
	}
}

func TestUpdateProduct(t *testing.T) {
	t.Run("Should merge only the supplied fields", func(t *testing.T) {
		st := newTestStore(t)
		before := st.Snapshot().Products[0]

		updated, ok := st.UpdateProduct(before.ID, ProductUpdate{
			Price: ptr.New(2.80),
			Stock: ptr.New(50),
		})

		require.True(t, ok)
		assert.Equal(t, 2.80, updated.Price)
		assert.Equal(t, 50, updated.Stock)
		assert.Equal(t, before.Name, updated.Name)
		assert.Equal(t, before.Category, updated.Category)
		assert.Equal(t, before.Barcode, updated.Barcode)
		assert.Equal(t, before.Supplier, updated.Supplier)
	})

	t.Run("Should leave the collection unchanged on unknown id", func(t *testing.T) {
		st := newTestStore(t)
		before := st.Snapshot()

		_, ok := st.UpdateProduct(999999, ProductUpdate{Price: ptr.New(1.00)})

		assert.False(t, ok)
		assert.Equal(t, before, st.Snapshot())
	})
}

func TestDeleteProduct(t *testing.T) {
	st := newTestStore(t)
	before := st.Snapshot()
	victim := before.Products[2]

	require.True(t, st.DeleteProduct(victim.ID))

	snap := st.Snapshot()
	require.Len(t, snap.Products, len(before.Products)-1)
	for _, p := range snap.Products {
		assert.NotEqual(t, victim.ID, p.ID)
	}

	// Second delete of the same id is a no-op.
	assert.False(t, st.DeleteProduct(victim.ID))
	assert.Equal(t, snap, st.Snapshot())
}

func TestAddCustomer(t *testing.T) {
	st := newTestStore(t)

	created := st.AddCustomer(CustomerInput{
		FirstName: "Luc",
		LastName:  "Moreau",
		Email:     "luc.moreau@example.com",
		Phone:     "+33 6 00 00 00 00",
		Address:   "1 Rue du Port, 13001 Marseille",
	})

	assert.Equal(t, 0, created.Points)
	assert.Equal(t, 0, created.Visits)
	assert.Equal(t, "2024-03-01", created.LastVisit)
	assert.Equal(t, "Luc", created.FirstName)

	snap := st.Snapshot()
	assert.Len(t, snap.Customers, 4)
}

func TestUpdateCustomer(t *testing.T) {
	t.Run("Should merge loyalty fields", func(t *testing.T) {
		st := newTestStore(t)
		target := st.Snapshot().Customers[0]

		updated, ok := st.UpdateCustomer(target.ID, CustomerUpdate{
			Points: ptr.New(1300),
			Visits: ptr.New(43),
		})

		require.True(t, ok)
		assert.Equal(t, 1300, updated.Points)
		assert.Equal(t, 43, updated.Visits)
		assert.Equal(t, target.FirstName, updated.FirstName)
		assert.Equal(t, target.LastVisit, updated.LastVisit)
	})

	t.Run("Should leave the collection unchanged on unknown id", func(t *testing.T) {
		st := newTestStore(t)
		before := st.Snapshot()

		_, ok := st.UpdateCustomer(999999, CustomerUpdate{Points: ptr.New(500)})

		assert.False(t, ok)
		assert.Equal(t, before.Customers, st.Snapshot().Customers)
	})
}

func TestDeleteCustomer(t *testing.T) {
	st := newTestStore(t)
	victim := st.Snapshot().Customers[1]

	require.True(t, st.DeleteCustomer(victim.ID))
	assert.Len(t, st.Snapshot().Customers, 2)
	assert.False(t, st.DeleteCustomer(victim.ID))
}

func TestAddUser(t *testing.T) {
	st := newTestStore(t)

	created := st.AddUser(UserInput{
		FirstName: "Claire",
		LastName:  "Petit",
		Email:     "claire.petit@cafebonheur.fr",
		Role:      model.RoleCashier,
		Status:    model.UserStatusActive,
	})

	assert.Equal(t, "2024-03-01", created.LastLogin)
	assert.Equal(t, model.RoleCashier, created.Role)
	assert.Len(t, st.Snapshot().Users, 4)
}

func TestUpdateUser(t *testing.T) {
	st := newTestStore(t)
	target := st.Snapshot().Users[2]

	updated, ok := st.UpdateUser(target.ID, UserUpdate{
		Role:   ptr.New(model.RoleManager),
		Status: ptr.New(model.UserStatusInactive),
	})

	require.True(t, ok)
	assert.Equal(t, model.RoleManager, updated.Role)
	assert.Equal(t, model.UserStatusInactive, updated.Status)
	assert.Equal(t, target.Email, updated.Email)
}

func TestDeleteUser(t *testing.T) {
	st := newTestStore(t)
	before := st.Snapshot()

	assert.False(t, st.DeleteUser(999999))
	assert.Equal(t, before.Users, st.Snapshot().Users)

	require.True(t, st.DeleteUser(before.Users[0].ID))
	assert.Len(t, st.Snapshot().Users, 2)
}

func TestAddTransaction(t *testing.T) {
	t.Run("Should generate a prefixed id and default date and time", func(t *testing.T) {
		st := newTestStore(t)

		txn := st.AddTransaction(TransactionInput{
			Items:         []model.LineItem{{Name: "Café noir", Qty: 2, Price: 2.50, Total: 5.00}},
			Subtotal:      5.00,
			Tax:           0.40,
			Discount:      0,
			Total:         5.40,
			PaymentMethod: "Carte",
			Cashier:       "Jean",
		})

		assert.True(t, strings.HasPrefix(txn.ID, "TXN-"))
		assert.NotEqual(t, "TXN-001", txn.ID)
		assert.Equal(t, "2024-03-01", txn.Date)
		assert.Equal(t, "14:30", txn.Time)
		assert.Equal(t, 5.40, txn.Total)

		assert.Len(t, st.Snapshot().Transactions, 2)
	})

	t.Run("Should keep caller-supplied date and time", func(t *testing.T) {
		st := newTestStore(t)

		txn := st.AddTransaction(TransactionInput{
			Items:         []model.LineItem{{Name: "Croissant", Qty: 1, Price: 2.00, Total: 2.00}},
			Subtotal:      2.00,
			Total:         2.00,
			PaymentMethod: "Espèces",
			Date:          "2024-02-29",
			Time:          "09:15",
			Cashier:       "Sophie Martin",
		})

		assert.Equal(t, "2024-02-29", txn.Date)
		assert.Equal(t, "09:15", txn.Time)
	})

	t.Run("Should not touch stock or loyalty counters", func(t *testing.T) {
		st := newTestStore(t)
		before := st.Snapshot()

		st.AddTransaction(TransactionInput{
			Items:         []model.LineItem{{Name: "Café noir", Qty: 3, Price: 2.50, Total: 7.50}},
			Subtotal:      7.50,
			Total:         7.50,
			PaymentMethod: "Carte",
			Customer:      "Marie Dubois",
			Cashier:       "Jean Dupont",
		})

		snap := st.Snapshot()
		assert.Equal(t, before.Products, snap.Products)
		assert.Equal(t, before.Customers, snap.Customers)
	})
}

func TestSnapshotIsolation(t *testing.T) {
	st := newTestStore(t)

	snap := st.Snapshot()
	snap.Products[0].Name = "mutated"
	snap.Transactions[0].Items[0].Qty = 999

	fresh := st.Snapshot()
	assert.Equal(t, "Café noir", fresh.Products[0].Name)
	assert.Equal(t, 2, fresh.Transactions[0].Items[0].Qty)
}

func TestSubscribe(t *testing.T) {
	st := newTestStore(t)
	notify := st.Subscribe()

	st.AddProduct(ProductInput{Name: "Madeleine", Price: 1.20})

	select {
	case <-notify:
	default:
		t.Fatal("expected a notification after a mutation")
	}

	// A burst of mutations coalesces into the single buffered signal.
	st.AddProduct(ProductInput{Name: "Financier", Price: 1.80})
	st.AddProduct(ProductInput{Name: "Canelé", Price: 2.20})

	select {
	case <-notify:
	default:
		t.Fatal("expected a coalesced notification")
	}
	select {
	case <-notify:
		t.Fatal("expected no second pending notification")
	default:
	}
}
