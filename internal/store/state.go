package store

import "github.com/cafebonheur/pos/internal/model"

// State is the full content of the domain store: the four record sets.
// It is also the document serialized into the persisted slot.
type State struct {
	Products     []model.Product     `json:"products"`
	Customers    []model.Customer    `json:"customers"`
	Users        []model.User        `json:"users"`
	Transactions []model.Transaction `json:"transactions"`
}

// Clone returns a deep copy of the state. Snapshots handed to readers are
// clones so the store's collections are never aliased outside it.
func (s State) Clone() State {
	out := State{
		Products:     make([]model.Product, len(s.Products)),
		Customers:    make([]model.Customer, len(s.Customers)),
		Users:        make([]model.User, len(s.Users)),
		Transactions: make([]model.Transaction, len(s.Transactions)),
	}
	copy(out.Products, s.Products)
	copy(out.Customers, s.Customers)
	copy(out.Users, s.Users)
	for i, txn := range s.Transactions {
		items := make([]model.LineItem, len(txn.Items))
		copy(items, txn.Items)
		txn.Items = items
		out.Transactions[i] = txn
	}
	return out
}
