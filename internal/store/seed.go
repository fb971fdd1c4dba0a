package store

import "github.com/cafebonheur/pos/internal/model"

// SeedState returns the demo data set the store starts from when no
// persisted state exists: 5 products, 3 customers, 3 users and 1
// transaction.
func SeedState() State {
	return State{
		Products: []model.Product{
			{ID: 1, Name: "Café noir", Price: 2.50, Category: "Boissons", Stock: 45, Barcode: "1234567890123", Supplier: "Café Premium SA"},
			{ID: 2, Name: "Croissant", Price: 2.00, Category: "Pâtisserie", Stock: 32, Barcode: "1234567890124", Supplier: "Boulangerie du Centre"},
			{ID: 3, Name: "Pain au chocolat", Price: 2.50, Category: "Pâtisserie", Stock: 28, Barcode: "1234567890125", Supplier: "Boulangerie du Centre"},
			{ID: 4, Name: "Jus d'orange", Price: 4.00, Category: "Boissons", Stock: 15, Barcode: "1234567890126", Supplier: "Fruits et Jus SARL"},
			{ID: 5, Name: "Sandwich jambon", Price: 7.00, Category: "Sandwichs", Stock: 20, Barcode: "1234567890127", Supplier: "Charcuterie Fine"},
		},
		Customers: []model.Customer{
			{ID: 1, FirstName: "Marie", LastName: "Dubois", Email: "marie.dubois@example.com", Phone: "+33 6 12 34 56 78", Points: 1250, Visits: 42, LastVisit: "2024-01-15", Address: "123 Rue de la Paix, 75001 Paris"},
			{ID: 2, FirstName: "Jean", LastName: "Martin", Email: "jean.martin@example.com", Phone: "+33 6 98 76 54 32", Points: 850, Visits: 28, LastVisit: "2024-01-14", Address: "45 Avenue des Champs-Élysées, 75008 Paris"},
			{ID: 3, FirstName: "Sophie", LastName: "Leroy", Email: "sophie.leroy@example.com", Phone: "+33 6 55 44 33 22", Points: 2100, Visits: 65, LastVisit: "2024-01-13", Address: "78 Boulevard Saint-Germain, 75006 Paris"},
		},
		Users: []model.User{
			{ID: 1, FirstName: "Jean", LastName: "Dupont", Email: "jean.dupont@cafebonheur.fr", Role: model.RoleAdmin, Status: model.UserStatusActive, LastLogin: "2024-01-15"},
			{ID: 2, FirstName: "Sophie", LastName: "Martin", Email: "sophie.martin@cafebonheur.fr", Role: model.RoleManager, Status: model.UserStatusActive, LastLogin: "2024-01-15"},
			{ID: 3, FirstName: "Pierre", LastName: "Bernard", Email: "pierre.bernard@cafebonheur.fr", Role: model.RoleCashier, Status: model.UserStatusActive, LastLogin: "2024-01-14"},
		},
		Transactions: []model.Transaction{
			{
				ID: "TXN-001",
				Items: []model.LineItem{
					{Name: "Café noir", Qty: 2, Price: 2.50, Total: 5.00},
					{Name: "Croissant", Qty: 2, Price: 2.00, Total: 4.00},
				},
				Subtotal:      9.00,
				Tax:           0.72,
				Discount:      0,
				Total:         9.72,
				PaymentMethod: "Carte",
				Date:          "2024-01-15",
				Time:          "10:24",
				Customer:      "Marie Dubois",
				Cashier:       "Jean Dupont",
			},
		},
	}
}
