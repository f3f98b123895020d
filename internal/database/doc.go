// Package database is the persistence facade of the catalog.
//
// # Architecture
//
// The facade owns the connection and hands each operation a fresh set of
// table gateways:
//
//	database/
//	├── database.go      # Open/Closed lifecycle, transactions, truncation
//	├── catalog.go       # One method per catalog operation
//	├── migrations/      # Embedded goose schema
//	├── lists/           # Lists gateway, name <-> id for lists
//	├── authors/         # Authors gateway, name <-> id for authors
//	├── titles/          # Titles gateway
//	└── comments/        # Comments gateway, implements reconcile.Store
//
// Writes run in a single transaction with every gateway bound to it, so a
// title row and its comment reconciliation commit or roll back together.
// A mutex serializes all calls on one Database.
//
// # Usage
//
//	db, err := database.NewDatabase("./catalog.db", database.WithLogger(log))
//	defer db.Close()
//
//	title := entities.NewTitle("Dune", "Herbert, Frank", "Wish List Titles")
//	title.AddComment("good")
//	err = db.InsertTitle(title)
//
// # Errors
//
// Every error returned by the facade is a *dberr.Error; test the kind with
// errors.Is(err, dberr.ErrMissingKey) and friends.
package database
