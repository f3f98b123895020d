// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Persistence
//
//   - CatalogStore: everything the HTTP API needs (internal/http/stores.go),
//     split into ListStore, TitleStore, AuthorStore, CommentStore and HealthChecker
//   - Store: what catalogctl needs (internal/cli/root.go)
//
// All of them are satisfied by *database.Database, the single facade over
// the table gateways. Callers never touch gorm directly.
//
// ## Table Gateways
//
//   - reconcile.Store: comment rows of one owner (internal/reconcile/reconcile.go),
//     implemented by comments.Repository
//   - ListResolver / AuthorResolver: name to id translation used by the
//     titles and authors gateways, implemented by lists.Repository and
//     authors.Repository
//
// ## Comment Owners
//
//   - reconcile.Owner: *entities.Title and *entities.Author
//
// ## Background Work
//
//   - tasks.OrphanCommentSweeper: removes comments without an owner
//   - scheduler.Enqueuer: hands tasks to the backlite queue (*tasks.Client)
//
// # Adding a New Item Type
//
// To catalog another kind of item (e.g., series):
//
//  1. Add the entity and its record to internal/entities and a goose
//     migration to internal/database/migrations
//
//  2. Create a gateway sub-package: internal/database/series/
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB, lists ListResolver, comments reconcile.Store) *Repository
//
//  3. Give the entity OwnerKey, OwnerType and AllComments so the
//     reconciliation engine can keep its comments in step
//
//  4. Add facade methods that run the gateway inside Database.write
//
//  5. Add a vocabulary in internal/translator if the type should appear in
//     list tables
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the checks of this module.
package interfaces
