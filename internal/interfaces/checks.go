package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/catalog/internal/cli"
	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/database/authors"
	"github.com/mrlokans/catalog/internal/database/comments"
	"github.com/mrlokans/catalog/internal/database/lists"
	"github.com/mrlokans/catalog/internal/database/titles"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/http"
	"github.com/mrlokans/catalog/internal/reconcile"
	"github.com/mrlokans/catalog/internal/scheduler"
	"github.com/mrlokans/catalog/internal/tasks"
)

// =============================================================================
// Persistence Facade
// =============================================================================

var _ http.CatalogStore = (*database.Database)(nil)
var _ cli.Store = (*database.Database)(nil)
var _ tasks.OrphanCommentSweeper = (*database.Database)(nil)

// =============================================================================
// Table Gateways
// =============================================================================

var _ reconcile.Store = (*comments.Repository)(nil)
var _ titles.ListResolver = (*lists.Repository)(nil)
var _ titles.AuthorResolver = (*authors.Repository)(nil)
var _ authors.ListResolver = (*lists.Repository)(nil)

// =============================================================================
// Comment Owners
// =============================================================================

var _ reconcile.Owner = (*entities.Title)(nil)
var _ reconcile.Owner = (*entities.Author)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ scheduler.Enqueuer = (*tasks.Client)(nil)
