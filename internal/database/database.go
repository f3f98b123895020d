package database

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/catalog/internal/database/authors"
	"github.com/mrlokans/catalog/internal/database/comments"
	"github.com/mrlokans/catalog/internal/database/lists"
	"github.com/mrlokans/catalog/internal/database/migrations"
	"github.com/mrlokans/catalog/internal/database/titles"
	"github.com/mrlokans/catalog/internal/dberr"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/logging"
)

// Table names accepted by TruncateTable, in the order TruncateAll clears them.
var truncateOrder = []string{"comments", "titles", "authors", "lists"}

// Database is the persistence facade. It is Open from NewDatabase until
// Close; every call after Close fails with dberr.ErrClosed.
type Database struct {
	DB *gorm.DB

	log  *zap.Logger
	path string

	mu     sync.Mutex
	closed bool
}

type options struct {
	logger      *zap.Logger
	sqlLogLevel logger.LogLevel
}

// Option configures NewDatabase.
type Option func(*options)

// WithLogger sets the application logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSQLLogLevel sets the level of gorm's statement logger, which writes
// through the application logger.
func WithSQLLogLevel(level logger.LogLevel) Option {
	return func(o *options) {
		o.sqlLogLevel = level
	}
}

// ParseSQLLogLevel maps silent, error, warn and info to gorm log levels.
func ParseSQLLogLevel(s string) (logger.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "silent":
		return logger.Silent, nil
	case "error":
		return logger.Error, nil
	case "warn", "warning":
		return logger.Warn, nil
	case "info":
		return logger.Info, nil
	default:
		return logger.Silent, fmt.Errorf("unknown SQL log level %q", s)
	}
}

// NewDatabase opens the SQLite file at dbPath, applies pending migrations and
// returns an Open facade. Statements are prepared once and cached until Close.
func NewDatabase(dbPath string, opts ...Option) (*Database, error) {
	o := options{logger: zap.NewNop(), sqlLogLevel: logger.Silent}
	for _, opt := range opts {
		opt(&o)
	}

	dsn := dbPath + "?_foreign_keys=on&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.New(logging.Printf{Log: o.logger.Sugar()}, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  o.sqlLogLevel,
			IgnoreRecordNotFoundError: true,
		}),
		PrepareStmt: true,
	})
	if err != nil {
		return nil, dberr.Wrap("Open", fmt.Errorf("failed to connect to database: %w", err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, dberr.Wrap("Open", err)
	}
	applied, err := migrations.Up(context.Background(), sqlDB)
	if err != nil {
		sqlDB.Close()
		return nil, dberr.Wrap("Open", fmt.Errorf("failed to migrate database: %w", err))
	}
	sqlDB.SetMaxOpenConns(1)

	o.logger.Info("Database initialized",
		zap.String("path", dbPath),
		zap.Int("migrations_applied", applied),
	)

	return &Database{DB: db, log: o.logger, path: dbPath}, nil
}

// Close releases the prepared statements and the connection. It succeeds
// once; later calls return dberr.ErrClosed.
func (d *Database) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return dberr.Wrap("Close", dberr.ErrClosed)
	}
	d.closed = true

	if stmts, ok := d.DB.ConnPool.(*gorm.PreparedStmtDB); ok {
		stmts.Close()
	}
	sqlDB, err := d.DB.DB()
	if err != nil {
		return dberr.Wrap("Close", err)
	}
	if err := sqlDB.Close(); err != nil {
		return dberr.Wrap("Close", err)
	}
	d.log.Info("Database closed", zap.String("path", d.path))
	return nil
}

// IsClosed reports whether Close has been called.
func (d *Database) IsClosed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// gateways is one set of table gateways bound to a connection or transaction.
type gateways struct {
	db       *gorm.DB
	lists    *lists.Repository
	authors  *authors.Repository
	titles   *titles.Repository
	comments *comments.Repository
}

func newGateways(db *gorm.DB) *gateways {
	l := lists.NewRepository(db)
	c := comments.NewRepository(db)
	a := authors.NewRepository(db, l, c)
	return &gateways{
		db:       db,
		lists:    l,
		authors:  a,
		titles:   titles.NewRepository(db, l, a, c),
		comments: c,
	}
}

// read runs fn with gateways on the plain connection.
func (d *Database) read(op string, fn func(g *gateways) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return dberr.Wrap(op, dberr.ErrClosed)
	}
	return dberr.Wrap(op, fn(newGateways(d.DB)))
}

// write runs fn inside one transaction with gateways bound to it. A failure
// anywhere in fn rolls back every statement fn issued.
func (d *Database) write(op string, fn func(g *gateways) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return dberr.Wrap(op, dberr.ErrClosed)
	}
	err := d.DB.Transaction(func(tx *gorm.DB) error {
		return fn(newGateways(tx))
	})
	if err != nil {
		err = dberr.Wrap(op, err)
		d.log.Warn("Database write failed", zap.String("op", op), zap.Error(err))
	}
	return err
}

func requireKey(op, entity string, key entities.OptionalKey) error {
	if !key.IsAssigned() {
		return dberr.Wrap(op, dberr.Missing(entity))
	}
	return nil
}

// snapshotKeys records the keys an insert or update may assign and returns a
// func restoring them, used when the transaction rolls back.
func snapshotKeys(item *entities.LibraryItem) func() {
	key := item.Key
	comments := append([]*entities.Comment(nil), item.Comments...)
	saved := make([]entities.Comment, len(comments))
	for i, c := range comments {
		if c != nil {
			saved[i] = *c
		}
	}
	return func() {
		item.Key = key
		for i, c := range comments {
			if c != nil {
				*c = saved[i]
			}
		}
	}
}

// Ping checks that the connection is usable.
func (d *Database) Ping() error {
	return d.read("Ping", func(*gateways) error {
		sqlDB, err := d.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Ping()
	})
}

// SchemaVersion reports the applied migration version.
func (d *Database) SchemaVersion() (int64, error) {
	var version int64
	err := d.read("SchemaVersion", func(g *gateways) error {
		return g.db.Table(migrations.VersionTable).
			Select("COALESCE(MAX(version_id), 0)").
			Where("is_applied = ?", true).
			Scan(&version).Error
	})
	return version, err
}

// TruncateTable deletes every row of one table without cascading to
// comments. Truncating titles or authors alone leaves their comments
// orphaned until DeleteOrphanComments runs; truncating lists fails while
// items still refer to them. Meant for test setup and bootstrap only.
func (d *Database) TruncateTable(name string) error {
	return d.write("TruncateTable", func(g *gateways) error {
		_, err := d.truncate(g, name)
		return err
	})
}

// TruncateAll empties all four tables in dependency order.
func (d *Database) TruncateAll() error {
	return d.write("TruncateAll", func(g *gateways) error {
		for _, name := range truncateOrder {
			if _, err := d.truncate(g, name); err != nil {
				return err
			}
		}
		return nil
	})
}

func (d *Database) truncate(g *gateways, name string) (int64, error) {
	if !knownTable(name) {
		return 0, dberr.NotFound("table", fmt.Sprintf("%q", name))
	}
	result := g.db.Exec("DELETE FROM " + name)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to truncate %s: %w", name, result.Error)
	}
	d.log.Warn("Table truncated", zap.String("table", name), zap.Int64("rows", result.RowsAffected))
	return result.RowsAffected, nil
}

func knownTable(name string) bool {
	for _, t := range truncateOrder {
		if t == name {
			return true
		}
	}
	return false
}

// DeleteOrphanComments removes comments whose title or author is gone and
// returns how many were deleted.
func (d *Database) DeleteOrphanComments() (int64, error) {
	var n int64
	err := d.write("DeleteOrphanComments", func(g *gateways) error {
		var err error
		n, err = g.comments.DeleteOrphans()
		return err
	})
	if err == nil && n > 0 {
		d.log.Info("Deleted orphan comments", zap.Int64("count", n))
	}
	return n, err
}
