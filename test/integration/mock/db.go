package mock

import (
	"database/sql"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/invoice-tracker/invoicetrack/internal/integration/persistence/model"
)

var dbOnce sync.Once
var db *Db

// Db wraps a shared in-memory SQLite connection reused across scenarios.
type Db struct {
	Conn *gorm.DB
}

// NewDb opens the shared in-memory database and migrates the schema. The
// same connection is handed to every scenario; Reset wipes it between them.
func NewDb() *Db {
	dbOnce.Do(func() {
		db = open()
	})
	return db
}

func open() *Db {
	sqlDB, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}

	// A single connection keeps the shared in-memory database alive.
	sqlDB.SetMaxOpenConns(1)

	conn, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to test database: " + err.Error())
	}

	if err := conn.AutoMigrate(models()...); err != nil {
		panic("failed to migrate test database: " + err.Error())
	}

	return &Db{Conn: conn}
}

func models() []any {
	return []any{
		&model.UserModel{},
		&model.InvoiceModel{},
		&model.ExtractionLogModel{},
		&model.EmailQueueModel{},
	}
}

// Reset deletes every row from every table.
func (d *Db) Reset() error {
	for _, m := range models() {
		err := d.Conn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(m).Error
		if err != nil {
			return err
		}
	}
	return nil
}
