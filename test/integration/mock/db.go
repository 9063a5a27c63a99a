package mock

import (
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbOnce sync.Once
var dbMock *Db

// Db is an in-memory SQLite database holding the registered models.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
}

// NewDb opens the shared database and migrates the models, keyed by table name.
func NewDb(name string, models map[string]any) *Db {
	dbOnce.Do(func() {
		dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
		dbConn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			panic("failed to connect to database. err: " + err.Error())
		}

		sqlDB, err := dbConn.DB()
		if err != nil {
			panic(err)
		}
		sqlDB.SetMaxOpenConns(1)

		dbMock = &Db{
			DbConn: dbConn,
			models: models,
		}

		modelList := make([]any, 0, len(models))
		for _, model := range models {
			modelList = append(modelList, model)
		}
		if err := dbConn.AutoMigrate(modelList...); err != nil {
			panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
		}
	})

	return dbMock
}

// ClearDB deletes every row of every registered table.
func (d *Db) ClearDB() error {
	for table, model := range d.models {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error
		if err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}

func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
