package database

import (
	"github.com/yeremiapane/coffee-outlets/models"
	"github.com/yeremiapane/coffee-outlets/utils"
	"gorm.io/gorm"
)

// Models lists every table in dependency order, parents first.
func Models() []interface{} {
	return []interface{}{
		&models.Outlet{},
		&models.MenuItem{},
		&models.Order{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		utils.ErrorLogger.Errorf("AutoMigrate failed: %v", err)
		return err
	}

	for _, m := range Models() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(m); err != nil {
			return err
		}
		utils.InfoLogger.Printf("Table ready: %s", stmt.Schema.Table)
	}

	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}
