package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/gorm"
)

// The engine reads these exact column names and types.
const createDatasTable = `
CREATE TABLE IF NOT EXISTS datas (
	id INTEGER PRIMARY KEY,
	ot INTEGER,
	alias INTEGER,
	setcode INTEGER,
	type INTEGER,
	atk INTEGER,
	def INTEGER,
	level INTEGER,
	race INTEGER,
	attribute INTEGER,
	category INTEGER
);`

const createTextsTable = `
CREATE TABLE IF NOT EXISTS texts (
	id INTEGER PRIMARY KEY,
	name TEXT,
	desc TEXT,
	str1 TEXT, str2 TEXT, str3 TEXT, str4 TEXT,
	str5 TEXT, str6 TEXT, str7 TEXT, str8 TEXT,
	str9 TEXT, str10 TEXT, str11 TEXT, str12 TEXT,
	str13 TEXT, str14 TEXT, str15 TEXT, str16 TEXT
);`

// CreateBlank creates a card database with empty datas and texts tables.
// Existing tables are left alone, so it is safe on an existing file.
func CreateBlank(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating database directory: %w", err)
		}
	}

	db, err := open(path)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	defer sqlDB.Close()

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(createDatasTable).Error; err != nil {
			return fmt.Errorf("failed to create datas table: %w", err)
		}
		if err := tx.Exec(createTextsTable).Error; err != nil {
			return fmt.Errorf("failed to create texts table: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Infof("created blank database %s", path)
	return nil
}
