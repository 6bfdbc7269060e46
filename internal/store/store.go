// Package store reads and writes the engine's card database: a SQLite file
// with a datas table (numeric attributes) and a texts table (strings).
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/tliron/commonlog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/edopro-tools/cardsmith/internal/card"
	"github.com/edopro-tools/cardsmith/internal/taxonomy"
)

var (
	ErrDatabaseMissing = errors.New("database file not found")
	ErrExists          = errors.New("card already exists")
	ErrNotFound        = errors.New("card does not exist")
)

var log = commonlog.GetLogger("cardsmith.store")

// Store is a handle on a card database file. Every operation opens its own
// connection and closes it before returning, so nothing is held between
// calls and every mutation is durable on return.
type Store struct {
	Path string
}

func New(path string) *Store {
	return &Store{Path: path}
}

// withDB opens the database, runs fn and closes the connection.
func (s *Store) withDB(fn func(db *gorm.DB) error) error {
	if _, err := os.Stat(s.Path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrDatabaseMissing, s.Path)
		}
		return fmt.Errorf("error reading database file: %w", err)
	}

	db, err := open(s.Path)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	defer sqlDB.Close()

	return fn(db)
}

func open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	return db, nil
}

func exists(db *gorm.DB, id int64) (bool, error) {
	var n int64
	if err := db.Model(&dataRow{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to check card %d: %w", id, err)
	}
	return n > 0, nil
}

// Exists reports whether a card with the given ID is in the datas table.
func (s *Store) Exists(id int64) (bool, error) {
	var found bool
	err := s.withDB(func(db *gorm.DB) error {
		var err error
		found, err = exists(db, id)
		return err
	})
	return found, err
}

// Get loads a card from both tables. A card whose texts row is missing is
// returned with empty strings.
func (s *Store) Get(id int64) (*card.Card, error) {
	var c *card.Card
	err := s.withDB(func(db *gorm.DB) error {
		var d dataRow
		if err := db.Where("id = ?", id).First(&d).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %d", ErrNotFound, id)
			}
			return fmt.Errorf("failed to read card %d: %w", id, err)
		}
		var t textRow
		if err := db.Where("id = ?", id).Limit(1).Find(&t).Error; err != nil {
			return fmt.Errorf("failed to read texts for card %d: %w", id, err)
		}
		c = cardFromRows(d, t)
		return nil
	})
	return c, err
}

// Insert writes a new card to both tables in one transaction. It fails if
// a required field is missing or the ID is already taken.
func (s *Store) Insert(c *card.Card) error {
	if err := c.Validate(); err != nil {
		log.Warningf("rejected card %d: %s", c.ID, err)
		return err
	}

	err := s.withDB(func(db *gorm.DB) error {
		found, err := exists(db, c.ID)
		if err != nil {
			return err
		}
		if found {
			return fmt.Errorf("%w: %d", ErrExists, c.ID)
		}

		d, t := rowsFromCard(c)
		return db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&d).Error; err != nil {
				return fmt.Errorf("failed to insert datas row: %w", err)
			}
			if err := tx.Create(&t).Error; err != nil {
				return fmt.Errorf("failed to insert texts row: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		log.Warningf("insert of card %d failed: %s", c.ID, err)
		return err
	}

	log.Infof("added card %d (%s)", c.ID, c.Name)
	return nil
}

// Update rewrites only the columns set in u. Both tables change in one
// transaction; an empty update succeeds without touching the file.
func (s *Store) Update(id int64, u card.Update) error {
	texts, err := u.TextColumns()
	if err != nil {
		return err
	}
	datas := u.DataColumns()

	err = s.withDB(func(db *gorm.DB) error {
		found, err := exists(db, id)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%w: %d", ErrNotFound, id)
		}
		if len(datas) == 0 && len(texts) == 0 {
			return nil
		}

		return db.Transaction(func(tx *gorm.DB) error {
			if len(datas) > 0 {
				if err := tx.Model(&dataRow{}).Where("id = ?", id).Updates(datas).Error; err != nil {
					return fmt.Errorf("failed to update datas row: %w", err)
				}
			}
			if len(texts) > 0 {
				if err := tx.Model(&textRow{}).Where("id = ?", id).Updates(texts).Error; err != nil {
					return fmt.Errorf("failed to update texts row: %w", err)
				}
			}
			return nil
		})
	})
	if err != nil {
		log.Warningf("update of card %d failed: %s", id, err)
		return err
	}

	log.Infof("updated card %d", id)
	return nil
}

// Delete removes the card from both tables in one transaction.
func (s *Store) Delete(id int64) error {
	err := s.withDB(func(db *gorm.DB) error {
		found, err := exists(db, id)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%w: %d", ErrNotFound, id)
		}

		return db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("id = ?", id).Delete(&dataRow{}).Error; err != nil {
				return fmt.Errorf("failed to delete datas row: %w", err)
			}
			if err := tx.Where("id = ?", id).Delete(&textRow{}).Error; err != nil {
				return fmt.Errorf("failed to delete texts row: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		log.Warningf("delete of card %d failed: %s", id, err)
		return err
	}

	log.Infof("deleted card %d", id)
	return nil
}

// List returns summaries of cards with minID <= id <= maxID, ordered by ID.
func (s *Store) List(minID, maxID int64) ([]card.Summary, error) {
	var rows []summaryRow
	err := s.withDB(func(db *gorm.DB) error {
		return db.Table("datas").
			Select("datas.id AS id, texts.name AS name, datas.type AS type, datas.atk AS atk, datas.def AS def, datas.level AS level").
			Joins("LEFT JOIN texts ON datas.id = texts.id").
			Where("datas.id >= ? AND datas.id <= ?", minID, maxID).
			Order("datas.id").
			Scan(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	out := make([]card.Summary, 0, len(rows))
	for _, r := range rows {
		sum := card.Summary{
			ID:      r.ID,
			Type:    taxonomy.Type(r.Type),
			Attack:  r.Atk,
			Defense: r.Def,
			Level:   r.Level,
		}
		if r.Name != nil {
			sum.Name = *r.Name
		}
		out = append(out, sum)
	}
	return out, nil
}

// NextAvailableID returns one past the highest ID at or above startID, or
// startID itself when that range is empty.
func (s *Store) NextAvailableID(startID int64) (int64, error) {
	var highest sql.NullInt64
	err := s.withDB(func(db *gorm.DB) error {
		return db.Model(&dataRow{}).Select("MAX(id)").Where("id >= ?", startID).Row().Scan(&highest)
	})
	if err != nil {
		return startID, fmt.Errorf("failed to find next available ID: %w", err)
	}
	if !highest.Valid {
		return startID, nil
	}
	return highest.Int64 + 1, nil
}
