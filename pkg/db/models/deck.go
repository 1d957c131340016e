package models

import "time"

// Deck is a named list of card references imported from the external deck
// builder. ArchidektID is the upstream identity: re-importing the same id
// updates the row in place.
type Deck struct {
	ID           uint      `gorm:"column:id;primaryKey"`
	Name         string    `gorm:"column:name;size:200;not null"`
	ArchidektID  *string   `gorm:"column:archidekt_id;size:50;uniqueIndex"`
	ArchidektURL string    `gorm:"column:archidekt_url;size:500"`
	Format       string    `gorm:"column:format;size:50"`
	Description  string    `gorm:"column:description"`
	Commander    *string   `gorm:"column:commander;size:200"`
	CreatedDate  time.Time `gorm:"column:created_date;autoCreateTime"`
	UpdatedDate  time.Time `gorm:"column:updated_date;autoUpdateTime"`
}
