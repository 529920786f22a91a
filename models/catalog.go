package models

import "time"

const (
	CategoryTable     = "ld_categories"
	ItemTable         = "ld_items"
	UnitTable         = "ld_units"
	ItemCategoryTable = "ld_item_categories"
)

type Category struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:255;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Item is a kind of loanable thing ("Drill"). How many are free for a window
// is always derived from its units and the live orders, never stored here.
type Item struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	ImageURL    string     `gorm:"size:512" json:"imageUrl,omitempty"`
	Categories  []Category `gorm:"many2many:ld_item_categories" json:"categories,omitempty"`
	Units       []Unit     `gorm:"foreignKey:ItemID" json:"units,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Unit is one physical instance of an Item. Available is the manual
// enable/disable switch; scheduling conflicts are checked separately.
type Unit struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	ItemID       string    `gorm:"type:uuid;not null;index;uniqueIndex:ld_units_item_serial" json:"itemId"`
	SerialNumber string    `gorm:"size:255;not null;uniqueIndex:ld_units_item_serial" json:"serialNumber"`
	Available    bool      `gorm:"not null;default:true" json:"available"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Category) TableName() string { return CategoryTable }
func (Item) TableName() string     { return ItemTable }
func (Unit) TableName() string     { return UnitTable }
