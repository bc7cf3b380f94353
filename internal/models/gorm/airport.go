package gorm

// Airport is a directory entry loaded by the import tool and read by everyone else.
// ICAO is indexed but not unique; the source spreadsheets carry duplicates.
type Airport struct {
	ID          uint    `gorm:"column:id;primaryKey" db:"id"`
	ICAO        string  `gorm:"column:icao;type:varchar(4);not null;index" db:"icao"`
	IATA        string  `gorm:"column:iata;type:varchar(3)" db:"iata"`
	Name        string  `gorm:"column:name;type:varchar(255);not null" db:"name"`
	CountryCode string  `gorm:"column:country_code;type:varchar(2);not null;default:US" db:"country_code"`
	City        string  `gorm:"column:city;type:varchar(255)" db:"city"`
	State       string  `gorm:"column:state;type:varchar(255);index" db:"state"`
	Latitude    float64 `gorm:"column:latitude;not null;default:0" db:"latitude"`
	Longitude   float64 `gorm:"column:longitude;not null;default:0" db:"longitude"`
}

// TableName specifies the table name for GORM
func (Airport) TableName() string {
	return "airports"
}
