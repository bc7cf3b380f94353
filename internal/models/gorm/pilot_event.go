package gorm

import "time"

// PilotEvent is a community fly-in, hosted and owned by a single user.
// Start and finish are calendar dates stored at midnight UTC.
type PilotEvent struct {
	ID               uint      `gorm:"column:id;primaryKey"`
	HostID           uint      `gorm:"column:host_id;not null;index"`
	EventName        string    `gorm:"column:event_name;type:varchar(500);not null"`
	EventStartDate   time.Time `gorm:"column:event_start_date;type:date;not null;index"`
	EventFinishDate  time.Time `gorm:"column:event_finish_date;type:date;not null;index"`
	HostAirportID    *uint     `gorm:"column:host_airport_id;index"`
	SecondAirportID  *uint     `gorm:"column:second_airport_id;index"`
	ThirdAirportID   *uint     `gorm:"column:third_airport_id;index"`
	EventDescription string    `gorm:"column:event_description;type:text;not null"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Host          *User    `gorm:"foreignKey:HostID;constraint:OnDelete:CASCADE"`
	HostAirport   *Airport `gorm:"foreignKey:HostAirportID;constraint:OnDelete:CASCADE"`
	SecondAirport *Airport `gorm:"foreignKey:SecondAirportID;constraint:OnDelete:CASCADE"`
	ThirdAirport  *Airport `gorm:"foreignKey:ThirdAirportID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for GORM
func (PilotEvent) TableName() string {
	return "pilot_events"
}

// AirportIDs returns the ids of the airport slots that are set, in slot order
func (e *PilotEvent) AirportIDs() []uint {
	var ids []uint
	for _, id := range []*uint{e.HostAirportID, e.SecondAirportID, e.ThirdAirportID} {
		if id != nil {
			ids = append(ids, *id)
		}
	}
	return ids
}
