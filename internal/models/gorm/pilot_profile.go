package gorm

import (
	"time"

	"pilotconnect/internal/capability"
)

// PilotProfile holds one user's ratings, needs and offers.
// There is exactly one row per user (unique user_id).
type PilotProfile struct {
	ID             uint       `gorm:"column:id;primaryKey"`
	UserID         uint       `gorm:"column:user_id;not null;uniqueIndex"`
	HomeAirportID  *uint      `gorm:"column:home_airport_id;index"`
	FlightHours    int        `gorm:"column:flight_hours;not null;default:0"`
	LastActivityAt *time.Time `gorm:"column:last_activity_at"`
	Comments       *string    `gorm:"column:comments;type:text"`

	// Certifications
	PrivatePilot                   bool `gorm:"column:private_pilot;default:false"`
	InstrumentRating               bool `gorm:"column:instrument_rating;default:false"`
	CommercialPilotSingleEngine    bool `gorm:"column:commercial_pilot_single_engine;default:false"`
	FlightInstructorCFI            bool `gorm:"column:flight_instructor_cfi;default:false"`
	FlightInstructorCFII           bool `gorm:"column:flight_instructor_cfii;default:false"`
	CommercialPilotMultiEngine     bool `gorm:"column:commercial_pilot_multi_engine;default:false"`
	FlightInstructorMultiEngineMEI bool `gorm:"column:flight_instructor_multi_engine_mei;default:false"`

	// Safety pilot
	SafetyPilotNeedVFRSingleEngine  bool `gorm:"column:safety_pilot_need_vfr_single_engine;default:false"`
	SafetyPilotNeedIFRSingleEngine  bool `gorm:"column:safety_pilot_need_ifr_single_engine;default:false"`
	SafetyPilotNeedIFRMultiEngine   bool `gorm:"column:safety_pilot_need_ifr_multi_engine;default:false"`
	SafetyPilotOfferVFRSingleEngine bool `gorm:"column:safety_pilot_offer_vfr_single_engine;default:false"`
	SafetyPilotOfferIFRSingleEngine bool `gorm:"column:safety_pilot_offer_ifr_single_engine;default:false"`
	SafetyPilotOfferIFRMultiEngine  bool `gorm:"column:safety_pilot_offer_ifr_multi_engine;default:false"`

	// Instructor
	InstructorNeedCFI                       bool `gorm:"column:instructor_need_cfi;default:false"`
	InstructorNeedInstrumentCFII            bool `gorm:"column:instructor_need_instrument_cfii;default:false"`
	InstructorNeedCommercialSingleEngine    bool `gorm:"column:instructor_need_commercial_single_engine;default:false"`
	InstructorNeedCommercialMultiEngineMEI  bool `gorm:"column:instructor_need_commercial_multi_engine_mei;default:false"`
	InstructorOfferCFI                      bool `gorm:"column:instructor_offer_cfi;default:false"`
	InstructorOfferInstrumentCFII           bool `gorm:"column:instructor_offer_instrument_cfii;default:false"`
	InstructorOfferCommercialSingleEngine   bool `gorm:"column:instructor_offer_commercial_single_engine;default:false"`
	InstructorOfferCommercialMultiEngineMEI bool `gorm:"column:instructor_offer_commercial_multi_engine_mei;default:false"`

	// Plane rental
	RentNeedSingleEngine  bool `gorm:"column:rent_need_single_engine;default:false"`
	RentNeedMultiEngine   bool `gorm:"column:rent_need_multi_engine;default:false"`
	RentOfferSingleEngine bool `gorm:"column:rent_offer_single_engine;default:false"`
	RentOfferMultiEngine  bool `gorm:"column:rent_offer_multi_engine;default:false"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	User        *User    `gorm:"foreignKey:UserID"`
	HomeAirport *Airport `gorm:"foreignKey:HomeAirportID;constraint:OnDelete:SET NULL"`
}

// TableName specifies the table name for GORM
func (PilotProfile) TableName() string {
	return "pilot_profiles"
}

func (p *PilotProfile) flag(c capability.Capability) *bool {
	switch c {
	case capability.PrivatePilot:
		return &p.PrivatePilot
	case capability.InstrumentRating:
		return &p.InstrumentRating
	case capability.CommercialSingleEngine:
		return &p.CommercialPilotSingleEngine
	case capability.InstructorCFI:
		return &p.FlightInstructorCFI
	case capability.InstructorCFII:
		return &p.FlightInstructorCFII
	case capability.CommercialMultiEngine:
		return &p.CommercialPilotMultiEngine
	case capability.InstructorMEI:
		return &p.FlightInstructorMultiEngineMEI
	case capability.SafetyPilotNeedVFRSingle:
		return &p.SafetyPilotNeedVFRSingleEngine
	case capability.SafetyPilotNeedIFRSingle:
		return &p.SafetyPilotNeedIFRSingleEngine
	case capability.SafetyPilotNeedIFRMulti:
		return &p.SafetyPilotNeedIFRMultiEngine
	case capability.SafetyPilotOfferVFRSingle:
		return &p.SafetyPilotOfferVFRSingleEngine
	case capability.SafetyPilotOfferIFRSingle:
		return &p.SafetyPilotOfferIFRSingleEngine
	case capability.SafetyPilotOfferIFRMulti:
		return &p.SafetyPilotOfferIFRMultiEngine
	case capability.InstructorNeedCFI:
		return &p.InstructorNeedCFI
	case capability.InstructorNeedCFII:
		return &p.InstructorNeedInstrumentCFII
	case capability.InstructorNeedCommercialSingle:
		return &p.InstructorNeedCommercialSingleEngine
	case capability.InstructorNeedCommercialMultiMEI:
		return &p.InstructorNeedCommercialMultiEngineMEI
	case capability.InstructorOfferCFI:
		return &p.InstructorOfferCFI
	case capability.InstructorOfferCFII:
		return &p.InstructorOfferInstrumentCFII
	case capability.InstructorOfferCommercialSingle:
		return &p.InstructorOfferCommercialSingleEngine
	case capability.InstructorOfferCommercialMultiMEI:
		return &p.InstructorOfferCommercialMultiEngineMEI
	case capability.RentNeedSingleEngine:
		return &p.RentNeedSingleEngine
	case capability.RentNeedMultiEngine:
		return &p.RentNeedMultiEngine
	case capability.RentOfferSingleEngine:
		return &p.RentOfferSingleEngine
	case capability.RentOfferMultiEngine:
		return &p.RentOfferMultiEngine
	}
	return nil
}

// Has reports whether the flag for c is set
func (p *PilotProfile) Has(c capability.Capability) bool {
	f := p.flag(c)
	return f != nil && *f
}

// SetCapability sets or clears one flag. Unknown capabilities are ignored.
func (p *PilotProfile) SetCapability(c capability.Capability, on bool) {
	if f := p.flag(c); f != nil {
		*f = on
	}
}

// Capabilities returns every flag currently set
func (p *PilotProfile) Capabilities() capability.Set {
	s := capability.NewSet()
	for _, c := range capability.All() {
		if p.Has(c) {
			s[c] = struct{}{}
		}
	}
	return s
}

// HomeState returns the state of the home airport, or "" when none is loaded
func (p *PilotProfile) HomeState() string {
	if p.HomeAirport == nil {
		return ""
	}
	return p.HomeAirport.State
}
