package capability

import (
	"fmt"
	"strings"
)

// Category groups capabilities the way the profile form presents them
type Category string

const (
	CategoryCertifications Category = "certifications"
	CategorySafetyPilot    Category = "safety_pilot"
	CategoryInstructor     Category = "instructor"
	CategoryPlaneRental    Category = "plane_rental"
)

// Categories in display order
var Categories = []Category{
	CategoryCertifications,
	CategorySafetyPilot,
	CategoryInstructor,
	CategoryPlaneRental,
}

// Capability is a single rating, need or offer a pilot can set on their profile.
// Each one is backed by a boolean column on pilot_profiles.
type Capability int

const (
	PrivatePilot Capability = iota
	InstrumentRating
	CommercialSingleEngine
	InstructorCFI
	InstructorCFII
	CommercialMultiEngine
	InstructorMEI

	SafetyPilotNeedVFRSingle
	SafetyPilotNeedIFRSingle
	SafetyPilotNeedIFRMulti
	SafetyPilotOfferVFRSingle
	SafetyPilotOfferIFRSingle
	SafetyPilotOfferIFRMulti

	InstructorNeedCFI
	InstructorNeedCFII
	InstructorNeedCommercialSingle
	InstructorNeedCommercialMultiMEI
	InstructorOfferCFI
	InstructorOfferCFII
	InstructorOfferCommercialSingle
	InstructorOfferCommercialMultiMEI

	RentNeedSingleEngine
	RentNeedMultiEngine
	RentOfferSingleEngine
	RentOfferMultiEngine

	count
)

type info struct {
	name     string
	category Category
}

// name doubles as the pilot_profiles column name
var registry = [count]info{
	PrivatePilot:           {"private_pilot", CategoryCertifications},
	InstrumentRating:       {"instrument_rating", CategoryCertifications},
	CommercialSingleEngine: {"commercial_pilot_single_engine", CategoryCertifications},
	InstructorCFI:          {"flight_instructor_cfi", CategoryCertifications},
	InstructorCFII:         {"flight_instructor_cfii", CategoryCertifications},
	CommercialMultiEngine:  {"commercial_pilot_multi_engine", CategoryCertifications},
	InstructorMEI:          {"flight_instructor_multi_engine_mei", CategoryCertifications},

	SafetyPilotNeedVFRSingle:  {"safety_pilot_need_vfr_single_engine", CategorySafetyPilot},
	SafetyPilotNeedIFRSingle:  {"safety_pilot_need_ifr_single_engine", CategorySafetyPilot},
	SafetyPilotNeedIFRMulti:   {"safety_pilot_need_ifr_multi_engine", CategorySafetyPilot},
	SafetyPilotOfferVFRSingle: {"safety_pilot_offer_vfr_single_engine", CategorySafetyPilot},
	SafetyPilotOfferIFRSingle: {"safety_pilot_offer_ifr_single_engine", CategorySafetyPilot},
	SafetyPilotOfferIFRMulti:  {"safety_pilot_offer_ifr_multi_engine", CategorySafetyPilot},

	InstructorNeedCFI:                 {"instructor_need_cfi", CategoryInstructor},
	InstructorNeedCFII:                {"instructor_need_instrument_cfii", CategoryInstructor},
	InstructorNeedCommercialSingle:    {"instructor_need_commercial_single_engine", CategoryInstructor},
	InstructorNeedCommercialMultiMEI:  {"instructor_need_commercial_multi_engine_mei", CategoryInstructor},
	InstructorOfferCFI:                {"instructor_offer_cfi", CategoryInstructor},
	InstructorOfferCFII:               {"instructor_offer_instrument_cfii", CategoryInstructor},
	InstructorOfferCommercialSingle:   {"instructor_offer_commercial_single_engine", CategoryInstructor},
	InstructorOfferCommercialMultiMEI: {"instructor_offer_commercial_multi_engine_mei", CategoryInstructor},

	RentNeedSingleEngine:  {"rent_need_single_engine", CategoryPlaneRental},
	RentNeedMultiEngine:   {"rent_need_multi_engine", CategoryPlaneRental},
	RentOfferSingleEngine: {"rent_offer_single_engine", CategoryPlaneRental},
	RentOfferMultiEngine:  {"rent_offer_multi_engine", CategoryPlaneRental},
}

var byName = func() map[string]Capability {
	m := make(map[string]Capability, count)
	for c := Capability(0); c < count; c++ {
		m[registry[c].name] = c
	}
	return m
}()

func (c Capability) Valid() bool { return c >= 0 && c < count }

func (c Capability) String() string {
	if !c.Valid() {
		return fmt.Sprintf("capability(%d)", int(c))
	}
	return registry[c].name
}

// Column returns the pilot_profiles column backing c
func (c Capability) Column() string { return c.String() }

func (c Capability) Category() Category {
	if !c.Valid() {
		return ""
	}
	return registry[c].category
}

// Parse resolves a capability from its name, ignoring case and surrounding space
func Parse(name string) (Capability, error) {
	c, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown capability %q", name)
	}
	return c, nil
}

// All returns every capability in declaration order
func All() []Capability {
	out := make([]Capability, 0, count)
	for c := Capability(0); c < count; c++ {
		out = append(out, c)
	}
	return out
}

// InCategory returns the capabilities of one category in declaration order
func InCategory(cat Category) []Capability {
	var out []Capability
	for c := Capability(0); c < count; c++ {
		if registry[c].category == cat {
			out = append(out, c)
		}
	}
	return out
}

// Set is an unordered collection of capabilities
type Set map[Capability]struct{}

func NewSet(caps ...Capability) Set {
	s := make(Set, len(caps))
	for _, c := range caps {
		s[c] = struct{}{}
	}
	return s
}

func (s Set) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

// Any reports whether s holds at least one of caps
func (s Set) Any(caps ...Capability) bool {
	for _, c := range caps {
		if s.Has(c) {
			return true
		}
	}
	return false
}
