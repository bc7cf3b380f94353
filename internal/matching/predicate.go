package matching

import (
	"fmt"
	"strings"

	"pilotconnect/internal/capability"

	"gorm.io/gorm"
)

// Predicate is a named OR-group of capabilities. A profile matches when any
// of its flags is set. An empty group matches every profile.
type Predicate struct {
	Name         string                  `json:"name"`
	Capabilities []capability.Capability `json:"-"`
}

const (
	SafetyPilotNeed  = "safety-pilot-need"
	SafetyPilotOffer = "safety-pilot-offer"
	InstructorAny    = "instructor-any"
	InstructorNeed   = "instructor-need"
	InstructorOffer  = "instructor-offer"
	RentalNeed       = "rental-need"
	RentalOffer      = "rental-offer"
	Everyone         = "everyone"
)

var predicates = []Predicate{
	{SafetyPilotNeed, []capability.Capability{
		capability.SafetyPilotNeedVFRSingle,
		capability.SafetyPilotNeedIFRSingle,
		capability.SafetyPilotNeedIFRMulti,
	}},
	{SafetyPilotOffer, []capability.Capability{
		capability.SafetyPilotOfferVFRSingle,
		capability.SafetyPilotOfferIFRSingle,
		capability.SafetyPilotOfferIFRMulti,
	}},
	{InstructorAny, capability.InCategory(capability.CategoryInstructor)},
	{InstructorNeed, []capability.Capability{
		capability.InstructorNeedCFI,
		capability.InstructorNeedCFII,
		capability.InstructorNeedCommercialSingle,
		capability.InstructorNeedCommercialMultiMEI,
	}},
	{InstructorOffer, []capability.Capability{
		capability.InstructorOfferCFI,
		capability.InstructorOfferCFII,
		capability.InstructorOfferCommercialSingle,
		capability.InstructorOfferCommercialMultiMEI,
	}},
	{RentalNeed, []capability.Capability{
		capability.RentNeedSingleEngine,
		capability.RentNeedMultiEngine,
	}},
	{RentalOffer, []capability.Capability{
		capability.RentOfferSingleEngine,
		capability.RentOfferMultiEngine,
	}},
	{Everyone, nil},
}

// LookupPredicate finds a registered predicate by name
func LookupPredicate(name string) (Predicate, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, p := range predicates {
		if p.Name == name {
			return p, nil
		}
	}
	return Predicate{}, fmt.Errorf("unknown predicate %q", name)
}

// Predicates returns the registry in declaration order
func Predicates() []Predicate {
	out := make([]Predicate, len(predicates))
	copy(out, predicates)
	return out
}

// Matches evaluates the predicate against an in-memory capability set
func (p Predicate) Matches(caps capability.Set) bool {
	if len(p.Capabilities) == 0 {
		return true
	}
	return caps.Any(p.Capabilities...)
}

// condition builds the parenthesised OR-group on root, or nil for an empty group
func (p Predicate) condition(root *gorm.DB) *gorm.DB {
	if len(p.Capabilities) == 0 {
		return nil
	}

	cond := root.Where(flagColumn(p.Capabilities[0])+" = ?", true)
	for _, c := range p.Capabilities[1:] {
		cond = cond.Or(flagColumn(c)+" = ?", true)
	}
	return cond
}

func flagColumn(c capability.Capability) string {
	return "pilot_profiles." + c.Column()
}
