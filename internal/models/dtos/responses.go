package dtos

import (
	"time"

	"pilotconnect/internal/capability"
	models "pilotconnect/internal/models/gorm"
)

// --- Controller endpoints ----

type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ResponseTime string `json:"response_time"`
	Data         any    `json:"data,omitempty"`
}

type HealthResponse struct {
	Status   string            `json:"status"`
	UpSince  time.Time         `json:"up_since"`
	Uptime   string            `json:"uptime"`
	Services map[string]string `json:"services"`
}

type TokenResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type AirportResponse struct {
	ID          uint    `json:"id"`
	ICAO        string  `json:"icao"`
	IATA        string  `json:"iata"`
	Name        string  `json:"name"`
	CountryCode string  `json:"country_code"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

type ProfileResponse struct {
	UserID         uint                `json:"user_id"`
	Username       string              `json:"username"`
	HomeAirport    *AirportResponse    `json:"home_airport"`
	FlightHours    int                 `json:"flight_hours"`
	LastActivityAt *time.Time          `json:"last_activity_at"`
	Comments       *string             `json:"comments"`
	Capabilities   map[string][]string `json:"capabilities"`
}

type MessageResponse struct {
	ID        uint          `json:"id"`
	Sender    *UserResponse `json:"sender,omitempty"`
	Recipient *UserResponse `json:"recipient,omitempty"`
	Subject   string        `json:"subject"`
	Content   string        `json:"content"`
	Timestamp time.Time     `json:"timestamp"`
}

type EventResponse struct {
	ID               uint             `json:"id"`
	Host             *UserResponse    `json:"host,omitempty"`
	EventName        string           `json:"event_name"`
	EventStartDate   string           `json:"event_start_date"`
	EventFinishDate  string           `json:"event_finish_date"`
	HostAirport      *AirportResponse `json:"host_airport"`
	SecondAirport    *AirportResponse `json:"second_airport"`
	ThirdAirport     *AirportResponse `json:"third_airport"`
	EventDescription string           `json:"event_description"`
}

type PredicateResponse struct {
	Name         string   `json:"name"`
	Capabilities []string `json:"capabilities"`
}

type MatchResponse struct {
	Predicate string            `json:"predicate"`
	Scope     string            `json:"scope"`
	Pilots    []ProfileResponse `json:"pilots"`
}

const DateLayout = "2006-01-02"

func NewUserResponse(u *models.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{ID: u.ID, Username: u.Username}
}

func NewAirportResponse(a *models.Airport) *AirportResponse {
	if a == nil {
		return nil
	}
	return &AirportResponse{
		ID:          a.ID,
		ICAO:        a.ICAO,
		IATA:        a.IATA,
		Name:        a.Name,
		CountryCode: a.CountryCode,
		City:        a.City,
		State:       a.State,
		Latitude:    a.Latitude,
		Longitude:   a.Longitude,
	}
}

func NewAirportList(airports []models.Airport) []AirportResponse {
	out := make([]AirportResponse, 0, len(airports))
	for i := range airports {
		out = append(out, *NewAirportResponse(&airports[i]))
	}
	return out
}

// NewProfileResponse groups the set capabilities by category; every category
// is present, possibly empty
func NewProfileResponse(p *models.PilotProfile) ProfileResponse {
	caps := make(map[string][]string, len(capability.Categories))
	for _, cat := range capability.Categories {
		names := []string{}
		for _, c := range capability.InCategory(cat) {
			if p.Has(c) {
				names = append(names, c.String())
			}
		}
		caps[string(cat)] = names
	}

	resp := ProfileResponse{
		UserID:         p.UserID,
		HomeAirport:    NewAirportResponse(p.HomeAirport),
		FlightHours:    p.FlightHours,
		LastActivityAt: p.LastActivityAt,
		Comments:       p.Comments,
		Capabilities:   caps,
	}
	if p.User != nil {
		resp.Username = p.User.Username
	}
	return resp
}

func NewProfileList(profiles []models.PilotProfile) []ProfileResponse {
	out := make([]ProfileResponse, 0, len(profiles))
	for i := range profiles {
		out = append(out, NewProfileResponse(&profiles[i]))
	}
	return out
}

func NewMessageResponse(m *models.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		Sender:    NewUserResponse(m.Sender),
		Recipient: NewUserResponse(m.Recipient),
		Subject:   m.Subject,
		Content:   m.Content,
		Timestamp: m.Timestamp,
	}
}

func NewMessageList(messages []models.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, NewMessageResponse(&messages[i]))
	}
	return out
}

func NewEventResponse(e *models.PilotEvent) EventResponse {
	return EventResponse{
		ID:               e.ID,
		Host:             NewUserResponse(e.Host),
		EventName:        e.EventName,
		EventStartDate:   e.EventStartDate.Format(DateLayout),
		EventFinishDate:  e.EventFinishDate.Format(DateLayout),
		HostAirport:      NewAirportResponse(e.HostAirport),
		SecondAirport:    NewAirportResponse(e.SecondAirport),
		ThirdAirport:     NewAirportResponse(e.ThirdAirport),
		EventDescription: e.EventDescription,
	}
}

func NewEventList(events []models.PilotEvent) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for i := range events {
		out = append(out, NewEventResponse(&events[i]))
	}
	return out
}
