package dtos

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateProfileRequest carries only the fields being changed.
// Capabilities maps capability names to their new value.
type UpdateProfileRequest struct {
	HomeAirportID    *uint           `json:"home_airport_id,omitempty"`
	ClearHomeAirport bool            `json:"clear_home_airport,omitempty"`
	FlightHours      *int            `json:"flight_hours,omitempty"`
	Comments         *string         `json:"comments,omitempty"`
	Capabilities     map[string]bool `json:"capabilities,omitempty"`
}

type SendMessageRequest struct {
	RecipientID uint   `json:"recipient_id"`
	Subject     string `json:"subject"`
	Content     string `json:"content"`
}

// ReplyMessageRequest defaults the subject to "Re: <original>" when empty
type ReplyMessageRequest struct {
	Subject string `json:"subject"`
	Content string `json:"content"`
}

// EventRequest is used for both create and update; dates are YYYY-MM-DD
type EventRequest struct {
	EventName        string `json:"event_name"`
	EventStartDate   string `json:"event_start_date"`
	EventFinishDate  string `json:"event_finish_date"`
	HostAirportID    *uint  `json:"host_airport_id,omitempty"`
	SecondAirportID  *uint  `json:"second_airport_id,omitempty"`
	ThirdAirportID   *uint  `json:"third_airport_id,omitempty"`
	EventDescription string `json:"event_description"`
}
