package domain

import "time"

// Labels are the three header regions of the board.
type Labels struct {
	Day  string `json:"day"`
	Date string `json:"date"`
	Time string `json:"time"`
}

// Row is one rendered departure line. Every field is display-ready text.
type Row struct {
	ScheduledTime string `json:"scheduled_time"`
	Origin        string `json:"origin"`
	Trip          string `json:"trip"`
	Destination   string `json:"destination"`
	Track         string `json:"track"`
	Status        string `json:"status"`
}

// Board is the explicit view model of what the viewer sees.
// UpdatedAt is zero until the first non-empty batch has been applied.
type Board struct {
	Labels    Labels    `json:"labels"`
	Rows      []Row     `json:"rows"`
	UpdatedAt time.Time `json:"updated_at"`
}
