package requests

// DisplayOverride is accepted on PUT /display/override either as a JSON body or
// as query parameters (?debug=true&date=30.01.2026&time=09:30).
type DisplayOverride struct {
	Debug bool   `json:"debug"`
	Date  string `json:"date" validate:"omitempty,datetime=02.01.2006"`
	Time  string `json:"time" validate:"omitempty,time_of_day"`
}
