package types

// TripSnapshot is the authoritative full view of a trip, served over the
// request/response path. Clients load it on (re)connect and then keep it
// current by merging bus events.
type TripSnapshot struct {
	Trip         *Trip          `json:"trip"`
	Participants []*Participant `json:"participants"`
	Expenses     []*Expense     `json:"expenses"`
	Activities   []*Activity    `json:"activities"`
	Tasks        []*Task        `json:"tasks"`
	Polls        []PollResponse `json:"polls"`
	Messages     []*Message     `json:"messages"`
}
