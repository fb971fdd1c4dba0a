package model

type Customer struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Points    int    `json:"points"`
	Visits    int    `json:"visits"`
	// LastVisit is a calendar date in YYYY-MM-DD form.
	LastVisit string `json:"lastVisit"`
	Address   string `json:"address"`
}
