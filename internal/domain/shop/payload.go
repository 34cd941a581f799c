package shop

// UpdatePayload is a partial update for one barbershop aggregate. Every list
// is optional; items missing a required sub-field are skipped without error.
// Zero values count as missing, matching the platform's historical
// contract (a free service or a zero rating cannot be attached).
type UpdatePayload struct {
	Amenities []AmenityItem  `json:"amenities"`
	Services  []ServiceItem  `json:"services"`
	Hours     []HoursItem    `json:"hours"`
	Comments  []CommentItem  `json:"comments"`
	Favorites []FavoriteItem `json:"favorites"`
}

type AmenityItem struct {
	Name string `json:"name"`
}

func (it AmenityItem) Complete() bool { return it.Name != "" }

type ServiceItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func (it ServiceItem) Complete() bool { return it.Name != "" && it.Price != 0 }

type HoursItem struct {
	Day         string `json:"day"`
	OpeningTime string `json:"opening_time"`
	ClosingTime string `json:"closing_time"`
}

func (it HoursItem) Complete() bool {
	return it.Day != "" && it.OpeningTime != "" && it.ClosingTime != ""
}

type CommentItem struct {
	Text   string  `json:"text"`
	Rating float64 `json:"rating"`
	Type   string  `json:"type"`
}

func (it CommentItem) Complete() bool {
	return it.Text != "" && it.Rating != 0 && it.Type != ""
}

type FavoriteItem struct {
	ID uint `json:"id"`
}
