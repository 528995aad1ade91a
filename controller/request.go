package controller

import "cafeapi/model"

// AddCafeRequest carries the /add form fields. Amenity flags stay raw strings
// and go through model.ParseFlag.
type AddCafeRequest struct {
	Name        string  `form:"name"`
	MapURL      string  `form:"map_url"`
	ImgURL      string  `form:"img_url"`
	Location    string  `form:"loc"`
	Seats       string  `form:"seats"`
	Toilet      string  `form:"toilet"`
	Wifi        string  `form:"wifi"`
	Sockets     string  `form:"sockets"`
	Calls       string  `form:"calls"`
	CoffeePrice *string `form:"coffee_price"`
}

func (r AddCafeRequest) Cafe() model.Cafe {
	return model.Cafe{
		Name:         r.Name,
		MapURL:       r.MapURL,
		ImgURL:       r.ImgURL,
		Location:     r.Location,
		Seats:        r.Seats,
		HasToilet:    model.ParseFlag(r.Toilet),
		HasWifi:      model.ParseFlag(r.Wifi),
		HasSockets:   model.ParseFlag(r.Sockets),
		CanTakeCalls: model.ParseFlag(r.Calls),
		CoffeePrice:  r.CoffeePrice,
	}
}
