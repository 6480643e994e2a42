package point

import (
	"slices"
	"strings"
)

// Destination is a place a point can lead to.
type Destination struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Photos      []string `json:"photos,omitempty"`
}

// Offer is an optional paid add-on available to some point types.
type Offer struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Price int    `json:"price"`
	Types []Type `json:"types"`
}

// AppliesTo reports whether the offer can be selected for t.
func (o Offer) AppliesTo(t Type) bool {
	return slices.Contains(o.Types, t)
}

// Catalog is read-only reference data shared by every presenter.
type Catalog struct {
	Destinations []Destination `json:"destinations"`
	Offers       []Offer       `json:"offers"`
}

// Destination looks up a destination by name, ignoring case.
func (c Catalog) Destination(name string) (Destination, bool) {
	name = strings.TrimSpace(name)
	for _, d := range c.Destinations {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return Destination{}, false
}

// Offer looks up an offer by id.
func (c Catalog) Offer(id string) (Offer, bool) {
	for _, o := range c.Offers {
		if o.ID == id {
			return o, true
		}
	}
	return Offer{}, false
}

// OffersFor returns the offers available for t in catalog order.
func (c Catalog) OffersFor(t Type) []Offer {
	var out []Offer
	for _, o := range c.Offers {
		if o.AppliesTo(t) {
			out = append(out, o)
		}
	}
	return out
}

// Cost is the point's base price plus its selected offers.
func (c Catalog) Cost(p Point) int {
	total := p.Price
	for _, id := range p.Offers {
		if o, ok := c.Offer(id); ok {
			total += o.Price
		}
	}
	return total
}

// Clone returns a deep copy.
func (c Catalog) Clone() Catalog {
	out := Catalog{
		Destinations: make([]Destination, len(c.Destinations)),
		Offers:       make([]Offer, len(c.Offers)),
	}
	for i, d := range c.Destinations {
		d.Photos = slices.Clone(d.Photos)
		out.Destinations[i] = d
	}
	for i, o := range c.Offers {
		o.Types = slices.Clone(o.Types)
		out.Offers[i] = o
	}
	return out
}
