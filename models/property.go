package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

type PropertyType string

const (
	Apartment PropertyType = "apartment"
	House     PropertyType = "house"
	Hostel    PropertyType = "hostel"
	Room      PropertyType = "room"
	Shared    PropertyType = "shared"
)

var PropertyTypes = []PropertyType{Apartment, House, Hostel, Room, Shared}

type BoostTier string

const (
	BasicBoost   BoostTier = "basic"
	PremiumBoost BoostTier = "premium"
	EliteBoost   BoostTier = "elite"
)

type Availability string

const (
	Available Availability = "Available"
	Rented    Availability = "Rented"
)

// Contact is the landlord or agent attached to a listing.
type Contact struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
	Verified bool   `json:"verified"`
}

type Property struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Price          int64        `json:"price"`
	Location       string       `json:"location"`
	Type           PropertyType `json:"type"`
	Bedrooms       int          `json:"bedrooms"`
	Bathrooms      int          `json:"bathrooms"`
	Amenities      []string     `json:"amenities"`
	Images         []string     `json:"images"`
	Landlord       *Contact     `json:"landlord,omitempty"`
	Agent          *Contact     `json:"agent,omitempty"`
	Boosted        bool         `json:"isBoostingActive"`
	BoostTier      BoostTier    `json:"boostingTier,omitempty"`
	BoostExpiresAt string       `json:"boostingExpiresAt,omitempty"`
	SafetyRating   float64      `json:"safetyRating"`
	Reviews        int          `json:"reviews"`
	Availability   Availability `json:"availability"`
	OwnerEmail     string       `json:"ownerEmail,omitempty"`
	CreatedAt      time.Time    `json:"createdAt,omitempty"`
	UpdatedAt      time.Time    `json:"updatedAt,omitempty"`
}

// HasAmenity reports whether tag is listed on the property.
func (p Property) HasAmenity(tag string) bool {
	for _, a := range p.Amenities {
		if a == tag {
			return true
		}
	}
	return false
}

// Contact returns the agent when one is attached, otherwise the landlord.
func (p Property) Contact() *Contact {
	if p.Agent != nil && p.Agent.Phone != "" {
		return p.Agent
	}
	return p.Landlord
}

// UnmarshalJSON accepts both field conventions the backend has been seen
// to emit for the same product resource, so views only ever see one shape.
func (p *Property) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := Property{
		ID:             firstString(raw, "id", "_id"),
		Title:          firstString(raw, "title"),
		Description:    firstString(raw, "description"),
		Price:          int64(firstNumber(raw, "price", "rent")),
		Location:       firstString(raw, "location"),
		Type:           PropertyType(firstString(raw, "type", "propertyType")),
		Bedrooms:       int(firstNumber(raw, "bedrooms")),
		Bathrooms:      int(firstNumber(raw, "bathrooms")),
		Amenities:      firstStrings(raw, "amenities", "amnities"),
		Images:         firstStrings(raw, "images", "pictures"),
		BoostTier:      BoostTier(firstString(raw, "boostingTier", "boostType")),
		BoostExpiresAt: firstString(raw, "boostingExpiresAt"),
		SafetyRating:   clampRating(firstNumber(raw, "safetyRating", "rating")),
		Reviews:        int(firstNumber(raw, "reviews", "reviewCount")),
		Availability:   Availability(firstString(raw, "availability", "status")),
		OwnerEmail:     firstString(raw, "owneremail", "ownerEmail"),
	}

	if v, ok := raw["isBoostingActive"]; ok && !isNull(v) {
		_ = json.Unmarshal(v, &out.Boosted)
	} else if _, ok := raw["boost"]; ok {
		out.Boosted = firstNumber(raw, "boost") > 0
	}

	for key, dst := range map[string]**Contact{"landlord": &out.Landlord, "agent": &out.Agent} {
		v, ok := raw[key]
		if !ok || isNull(v) {
			continue
		}
		var c Contact
		if err := json.Unmarshal(v, &c); err == nil {
			*dst = &c
		}
	}

	for key, dst := range map[string]*time.Time{"createdAt": &out.CreatedAt, "updatedAt": &out.UpdatedAt} {
		if s := firstString(raw, key); s != "" {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				*dst = t
			}
		}
	}

	*p = out
	return nil
}

func isNull(v json.RawMessage) bool {
	return len(bytes.TrimSpace(v)) == 0 || string(bytes.TrimSpace(v)) == "null"
}

func firstString(raw map[string]json.RawMessage, keys ...string) string {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || isNull(v) {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			return s
		}
		var n json.Number
		if err := json.Unmarshal(v, &n); err == nil {
			return n.String()
		}
	}
	return ""
}

// firstNumber decodes the first present key as a number. Numeric strings
// are parsed; anything else that is not a finite number counts as 0.
func firstNumber(raw map[string]json.RawMessage, keys ...string) float64 {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || isNull(v) {
			continue
		}
		var f float64
		if err := json.Unmarshal(v, &f); err == nil {
			return f
		}
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
				return 0
			}
			return f
		}
		return 0
	}
	return 0
}

func firstStrings(raw map[string]json.RawMessage, keys ...string) []string {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || isNull(v) {
			continue
		}
		var list []string
		if err := json.Unmarshal(v, &list); err == nil {
			return list
		}
		// Some listings carry a comma-joined string instead of an array.
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			for _, part := range strings.Split(s, ",") {
				if part = strings.TrimSpace(part); part != "" {
					list = append(list, part)
				}
			}
			return list
		}
	}
	return nil
}

func clampRating(r float64) float64 {
	return math.Max(0, math.Min(5, r))
}

// ProductDraft is the create/update payload in the shape the backend
// accepts for products.
type ProductDraft struct {
	Title        string       `json:"title" validate:"required"`
	Type         PropertyType `json:"type" validate:"omitempty,oneof=apartment house hostel room shared"`
	Location     string       `json:"location" validate:"required"`
	Price        int64        `json:"rent" validate:"gte=0"`
	Bedrooms     int          `json:"bedrooms" validate:"gte=0"`
	Bathrooms    int          `json:"bathrooms,omitempty" validate:"gte=0"`
	Availability string       `json:"availability,omitempty"`
	Amenities    []string     `json:"amnities"`
	Boost        int          `json:"boost"`
	Description  string       `json:"description"`
	ContactInfo  string       `json:"contactinfo,omitempty"`
	Images       []string     `json:"pictures"`
	OwnerEmail   string       `json:"owneremail"`
}

// DraftFrom builds an edit draft from an existing listing.
func DraftFrom(p Property) ProductDraft {
	d := ProductDraft{
		Title:        p.Title,
		Type:         p.Type,
		Location:     p.Location,
		Price:        p.Price,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		Availability: string(p.Availability),
		Amenities:    p.Amenities,
		Description:  p.Description,
		Images:       p.Images,
		OwnerEmail:   p.OwnerEmail,
	}
	if p.Boosted {
		d.Boost = 1
	}
	return d
}
