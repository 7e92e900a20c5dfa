package models

type Favorite struct {
	ID        string `json:"id,omitempty"`
	ProductID string `json:"productId"`
}

// Inquiry is a student message about a listing.
type Inquiry struct {
	ID            string `json:"id,omitempty"`
	PropertyID    string `json:"propertyId"`
	PropertyTitle string `json:"propertyTitle,omitempty"`
	SenderName    string `json:"senderName" validate:"required"`
	SenderEmail   string `json:"senderEmail" validate:"omitempty,email"`
	SenderPhone   string `json:"senderPhone,omitempty"`
	Message       string `json:"message" validate:"required"`
	Timestamp     string `json:"timestamp,omitempty"`
	Read          bool   `json:"read"`
}
