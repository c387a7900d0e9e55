package dto

type RegisterRequest struct {
	Email       string     `json:"email"`
	Password    string     `json:"password"`
	Name        string     `json:"name,omitempty"`
	Course      string     `json:"course,omitempty"`
	Year        OpaqueText `json:"year,omitempty"`
	ContactInfo string     `json:"contactInfo,omitempty"`
}

type RegisterResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
