package domain

import "time"

// Project is a catalog entry. It is storage-agnostic and used across
// repository, service and HTTP layers.
type Project struct {
	ID                  string                 `json:"id"`
	Title               string                 `json:"title"`
	Description         *string                `json:"description"`
	DetailedDescription *string                `json:"detailed_description"`
	Category            *string                `json:"category"`
	Status              Status                 `json:"status"`
	Tags                []string               `json:"tags"`
	TechStack           []string               `json:"tech_stack"`
	Metrics             map[string]interface{} `json:"metrics"`
	ImagePath           *string                `json:"image_path"`
	ImageURL            *string                `json:"image_url"`
	CreatedBy           *string                `json:"created_by"`
	CreatedAt           time.Time              `json:"created_date"`
	UpdatedAt           time.Time              `json:"updated_date"`
}

// HasImage reports whether the project currently references a stored image.
func (p *Project) HasImage() bool {
	return p.ImageURL != nil && *p.ImageURL != ""
}

// SetImage records a stored object, or clears the image when key and url are empty.
func (p *Project) SetImage(key, url string) {
	if url == "" {
		p.ImagePath = nil
		p.ImageURL = nil
		return
	}
	p.ImagePath = &key
	p.ImageURL = &url
}
