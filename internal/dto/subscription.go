package dto

import "strings"

type SubscribeDTO struct {
	Email         string   `json:"email" validate:"required,email,max=320"`
	Tags          []string `json:"tags,omitempty" validate:"max=20,dive,max=50"`
	JobTypes      []string `json:"job_types,omitempty" validate:"dive,oneof=full-time part-time contract internship"`
	LocationTypes []string `json:"location_types,omitempty" validate:"dive,oneof=remote onsite hybrid"`
}

type SubscribedDTO struct {
	Email     string `json:"email"`
	Confirmed bool   `json:"confirmed"`
}

func (d *SubscribeDTO) Normalize() {
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
}
