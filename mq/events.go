package mq

import (
	"CasaFacil/models"
	"time"
)

type PropertyEvent struct {
	PropertyID string          `json:"propertyId"`
	OwnerID    string          `json:"ownerId"`
	Property   models.Property `json:"property"`
	OccurredAt time.Time       `json:"occurredAt"`
}

func NewPropertyEvent(p models.Property) PropertyEvent {
	return PropertyEvent{
		PropertyID: p.ID,
		OwnerID:    p.OwnerID,
		Property:   p,
		OccurredAt: time.Now().UTC(),
	}
}
