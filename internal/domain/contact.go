package domain

import (
	"fmt"

	"github.com/google/uuid"
)

type ContactType string

const (
	ContactEmergency ContactType = "emergency"
	ContactProvider  ContactType = "provider"
)

// DefaultRelationship labels emergency contacts whose relationship is unset.
const DefaultRelationship = "Contact"

// PhoneNumber is the split phone representation used on the wire.
type PhoneNumber struct {
	InternationalPrefix int   `json:"internationalPrefix"`
	Number              int64 `json:"number"`
}

func (p PhoneNumber) String() string {
	if p.Number == 0 {
		return ""
	}
	if p.InternationalPrefix == 0 {
		return fmt.Sprintf("%d", p.Number)
	}
	return fmt.Sprintf("+%d %d", p.InternationalPrefix, p.Number)
}

// ContactRecord is one entry of the GET /contacts response. Providers and
// emergency contacts share the list; ID and Relationship may be null.
type ContactRecord struct {
	ID           *string      `json:"id"`
	Type         ContactType  `json:"type"`
	Name         string       `json:"name"`
	Relationship *string      `json:"relationship"`
	Phone        *PhoneNumber `json:"phone,omitempty"`
}

// Contact is the display form of an emergency contact.
type Contact struct {
	ID           string
	Name         string
	Relationship string
	Phone        string
}

// EmergencyContacts keeps only emergency records. Records without an ID get
// a freshly generated one; a missing relationship becomes DefaultRelationship.
func EmergencyContacts(records []ContactRecord) []Contact {
	out := make([]Contact, 0, len(records))
	for _, r := range records {
		if r.Type != ContactEmergency {
			continue
		}
		c := Contact{
			Name:         r.Name,
			Relationship: DefaultRelationship,
		}
		if r.ID != nil && *r.ID != "" {
			c.ID = *r.ID
		} else {
			c.ID = "contact-" + uuid.New().String()
		}
		if r.Relationship != nil {
			c.Relationship = CoalesceStr(*r.Relationship, DefaultRelationship)
		}
		if r.Phone != nil {
			c.Phone = r.Phone.String()
		}
		out = append(out, c)
	}
	return out
}
