package service

import "strings"

// PartnerDirectory maps supplier names to their WhatsApp recipients. The
// mapping is seeded from configuration; an unknown supplier falls back to the
// default procurement group.
type PartnerDirectory struct {
	byName         map[string]string
	defaultContact string
}

func NewPartnerDirectory(recipients map[string]string, defaultContact string) *PartnerDirectory {
	byName := make(map[string]string, len(recipients))
	for name, number := range recipients {
		byName[strings.ToLower(strings.TrimSpace(name))] = number
	}
	return &PartnerDirectory{byName: byName, defaultContact: defaultContact}
}

// Recipient returns the WhatsApp contact for a supplier, case-insensitively.
func (d *PartnerDirectory) Recipient(supplier string) string {
	if d == nil {
		return ""
	}
	if number, ok := d.byName[strings.ToLower(strings.TrimSpace(supplier))]; ok {
		return number
	}
	return d.defaultContact
}
