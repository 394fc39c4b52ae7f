package refcodec

import (
	"strings"

	"taskflow/internal/models"
)

// NoneLabel is rendered when a reference list resolves to nothing at
// all; unresolved individual references are simply dropped, never an
// error.
const NoneLabel = "None"

// Directory resolves identity references against the loaded user and
// contact collections for display.
type Directory struct {
	users    map[string]models.User
	contacts map[string]models.Contact
}

func NewDirectory(users []models.User, contacts []models.Contact) *Directory {
	d := &Directory{
		users:    make(map[string]models.User, len(users)),
		contacts: make(map[string]models.Contact, len(contacts)),
	}
	for _, u := range users {
		d.users[u.ID] = u
	}
	for _, c := range contacts {
		d.contacts[c.ID] = c
	}
	return d
}

// UserNames joins the display names of the referenced users. Unknown
// references are filtered out; an empty result becomes NoneLabel.
func (d *Directory) UserNames(ids []string) string {
	var names []string
	for _, id := range ids {
		if u, ok := d.users[strings.TrimSpace(id)]; ok && u.Name != "" {
			names = append(names, u.Name)
		}
	}
	if len(names) == 0 {
		return NoneLabel
	}
	return strings.Join(names, ", ")
}

// ContactNames joins the display names of the referenced contacts,
// with the same Unknown filtering as UserNames.
func (d *Directory) ContactNames(ids []string) string {
	var names []string
	for _, id := range ids {
		if c, ok := d.contacts[strings.TrimSpace(id)]; ok && c.Name != "" {
			names = append(names, c.Name)
		}
	}
	if len(names) == 0 {
		return NoneLabel
	}
	return strings.Join(names, ", ")
}

// UserPhones returns the non-empty phone numbers of the referenced
// users, in reference order.
func (d *Directory) UserPhones(ids []string) []string {
	var phones []string
	for _, id := range ids {
		if u, ok := d.users[strings.TrimSpace(id)]; ok && u.Phone != "" {
			phones = append(phones, u.Phone)
		}
	}
	return phones
}

// ContactPhones returns the non-empty phone numbers of the referenced
// contacts, in reference order.
func (d *Directory) ContactPhones(ids []string) []string {
	var phones []string
	for _, id := range ids {
		if c, ok := d.contacts[strings.TrimSpace(id)]; ok && c.Phone != "" {
			phones = append(phones, c.Phone)
		}
	}
	return phones
}
