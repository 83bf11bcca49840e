// Package domain defines the persistent contact and membership records, the
// auxiliary note/alert/lookup rows that reference them, and the value types
// shared by the repositories that read and write them.
package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Collection identifies a persisted JSON document holding one entity list.
type Collection string

// Known collections. The value is the document name under the data root.
const (
	CollectionContacts       Collection = "contacts.json"
	CollectionMembers        Collection = "members.json"
	CollectionContactNotes   Collection = "contact-notes.json"
	CollectionMemberNotes    Collection = "member-notes.json"
	CollectionAlerts         Collection = "alerts.json"
	CollectionAlertTypes     Collection = "alert-type.json"
	CollectionSmsTemplates   Collection = "sms-templates.json"
	CollectionEmailTemplates Collection = "email-templates.json"
	CollectionStaff          Collection = "staff.json"
	CollectionLegal          Collection = "legal.json"
	CollectionOrganisations  Collection = "organisations.json"
	CollectionEstimating     Collection = "estimating.json"
	CollectionRegions        Collection = "regions.json"
	CollectionCategories     Collection = "category.json"
	CollectionClasses        Collection = "class.json"
	CollectionPaymentMethods Collection = "payment-method.json"
)

// UnknownCompany is the business name shown for contacts whose member
// reference cannot be resolved.
const UnknownCompany = "Unknown Company"

// Contact is a person attached (optionally) to a member business.
type Contact struct {
	ID            int    `json:"id"`
	Active        bool   `json:"active"`
	FirstName     string `json:"firstName"`
	Surname       string `json:"surname"`
	Name          string `json:"name"` // legacy single-field name
	PreferredName string `json:"preferredName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	// MemberID holds the owning member's numeric Id as text.
	MemberID string `json:"memberId"`
	// BusinessName is resolved from the members collection at read time and
	// is cleared before the contact is written back.
	BusinessName string `json:"businessName,omitempty"`

	Pronounced      string `json:"pronounced,omitempty"`
	JobRole         string `json:"jobRole,omitempty"`
	EmailSubscribed bool   `json:"emailSubscribed"`
	Spouse          string `json:"spouse,omitempty"`
	Children        string `json:"children,omitempty"`
	Birthday        string `json:"birthday,omitempty"` // kept verbatim, e.g. "09/03/1980"
	Drink           string `json:"drink,omitempty"`
	Tools           string `json:"tools,omitempty"`
	Vehicle         string `json:"vehicle,omitempty"`
	Hobbies         string `json:"hobbies,omitempty"`
	Other           string `json:"other,omitempty"`
	Avatar          string `json:"avatar,omitempty"`

	PortalAccess        bool `json:"portalAccess"`
	BusinessDetails     bool `json:"businessDetails"`
	ContactsPermissions bool `json:"contactsPermissions"`
	MemberSubscription  bool `json:"memberSubscription"`
	InvoiceHistory      bool `json:"invoiceHistory"`
}

// NewContact returns a contact carrying the defaults new records start with.
func NewContact() Contact {
	return Contact{
		Active:              true,
		EmailSubscribed:     true,
		PortalAccess:        true,
		BusinessDetails:     true,
		ContactsPermissions: true,
		MemberSubscription:  true,
		InvoiceHistory:      true,
	}
}

// UnmarshalJSON decodes c on top of the NewContact defaults, so rows written
// before the flag fields existed keep them switched on.
func (c *Contact) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	type plain Contact
	decoded := plain(NewContact())
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*c = Contact(decoded)
	return nil
}

// DisplayName returns PreferredName when set, otherwise "FirstName Surname",
// otherwise the legacy Name.
func (c Contact) DisplayName() string {
	if strings.TrimSpace(c.PreferredName) != "" {
		return c.PreferredName
	}
	full := strings.TrimSpace(c.FirstName + " " + c.Surname)
	if full != "" {
		return full
	}
	return c.Name
}

// GetID returns the record id.
func (c Contact) GetID() int { return c.ID }

// SetID assigns the record id.
func (c *Contact) SetID(id int) { c.ID = id }

// Member is a business holding a membership.
type Member struct {
	ID                   int    `json:"id"`
	Active               bool   `json:"active"`
	MemberID             string `json:"memberId"`
	LegacyMemberID       string `json:"legacyMemberID,omitempty"`
	BusinessName         string `json:"businessName"`
	LegalName            string `json:"legalName,omitempty"`
	Phone                string `json:"phone"`
	Email                string `json:"email"`
	PrimaryContactID     int    `json:"primaryContactId,omitempty"`
	RelationshipManager  int    `json:"relationshipManager,omitempty"`
	EmailSubscribed      bool   `json:"emailSubscribed"`
	LegalStructure       int    `json:"legalStructure,omitempty"`
	ABN                  string `json:"abn,omitempty"`
	BuildingOrganisation int    `json:"buildingOrganisation,omitempty"`
	LicenceNumber        string `json:"licenceNumber,omitempty"`
	EstimatingPackage    int    `json:"estimatingPackage,omitempty"`
	Regions              []int  `json:"regions"`

	BusinessAddress  string `json:"businessAddress,omitempty"`
	BusinessAddress2 string `json:"businessAddress2,omitempty"`
	BusinessCity     string `json:"businessCity,omitempty"`
	BusinessState    string `json:"businessState,omitempty"`
	BusinessPostCode string `json:"businessPostCode,omitempty"`

	PostalAddress  string `json:"postalAddress,omitempty"`
	PostalAddress2 string `json:"postalAddress2,omitempty"`
	PostalCity     string `json:"postalCity,omitempty"`
	PostalState    string `json:"postalState,omitempty"`
	PostalPostCode string `json:"postalPostCode,omitempty"`

	Website   string `json:"website,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Tiktok    string `json:"tiktok,omitempty"`
	X         string `json:"x,omitempty"`

	ReferredBy      int     `json:"referredBy,omitempty"`
	Category        int     `json:"category,omitempty"`
	Class           int     `json:"class,omitempty"`
	MembershipStart string  `json:"membershipStart,omitempty"`
	MembershipEnd   string  `json:"membershipEnd,omitempty"`
	MembershipValue float64 `json:"membershipValue,omitempty"`
	PaymentMethod   int     `json:"paymentMethod,omitempty"`
}

// GetID returns the record id.
func (m Member) GetID() int { return m.ID }

// SetID assigns the record id.
func (m *Member) SetID(id int) { m.ID = id }

// MarshalJSON writes a nil Regions list as [].
func (m Member) MarshalJSON() ([]byte, error) {
	type plain Member
	out := plain(m)
	if out.Regions == nil {
		out.Regions = []int{}
	}
	return json.Marshal(out)
}

// ContactNote is an append-only note attached to a contact.
type ContactNote struct {
	ID        int       `json:"id"`
	ContactID int       `json:"contactId"`
	Content   string    `json:"content"`
	Timestamp Timestamp `json:"timestamp"`
	StaffName string    `json:"staffName"`
}

// MemberNote is an append-only note attached to a member.
type MemberNote struct {
	ID        int       `json:"id"`
	MemberID  int       `json:"memberId"`
	Content   string    `json:"content"`
	Timestamp Timestamp `json:"timestamp"`
	StaffName string    `json:"staffName"`
}

// MemberAlert flags a member with a time-bounded alert.
type MemberAlert struct {
	ID        int    `json:"id"`
	Status    string `json:"status"`
	MemberID  int    `json:"memberId"`
	Alert     string `json:"alert"`
	Start     string `json:"start"`
	End       string `json:"end"`
	AlertType int    `json:"alertType"`
}

// SmsTemplate is a reusable SMS body.
type SmsTemplate struct {
	ID              int    `json:"id"`
	TemplateName    string `json:"templateName"`
	SendFrom        string `json:"sendFrom"`
	TemplateContent string `json:"templateContent"`
	Section         string `json:"section"`
}

// EmailTemplate is a reusable email body.
type EmailTemplate struct {
	ID              int    `json:"id"`
	TemplateName    string `json:"templateName"`
	SendFrom        string `json:"sendFrom"`
	Subject         string `json:"subject"`
	TemplateContent string `json:"templateContent"`
	Section         string `json:"section"`
}
