package types

import "time"

type NavbarData struct {
	IsAuthenticated bool
	UserID          string
	UserEmail       string
}

type NavbarDataSetter interface {
	SetNavbarData(data NavbarData)
}

type BasePageData struct {
	Title  string
	Navbar NavbarData
}

func (d *BasePageData) SetNavbarData(data NavbarData) {
	d.Navbar = data
}

type HomePageData struct {
	BasePageData
	Notice string
	Error  string
}

type RegisterPageData struct {
	BasePageData
	GivenName   string
	FamilyName  string
	Email       string
	Error       string
	FieldErrors map[string]string
}

type ConfirmRegisterPageData struct {
	BasePageData
	Email string
	Error string
}

type OnboardingPageData struct {
	BasePageData
	Case       *CaseConfig
	Categories []VisaCategory
	Error      string
}

// ChecklistRow is one definition plus its linked uploads, rendered in the
// resolver's ordering contract.
type ChecklistRow struct {
	Definition DocumentDefinition
	Optional   bool
	Documents  []*CaseDocument
	// Expiry display for the current (highest) version, when it expires.
	ExpiresAt           *time.Time
	DaysUntilExpiration int
}

type ChecklistPageData struct {
	BasePageData
	Case     *CaseConfig
	Required []ChecklistRow
	Optional []ChecklistRow
	Stats    DocumentStats
	Notice   string
	Error    string
}

type NotificationsPageData struct {
	BasePageData
	Notifications []NotificationMessage
	SnoozedUntil  *time.Time
}

type NotificationSettingsPageData struct {
	BasePageData
	Preferences NotificationPreferences
	Notice      string
}
