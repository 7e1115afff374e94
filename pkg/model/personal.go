package model

// Personal field ids. They are addressed without a section prefix.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldMobile   = "mobile"
	FieldLinkedIn = "linkedin"
	FieldGitHub   = "github"
	FieldLocation = "location"
)

// PersonalFieldSpecs lists the contact block in form order.
func PersonalFieldSpecs() []FieldSpec {
	return []FieldSpec{
		{Key: FieldName, ID: FieldName, Label: "Full Name", Control: ControlInput},
		{Key: FieldEmail, ID: FieldEmail, Label: "Email", Control: ControlInput},
		{Key: FieldMobile, ID: FieldMobile, Label: "Mobile", Control: ControlInput},
		{Key: FieldLinkedIn, ID: FieldLinkedIn, Label: "LinkedIn URL", Control: ControlInput},
		{Key: FieldGitHub, ID: FieldGitHub, Label: "GitHub URL", Control: ControlInput},
		{Key: FieldLocation, ID: FieldLocation, Label: "Location", Control: ControlInput},
	}
}

// IsPersonalField reports whether id addresses the contact block.
func IsPersonalField(id string) bool {
	switch id {
	case FieldName, FieldEmail, FieldMobile, FieldLinkedIn, FieldGitHub, FieldLocation:
		return true
	default:
		return false
	}
}

// Get returns the contact value addressed by id.
func (p Personal) Get(id string) string {
	switch id {
	case FieldName:
		return p.Name
	case FieldEmail:
		return p.Email
	case FieldMobile:
		return p.Mobile
	case FieldLinkedIn:
		return p.LinkedIn
	case FieldGitHub:
		return p.GitHub
	case FieldLocation:
		return p.Location
	default:
		return ""
	}
}

// Set assigns the contact value addressed by id and reports whether id is known.
func (p *Personal) Set(id, value string) bool {
	switch id {
	case FieldName:
		p.Name = value
	case FieldEmail:
		p.Email = value
	case FieldMobile:
		p.Mobile = value
	case FieldLinkedIn:
		p.LinkedIn = value
	case FieldGitHub:
		p.GitHub = value
	case FieldLocation:
		p.Location = value
	default:
		return false
	}
	return true
}
