package email

// Template names an HTML file under templates/emails.
type Template string

const (
	TemplateWelcome Template = "welcome"
)
