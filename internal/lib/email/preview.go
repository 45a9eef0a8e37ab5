package email

// PreviewData holds sample values for every template, keyed by template name.
// Tests render each template with it.
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"UserName": "Ada",
	},
}
