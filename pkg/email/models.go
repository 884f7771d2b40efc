package email

type EmailTemplateType string

const (
	SMTPHost      = "smtp.gmail.com"
	SMTPPort      = 587
	FromEmail     = "membership@asbbic.org"
	FromEmailName = "ASBBIC Membership"

	EmailTemplateTypeApproval EmailTemplateType = "approval"
)

type SendEmailInput struct {
	To      string
	Subject string
	Body    string
}
