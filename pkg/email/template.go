package email

import (
	"bytes"
	"html/template"
)

const approvalTemplate = `
<html>
  <body>
    <p>Dear {{.FullName}},</p>
    <p>Your membership application has been approved.</p>
    <p>Your member number is <strong>{{.MemberID}}</strong>. Keep it with
    you when attending events; your membership card carries a code that can
    be scanned to verify it.</p>
    <p>Welcome aboard.</p>
  </body>
</html>
`

var approval = template.Must(template.New(string(EmailTemplateTypeApproval)).Parse(approvalTemplate))

type approvalData struct {
	FullName string
	MemberID string
}

func renderApproval(fullName, memberID string) (string, error) {
	var buf bytes.Buffer
	if err := approval.Execute(&buf, approvalData{FullName: fullName, MemberID: memberID}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
