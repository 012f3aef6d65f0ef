package email

// mailTemplates the named html templates rendered into outbound mail.
// Keys match notification.EmailRequest.Template.
const mailTemplates = `
{{define "question-reply"}}
<html>
<body style="font-family: Arial, sans-serif; color: #333333; margin: 0; padding: 0;">
	<div style="max-width: 600px; margin: 40px auto; padding: 24px; border: 1px solid #e0e0e0; border-radius: 8px;">
		<h3>Hello {{.name}},</h3>
		<p>Your question in <strong>{{.title}}</strong> has received a reply.</p>
		<p>Sign in to view the answer and continue the conversation.</p>
		<p style="font-size: 12px; color: #888888; margin-top: 24px;">
			You are receiving this email because you asked a question in this course.
		</p>
	</div>
</body>
</html>
{{end}}
`
