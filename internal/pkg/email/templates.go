package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// TemplateManager keeps parsed message templates.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	for name, body := range builtinTemplates {
		// Built-in templates are compile-time constants, parse errors
		// would be a programming bug.
		if err := tm.AddTemplate(name, body); err != nil {
			panic(err)
		}
	}
	return tm
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}

var builtinTemplates = map[string]string{
	"verification": `
<h2>Verify your email</h2>
<p>Hi {{.Name}},</p>
<p>Your verification code is <b>{{.Code}}</b>. It expires in 15 minutes.</p>`,

	"proposal_received": `
<h2>New proposal</h2>
<p>Hi {{.Name}},</p>
<p>{{.FreelancerName}} sent a proposal for <b>{{.JobTitle}}</b>.</p>`,

	"proposal_accepted": `
<h2>Your proposal was accepted</h2>
<p>Hi {{.Name}},</p>
<p>The client accepted your proposal for <b>{{.JobTitle}}</b>. Head over to your projects to get started.</p>`,

	"payment_receipt": `
<h2>Payment receipt</h2>
<p>Hi {{.Name}},</p>
<p>Your payment of {{.Amount}} {{.Currency}} was processed.</p>
<p>Reference: {{.Reference}}</p>`,

	"job_digest": `
<h2>Jobs picked for you</h2>
<p>Hi {{.Name}},</p>
<p>{{.Count}} new jobs match your profile:</p>
<ul>
{{range .Jobs}}<li><b>{{.Title}}</b>{{if .Company}} at {{.Company}}{{end}}</li>
{{end}}</ul>`,

	"broadcast": `
<p>{{.Body}}</p>
<p>— {{.Sender}}</p>`,
}
