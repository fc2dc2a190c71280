package notification

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// EmailTemplate is one subject/body pair. Placeholders use
// {{name}} syntax and are substituted verbatim.
type EmailTemplate struct {
	Subject string `yaml:"subject"`
	Body    string `yaml:"body"`
}

// Render substitutes vars into subject and body.
func (t EmailTemplate) Render(vars map[string]string) (string, string) {
	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "{{"+name+"}}", value)
	}
	replacer := strings.NewReplacer(pairs...)
	return replacer.Replace(t.Subject), replacer.Replace(t.Body)
}

// Templates holds the full outbound template set. Pre-interview and
// post-interview rejections are distinct templates on purpose.
type Templates struct {
	Acceptance             EmailTemplate `yaml:"acceptance"`
	Rejection              EmailTemplate `yaml:"rejection"`
	PostInterviewRejection EmailTemplate `yaml:"post_interview_rejection"`
	Hired                  EmailTemplate `yaml:"hired"`
}

// DefaultTemplates returns the built-in template set, used when no
// template file is configured.
func DefaultTemplates() *Templates {
	return &Templates{
		Acceptance: EmailTemplate{
			Subject: "Interview scheduled for {{job_title}}",
			Body:    "Your application for {{job_title}} has been accepted. Your interview is scheduled for {{interview_date}}.",
		},
		Rejection: EmailTemplate{
			Subject: "Update on your application for {{job_title}}",
			Body:    "Your application for {{job_title}} was not selected. {{reason}}",
		},
		PostInterviewRejection: EmailTemplate{
			Subject: "Interview outcome for {{job_title}}",
			Body:    "Thank you for interviewing for {{job_title}}. We have decided not to move forward. {{reason}}",
		},
		Hired: EmailTemplate{
			Subject: "Offer for {{job_title}}",
			Body:    "Congratulations! {{employer_name}} has hired you for {{job_title}}.",
		},
	}
}

// LoadTemplates reads a yaml template file. Templates missing from
// the file keep their built-in defaults.
func LoadTemplates(path string) (*Templates, error) {
	templates := DefaultTemplates()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, templates); err != nil {
		return nil, err
	}
	return templates, nil
}
