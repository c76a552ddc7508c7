package validation

import (
	"fmt"
	"strings"
)

// Custom text per "field.rule"; file rules are keyed "field.*.rule".
var caseMessages = map[string]string{
	"case_number.required":       "Case number is required.",
	"case_number.unique":         "This case number already exists.",
	"title.required":             "Case title is required.",
	"description.required":       "Case description is required.",
	"status.required":            "Case status is required.",
	"priority.required":          "Case priority is required.",
	"category.required":          "Case category is required.",
	"incident_date.date":         "Please provide a valid incident date.",
	"assigned_officer_id.exists": "Selected officer does not exist.",
	"evidence_files.*.file":      "Evidence files must be valid files.",
	"evidence_files.*.mimes":     "Evidence files must be PDF, DOC, DOCX, JPG, JPEG, PNG, or TXT files.",
	"evidence_files.*.max":       "Evidence files must not exceed 10MB.",
}

var personnelMessages = map[string]string{
	"badge_number.required":   "Badge number is required.",
	"badge_number.unique":     "This badge number already exists.",
	"first_name.required":     "First name is required.",
	"last_name.required":      "Last name is required.",
	"email.required":          "Email address is required.",
	"email.email":             "Please provide a valid email address.",
	"email.unique":            "This email is already registered.",
	"rank.required":           "Officer rank is required.",
	"department.required":     "Department is required.",
	"status.required":         "Employment status is required.",
	"hire_date.required":      "Hire date is required.",
	"hire_date.date":          "Please provide a valid hire date.",
	"birth_date.date":         "Please provide a valid birth date.",
	"birth_date.before_today": "Birth date must be before today.",
	"documents.*.file":        "Documents must be valid files.",
	"documents.*.mimes":       "Documents must be PDF, DOC, DOCX, JPG, JPEG, PNG, or TXT files.",
	"documents.*.max":         "Documents must not exceed 10MB.",
}

// message resolves the text for a violated rule, preferring the custom
// table and falling back to a generic sentence.
func message(custom map[string]string, field, rule, param string) string {
	if m, ok := custom[field+"."+rule]; ok {
		return m
	}

	name := strings.ReplaceAll(field, "_", " ")
	switch rule {
	case "required":
		return fmt.Sprintf("The %s field is required.", name)
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", name, param)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", name)
	case "date":
		return fmt.Sprintf("The %s field must be a valid date.", name)
	case "before_today":
		return fmt.Sprintf("The %s field must be a date before today.", name)
	case "unique":
		return fmt.Sprintf("The %s has already been taken.", name)
	case "number":
		return fmt.Sprintf("The %s field must be a number.", name)
	default:
		return fmt.Sprintf("The selected %s is invalid.", name)
	}
}
