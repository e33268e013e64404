package types

// CompanyEmail is one email thread from the target company.
type CompanyEmail struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	Sender  string `json:"sender"`
	Date    string `json:"date"`
	Content string `json:"content"`
}

// Contact is a person extracted from company correspondence.
type Contact struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	LastContact string `json:"last_contact"`
	Subject     string `json:"subject"`
}

// EmailInsight summarizes what the mailbox knows about the target company.
type EmailInsight struct {
	TotalEmails      int            `json:"total_emails"`
	InterviewRelated []CompanyEmail `json:"interview_related"`
	KeyInsights      []string       `json:"key_insights"`
	Contacts         []Contact      `json:"contacts"`
}

// Empty reports whether no email signal was found.
func (e *EmailInsight) Empty() bool {
	return e.TotalEmails == 0
}
