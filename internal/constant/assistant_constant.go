package constant

const (
	// Topic name for the in-process interaction event bus.
	RecordInteractionTopic = "RECORD_ASSISTANT_INTERACTION"

	// AnonymousUserID is used when a request carries no authenticated
	// identity.
	AnonymousUserID = "anonymous"
)

// Canned replies, keyed by intent tag. These are the generic answers for
// intents that do not go through the document search.
var GenericResponses = map[string]string{
	"payslip":    "You can view and download your payslips from the Payroll section of your dashboard. The latest payslip is usually available by the 5th of each month.",
	"leave":      "You can check your leave balance and apply for leave from the Leave section of your dashboard. Approvals go to your reporting manager.",
	"attendance": "Your attendance records, check-in and check-out times are available in the Attendance section of your dashboard.",
	"holiday":    "The holiday calendar for this year is published in the documents section. I can look it up for you if you ask about a specific holiday.",
	"contact":    "You can reach the HR team at hr@company.com or through the helpdesk. For urgent matters, contact your HR business partner directly.",
	"policy":     "Company policies are available in the documents section. Ask me about a specific policy and I'll find the right document.",
	"profile":    "You can view and update your personal details from the Profile section of your dashboard. Some changes need HR approval.",
}

const (
	NonHRResponse = "I'm an HR assistant, so that one's outside my area. I can help with leave, payslips, attendance, holidays, policies, and your profile."

	FallbackResponse = "I'm not sure I understood that. You can ask me about leave, payslips, attendance, holidays, company policies, or your profile."

	DocumentNotFoundResponse = "I couldn't find a document for that. You can ask HR directly, or try rephrasing your question."

	SuggestionPrompt = "Did you mean: \"%s\"? Reply yes or no."
)
