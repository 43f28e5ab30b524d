package refiner

import "fmt"

// DefaultRecipient greets the site owner in offline fallbacks.
const DefaultRecipient = "Shyam"

const fallbackTemplate = "Dear %s,\n\nI hope this message finds you well. %s\n\n" +
	"I would greatly appreciate the opportunity to discuss this further at your earliest convenience.\n\nBest regards"

// Fallback wraps the draft in a fixed greeting and closing. It is shown in
// place of a remote result whenever the refine call fails.
func Fallback(draft, recipient string) string {
	if recipient == "" {
		recipient = DefaultRecipient
	}
	return fmt.Sprintf(fallbackTemplate, recipient, draft)
}
