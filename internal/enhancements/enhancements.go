// Package enhancements implements the interactive "ask the operator"
// dispatch the core Reverter has no opinion about. It is out of scope
// for the checkpoint/rollback facility itself; it exists only so a CLI
// command built on top of internal/reverter has somewhere to put a
// yes/no prompt instead of reaching for a global service-registry
// lookup.
package enhancements

import (
	"errors"
	"fmt"
)

// Enhancement identifies one of the supported interactive prompts.
type Enhancement string

// EnhancementRedirect asks whether HTTP should be redirected to HTTPS.
// It is the only enhancement recovered from the original dispatch table;
// others can be added as new Enhancement values plus a case in Ask.
const EnhancementRedirect Enhancement = "redirect"

// ErrUnsupportedEnhancement is returned by Ask for any Enhancement value
// with no registered handler.
var ErrUnsupportedEnhancement = errors.New("unsupported enhancement")

// Display is the capability an Ask caller must supply: a yes/no prompt
// with a title and the two choices to present.
type Display interface {
	Confirm(title string, choices [2]Choice) (bool, error)
}

// Choice is one option in a Confirm prompt: Label is shown to the
// operator, Selected reports whether picking it should make Confirm
// return true.
type Choice struct {
	Label    string
	Selected bool
}

// Ask presents the given enhancement's prompt through d and returns
// whether the operator chose the affirmative option. It returns
// ErrUnsupportedEnhancement for any Enhancement without a handler.
func Ask(d Display, enhancement Enhancement) (bool, error) {
	switch enhancement {
	case EnhancementRedirect:
		return redirectByDefault(d)
	default:
		return false, fmt.Errorf("%w: %q", ErrUnsupportedEnhancement, enhancement)
	}
}

func redirectByDefault(d Display) (bool, error) {
	return d.Confirm(
		"Please choose whether HTTPS access is required or optional.",
		[2]Choice{
			{Label: "Easy: allow both HTTP and HTTPS access to these sites", Selected: false},
			{Label: "Secure: make all requests redirect to secure HTTPS access", Selected: true},
		},
	)
}
