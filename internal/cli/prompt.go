package cli

import (
	"strings"

	"github.com/peterh/liner"
)

// promptConfirm asks on the terminal. Anything but y/yes, including ctrl+c,
// is a no.
func promptConfirm(question string) (bool, error) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	answer, err := line.Prompt(question + " (y/n): ")
	if err != nil {
		if err == liner.ErrPromptAborted {
			return false, nil
		}
		return false, err
	}

	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes", nil
}
