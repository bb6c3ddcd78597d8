package prompt

import (
	"github.com/erikgeiser/promptkit/confirmation"
	"github.com/erikgeiser/promptkit/textinput"
)

// ReadStringFromUser can be used to read any value from the user or the defaultValue when provided.
func ReadStringFromUser(message string, defaultValue string) string {
	input := textinput.New(message)
	input.Placeholder = defaultValue
	input.InitialValue = defaultValue

	result, err := input.RunPrompt()
	if err != nil {
		panic(err)
	}
	return result
}

// AskUserToConfirm will prompt the user to confirm with the provided message.
func AskUserToConfirm(message string) bool {
	input := confirmation.New(message, confirmation.No)
	result, err := input.RunPrompt()
	return err == nil && result
}
