// Package errors defines typed CLI errors with categories for user-friendly
// reporting. Library failures keep their own kinds; these cover what the
// command layer detects before any request is sent.
package errors

import "fmt"

// Kind is a machine-readable error category.
type Kind string

const (
	// ConfigInvalid indicates an unreadable config file or profile.
	ConfigInvalid Kind = "config_invalid"
	// MissingDataset indicates a dataset-scoped command without --dataset or profile dataset.
	MissingDataset Kind = "missing_dataset"
	// CredentialsUnavailable indicates the keychain could not be used.
	CredentialsUnavailable Kind = "credentials_unavailable"
	// BadInput indicates an unusable flag or argument value.
	BadInput Kind = "bad_input"
	// TaskFailed indicates a server task finished without success.
	TaskFailed Kind = "task_failed"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }
