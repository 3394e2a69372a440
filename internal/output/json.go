package output

import "fmt"

// Exit codes. Every failure, whatever its kind, exits with ExitError.
const (
	ExitOK    = 0
	ExitError = 1
)

// ErrorResult is the only shape written on failure.
type ErrorResult struct {
	Error string `json:"error"`
}

// WriteError writes {"error": "<message>"} for err.
func (w *Writer) WriteError(err error) error {
	if encErr := w.WriteJSON(ErrorResult{Error: err.Error()}); encErr != nil {
		return fmt.Errorf("could not encode JSON error: %w", encErr)
	}
	return nil
}
