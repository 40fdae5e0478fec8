package errorx

import "fmt"

// Error is a value error carried across package boundaries. Comparing with
// errors.Is works because two Errors with the same code are the same error.
type Error struct {
	Code    int
	Message string
}

func (e Error) Error() string {
	return e.Message
}

func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	return ok && t.Code == e.Code
}

// Wrap attaches a detail message while keeping errors.Is(err, base) true.
func Wrap(base Error, msg string, a ...any) error {
	return fmt.Errorf("%w: %s", base, fmt.Sprintf(msg, a...))
}
