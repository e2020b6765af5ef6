package usage

import "errors"

// ErrLimitReached indicates the user hit their daily or monthly conversion cap.
var ErrLimitReached = errors.New("conversion limit reached")
