package types

import "errors"

// ErrConfiguration marks a run that cannot start or continue because of how it
// was set up: an unknown tokenizer mode, a missing stopword list, an unusable
// extractor chain. It is fatal for the whole run.
var ErrConfiguration = errors.New("configuration error")
