package feed

import (
	"fmt"

	"github.com/kellnr/site-feed/model"
	"github.com/mmcdole/gofeed"
)

// VerifyError is returned when a rendered document does not read back as
// the feed it was rendered from.
type VerifyError struct {
	Reason string
	Err    error
}

func (e *VerifyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rendered feed failed verification: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("rendered feed failed verification: %s", e.Reason)
}

func (e *VerifyError) Unwrap() error { return e.Err }

// Verifier parses a rendered feed and compares it with its entries.
type Verifier struct {
	parser *gofeed.Parser
}

// NewVerifier creates a new Verifier.
func NewVerifier() *Verifier {
	return &Verifier{
		parser: gofeed.NewParser(),
	}
}

// Verify parses doc and checks that it is an Atom feed holding exactly the
// given entries in the same order.
func (v *Verifier) Verify(doc []byte, entries []model.FeedEntry) error {
	if len(doc) == 0 {
		return &VerifyError{Reason: "document is empty"}
	}

	parsed, err := v.parser.ParseString(string(doc))
	if err != nil {
		return &VerifyError{Reason: "document does not parse", Err: err}
	}

	if parsed.FeedType != "atom" {
		return &VerifyError{Reason: fmt.Sprintf("detected feed type %q, want atom", parsed.FeedType)}
	}

	if len(parsed.Items) != len(entries) {
		return &VerifyError{Reason: fmt.Sprintf("document has %d entries, want %d", len(parsed.Items), len(entries))}
	}

	for i, item := range parsed.Items {
		if item.GUID != entries[i].ID {
			return &VerifyError{Reason: fmt.Sprintf("entry %d has id %q, want %q", i, item.GUID, entries[i].ID)}
		}
	}

	return nil
}
