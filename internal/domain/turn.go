package domain

// TurnPayload is one inbound message from a user, already decoded by the
// transport gateway. Exactly one of Text, MediaID or Choice is expected to
// be set; validation of the combination is left to the consuming engine.
type TurnPayload struct {
	Text    string
	MediaID string
	Choice  string
}

func (t TurnPayload) HasMedia() bool { return t.MediaID != "" }

// Answer returns the textual answer of the turn, preferring an explicit
// button choice over free text.
func (t TurnPayload) Answer() string {
	if t.Choice != "" {
		return t.Choice
	}
	return t.Text
}
