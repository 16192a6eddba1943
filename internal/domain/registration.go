package domain

// Step is one state of the registration questionnaire. Steps are linear:
// Name -> Age -> Gender -> Photo -> Interests, then the draft is committed.
type Step string

const (
	StepName      Step = "name"
	StepAge       Step = "age"
	StepGender    Step = "gender"
	StepPhoto     Step = "photo"
	StepInterests Step = "interests"
)

// ProfileDraft holds the fields collected so far.
type ProfileDraft struct {
	Name      string   `json:"name"`
	Age       int      `json:"age"`
	Gender    string   `json:"gender"`
	Media     []string `json:"media"`
	Interests []string `json:"interests"`
}

// RegistrationSession is the in-flight questionnaire state for one user.
// It is ephemeral: committed or cancelled sessions are deleted, and losing
// the store loses only uncommitted answers.
type RegistrationSession struct {
	UserID int64        `json:"user_id"`
	Step   Step         `json:"step"`
	Draft  ProfileDraft `json:"draft"`
}

func NewRegistrationSession(userID int64) *RegistrationSession {
	return &RegistrationSession{
		UserID: userID,
		Step:   StepName,
	}
}
