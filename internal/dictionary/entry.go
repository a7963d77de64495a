package dictionary

// Entry is a persisted term.
// Term is the normalized key and DisplayTerm keeps the capitalization the user typed.
type Entry struct {
	Term        string `db:"term" yaml:"term"`
	DisplayTerm string `db:"display_term" yaml:"display_term"`
	Definition  string `db:"definition" yaml:"definition"`
}
