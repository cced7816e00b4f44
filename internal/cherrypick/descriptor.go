package cherrypick

import "strings"

const (
	// GitBinary is the version control executable changes are replayed with.
	GitBinary = "git"

	// MainlineParent is the parent passed to -m for merge commits.
	MainlineParent = "1"
)

// Descriptor names a commit to replay onto the current branch.
type Descriptor struct {
	SHA string `json:"sha"`
	// Merge selects the mainline parent with -m 1. Nil means true.
	Merge *bool `json:"merge,omitempty"`
	// Args are appended verbatim after all other arguments.
	Args []string `json:"cherry-pick-args,omitempty"`
}

// MergeParent reports whether the descriptor replays with -m 1.
func (d Descriptor) MergeParent() bool {
	return d.Merge == nil || *d.Merge
}

// BuildCommand assembles the git argv that replays d.
func BuildCommand(d Descriptor) []string {
	argv := make([]string, 0, 5+len(d.Args))
	argv = append(argv, GitBinary, "cherry-pick", d.SHA)
	if d.MergeParent() {
		argv = append(argv, "-m", MainlineParent)
	}
	return append(argv, d.Args...)
}

// CommandString renders argv the way it is logged.
func CommandString(argv []string) string {
	return strings.Join(argv, " ")
}
