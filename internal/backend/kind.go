package backend

import (
	"fmt"
	"strconv"
)

// Kind identifies the resource a request fetches or the mutation it performs.
type Kind int

const (
	KindPullRequests Kind = iota
	KindPullRequest
	KindChecks
	KindDiff
	KindRuns
	KindJobs
	KindLog
	KindRecentBranch

	KindComment
	KindRequestChanges
	KindEditTitle
	KindAddLabel
	KindAddReviewer
	KindApprove
	KindMerge
	KindCheckout
	KindCreatePR
	KindRerun
)

var kindNames = map[Kind]string{
	KindPullRequests:   "pull-requests",
	KindPullRequest:    "pull-request",
	KindChecks:         "checks",
	KindDiff:           "diff",
	KindRuns:           "runs",
	KindJobs:           "jobs",
	KindLog:            "log",
	KindRecentBranch:   "recent-branch",
	KindComment:        "comment",
	KindRequestChanges: "request-changes",
	KindEditTitle:      "edit-title",
	KindAddLabel:       "add-label",
	KindAddReviewer:    "add-reviewer",
	KindApprove:        "approve",
	KindMerge:          "merge",
	KindCheckout:       "checkout",
	KindCreatePR:       "create-pr",
	KindRerun:          "rerun",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Mutation reports whether the kind changes remote state rather than
// reading it.
func (k Kind) Mutation() bool {
	return k >= KindComment
}

// Key identifies a resource instance; at most one fetch per Key is pending.
type Key struct {
	Kind   Kind
	Target string
}

func (k Key) String() string {
	if k.Target == "" {
		return k.Kind.String()
	}
	return k.Kind.String() + ":" + k.Target
}

// PRTarget formats a pull request number as a request target.
func PRTarget(number int) string {
	return strconv.Itoa(number)
}

// RunTarget formats a workflow run id as a request target.
func RunTarget(runID int64) string {
	return strconv.FormatInt(runID, 10)
}

// LogTarget formats a run/job pair. A zero job id addresses the whole run.
func LogTarget(runID, jobID int64) string {
	return RunTarget(runID) + "/" + strconv.FormatInt(jobID, 10)
}
