package actor

// Request is the sum of operations the actor accepts. Every concrete
// request type below implements it; dispatch is a type switch over the
// concrete type, not a virtual call, so that handler bodies stay ordinary
// functions taking a concrete request (easier to unit test in isolation).
type Request interface {
	isRequest()
}

// AssignmentResult is the value delivered to an AssignmentRequest's Result
// channel: either the current assignment, or an error (ErrNotSubscribed if
// no subscribe has yet succeeded).
type AssignmentResult struct {
	Assignment PartitionSet
	Err        error
}

// AssignmentRequest asks for the current broker-reported assignment, and
// optionally registers an OnRebalance hook in the same request.
type AssignmentRequest struct {
	OnRebalance *OnRebalance
	Result      chan<- AssignmentResult
}

func (*AssignmentRequest) isRequest() {}

// PollRequest asks the actor to run one iteration of the Poll handler. The
// driver timer enqueues these at a fixed interval; nothing about a
// PollRequest itself carries data.
type PollRequest struct{}

func (*PollRequest) isRequest() {}

// SubscribeTopicsRequest subscribes to an explicit, non-empty topic list.
type SubscribeTopicsRequest struct {
	Topics []string
	Result chan<- error
}

func (*SubscribeTopicsRequest) isRequest() {}

// SubscribePatternRequest subscribes to every topic matching Pattern.
type SubscribePatternRequest struct {
	Pattern string
	Result  chan<- error
}

func (*SubscribePatternRequest) isRequest() {}

// FetchRequest and CommitRequest are the two remaining externally-visible
// request variants. Each doubles as both the dispatcher request and the
// completion token handed back to its caller, so there is exactly one
// object tracking a fetch or a commit from submission to completion.

func (*FetchRequest) isRequest()  {}
func (*CommitRequest) isRequest() {}
