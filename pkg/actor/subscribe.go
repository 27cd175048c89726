package actor

import "github.com/streamkit/kconsumer/pkg/broker"

func (a *Actor) handleSubscribeTopics(r *SubscribeTopicsRequest) {
	err := a.guard.With(func(h broker.Handle) error {
		return h.Subscribe(r.Topics, a)
	})
	a.completeSubscribe(r.Result, err)
}

func (a *Actor) handleSubscribePattern(r *SubscribePatternRequest) {
	err := a.guard.With(func(h broker.Handle) error {
		return h.SubscribePattern(r.Pattern, a)
	})
	a.completeSubscribe(r.Result, err)
}

func (a *Actor) completeSubscribe(result chan<- error, err error) {
	if err != nil {
		err = newSubscribeFailure(err)
		a.log.Errorw("subscribe failed", "error", err)
	} else {
		a.cell.update(func(s *state) *state { return s.asSubscribed() })
		a.log.Infow("subscribed")
	}
	if result != nil {
		select {
		case result <- err:
		default:
		}
	}
}
