package notify

// Subscriber receives status-change event text. Receive is invoked
// synchronously by Hub.Broadcast and must not panic. Subscribers are matched
// by identity: pointers by address, other comparable values by ==, and
// values of non-comparable types by deep equality.
type Subscriber interface {
	Receive(event string)
}

// SubscriberFunc adapts an ordinary function to a Subscriber.
type SubscriberFunc func(event string)

// funcSubscriber gives a SubscriberFunc a comparable identity.
type funcSubscriber struct {
	fn SubscriberFunc
}

func (f *funcSubscriber) Receive(event string) { f.fn(event) }

// Func wraps fn into a Subscriber. Every call returns a distinct subscriber,
// keep the returned value to Detach it later.
func Func(fn SubscriberFunc) Subscriber {
	return &funcSubscriber{fn: fn}
}
