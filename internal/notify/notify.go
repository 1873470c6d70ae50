// Package notify delivers verification messages to users. The production
// deployment plugs a real SMS gateway and mail relay in behind the same
// interface; this package ships the development stub, which logs the
// message instead of sending it.
package notify

import (
	"context"

	"github.com/rs/zerolog/log"
)

// LogSender pretends to deliver messages by writing them to the structured
// log. Channel names the transport it stands in for ("sms", "mail") so the
// log lines stay distinguishable.
type LogSender struct {
	Channel string
}

// Send logs the outgoing message and reports successful handoff.
func (s LogSender) Send(ctx context.Context, to, message string) (bool, error) {
	log.Info().
		Str("channel", s.Channel).
		Str("to", to).
		Str("message", message).
		Msg("notification handoff (dev stub)")
	return true, nil
}
