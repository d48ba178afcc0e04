package bridge

import "threadlink/domain"

// composeBase renders the relayable body of a message: content plus
// attachment URLs as plain-text lines, truncated to the transport's
// message size limit.
func composeBase(msg *domain.Message) string {
	content := msg.Content
	for _, url := range msg.Attachments {
		if content != "" {
			content += "\n"
		}
		content += url
	}
	return domain.TruncateContent(content, domain.MaxRelayContentLength)
}

// composeFor prepends the reply quote, with the attribution resolved
// against the target instance so anonymity survives the relay. The
// quote block counts against the size limit, so the composed result is
// truncated again.
func (r *Room) composeFor(target *Instance, msg *domain.Message, base string) string {
	if msg.ReplyTo == nil {
		return base
	}
	composed := domain.QuoteExcerpt(msg.ReplyTo.Excerpt) + "\n" +
		r.visibleReplyName(msg.ReplyTo, target) + "\n" + base
	return domain.TruncateContent(composed, domain.MaxRelayContentLength)
}
