package events

import (
	"fmt"
	"strings"
)

// ApplyPayload announces that the staging/preview target changed to URL.
type ApplyPayload struct {
	URL string `json:"url"`
}

// NavigatePayload asks the shell to make Page the active section.
type NavigatePayload struct {
	Page PageKey `json:"page"`
}

// TriggerApply publishes an apply event for url.
func (b *Bus) TriggerApply(url string) int {
	return b.Publish(TopicApply, ApplyPayload{URL: url})
}

// TriggerNavigate publishes a navigate event for page.
func (b *Bus) TriggerNavigate(page PageKey) int {
	return b.Publish(TopicNavigate, NavigatePayload{Page: page})
}

// OnApply subscribes fn to apply events. Payloads that cannot be read as an
// ApplyPayload are reported as handler failures and skipped.
func (b *Bus) OnApply(fn func(ApplyPayload)) *Subscription {
	return b.Subscribe(TopicApply, func(ev Event) {
		p, err := DecodeApply(ev.Data)
		if err != nil {
			b.fail(err)
			return
		}
		fn(p)
	})
}

// OnNavigate subscribes fn to navigate events with a known page key.
func (b *Bus) OnNavigate(fn func(NavigatePayload)) *Subscription {
	return b.Subscribe(TopicNavigate, func(ev Event) {
		p, err := DecodeNavigate(ev.Data)
		if err != nil {
			b.fail(err)
			return
		}
		fn(p)
	})
}

// DecodeApply reads an apply payload. Besides ApplyPayload it accepts the
// generic map form {"url": "..."} produced by JSON bridges.
func DecodeApply(data any) (ApplyPayload, error) {
	switch v := data.(type) {
	case ApplyPayload:
		return v, nil
	case *ApplyPayload:
		if v != nil {
			return *v, nil
		}
	case map[string]any:
		if url, ok := v["url"].(string); ok {
			return ApplyPayload{URL: url}, nil
		}
	case map[string]string:
		if url, ok := v["url"]; ok {
			return ApplyPayload{URL: url}, nil
		}
	}
	return ApplyPayload{}, fmt.Errorf("events: %s: unexpected payload %T", TopicApply, data)
}

// DecodeNavigate reads a navigate payload and checks the page key.
func DecodeNavigate(data any) (NavigatePayload, error) {
	var raw string
	switch v := data.(type) {
	case NavigatePayload:
		raw = string(v.Page)
	case *NavigatePayload:
		if v == nil {
			return NavigatePayload{}, fmt.Errorf("events: %s: nil payload", TopicNavigate)
		}
		raw = string(v.Page)
	case map[string]any:
		s, ok := v["page"].(string)
		if !ok {
			return NavigatePayload{}, fmt.Errorf("events: %s: missing page", TopicNavigate)
		}
		raw = s
	case map[string]string:
		raw = v["page"]
	default:
		return NavigatePayload{}, fmt.Errorf("events: %s: unexpected payload %T", TopicNavigate, data)
	}
	key, err := ParsePageKey(strings.TrimSpace(raw))
	if err != nil {
		return NavigatePayload{}, fmt.Errorf("events: %s: %w", TopicNavigate, err)
	}
	return NavigatePayload{Page: key}, nil
}
